package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/models"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
)

// ClassroomService manages schools, classes and student enrollment.
type ClassroomService interface {
	CreateSchool(ctx context.Context, payload dto.SchoolCreateRequest) (dto.SchoolResponse, error)
	ListSchools(ctx context.Context) ([]dto.SchoolResponse, error)
	CreateClass(ctx context.Context, payload dto.ClassCreateRequest) (dto.ClassResponse, error)
	GetClass(ctx context.Context, classID uint) (dto.ClassResponse, error)
	ListClasses(ctx context.Context) ([]dto.ClassResponse, error)
	RegisterStudent(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	GetStudent(ctx context.Context, studentID uint) (dto.StudentResponse, error)
	ListStudents(ctx context.Context, classID uint) ([]dto.StudentResponse, error)
}

type classroomService struct {
	classes   repository.ClassRepository
	students  repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewClassroomService constructs a ClassroomService instance.
func NewClassroomService(classRepo repository.ClassRepository, studentRepo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) ClassroomService {
	return &classroomService{
		classes:   classRepo,
		students:  studentRepo,
		validator: validate,
		logger:    logger.With().Str("component", "classroom_service").Logger(),
	}
}

func (s *classroomService) CreateSchool(ctx context.Context, payload dto.SchoolCreateRequest) (dto.SchoolResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SchoolResponse{}, err
	}

	school := models.School{
		Name:    payload.Name,
		Address: payload.Address,
	}

	if err := s.classes.CreateSchool(ctx, &school); err != nil {
		return dto.SchoolResponse{}, err
	}

	s.logger.Info().Uint("school_id", school.ID).Str("name", school.Name).Msg("school created")

	return dto.NewSchoolResponse(school), nil
}

func (s *classroomService) ListSchools(ctx context.Context) ([]dto.SchoolResponse, error) {
	schools, err := s.classes.ListSchools(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewSchoolResponseSlice(schools), nil
}

func (s *classroomService) CreateClass(ctx context.Context, payload dto.ClassCreateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	class := models.Class{
		Name:     payload.Name,
		Year:     payload.Year,
		Grade:    payload.Grade,
		Section:  payload.Section,
		SchoolID: payload.SchoolID,
	}

	if err := s.classes.Create(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Uint("class_id", class.ID).Str("name", class.Name).Msg("class created")

	return dto.NewClassResponse(class), nil
}

func (s *classroomService) GetClass(ctx context.Context, classID uint) (dto.ClassResponse, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}
	return dto.NewClassResponse(class), nil
}

func (s *classroomService) ListClasses(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewClassResponseSlice(classes), nil
}

// RegisterStudent enrolls a student into an existing class. The class must
// resolve; enrollment without a class is not allowed.
func (s *classroomService) RegisterStudent(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	class, err := s.classes.GetByID(ctx, payload.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrClassNotFound
		}
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		Username:    payload.Username,
		Name:        payload.Name,
		Section:     payload.Section,
		Age:         payload.Age,
		Address:     payload.Address,
		PhoneNumber: payload.PhoneNumber,
		ClassID:     class.ID,
		SchoolID:    class.SchoolID,
	}

	if err := s.students.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Uint("class_id", class.ID).Msg("student enrolled")

	return dto.NewStudentResponse(student), nil
}

func (s *classroomService) GetStudent(ctx context.Context, studentID uint) (dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *classroomService) ListStudents(ctx context.Context, classID uint) ([]dto.StudentResponse, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponseSlice(students), nil
}
