package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/models"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
)

// TeacherService covers teacher-facing catalog workflows: profiles, question
// bookmarks and quiz authoring.
type TeacherService interface {
	Create(ctx context.Context, payload dto.TeacherCreateRequest) (dto.TeacherResponse, error)
	GetByUsername(ctx context.Context, username string) (dto.TeacherResponse, error)
	BookmarkQuestion(ctx context.Context, teacherID, questionID uint) (dto.TeacherResponse, error)
	CreateQuiz(ctx context.Context, teacherID uint, payload dto.QuizCreateRequest) (dto.QuizResponse, error)
	ListQuizzes(ctx context.Context, teacherID uint) ([]dto.QuizResponse, error)
}

type teacherService struct {
	teachers  repository.TeacherRepository
	questions repository.QuestionRepository
	quizzes   repository.QuizRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTeacherService constructs a TeacherService instance.
func NewTeacherService(teacherRepo repository.TeacherRepository, questionRepo repository.QuestionRepository, quizRepo repository.QuizRepository, validate *validator.Validate, logger zerolog.Logger) TeacherService {
	return &teacherService{
		teachers:  teacherRepo,
		questions: questionRepo,
		quizzes:   quizRepo,
		validator: validate,
		logger:    logger.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *teacherService) Create(ctx context.Context, payload dto.TeacherCreateRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher := models.Teacher{
		Username: payload.Username,
		Name:     payload.Name,
		Subjects: payload.Subjects,
		SchoolID: payload.SchoolID,
	}

	if err := s.teachers.Create(ctx, &teacher); err != nil {
		return dto.TeacherResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Str("username", teacher.Username).Msg("teacher created")

	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) GetByUsername(ctx context.Context, username string) (dto.TeacherResponse, error) {
	teacher, err := s.teachers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}

	return dto.NewTeacherResponse(teacher), nil
}

// BookmarkQuestion adds the question to the teacher's bookmark set. Repeating
// the call is a no-op.
func (s *teacherService) BookmarkQuestion(ctx context.Context, teacherID, questionID uint) (dto.TeacherResponse, error) {
	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}

	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrQuestionNotFound
		}
		return dto.TeacherResponse{}, err
	}

	if ids, added := models.AppendUniqueID(teacher.BookmarkedQuestions, questionID); added {
		teacher.BookmarkedQuestions = ids
		if err := s.teachers.Update(ctx, &teacher); err != nil {
			return dto.TeacherResponse{}, err
		}
	}

	return dto.NewTeacherResponse(teacher), nil
}

// CreateQuiz stores the quiz and records it in the teacher's quiz set. Every
// referenced question must resolve and the question list must be non-empty.
func (s *teacherService) CreateQuiz(ctx context.Context, teacherID uint, payload dto.QuizCreateRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrTeacherNotFound
		}
		return dto.QuizResponse{}, err
	}

	questions, err := s.questions.GetByIDs(ctx, payload.QuestionIDs)
	if err != nil {
		return dto.QuizResponse{}, err
	}
	if len(questions) != len(payload.QuestionIDs) {
		return dto.QuizResponse{}, fmt.Errorf("%w: quiz references unknown questions", ErrQuestionNotFound)
	}

	quiz := models.Quiz{
		Title:       payload.Title,
		QuestionIDs: payload.QuestionIDs,
		CreatedBy:   teacher.ID,
	}

	if err := s.quizzes.Create(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	if ids, added := models.AppendUniqueID(teacher.QuizIDs, quiz.ID); added {
		teacher.QuizIDs = ids
		if err := s.teachers.Update(ctx, &teacher); err != nil {
			return dto.QuizResponse{}, err
		}
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Uint("quiz_id", quiz.ID).Msg("quiz created")

	return dto.NewQuizResponse(quiz), nil
}

func (s *teacherService) ListQuizzes(ctx context.Context, teacherID uint) ([]dto.QuizResponse, error) {
	if _, err := s.teachers.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	quizzes, err := s.quizzes.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewQuizResponseSlice(quizzes), nil
}
