package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/models"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
)

// AssignmentService maintains the class/quiz and teacher/class relations the
// pending-quiz resolver depends on.
type AssignmentService interface {
	AssignQuizToClass(ctx context.Context, classID, quizID uint) (dto.ClassResponse, error)
	AssignTeacherToClasses(ctx context.Context, teacherID uint, classIDs []uint) (dto.TeacherAssignmentResult, error)
}

// AssignmentNotifier receives an event after a quiz is newly assigned to a
// class. A nil notifier is valid.
type AssignmentNotifier interface {
	QuizAssigned(ctx context.Context, class models.Class, quiz models.Quiz)
}

// PendingInvalidator drops cached pending-quiz results that an assignment
// change made stale. A nil invalidator is valid.
type PendingInvalidator interface {
	InvalidateClass(ctx context.Context, classID uint)
	InvalidateStudent(ctx context.Context, studentID uint)
}

type assignmentService struct {
	classes  repository.ClassRepository
	quizzes  repository.QuizRepository
	teachers repository.TeacherRepository
	notifier AssignmentNotifier
	pending  PendingInvalidator
	logger   zerolog.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(classRepo repository.ClassRepository, quizRepo repository.QuizRepository, teacherRepo repository.TeacherRepository, notifier AssignmentNotifier, pending PendingInvalidator, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		classes:  classRepo,
		quizzes:  quizRepo,
		teachers: teacherRepo,
		notifier: notifier,
		pending:  pending,
		logger:   logger.With().Str("component", "assignment_service").Logger(),
	}
}

// AssignQuizToClass adds the quiz to the class's assigned set. The add is
// idempotent: assigning an already-assigned quiz leaves the set unchanged.
func (s *assignmentService) AssignQuizToClass(ctx context.Context, classID, quizID uint) (dto.ClassResponse, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrQuizNotFound
		}
		return dto.ClassResponse{}, err
	}

	ids, added := models.AppendUniqueID(class.QuizIDs, quizID)
	if added {
		class.QuizIDs = ids
		if err := s.classes.Update(ctx, &class); err != nil {
			return dto.ClassResponse{}, err
		}

		if s.pending != nil {
			s.pending.InvalidateClass(ctx, class.ID)
		}
		if s.notifier != nil {
			s.notifier.QuizAssigned(ctx, class, quiz)
		}

		s.logger.Info().Uint("class_id", classID).Uint("quiz_id", quizID).Msg("quiz assigned to class")
	}

	return dto.NewClassResponse(class), nil
}

// AssignTeacherToClasses links the teacher to every resolvable class, updating
// both sides of the relation. A class id that does not resolve is skipped and
// reported in the per-class results; the remaining classes are still linked.
func (s *assignmentService) AssignTeacherToClasses(ctx context.Context, teacherID uint, classIDs []uint) (dto.TeacherAssignmentResult, error) {
	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherAssignmentResult{}, ErrTeacherNotFound
		}
		return dto.TeacherAssignmentResult{}, err
	}

	result := dto.TeacherAssignmentResult{
		TeacherID: teacherID,
		Classes:   make([]dto.ClassAssignmentOutcome, 0, len(classIDs)),
	}

	teacherDirty := false
	for _, classID := range classIDs {
		class, err := s.classes.GetByID(ctx, classID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Classes = append(result.Classes, dto.ClassAssignmentOutcome{ClassID: classID, Status: "not_found"})
				continue
			}
			return dto.TeacherAssignmentResult{}, err
		}

		if ids, added := models.AppendUniqueID(class.TeacherIDs, teacherID); added {
			class.TeacherIDs = ids
			if err := s.classes.Update(ctx, &class); err != nil {
				return dto.TeacherAssignmentResult{}, err
			}
		}

		if ids, added := models.AppendUniqueID(teacher.ClassIDs, classID); added {
			teacher.ClassIDs = ids
			teacherDirty = true
		}

		result.Classes = append(result.Classes, dto.ClassAssignmentOutcome{ClassID: classID, Status: "linked"})
	}

	if teacherDirty {
		if err := s.teachers.Update(ctx, &teacher); err != nil {
			return dto.TeacherAssignmentResult{}, err
		}
	}

	result.ClassIDs = teacher.ClassIDs
	s.logger.Info().Uint("teacher_id", teacherID).Int("classes", len(classIDs)).Msg("teacher linked to classes")

	return result, nil
}
