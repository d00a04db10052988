package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
)

// PendingService computes the quizzes a student still has to take.
type PendingService interface {
	PendingQuizzes(ctx context.Context, studentID uint) ([]dto.QuizResponse, error)
	PendingInvalidator
}

type pendingService struct {
	students repository.StudentRepository
	classes  repository.ClassRepository
	quizzes  repository.QuizRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewPendingService builds the pending-quiz resolver. The redis client is
// optional; without it every call recomputes from storage.
func NewPendingService(studentRepo repository.StudentRepository, classRepo repository.ClassRepository, quizRepo repository.QuizRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) PendingService {
	return &pendingService{
		students: studentRepo,
		classes:  classRepo,
		quizzes:  quizRepo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "pending_service").Logger(),
	}
}

// PendingQuizzes returns assigned-minus-submitted for the student's class, in
// assignment insertion order. Assigned quiz ids that no longer resolve are
// dropped silently; a missing student or unresolvable class reference is an
// error because it signals broken data upstream.
func (s *pendingService) PendingQuizzes(ctx context.Context, studentID uint) ([]dto.QuizResponse, error) {
	cacheKey := pendingCacheKey(studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response []dto.QuizResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("pending cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read pending cache")
		}
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	class, err := s.classes.GetByID(ctx, student.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	submitted := make(map[uint]struct{}, len(student.SubmittedQuizIDs))
	for _, id := range student.SubmittedQuizIDs {
		submitted[id] = struct{}{}
	}

	seen := make(map[uint]struct{}, len(class.QuizIDs))
	pendingIDs := make([]uint, 0, len(class.QuizIDs))
	for _, id := range class.QuizIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, done := submitted[id]; done {
			continue
		}
		pendingIDs = append(pendingIDs, id)
	}

	quizzes, err := s.quizzes.GetByIDs(ctx, pendingIDs)
	if err != nil {
		return nil, err
	}

	response := dto.NewQuizResponseSlice(quizzes)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store pending cache")
			}
		}
	}

	return response, nil
}

// InvalidateStudent drops the cached pending set for one student.
func (s *pendingService) InvalidateStudent(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, pendingCacheKey(studentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to invalidate pending cache")
	}
}

// InvalidateClass drops cached pending sets for every student of the class.
func (s *pendingService) InvalidateClass(ctx context.Context, classID uint) {
	if s.cache == nil {
		return
	}

	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("class_id", classID).Msg("failed to list students for cache invalidation")
		return
	}

	for _, student := range students {
		s.InvalidateStudent(ctx, student.ID)
	}
}

func pendingCacheKey(studentID uint) string {
	return fmt.Sprintf("pending:student:%d", studentID)
}
