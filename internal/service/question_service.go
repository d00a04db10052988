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

// QuestionService manages the question bank.
type QuestionService interface {
	Create(ctx context.Context, payload dto.QuestionCreateRequest) (dto.QuestionResponse, error)
	GetByID(ctx context.Context, id uint) (dto.QuestionResponse, error)
	List(ctx context.Context, filter dto.QuestionListRequest) ([]dto.QuestionResponse, error)
	Sample(ctx context.Context, size int) ([]dto.QuestionResponse, error)
}

type questionService struct {
	questions repository.QuestionRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewQuestionService constructs a QuestionService instance.
func NewQuestionService(questionRepo repository.QuestionRepository, validate *validator.Validate, logger zerolog.Logger) QuestionService {
	return &questionService{
		questions: questionRepo,
		validator: validate,
		logger:    logger.With().Str("component", "question_service").Logger(),
	}
}

func (s *questionService) Create(ctx context.Context, payload dto.QuestionCreateRequest) (dto.QuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuestionResponse{}, err
	}

	if !models.ValidQuestionType(payload.Type) {
		return dto.QuestionResponse{}, fmt.Errorf("%w: unsupported question type %q", ErrInvalidQuestion, payload.Type)
	}

	if !models.ValidChapter(payload.Board, payload.Grade, payload.Subject, payload.Chapter) {
		return dto.QuestionResponse{}, fmt.Errorf("%w: chapter %q not in board %q grade %q subject %q", ErrInvalidQuestion, payload.Chapter, payload.Board, payload.Grade, payload.Subject)
	}

	question := models.Question{
		Board:         payload.Board,
		Grade:         payload.Grade,
		Subject:       payload.Subject,
		Chapter:       payload.Chapter,
		Topic:         payload.Topic,
		Type:          payload.Type,
		Text:          payload.Text,
		Options:       payload.Options,
		CorrectOption: payload.CorrectOption,
		Answer:        payload.Answer,
		Difficulty:    payload.Difficulty,
	}

	if question.Difficulty == "" {
		question.Difficulty = models.DifficultyMedium
	}

	if question.IsChoiceBased() {
		if len(question.Options) == 0 {
			return dto.QuestionResponse{}, fmt.Errorf("%w: options are required for %s questions", ErrInvalidQuestion, question.Type)
		}
		if question.CorrectOption == "" {
			return dto.QuestionResponse{}, fmt.Errorf("%w: correct option is required for %s questions", ErrInvalidQuestion, question.Type)
		}
	}

	if err := s.questions.Create(ctx, &question); err != nil {
		return dto.QuestionResponse{}, err
	}

	s.logger.Info().Uint("question_id", question.ID).Str("subject", question.Subject).Msg("question created")

	return dto.NewQuestionResponse(question), nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (dto.QuestionResponse, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuestionResponse{}, ErrQuestionNotFound
		}
		return dto.QuestionResponse{}, err
	}

	return dto.NewQuestionResponse(question), nil
}

func (s *questionService) List(ctx context.Context, filter dto.QuestionListRequest) ([]dto.QuestionResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	questions, err := s.questions.List(ctx, repository.QuestionFilter{
		Board:      filter.Board,
		Grade:      filter.Grade,
		Subject:    filter.Subject,
		Chapter:    filter.Chapter,
		Type:       filter.Type,
		Difficulty: filter.Difficulty,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewQuestionResponseSlice(questions), nil
}

func (s *questionService) Sample(ctx context.Context, size int) ([]dto.QuestionResponse, error) {
	if size <= 0 {
		size = 2
	}

	questions, err := s.questions.Sample(ctx, size)
	if err != nil {
		return nil, err
	}

	return dto.NewQuestionResponseSlice(questions), nil
}
