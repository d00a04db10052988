package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/models"
)

// QuestionFilter narrows question bank queries.
type QuestionFilter struct {
	Board      string
	Grade      string
	Subject    string
	Chapter    string
	Type       string
	Difficulty string
}

// QuestionRepository defines data operations for catalog questions.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (models.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Question, error)
	List(ctx context.Context, filter QuestionFilter) ([]models.Question, error)
	Sample(ctx context.Context, size int) ([]models.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository instantiates the repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return models.Question{}, err
	}

	return question, nil
}

// GetByIDs returns the questions that still resolve, in the order of ids.
// Dangling ids are omitted.
func (r *questionRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}

	var questions []models.Question
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Question, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}

	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if question, ok := byID[id]; ok {
			ordered = append(ordered, question)
		}
	}

	return ordered, nil
}

func (r *questionRepository) List(ctx context.Context, filter QuestionFilter) ([]models.Question, error) {
	query := r.db.WithContext(ctx).Model(&models.Question{})

	if filter.Board != "" {
		query = query.Where("board = ?", filter.Board)
	}
	if filter.Grade != "" {
		query = query.Where("grade = ?", filter.Grade)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Chapter != "" {
		query = query.Where("chapter = ?", filter.Chapter)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	var questions []models.Question
	if err := query.Order("created_at DESC").Find(&questions).Error; err != nil {
		return nil, err
	}

	return questions, nil
}

func (r *questionRepository) Sample(ctx context.Context, size int) ([]models.Question, error) {
	if size <= 0 {
		size = 1
	}

	var questions []models.Question
	if err := r.db.WithContext(ctx).Order("RANDOM()").Limit(size).Find(&questions).Error; err != nil {
		return nil, err
	}

	return questions, nil
}
