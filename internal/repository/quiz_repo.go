package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/models"
)

// QuizRepository defines data operations for quizzes.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (models.Quiz, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Quiz, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]models.Quiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository instantiates the repository.
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *quizRepository) GetByID(ctx context.Context, id uint) (models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return models.Quiz{}, err
	}

	return quiz, nil
}

// GetByIDs returns the quizzes that still resolve, preserving the order of
// ids. Dangling references are omitted rather than reported as errors.
func (r *quizRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Quiz, error) {
	if len(ids) == 0 {
		return []models.Quiz{}, nil
	}

	var quizzes []models.Quiz
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&quizzes).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Quiz, len(quizzes))
	for _, quiz := range quizzes {
		byID[quiz.ID] = quiz
	}

	ordered := make([]models.Quiz, 0, len(ids))
	for _, id := range ids {
		if quiz, ok := byID[id]; ok {
			ordered = append(ordered, quiz)
		}
	}

	return ordered, nil
}

func (r *quizRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", teacherID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}

	return quizzes, nil
}
