package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/models"
)

// ClassRepository defines data operations for classes and schools.
type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id uint) (models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	List(ctx context.Context) ([]models.Class, error)
	CreateSchool(ctx context.Context, school *models.School) error
	ListSchools(ctx context.Context) ([]models.School, error)
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository instantiates the repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return models.Class{}, err
	}

	return class, nil
}

func (r *classRepository) Update(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classRepository) List(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&classes).Error; err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *classRepository) CreateSchool(ctx context.Context, school *models.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *classRepository) ListSchools(ctx context.Context) ([]models.School, error) {
	var schools []models.School
	if err := r.db.WithContext(ctx).Order("name").Find(&schools).Error; err != nil {
		return nil, err
	}

	return schools, nil
}
