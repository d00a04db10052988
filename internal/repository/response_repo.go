package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shiksha-labs/quizroom-api/internal/models"
)

// ResponseRepository defines data operations for student response documents.
type ResponseRepository interface {
	GetByStudent(ctx context.Context, studentID uint) (models.Response, error)
	// AppendAttempt records a submission in one atomic unit: the quiz id is
	// added to the student's submitted set (idempotently) and the attempt
	// entry is appended to the student's response document, creating the
	// document on first submission. Concurrent submissions for the same
	// student serialize on the student row.
	AppendAttempt(ctx context.Context, studentID uint, attempt models.QuizAttempt) error
}

type responseRepository struct {
	db *gorm.DB
}

// NewResponseRepository instantiates the repository.
func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) GetByStudent(ctx context.Context, studentID uint) (models.Response, error) {
	var response models.Response
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&response).Error; err != nil {
		return models.Response{}, err
	}

	return response, nil
}

func (r *responseRepository) AppendAttempt(ctx context.Context, studentID uint, attempt models.QuizAttempt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Student{})
		if tx.Dialector.Name() == "postgres" {
			// sqlite serializes writers on its own; the row lock only
			// exists on postgres.
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var student models.Student
		if err := query.First(&student, studentID).Error; err != nil {
			return err
		}

		if ids, added := models.AppendUniqueID(student.SubmittedQuizIDs, attempt.QuizID); added {
			student.SubmittedQuizIDs = ids
			if err := tx.Save(&student).Error; err != nil {
				return err
			}
		}

		var response models.Response
		err := tx.Where("student_id = ?", studentID).First(&response).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response = models.Response{StudentID: studentID}
		case err != nil:
			return err
		}

		response.Attempts = append(response.Attempts, attempt)

		return tx.Save(&response).Error
	})
}
