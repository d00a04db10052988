package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Question{}, &models.Quiz{}, &models.Class{},
		&models.Teacher{}, &models.Student{}, &models.Response{},
	))
	return db
}

func TestAppendAttemptCreatesDocumentAndMarksSubmitted(t *testing.T) {
	db := setupTestDB(t)
	students := NewStudentRepository(db)
	responses := NewResponseRepository(db)

	student := models.Student{Username: "asha", Name: "Asha", ClassID: 1}
	require.NoError(t, students.Create(context.Background(), &student))

	attempt := models.QuizAttempt{
		QuizID: 7,
		Answers: []models.AnswerRecord{
			{QuestionID: 3, Question: "What is 6 x 7?", Answer: "42", Commentary: "42"},
		},
		SubmittedAt: time.Now().UTC(),
	}

	require.NoError(t, responses.AppendAttempt(context.Background(), student.ID, attempt))

	stored, err := responses.GetByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, stored.Attempts, 1)
	require.Equal(t, uint(7), stored.Attempts[0].QuizID)
	require.Equal(t, "42", stored.Attempts[0].Answers[0].Answer)

	reloaded, err := students.GetByID(context.Background(), student.ID)
	require.NoError(t, err)
	require.True(t, reloaded.HasSubmitted(7))
}

func TestAppendAttemptResubmissionAppendsWithoutDuplicateSetEntry(t *testing.T) {
	db := setupTestDB(t)
	students := NewStudentRepository(db)
	responses := NewResponseRepository(db)

	student := models.Student{Username: "ravi", Name: "Ravi", ClassID: 1}
	require.NoError(t, students.Create(context.Background(), &student))

	attempt := models.QuizAttempt{QuizID: 5, SubmittedAt: time.Now().UTC()}
	require.NoError(t, responses.AppendAttempt(context.Background(), student.ID, attempt))
	require.NoError(t, responses.AppendAttempt(context.Background(), student.ID, attempt))

	stored, err := responses.GetByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, stored.Attempts, 2, "resubmission appends a second attempt")

	reloaded, err := students.GetByID(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.SubmittedQuizIDs, 1, "submitted set stays duplicate free")
}

func TestAppendAttemptMissingStudent(t *testing.T) {
	db := setupTestDB(t)
	responses := NewResponseRepository(db)

	err := responses.AppendAttempt(context.Background(), 99, models.QuizAttempt{QuizID: 1})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
