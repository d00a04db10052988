package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.School{}, &models.Class{}, &models.Teacher{}, &models.Student{},
		&models.Question{}, &models.Quiz{}, &models.Response{}, &models.User{},
	))
	return db
}

// stubGrader implements Grader with canned results for submission tests.
type stubGrader struct {
	commentary string
	imageURL   string
	err        error
	calls      int
}

func (s *stubGrader) Grade(ctx context.Context, input GradeInput) (GradeResult, error) {
	s.calls++
	if s.err != nil {
		return GradeResult{}, s.err
	}
	return GradeResult{Commentary: s.commentary, ImageURL: s.imageURL}, nil
}

// recordingNotifier captures assignment events for assertions.
type recordingNotifier struct {
	events []string
}

func (r *recordingNotifier) QuizAssigned(ctx context.Context, class models.Class, quiz models.Quiz) {
	r.events = append(r.events, fmt.Sprintf("class=%d quiz=%d", class.ID, quiz.ID))
}
