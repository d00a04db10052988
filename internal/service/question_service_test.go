package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/models"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
)

func newQuestionService(t *testing.T) QuestionService {
	t.Helper()
	db := setupServiceDB(t)
	questions := repository.NewQuestionRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewQuestionService(questions, validate, testLogger())
}

func TestCreateQuestionValidatesCurriculum(t *testing.T) {
	svc := newQuestionService(t)

	created, err := svc.Create(context.Background(), dto.QuestionCreateRequest{
		Board: "ncert", Grade: "10", Subject: "maths", Chapter: "Polynomials",
		Topic: "zeros", Type: models.QuestionTypeShortAnswer,
		Text: "Find the zeros of x^2-4.",
	})
	require.NoError(t, err)
	require.Equal(t, models.DifficultyMedium, created.Difficulty)

	_, err = svc.Create(context.Background(), dto.QuestionCreateRequest{
		Board: "ncert", Grade: "10", Subject: "maths", Chapter: "Thermodynamics",
		Topic: "heat", Type: models.QuestionTypeShortAnswer,
		Text: "Not a maths chapter.",
	})
	require.ErrorIs(t, err, ErrInvalidQuestion)

	_, err = svc.Create(context.Background(), dto.QuestionCreateRequest{
		Board: "ncert", Grade: "10", Subject: "maths", Chapter: "Polynomials",
		Topic: "zeros", Type: "essay",
		Text: "Unsupported question type.",
	})
	require.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestCreateQuestionChoiceBasedRequiresOptions(t *testing.T) {
	svc := newQuestionService(t)

	_, err := svc.Create(context.Background(), dto.QuestionCreateRequest{
		Board: "icse", Grade: "9", Subject: "science", Chapter: "Motion and Measurement",
		Topic: "speed", Type: models.QuestionTypeMCQ,
		Text: "Which unit measures speed?",
	})
	require.ErrorIs(t, err, ErrInvalidQuestion)

	created, err := svc.Create(context.Background(), dto.QuestionCreateRequest{
		Board: "icse", Grade: "9", Subject: "science", Chapter: "Motion and Measurement",
		Topic: "speed", Type: models.QuestionTypeMCQ,
		Text:    "Which unit measures speed?",
		Options: []string{"m/s", "kg", "N"}, CorrectOption: "m/s",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"m/s", "kg", "N"}, created.Options)
}

func TestListQuestionsFiltered(t *testing.T) {
	db := setupServiceDB(t)
	questions := repository.NewQuestionRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewQuestionService(questions, validate, testLogger())

	seed := []models.Question{
		{Board: "ncert", Grade: "10", Subject: "maths", Chapter: "Polynomials", Topic: "zeros", Type: models.QuestionTypeShortAnswer, Text: "Q1", Difficulty: models.DifficultyEasy},
		{Board: "ncert", Grade: "10", Subject: "science", Chapter: "Light", Topic: "reflection", Type: models.QuestionTypeShortAnswer, Text: "Q2", Difficulty: models.DifficultyHard},
		{Board: "icse", Grade: "9", Subject: "maths", Chapter: "Circles", Topic: "chords", Type: models.QuestionTypeMCQ, Text: "Q3", Options: []string{"a", "b"}, CorrectOption: "a", Difficulty: models.DifficultyMedium},
	}
	for i := range seed {
		require.NoError(t, questions.Create(context.Background(), &seed[i]))
	}

	maths, err := svc.List(context.Background(), dto.QuestionListRequest{Board: "ncert", Subject: "maths"})
	require.NoError(t, err)
	require.Len(t, maths, 1)
	require.Equal(t, "Q1", maths[0].Text)

	sampled, err := svc.Sample(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, sampled, 2)
}
