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

func newTeacherService(t *testing.T) (TeacherService, repository.TeacherRepository, repository.QuestionRepository) {
	t.Helper()
	db := setupServiceDB(t)
	teachers := repository.NewTeacherRepository(db)
	questions := repository.NewQuestionRepository(db)
	quizzes := repository.NewQuizRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())

	return NewTeacherService(teachers, questions, quizzes, validate, testLogger()), teachers, questions
}

func seedQuestion(t *testing.T, questions repository.QuestionRepository) models.Question {
	t.Helper()
	question := models.Question{
		Board: "ncert", Grade: "9", Subject: "science", Chapter: "Motion",
		Topic: "speed", Type: models.QuestionTypeShortAnswer, Text: "Define average speed.",
		Difficulty: models.DifficultyEasy,
	}
	require.NoError(t, questions.Create(context.Background(), &question))
	return question
}

func TestBookmarkQuestionIsIdempotent(t *testing.T) {
	svc, teachers, questions := newTeacherService(t)

	teacher, err := svc.Create(context.Background(), dto.TeacherCreateRequest{Username: "mina", Name: "Mina"})
	require.NoError(t, err)
	question := seedQuestion(t, questions)

	first, err := svc.BookmarkQuestion(context.Background(), teacher.ID, question.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{question.ID}, first.BookmarkedQuestions)

	second, err := svc.BookmarkQuestion(context.Background(), teacher.ID, question.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{question.ID}, second.BookmarkedQuestions)

	stored, err := teachers.GetByID(context.Background(), teacher.ID)
	require.NoError(t, err)
	require.True(t, stored.HasBookmark(question.ID))
}

func TestBookmarkQuestionUnknownReferences(t *testing.T) {
	svc, _, questions := newTeacherService(t)

	_, err := svc.BookmarkQuestion(context.Background(), 404, 1)
	require.ErrorIs(t, err, ErrTeacherNotFound)

	teacher, err := svc.Create(context.Background(), dto.TeacherCreateRequest{Username: "ravi", Name: "Ravi"})
	require.NoError(t, err)
	_ = questions

	_, err = svc.BookmarkQuestion(context.Background(), teacher.ID, 404)
	require.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestCreateQuizRecordsOwnershipBothSides(t *testing.T) {
	svc, teachers, questions := newTeacherService(t)

	teacher, err := svc.Create(context.Background(), dto.TeacherCreateRequest{Username: "mina", Name: "Mina"})
	require.NoError(t, err)
	question := seedQuestion(t, questions)

	quiz, err := svc.CreateQuiz(context.Background(), teacher.ID, dto.QuizCreateRequest{
		Title:       "Motion basics",
		QuestionIDs: []uint{question.ID},
	})
	require.NoError(t, err)
	require.Equal(t, teacher.ID, quiz.CreatedBy)
	require.Equal(t, []uint{question.ID}, quiz.QuestionIDs)

	stored, err := teachers.GetByID(context.Background(), teacher.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{quiz.ID}, []uint(stored.QuizIDs))

	listed, err := svc.ListQuizzes(context.Background(), teacher.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, quiz.ID, listed[0].ID)
}

func TestCreateQuizRejectsUnknownQuestions(t *testing.T) {
	svc, _, questions := newTeacherService(t)

	teacher, err := svc.Create(context.Background(), dto.TeacherCreateRequest{Username: "mina", Name: "Mina"})
	require.NoError(t, err)
	question := seedQuestion(t, questions)

	_, err = svc.CreateQuiz(context.Background(), teacher.ID, dto.QuizCreateRequest{
		Title:       "Broken",
		QuestionIDs: []uint{question.ID, 9999},
	})
	require.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = svc.CreateQuiz(context.Background(), teacher.ID, dto.QuizCreateRequest{Title: "Empty"})
	require.Error(t, err)
}
