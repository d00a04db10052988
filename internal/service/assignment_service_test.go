package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiksha-labs/quizroom-api/internal/models"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
)

func TestAssignQuizToClassIsIdempotent(t *testing.T) {
	db := setupServiceDB(t)
	classes := repository.NewClassRepository(db)
	quizzes := repository.NewQuizRepository(db)
	teachers := repository.NewTeacherRepository(db)

	class := models.Class{Name: "9A", Year: "2026", Grade: "9", Section: "A"}
	require.NoError(t, classes.Create(context.Background(), &class))
	quiz := models.Quiz{Title: "Polynomials", QuestionIDs: []uint{1, 2}, CreatedBy: 1}
	require.NoError(t, quizzes.Create(context.Background(), &quiz))

	notifier := &recordingNotifier{}
	svc := NewAssignmentService(classes, quizzes, teachers, notifier, nil, testLogger())

	first, err := svc.AssignQuizToClass(context.Background(), class.ID, quiz.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{quiz.ID}, first.QuizIDs)

	second, err := svc.AssignQuizToClass(context.Background(), class.ID, quiz.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{quiz.ID}, second.QuizIDs)

	// Only the first assignment produces a notification.
	require.Len(t, notifier.events, 1)
}

func TestAssignQuizToClassUnknownReferences(t *testing.T) {
	db := setupServiceDB(t)
	classes := repository.NewClassRepository(db)
	quizzes := repository.NewQuizRepository(db)
	teachers := repository.NewTeacherRepository(db)

	svc := NewAssignmentService(classes, quizzes, teachers, nil, nil, testLogger())

	_, err := svc.AssignQuizToClass(context.Background(), 404, 1)
	require.ErrorIs(t, err, ErrClassNotFound)

	class := models.Class{Name: "10B", Year: "2026", Grade: "10", Section: "B"}
	require.NoError(t, classes.Create(context.Background(), &class))

	_, err = svc.AssignQuizToClass(context.Background(), class.ID, 404)
	require.ErrorIs(t, err, ErrQuizNotFound)
}

func TestAssignTeacherToClassesSkipsMissingClasses(t *testing.T) {
	db := setupServiceDB(t)
	classes := repository.NewClassRepository(db)
	quizzes := repository.NewQuizRepository(db)
	teachers := repository.NewTeacherRepository(db)

	teacher := models.Teacher{Username: "mina", Name: "Mina"}
	require.NoError(t, teachers.Create(context.Background(), &teacher))

	classA := models.Class{Name: "9A", Year: "2026", Grade: "9", Section: "A"}
	classB := models.Class{Name: "9B", Year: "2026", Grade: "9", Section: "B"}
	require.NoError(t, classes.Create(context.Background(), &classA))
	require.NoError(t, classes.Create(context.Background(), &classB))

	svc := NewAssignmentService(classes, quizzes, teachers, nil, nil, testLogger())

	result, err := svc.AssignTeacherToClasses(context.Background(), teacher.ID, []uint{classA.ID, 999, classB.ID})
	require.NoError(t, err)
	require.Len(t, result.Classes, 3)
	require.Equal(t, "linked", result.Classes[0].Status)
	require.Equal(t, "not_found", result.Classes[1].Status)
	require.Equal(t, "linked", result.Classes[2].Status)
	require.Equal(t, []uint{classA.ID, classB.ID}, result.ClassIDs)

	// Both sides of the relation are updated for resolvable classes.
	storedA, err := classes.GetByID(context.Background(), classA.ID)
	require.NoError(t, err)
	require.True(t, storedA.HasTeacher(teacher.ID))

	storedTeacher, err := teachers.GetByID(context.Background(), teacher.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{classA.ID, classB.ID}, []uint(storedTeacher.ClassIDs))
}

func TestAssignTeacherToClassesRepeatedLinkIsIdempotent(t *testing.T) {
	db := setupServiceDB(t)
	classes := repository.NewClassRepository(db)
	quizzes := repository.NewQuizRepository(db)
	teachers := repository.NewTeacherRepository(db)

	teacher := models.Teacher{Username: "ravi", Name: "Ravi"}
	require.NoError(t, teachers.Create(context.Background(), &teacher))
	class := models.Class{Name: "10A", Year: "2026", Grade: "10", Section: "A"}
	require.NoError(t, classes.Create(context.Background(), &class))

	svc := NewAssignmentService(classes, quizzes, teachers, nil, nil, testLogger())

	_, err := svc.AssignTeacherToClasses(context.Background(), teacher.ID, []uint{class.ID})
	require.NoError(t, err)
	result, err := svc.AssignTeacherToClasses(context.Background(), teacher.ID, []uint{class.ID})
	require.NoError(t, err)
	require.Equal(t, []uint{class.ID}, result.ClassIDs)

	stored, err := classes.GetByID(context.Background(), class.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{teacher.ID}, []uint(stored.TeacherIDs))
}
