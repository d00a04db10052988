package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/config"
	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/handler"
	"github.com/shiksha-labs/quizroom-api/internal/models"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
	"github.com/shiksha-labs/quizroom-api/internal/router"
	"github.com/shiksha-labs/quizroom-api/internal/service"
)

var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type testGrader struct {
	err error
}

func (g *testGrader) Grade(_ context.Context, input service.GradeInput) (service.GradeResult, error) {
	if g.err != nil {
		return service.GradeResult{}, g.err
	}
	return service.GradeResult{
		Commentary: "Workings are correct.",
		ImageURL:   "https://files.test/answer.png",
	}, nil
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func setupApp(t *testing.T, grader *testGrader) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.School{}, &models.Class{}, &models.Teacher{}, &models.Student{},
		&models.Question{}, &models.Quiz{}, &models.Response{}, &models.User{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	questionRepo := repository.NewQuestionRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	classRepo := repository.NewClassRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	userRepo := repository.NewUserRepository(db)

	pendingService := service.NewPendingService(studentRepo, classRepo, quizRepo, nil, 0, logger)
	assignmentService := service.NewAssignmentService(classRepo, quizRepo, teacherRepo, nil, pendingService, logger)
	submissionService := service.NewSubmissionService(studentRepo, quizRepo, questionRepo, responseRepo, grader, validate, pendingService, logger)
	questionService := service.NewQuestionService(questionRepo, validate, logger)
	teacherService := service.NewTeacherService(teacherRepo, questionRepo, quizRepo, validate, logger)
	classroomService := service.NewClassroomService(classRepo, studentRepo, validate, logger)
	authService := service.NewAuthService(userRepo, validate, "test-secret", time.Hour, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "test-secret"}, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		QuestionHandler:   handler.NewQuestionHandler(questionService, logger),
		TeacherHandler:    handler.NewTeacherHandler(teacherService, assignmentService, logger),
		ClassroomHandler:  handler.NewClassroomHandler(classroomService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		StudentHandler:    handler.NewStudentHandler(pendingService, submissionService, nil, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", uint(1))
			return c.Next()
		},
	})

	return app, db
}

func decodeData(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	var envelope apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success, envelope.Message)
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

func seedClassroom(t *testing.T, db *gorm.DB) (models.Class, models.Student, models.Quiz, models.Question) {
	t.Helper()

	class := models.Class{Name: "10A", Year: "2026", Grade: "10", Section: "A"}
	require.NoError(t, db.Create(&class).Error)

	student := models.Student{Username: "asha", Name: "Asha", ClassID: class.ID}
	require.NoError(t, db.Create(&student).Error)

	question := models.Question{
		Board: "ncert", Grade: "10", Subject: "maths", Chapter: "Polynomials",
		Topic: "zeros", Type: models.QuestionTypeShortAnswer,
		Text: "Find the zeros of x^2-4.", Difficulty: models.DifficultyEasy,
	}
	require.NoError(t, db.Create(&question).Error)

	quiz := models.Quiz{Title: "Polynomials", QuestionIDs: []uint{question.ID}, CreatedBy: 1}
	require.NoError(t, db.Create(&quiz).Error)

	return class, student, quiz, question
}

func TestAssignQuizThenPendingFlow(t *testing.T) {
	app, db := setupApp(t, &testGrader{})
	class, student, quiz, _ := seedClassroom(t, db)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/quizzes/%d/assign/%d", quiz.ID, class.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var assigned dto.ClassResponse
	decodeData(t, resp, &assigned)
	require.Equal(t, []uint{quiz.ID}, assigned.QuizIDs)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/students/%d/pending-quizzes", student.ID), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pending []dto.QuizResponse
	decodeData(t, resp, &pending)
	require.Len(t, pending, 1)
	require.Equal(t, quiz.ID, pending[0].ID)

	// Unknown ids map to 404, not 500.
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/quizzes/%d/assign/9999", quiz.ID), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/students/9999/pending-quizzes", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAssignTeacherToClassesReportsMissing(t *testing.T) {
	app, db := setupApp(t, &testGrader{})

	teacher := models.Teacher{Username: "mina", Name: "Mina"}
	require.NoError(t, db.Create(&teacher).Error)
	class := models.Class{Name: "9B", Year: "2026", Grade: "9", Section: "B"}
	require.NoError(t, db.Create(&class).Error)

	payload, err := json.Marshal(fiber.Map{"class_ids": []uint{class.ID, 9999}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/teachers/%d/classes", teacher.ID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result dto.TeacherAssignmentResult
	decodeData(t, resp, &result)
	require.Len(t, result.Classes, 2)
	require.Equal(t, "linked", result.Classes[0].Status)
	require.Equal(t, "not_found", result.Classes[1].Status)
	require.Equal(t, []uint{class.ID}, result.ClassIDs)
}

func submitMultipart(t *testing.T, studentID, quizID, questionID uint, withImage bool) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("student_id", strconv.FormatUint(uint64(studentID), 10)))
	require.NoError(t, writer.WriteField("quiz_id", strconv.FormatUint(uint64(quizID), 10)))
	require.NoError(t, writer.WriteField("question_ids", strconv.FormatUint(uint64(questionID), 10)))
	require.NoError(t, writer.WriteField("question_texts", "Find the zeros of x^2-4."))
	require.NoError(t, writer.WriteField("raw_answers", "x = 2 and x = -2"))
	if withImage {
		part, err := writer.CreateFormFile("image_0", "answer.png")
		require.NoError(t, err)
		_, err = part.Write(pngPixel)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/responses", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSubmitQuizWithEvidenceImage(t *testing.T) {
	app, db := setupApp(t, &testGrader{})
	class, student, quiz, question := seedClassroom(t, db)

	class.QuizIDs = []uint{quiz.ID}
	require.NoError(t, db.Save(&class).Error)

	resp, err := app.Test(submitMultipart(t, student.ID, quiz.ID, question.ID, true))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var submission dto.SubmissionResponse
	decodeData(t, resp, &submission)
	require.Equal(t, "Workings are correct.", submission.Answers[0].Commentary)
	require.Equal(t, "https://files.test/answer.png", submission.Answers[0].ImageURL)

	// The quiz leaves the pending set after submission.
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/students/%d/pending-quizzes", student.ID), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pending []dto.QuizResponse
	decodeData(t, resp, &pending)
	require.Empty(t, pending)

	// And the response document reflects the attempt.
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/students/%d/responses", student.ID), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var document dto.ResponseDocument
	decodeData(t, resp, &document)
	require.Len(t, document.Attempts, 1)
	require.Equal(t, quiz.Title, document.Attempts[0].QuizTitle)
}

func TestNotificationStreamUnavailableWithoutBroker(t *testing.T) {
	app, db := setupApp(t, &testGrader{})
	_, student, _, _ := seedClassroom(t, db)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/students/%d/notifications/stream", student.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSubmitQuizImageOnlyWithoutRawAnswers(t *testing.T) {
	app, db := setupApp(t, &testGrader{})
	_, student, quiz, question := seedClassroom(t, db)

	// No raw_answers field at all: the whole answer is the photograph.
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("student_id", strconv.FormatUint(uint64(student.ID), 10)))
	require.NoError(t, writer.WriteField("quiz_id", strconv.FormatUint(uint64(quiz.ID), 10)))
	require.NoError(t, writer.WriteField("question_ids", strconv.FormatUint(uint64(question.ID), 10)))
	require.NoError(t, writer.WriteField("question_texts", "Find the zeros of x^2-4."))
	part, err := writer.CreateFormFile("image_0", "answer.png")
	require.NoError(t, err)
	_, err = part.Write(pngPixel)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/responses", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var submission dto.SubmissionResponse
	decodeData(t, resp, &submission)
	require.Len(t, submission.Answers, 1)
	require.Empty(t, submission.Answers[0].Answer)
	require.Equal(t, "Workings are correct.", submission.Answers[0].Commentary)
}

func TestSubmitQuizGradingFailureReturnsBadGateway(t *testing.T) {
	grader := &testGrader{err: service.ErrGradingFailed}
	app, db := setupApp(t, grader)
	_, student, quiz, question := seedClassroom(t, db)

	resp, err := app.Test(submitMultipart(t, student.ID, quiz.ID, question.ID, true))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// Nothing was recorded.
	var count int64
	require.NoError(t, db.Model(&models.Response{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSubmitQuizValidationFailures(t *testing.T) {
	app, db := setupApp(t, &testGrader{})
	_, student, quiz, _ := seedClassroom(t, db)

	// Question outside the quiz is a 400.
	resp, err := app.Test(submitMultipart(t, student.ID, quiz.ID, 9999, false))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown student is a 404.
	resp, err = app.Test(submitMultipart(t, 9999, quiz.ID, 1, false))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthRegisterAndLoginEndpoints(t *testing.T) {
	app, _ := setupApp(t, &testGrader{})

	register, err := json.Marshal(dto.RegisterRequest{Username: "mina", Password: "correct-horse", Category: "teacher"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(register))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	login, err := json.Marshal(dto.LoginRequest{Username: "mina", Password: "correct-horse"})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session dto.LoginResponse
	decodeData(t, resp, &session)
	require.NotEmpty(t, session.Token)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"mina","password":"wrong"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
