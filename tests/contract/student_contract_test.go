package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/handler"
)

type stubPendingService struct {
	quizzes []dto.QuizResponse
}

func (s stubPendingService) PendingQuizzes(context.Context, uint) ([]dto.QuizResponse, error) {
	return s.quizzes, nil
}

func (s stubPendingService) InvalidateClass(context.Context, uint)   {}
func (s stubPendingService) InvalidateStudent(context.Context, uint) {}

type stubSubmissionService struct {
	document dto.ResponseDocument
}

func (s stubSubmissionService) SubmitQuiz(context.Context, dto.SubmitQuizRequest) (dto.SubmissionResponse, error) {
	return dto.SubmissionResponse{}, nil
}

func (s stubSubmissionService) GetResponses(context.Context, uint) (dto.ResponseDocument, error) {
	return s.document, nil
}

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func newStudentApp(pending stubPendingService, submissions stubSubmissionService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/students", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("user_category", "student")
		return c.Next()
	})
	h := handler.NewStudentHandler(pending, submissions, nil, zerolog.Nop())
	h.Register(group)
	return app
}

func TestPendingQuizzesContract(t *testing.T) {
	schema := compileSchema(t, "pending_quizzes.schema.json")

	pending := stubPendingService{
		quizzes: []dto.QuizResponse{
			{ID: 4, Title: "Polynomials", QuestionIDs: []uint{1, 2, 3}, CreatedBy: 9},
			{ID: 7, Title: "Acids, Bases, and Salts", QuestionIDs: []uint{5}, CreatedBy: 9},
		},
	}

	app := newStudentApp(pending, stubSubmissionService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/1/pending-quizzes", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}

func TestResponseDocumentContract(t *testing.T) {
	schema := compileSchema(t, "response_document.schema.json")

	now := time.Now().UTC()
	submissions := stubSubmissionService{
		document: dto.ResponseDocument{
			StudentID: 1,
			Attempts: []dto.AttemptView{
				{
					QuizID:    4,
					QuizTitle: "Polynomials",
					Answers: []dto.AnswerRecordView{
						{
							QuestionID: 1,
							Question:   "Find the zeros of x^2-4.",
							Answer:     "x = 2 and x = -2",
							Commentary: "Both zeros identified.",
							ImageURL:   "https://cdn.example.com/answers/1.png",
						},
						{
							QuestionID: 2,
							Question:   "State the degree of x^3+1.",
							Answer:     "3",
							Commentary: "3",
						},
					},
					SubmittedAt: now,
				},
			},
		},
	}

	app := newStudentApp(stubPendingService{}, submissions)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/1/responses", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
