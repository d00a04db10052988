package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/service"
	"github.com/shiksha-labs/quizroom-api/internal/utils"
)

// maxEvidenceImageBytes caps a single uploaded answer photo.
const maxEvidenceImageBytes = 8 << 20

// SubmissionHandler wires the quiz submission route. Submissions arrive as
// multipart forms because each answer may carry a photographed written answer.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches submission endpoints to the router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

// submit expects parallel form fields: question_ids, question_texts and
// raw_answers indexed together, plus optional image_<index> file parts for
// answers photographed instead of typed.
func (h *SubmissionHandler) submit(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "multipart form required")
	}

	studentID, err := formUint(form, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	quizID, err := formUint(form, "quiz_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid quiz_id")
	}

	questionIDs := form.Value["question_ids"]
	questionTexts := form.Value["question_texts"]
	rawAnswers := form.Value["raw_answers"]

	if len(questionIDs) == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "at least one answer is required")
	}
	// raw_answers may be absent entirely when every answer is photographed.
	if len(rawAnswers) == 0 {
		rawAnswers = make([]string, len(questionIDs))
	}
	if len(questionTexts) != len(questionIDs) || len(rawAnswers) != len(questionIDs) {
		return utils.SendError(c, fiber.StatusBadRequest, "question_ids, question_texts and raw_answers must align")
	}

	answers := make([]dto.SubmittedAnswer, 0, len(questionIDs))
	for i, raw := range questionIDs {
		questionID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, fmt.Sprintf("invalid question id %q", raw))
		}

		answer := dto.SubmittedAnswer{
			QuestionID:   uint(questionID),
			QuestionText: questionTexts[i],
			RawAnswer:    rawAnswers[i],
		}

		if files := form.File[fmt.Sprintf("image_%d", i)]; len(files) > 0 {
			data, mime, err := readEvidenceFile(files[0])
			if err != nil {
				return utils.SendError(c, fiber.StatusBadRequest, err.Error())
			}
			answer.EvidenceImage = data
			answer.EvidenceMime = mime
		}

		answers = append(answers, answer)
	}

	submission, err := h.service.SubmitQuiz(c.Context(), dto.SubmitQuizRequest{
		StudentID: studentID,
		QuizID:    quizID,
		Answers:   answers,
	})
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "quiz submitted", submission)
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrQuizNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "quiz not found")
	case errors.Is(err, service.ErrQuestionNotInQuiz), errors.Is(err, service.ErrInvalidEvidenceImage):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGradingFailed):
		return utils.SendError(c, fiber.StatusBadGateway, "grading failed, submission not recorded")
	case errors.Is(err, service.ErrDuplicate):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func formUint(form *multipart.Form, key string) (uint, error) {
	values := form.Value[key]
	if len(values) == 0 {
		return 0, errors.New("missing value")
	}
	parsed, err := strconv.ParseUint(values[0], 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

func readEvidenceFile(header *multipart.FileHeader) ([]byte, string, error) {
	if header.Size > maxEvidenceImageBytes {
		return nil, "", fmt.Errorf("evidence image %q exceeds size limit", header.Filename)
	}

	file, err := header.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open uploaded file %q", header.Filename)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxEvidenceImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded file %q", header.Filename)
	}
	if len(data) > maxEvidenceImageBytes {
		return nil, "", fmt.Errorf("evidence image %q exceeds size limit", header.Filename)
	}

	return data, header.Header.Get("Content-Type"), nil
}
