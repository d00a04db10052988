package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/service"
	"github.com/shiksha-labs/quizroom-api/internal/utils"
)

// TeacherHandler wires teacher profile and quiz-authoring routes.
type TeacherHandler struct {
	teachers    service.TeacherService
	assignments service.AssignmentService
	logger      zerolog.Logger
}

// NewTeacherHandler constructs the handler.
func NewTeacherHandler(teachers service.TeacherService, assignments service.AssignmentService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		teachers:    teachers,
		assignments: assignments,
		logger:      logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register attaches teacher endpoints to the router group.
func (h *TeacherHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/by-username/:username", h.getByUsername)
	router.Post("/:teacherId/classes", h.assignClasses)
	router.Post("/:teacherId/bookmarks/:questionId", h.bookmark)
	router.Post("/:teacherId/quizzes", h.createQuiz)
	router.Get("/:teacherId/quizzes", h.listQuizzes)
}

func (h *TeacherHandler) create(c *fiber.Ctx) error {
	var payload dto.TeacherCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	teacher, err := h.teachers.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "teacher created", teacher)
}

func (h *TeacherHandler) getByUsername(c *fiber.Ctx) error {
	teacher, err := h.teachers.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teacher retrieved", teacher)
}

// assignClasses links a teacher to a batch of classes. Classes that do not
// resolve are reported per entry without failing the batch.
func (h *TeacherHandler) assignClasses(c *fiber.Ctx) error {
	teacherID, err := parseUintParam(c, "teacherId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload struct {
		ClassIDs []uint `json:"class_ids"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(payload.ClassIDs) == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "class_ids must not be empty")
	}

	result, err := h.assignments.AssignTeacherToClasses(c.Context(), teacherID, payload.ClassIDs)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teacher assigned to classes", result)
}

func (h *TeacherHandler) bookmark(c *fiber.Ctx) error {
	teacherID, err := parseUintParam(c, "teacherId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	questionID, err := parseUintParam(c, "questionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	teacher, err := h.teachers.BookmarkQuestion(c.Context(), teacherID, questionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "question bookmarked", teacher)
}

func (h *TeacherHandler) createQuiz(c *fiber.Ctx) error {
	teacherID, err := parseUintParam(c, "teacherId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.QuizCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	quiz, err := h.teachers.CreateQuiz(c.Context(), teacherID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "quiz created", quiz)
}

func (h *TeacherHandler) listQuizzes(c *fiber.Ctx) error {
	teacherID, err := parseUintParam(c, "teacherId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	quizzes, err := h.teachers.ListQuizzes(c.Context(), teacherID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "quizzes retrieved", quizzes)
}

func (h *TeacherHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
	case errors.Is(err, service.ErrQuestionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "question not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
