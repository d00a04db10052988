package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/service"
	"github.com/shiksha-labs/quizroom-api/internal/utils"
)

// QuestionHandler wires question-bank HTTP routes.
type QuestionHandler struct {
	service service.QuestionService
	logger  zerolog.Logger
}

// NewQuestionHandler constructs the handler.
func NewQuestionHandler(service service.QuestionService, logger zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		service: service,
		logger:  logger.With().Str("component", "question_handler").Logger(),
	}
}

// Register attaches question endpoints to the router group.
func (h *QuestionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/sample", h.sample)
	router.Get("/:id", h.get)
	router.Post("", h.create)
}

func (h *QuestionHandler) list(c *fiber.Ctx) error {
	filter := dto.QuestionListRequest{
		Board:      c.Query("board"),
		Grade:      c.Query("grade"),
		Subject:    c.Query("subject"),
		Chapter:    c.Query("chapter"),
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
	}

	questions, err := h.service.List(c.Context(), filter)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "questions retrieved", questions)
}

func (h *QuestionHandler) sample(c *fiber.Ctx) error {
	size, err := parseQueryInt(c, "size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid size")
	}

	questions, err := h.service.Sample(c.Context(), size)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "questions sampled", questions)
}

func (h *QuestionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	question, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "question not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "question retrieved", question)
}

func (h *QuestionHandler) create(c *fiber.Ctx) error {
	var payload dto.QuestionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	question, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrInvalidQuestion):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendCreated(c, "question created", question)
}

func (h *QuestionHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
