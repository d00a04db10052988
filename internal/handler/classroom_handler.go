package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/service"
	"github.com/shiksha-labs/quizroom-api/internal/utils"
)

// ClassroomHandler wires school, class and enrollment routes.
type ClassroomHandler struct {
	service service.ClassroomService
	logger  zerolog.Logger
}

// NewClassroomHandler constructs the handler.
func NewClassroomHandler(service service.ClassroomService, logger zerolog.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		service: service,
		logger:  logger.With().Str("component", "classroom_handler").Logger(),
	}
}

// RegisterSchools attaches school endpoints to the router group.
func (h *ClassroomHandler) RegisterSchools(router fiber.Router) {
	router.Get("", h.listSchools)
	router.Post("", h.createSchool)
}

// RegisterClasses attaches class endpoints to the router group.
func (h *ClassroomHandler) RegisterClasses(router fiber.Router) {
	router.Get("", h.listClasses)
	router.Get("/:id", h.getClass)
	router.Get("/:id/students", h.listStudents)
	router.Post("", h.createClass)
}

// RegisterStudents attaches enrollment endpoints to the router group.
func (h *ClassroomHandler) RegisterStudents(router fiber.Router) {
	router.Post("", h.registerStudent)
	router.Get("/:studentId", h.getStudent)
}

func (h *ClassroomHandler) createSchool(c *fiber.Ctx) error {
	var payload dto.SchoolCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	school, err := h.service.CreateSchool(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "school created", school)
}

func (h *ClassroomHandler) listSchools(c *fiber.Ctx) error {
	schools, err := h.service.ListSchools(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "schools retrieved", schools)
}

func (h *ClassroomHandler) createClass(c *fiber.Ctx) error {
	var payload dto.ClassCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	class, err := h.service.CreateClass(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "class created", class)
}

func (h *ClassroomHandler) getClass(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	class, err := h.service.GetClass(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "class retrieved", class)
}

func (h *ClassroomHandler) listClasses(c *fiber.Ctx) error {
	classes, err := h.service.ListClasses(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "classes retrieved", classes)
}

func (h *ClassroomHandler) listStudents(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	students, err := h.service.ListStudents(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *ClassroomHandler) registerStudent(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.RegisterStudent(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "student enrolled", student)
}

func (h *ClassroomHandler) getStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := h.service.GetStudent(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *ClassroomHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "class not found")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
