package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/service"
	"github.com/shiksha-labs/quizroom-api/internal/utils"
)

// StudentHandler wires the student-facing read routes: pending quizzes,
// response history and the assignment notification stream.
type StudentHandler struct {
	pending       service.PendingService
	submissions   service.SubmissionService
	notifications service.NotificationService
	logger        zerolog.Logger
	keepAlive     time.Duration
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(pending service.PendingService, submissions service.SubmissionService, notifications service.NotificationService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		pending:       pending,
		submissions:   submissions,
		notifications: notifications,
		logger:        logger.With().Str("component", "student_handler").Logger(),
		keepAlive:     30 * time.Second,
	}
}

// Register attaches student endpoints to the router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/:studentId/pending-quizzes", h.pendingQuizzes)
	router.Get("/:studentId/responses", h.responses)
	router.Get("/:studentId/notifications/stream", h.stream)
}

func (h *StudentHandler) pendingQuizzes(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	quizzes, err := h.pending.PendingQuizzes(c.Context(), studentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "pending quizzes retrieved", quizzes)
}

func (h *StudentHandler) responses(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := h.submissions.GetResponses(c.Context(), studentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "responses retrieved", document)
}

func (h *StudentHandler) stream(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if h.notifications == nil {
		return utils.SendError(c, fiber.StatusServiceUnavailable, "notification stream unavailable")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	stream, cleanup := h.notifications.Subscribe(studentID)

	keepAliveInterval := h.keepAlive
	if keepAliveInterval <= 0 {
		keepAliveInterval = 30 * time.Second
	}

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			cleanup()
			cancel()
		}()

		ticker := time.NewTicker(keepAliveInterval / 2)
		defer ticker.Stop()

		for {
			select {
			case notification, ok := <-stream:
				if !ok {
					return
				}
				if err := writeAssignmentEvent(w, notification); err != nil {
					h.logger.Debug().Err(err).Msg("failed to write assignment event")
					return
				}
			case <-ticker.C:
				if err := writeKeepAlive(w); err != nil {
					h.logger.Debug().Err(err).Msg("failed to write stream keepalive")
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})

	return nil
}

func (h *StudentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrClassNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "class not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func writeAssignmentEvent(w *bufio.Writer, notification dto.AssignmentNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: assignment\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

func writeKeepAlive(w *bufio.Writer) error {
	if _, err := fmt.Fprintf(w, ": keep-alive %s\n\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return w.Flush()
}
