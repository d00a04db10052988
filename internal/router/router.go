package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shiksha-labs/quizroom-api/internal/config"
	"github.com/shiksha-labs/quizroom-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	QuestionHandler   *handler.QuestionHandler
	TeacherHandler    *handler.TeacherHandler
	ClassroomHandler  *handler.ClassroomHandler
	AssignmentHandler *handler.AssignmentHandler
	SubmissionHandler *handler.SubmissionHandler
	StudentHandler    *handler.StudentHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
	}

	if deps.QuestionHandler != nil {
		questions := api.Group("/questions", jwtMiddleware)
		deps.QuestionHandler.Register(questions)
	}

	if deps.TeacherHandler != nil {
		teachers := api.Group("/teachers", jwtMiddleware)
		deps.TeacherHandler.Register(teachers)
	}

	if deps.ClassroomHandler != nil {
		schools := api.Group("/schools", jwtMiddleware)
		deps.ClassroomHandler.RegisterSchools(schools)

		classes := api.Group("/classes", jwtMiddleware)
		deps.ClassroomHandler.RegisterClasses(classes)

		students := api.Group("/students", jwtMiddleware)
		deps.ClassroomHandler.RegisterStudents(students)
	}

	if deps.AssignmentHandler != nil {
		quizzes := api.Group("/quizzes", jwtMiddleware)
		deps.AssignmentHandler.Register(quizzes)
	}

	if deps.SubmissionHandler != nil {
		responses := api.Group("/responses", jwtMiddleware)
		deps.SubmissionHandler.Register(responses)
	}

	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtMiddleware)
		deps.StudentHandler.Register(students)
	}
}
