package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/shiksha-labs/quizroom-api/internal/config"
	"github.com/shiksha-labs/quizroom-api/internal/database"
	"github.com/shiksha-labs/quizroom-api/internal/handler"
	"github.com/shiksha-labs/quizroom-api/internal/middleware"
	"github.com/shiksha-labs/quizroom-api/internal/models"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
	"github.com/shiksha-labs/quizroom-api/internal/router"
	"github.com/shiksha-labs/quizroom-api/internal/service"
	cloud "github.com/shiksha-labs/quizroom-api/pkg/cloudinary"
	"github.com/shiksha-labs/quizroom-api/pkg/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.School{},
		&models.Class{},
		&models.Teacher{},
		&models.Student{},
		&models.Question{},
		&models.Quiz{},
		&models.Response{},
		&models.User{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	defer natsConn.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	grader, err := vision.NewOpenAIGrader(vision.OpenAIConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.GradingModel,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("failed to create vision grader: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	questionRepo := repository.NewQuestionRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	classRepo := repository.NewClassRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	userRepo := repository.NewUserRepository(db)

	gradingAdapter := service.NewGradingAdapter(uploader, grader, cfg.GradingTimeout, logger)

	pendingService := service.NewPendingService(studentRepo, classRepo, quizRepo, redisClient, cfg.PendingCacheTTL, logger)
	notificationService := service.NewNotificationService(studentRepo, redisClient, "quizroom", natsConn, logger)
	assignmentService := service.NewAssignmentService(classRepo, quizRepo, teacherRepo, notificationService, pendingService, logger)
	submissionService := service.NewSubmissionService(studentRepo, quizRepo, questionRepo, responseRepo, gradingAdapter, validate, pendingService, logger)
	questionService := service.NewQuestionService(questionRepo, validate, logger)
	teacherService := service.NewTeacherService(teacherRepo, questionRepo, quizRepo, validate, logger)
	classroomService := service.NewClassroomService(classRepo, studentRepo, validate, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	notificationService.Start(ctx)

	authHandler := handler.NewAuthHandler(authService, logger)
	questionHandler := handler.NewQuestionHandler(questionService, logger)
	teacherHandler := handler.NewTeacherHandler(teacherService, assignmentService, logger)
	classroomHandler := handler.NewClassroomHandler(classroomService, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, logger)
	studentHandler := handler.NewStudentHandler(pendingService, submissionService, notificationService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    32 << 20,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       authHandler,
		QuestionHandler:   questionHandler,
		TeacherHandler:    teacherHandler,
		ClassroomHandler:  classroomHandler,
		AssignmentHandler: assignmentHandler,
		SubmissionHandler: submissionHandler,
		StudentHandler:    studentHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
