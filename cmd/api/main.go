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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ludika/ludika-api/internal/config"
	"github.com/ludika/ludika-api/internal/database"
	"github.com/ludika/ludika-api/internal/handler"
	"github.com/ludika/ludika-api/internal/middleware"
	"github.com/ludika/ludika-api/internal/models"
	"github.com/ludika/ludika-api/internal/repository"
	"github.com/ludika/ludika-api/internal/router"
	"github.com/ludika/ludika-api/internal/service"
	"github.com/ludika/ludika-api/pkg/ai"
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

	if err := db.AutoMigrate(&models.Student{}, &models.Course{}, &models.CourseGame{}, &models.GameLevel{}, &models.GameStatistic{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	levelRepo := repository.NewGameLevelRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	progressService := service.NewProgressService(studentRepo, courseRepo, levelRepo, statsRepo, redisClient, cfg.ProgressCacheTTL, logger)
	statisticsService := service.NewStatisticsService(statsRepo, logger)
	seedService := service.NewSeedService(levelRepo, courseRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	deps := router.Dependencies{
		ProgressHandler: handler.NewProgressHandler(progressService, logger),
		StudentHandler:  handler.NewStudentHandler(statisticsService, logger),
		SeedHandler:     handler.NewSeedHandler(seedService, validate, logger),
		JWTMiddleware:   middleware.JWTProtected(cfg.JWTSecret),
	}

	generator, err := buildGenerator(cfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("text generator unavailable, report endpoint disabled")
	} else {
		reportService := service.NewReportService(studentRepo, statsRepo, generator, natsConn, cfg.ReportNATSSubject, logger)
		deps.ReportHandler = handler.NewReportHandler(reportService, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildGenerator(cfg config.Config, logger zerolog.Logger) (ai.TextGenerator, error) {
	switch cfg.AIProvider {
	case "anthropic":
		return ai.NewAnthropicGenerator(ai.AnthropicConfig{APIKey: cfg.AnthropicAPIKey})
	default:
		return ai.NewOpenAIGenerator(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
