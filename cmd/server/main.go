package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadilmartias/skillmatch/internal/config"
	"github.com/fadilmartias/skillmatch/internal/database"
	"github.com/fadilmartias/skillmatch/internal/domain/fiber/handler"
	applogger "github.com/fadilmartias/skillmatch/internal/logger"
	"github.com/fadilmartias/skillmatch/internal/matching"
	"github.com/fadilmartias/skillmatch/internal/middleware"
	"github.com/fadilmartias/skillmatch/internal/repository"
	"github.com/fadilmartias/skillmatch/internal/service"
	"github.com/fadilmartias/skillmatch/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	matchingConfig := config.LoadMatchingConfig()

	zl, err := applogger.New(appConfig.Env == "production", appConfig.Env != "production")
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer zl.Sync()

	db, err := database.Open(config.LoadDBConfig(), appConfig)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}

	scorer, err := service.NewScorer(ctx, matchingConfig, config.LoadGeminiConfig(), zl)
	if err != nil {
		zl.Fatal("similarity backend", zap.Error(err))
	}
	engine := matching.NewEngine(scorer, matching.Config{
		Weights:     &matchingConfig.Weights,
		TopN:        matchingConfig.TopN,
		MaxFeatures: matchingConfig.MaxFeatures,
	})

	uc := usecase.NewMatchingUsecase(
		repository.NewProjectRepository(db),
		repository.NewFreelancerRepository(db),
		repository.NewMatchRepository(db),
		engine,
		zl,
	)

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	handler.NewMatchHandler(uc, matchingConfig.Timeout).RegisterRoutes(app)

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zl.Error("shutdown", zap.Error(err))
		}
	}()

	zl.Info("server running",
		zap.String("port", appConfig.Port),
		zap.String("similarity", matchingConfig.SimilarityBackend),
	)
	if err := app.Listen(appConfig.Port); err != nil {
		zl.Fatal("listen", zap.Error(err))
	}
}
