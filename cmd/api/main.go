package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/config"
	"resume-reviewer/internal/handlers"
	"resume-reviewer/internal/logger"
	"resume-reviewer/internal/repositories"
	"resume-reviewer/internal/services"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Server.Env, cfg.Server.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}
	zapLogger.Info("database connected")

	analysisRepo := repositories.NewAnalysisRepository(db)

	// Canonical dictionaries load once and are read-only afterwards.
	dict := services.LoadDictionaries()
	normalizer := services.NewNormalizer(dict)
	extractor := services.NewDocumentExtractor()
	profileExtractor := services.NewProfileExtractor(dict, normalizer)
	requirementExtractor := services.NewRequirementExtractor(dict, normalizer)
	scorer := services.NewScorer(cfg.Scoring)
	assembler := services.NewResultAssembler()

	// The text-generation service is optional: without an API key the
	// feedback generator sticks to templated suggestions.
	var gemini services.GeminiService
	if cfg.Gemini.APIKey != "" {
		gemini, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			zapLogger.Fatal("failed to initialize gemini", zap.Error(err))
		}
		zapLogger.Info("gemini initialized", zap.String("model", cfg.Gemini.Model))
	} else {
		zapLogger.Info("gemini disabled, feedback stays templated")
	}

	var guides services.GuideStore
	if cfg.Qdrant.URL != "" && gemini != nil {
		guides, err = services.NewGuideStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			zapLogger.Fatal("failed to initialize qdrant", zap.Error(err))
		}
		if err := guides.InitCollection(context.Background()); err != nil {
			zapLogger.Fatal("failed to initialize qdrant collection", zap.Error(err))
		}
		zapLogger.Info("skill-guide store initialized", zap.String("collection", cfg.Qdrant.Collection))
	}

	pool := services.NewEnrichmentPool(cfg.Feedback.Concurrency, zapLogger)
	pool.Start()

	feedback := services.NewFeedbackGenerator(gemini, guides, pool, cfg.Feedback, zapLogger)

	var cache services.ResultCache
	if cfg.Redis.Addr != "" {
		cache = services.NewRedisResultCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.TTL, zapLogger)
	}

	analyzer := services.NewAnalyzer(
		extractor,
		normalizer,
		profileExtractor,
		requirementExtractor,
		scorer,
		feedback,
		assembler,
		cache,
		zapLogger,
	)
	zapLogger.Info("analysis pipeline initialized")

	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, analysisRepo, cfg.Server.MaxFileSize, zapLogger)
	historyHandler := handlers.NewHistoryHandler(analysisRepo, zapLogger)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Reviewer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Server.MaxFileSize),
		ErrorHandler: newErrorHandler(zapLogger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + handlers.SessionHeader,
	}))

	api := app.Group("/api/v1")

	// Liveness is independent of the pipeline.
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/history", historyHandler.HandleList)
	api.Delete("/history/:id", historyHandler.HandleDelete)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Reviewer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/history",
				"DELETE /api/v1/history/:id",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zapLogger.Info("shutting down server")
		pool.Stop()
		if err := app.Shutdown(); err != nil {
			zapLogger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}

// newErrorHandler maps error kinds to HTTP statuses. Validation
// failures surface their detail; anything internal is logged and
// replaced by a generic message so no stack detail crosses the
// boundary.
func newErrorHandler(zapLogger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{
				"error": e.Message,
				"code":  e.Code,
			})
		}

		kind := apperrors.KindOf(err)
		code := apperrors.StatusCode(kind)

		message := err.Error()
		if !apperrors.UserFacing(kind) {
			zapLogger.Error("internal error", zap.String("kind", string(kind)), zap.Error(err))
			message = "internal error while analyzing resume"
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
			"kind":  string(kind),
			"code":  code,
		})
	}
}
