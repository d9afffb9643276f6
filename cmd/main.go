package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gcrc/newsletter-agent/internal/ai"
	"github.com/gcrc/newsletter-agent/internal/api"
	"github.com/gcrc/newsletter-agent/internal/cache"
	"github.com/gcrc/newsletter-agent/internal/compose"
	"github.com/gcrc/newsletter-agent/internal/config"
	"github.com/gcrc/newsletter-agent/internal/document"
	"github.com/gcrc/newsletter-agent/internal/image"
	"github.com/gcrc/newsletter-agent/internal/logger"
	"github.com/gcrc/newsletter-agent/internal/middleware"
	"github.com/gcrc/newsletter-agent/internal/research"
	"github.com/gcrc/newsletter-agent/internal/storage"
	"github.com/gcrc/newsletter-agent/internal/wordpress"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	output := "stdout"
	if cfg.LogFile != "" {
		output = cfg.LogFile
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: output,
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting newsletter agent...")

	// Taxonomy cache: Redis when configured, in-process otherwise
	var terms cache.TaxonomyCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.RedisPrefix, cfg.CacheTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis taxonomy cache")
		}
		terms = redisCache
	} else {
		log.Info().Msg("REDIS_URL not set, using in-process taxonomy cache")
		terms = cache.NewMemoryCache()
	}
	defer func() {
		if err := terms.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing taxonomy cache")
		}
	}()

	// Upload directory for request files and downloaded images
	uploads, err := storage.NewUploads(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize upload storage")
	}

	// External collaborators, one handle each, injected into the handlers
	llm := ai.NewClient(cfg.AnthropicAPIKey, cfg.DefaultModel)
	handlers := api.NewHandlers(
		cfg,
		document.NewStructurer(llm),
		research.NewEngine(llm),
		compose.NewComposer(llm, cfg.MaxTokens),
		image.NewGenerator(cfg.OpenAIAPIKey),
		wordpress.NewClient(cfg.WordPressURL, cfg.WordPressUsername, cfg.WordPressAppPassword, terms),
		uploads,
	)

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    int(cfg.MaxUploadSize) + 1<<20,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api.SetupRoutes(app, handlers)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
