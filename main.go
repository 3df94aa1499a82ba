package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/rs/zerolog/log"

	"vetmissions_backend/internals/cache"
	"vetmissions_backend/internals/configs"
	database "vetmissions_backend/internals/databases"
	"vetmissions_backend/internals/features/contact/service"
	helper "vetmissions_backend/internals/helpers"
	middlewares "vetmissions_backend/internals/middlewares"
	routes "vetmissions_backend/internals/route"
	"vetmissions_backend/internals/seeds"
)

func main() {
	cfg := configs.LoadEnv()
	configs.InitLogger(cfg)

	app := fiber.New(fiber.Config{
		// 🚀 fast JSON
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ base middleware + performance
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool + schema
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	database.TunePool(db)
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if cfg.SeedOnStart {
		if err := seeds.RunAllSeeds(db, cfg.SeedDir); err != nil {
			log.Error().Err(err).Msg("seed content")
		}
	}

	lc, err := cache.NewListCache(cfg.ListCacheMax, cfg.ListCacheTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("list cache")
	}

	// ✅ Routes
	routes.SetupRoutes(app, db, lc, service.NewSMTPMailer(cfg), cfg.Environment)

	// 🔒 Keep-Alive & server timeouts
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Info().Str("port", cfg.Port).Msg("✅ listening")
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(db)
	log.Info().Msg("shutdown complete")
}
