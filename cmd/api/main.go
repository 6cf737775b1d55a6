package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	analyticsHttp "github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/adapters/http/fiber"
	analyticsRepoPg "github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/adapters/postgres"
	analyticsUsecase "github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/usecase"
	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/config"
	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/matcher"

	_ "github.com/Synth-Beta/synth-beta-testing-sub007/docs"
)

// @title Network Effects Analytics API
// @version 1.0
// @description Read-only per-market growth, retention and expansion-readiness analytics.
// @BasePath /
func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	configPath := flag.String("config", "", "path to TOML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.Postgres.DSN == "" {
		log.Fatal().Msg("postgres DSN is not set")
	}

	// DB connection
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open postgres")
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping postgres")
	}

	// Target markets and matcher
	cities := matcher.New(cfg.CityTargets())

	// Row source, loader, engine
	rowSource := analyticsRepoPg.NewRowSource(analyticsRepoPg.NewSQLDB(db))
	loader := analyticsUsecase.NewBatchLoader(rowSource, cities, cfg.Cache.TTL(), log)
	engine := analyticsUsecase.NewEngine(loader, cities, log)

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	handler := analyticsHttp.NewAnalyticsHandler(engine, loader)
	app.Get("/cities", handler.GetAllCities)
	app.Get("/cities/:city/metrics", handler.GetCityMetrics)
	app.Get("/cities/:city/retention", handler.GetCityRetention)
	app.Get("/cities/:city/activation", handler.GetCityActivation)
	app.Get("/cities/:city/red-flags", handler.GetCityRedFlags)
	app.Get("/red-flags", handler.GetAllRedFlags)
	app.Get("/phases/:phase", handler.GetPhaseProgress)
	app.Get("/healthz", handler.GetHealth)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			log.Error().Err(err).Msg("fiber stopped")
		}
	}()

	log.Info().Str("addr", cfg.Server.Addr).Int("targets", len(cfg.Targets)).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("fiber shutdown error")
	}

	log.Info().Msg("server exiting")
}
