package main

import (
	"context"
	"fmt"
	"os"

	"revenue-model/internal/api"
	"revenue-model/internal/config"
	"revenue-model/internal/logging"
	"revenue-model/internal/projection"
	"revenue-model/internal/service"
	"revenue-model/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	if err := run(config.LoadServer()); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup happens before main exits.
func run(cfg *config.Server) error {
	log, err := logging.New(cfg.LogLevel, !cfg.Production())
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logging.Sync(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return err
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := store.Open(cfg.Store, cfg.DBPath)
	if err != nil {
		log.Error("open store", zap.String("store", cfg.Store), zap.Error(err))
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	if err := seed(context.Background(), repo, log); err != nil {
		log.Error("seed store", zap.Error(err))
		return err
	}

	svc := service.New(repo, projection.New(), log)

	opts := api.Options{CORSOrigins: cfg.CORSOrigins}
	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			opts.StaticDir = cfg.StaticDir
			log.Info("serving static files", zap.String("dir", cfg.StaticDir))
		} else {
			log.Warn("static directory not found, skipping", zap.String("dir", cfg.StaticDir))
		}
	}
	router := api.NewRouter(svc, log, opts)

	addr := ":" + cfg.Port
	log.Info("starting API server",
		zap.String("addr", addr),
		zap.String("store", cfg.Store),
		zap.String("env", cfg.Env),
	)
	if err := router.Run(addr); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

// seed loads the built-in Base Case into an empty store.
func seed(ctx context.Context, repo store.Repository, log *zap.Logger) error {
	plan := config.Default()
	units, err := plan.ModelUnits()
	if err != nil {
		return err
	}
	seeded, err := store.Seed(ctx, repo, plan.ToScenario(), units)
	if err != nil {
		return err
	}
	if seeded {
		log.Info("seeded default scenario",
			zap.String("scenario", plan.Scenario.Name),
			zap.Int("units", len(units)),
		)
	}
	return nil
}
