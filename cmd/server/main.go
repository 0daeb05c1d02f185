package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fabcost/internal/config"
	"fabcost/internal/infra"
	"fabcost/internal/repository"
	"fabcost/internal/router"
	"fabcost/internal/service"
	"fabcost/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Background workers are wired here (composition root) so the pool has
	// full access to all infrastructure dependencies: recost jobs recompute
	// cached product costs, email jobs deliver cost alerts.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	catalogRepo := repository.NewCatalogRepository(db)
	historyRepo := repository.NewCostHistoryRepository(db)
	bomRepo := repository.NewBOMRepository(db)
	assemblyRepo := repository.NewAssemblyRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	supplierPrices := service.NewSupplierPrices(historyRepo)
	resolver := service.NewCostResolver(historyRepo, catalogRepo, supplierPrices)
	settingsSvc := service.NewSettingsService(settingsRepo, rdb, dispatcher)
	costingSvc := service.NewCostingService(resolver, bomRepo, assemblyRepo, settingsSvc)

	handlers := worker.Handlers{
		Recost: worker.NewRecostWorker(costingSvc, assemblyRepo, dispatcher, cfg.PDFStoragePath, cfg.CostAlertEmail, cfg.CostAlertThresholdPct),
		Email:  worker.NewEmailWorker(mailer, smtpCB),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)
	worker.StartRecostCron(ctx, worker.RecostCronConfig{
		Dispatcher: dispatcher,
		Interval:   time.Duration(cfg.RecostSweepMinutes) * time.Minute,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("fabcost backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
