package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/api"
	"github.com/bbaxromov14/eduhelper/internal/app"
	"github.com/bbaxromov14/eduhelper/internal/config"
	"github.com/bbaxromov14/eduhelper/internal/jobs"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("EduHelper Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("realtime_backend=%s", cfg.RealtimeBackend)
	log.Debug("sync_worker_count=%d", cfg.SyncWorkerCount)
	log.Debug("sync_queue_size=%d", cfg.SyncQueueSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(logger.NewContext(ctx, log), cfg)
	if err != nil {
		log.Error("failed to start: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database and realtime bus")
		if err := application.Close(); err != nil {
			log.Warn("close: %v", err)
		}
	}()

	syncPool := worker.NewPool(cfg.SyncWorkerCount, cfg.SyncQueueSize)
	queue := jobs.NewWorkerQueue(syncPool, application.Achievements)
	syncPool.Start(ctx)

	// Every progress change triggers an asynchronous achievement sync.
	if err := application.Bus.Subscribe(ctx, jobs.SyncOnChange(queue)); err != nil {
		log.Error("failed to subscribe to progress events: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		Courses:      application.Courses,
		Lessons:      application.Lessons,
		Progress:     application.Progress,
		Achievements: application.Achievements,
		Tests:        application.Tests,
		Leaderboard:  application.Leaderboard,
		Ready:        application.DB.PingContext,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain queued syncs before the database closes.
	log.Debug("stopping sync pool")
	syncPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("EduHelper Server Stopped")
	log.Info("===========================================")
}
