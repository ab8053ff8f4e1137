// Command loansweeper runs the loan engine as a process: it flags overdue loans and sends
// due-date reminders on cron schedules and serves Prometheus metrics and a loan report over HTTP.
//
// Configuration is read from the environment and an optional .env file, see shell/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/library-loan-engine-go/catalog"
	"github.com/AntonStoeckl/library-loan-engine-go/engine"
	"github.com/AntonStoeckl/library-loan-engine-go/notifier"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
	"github.com/AntonStoeckl/library-loan-engine-go/shell/config"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg); err != nil {
		stop()
		log.Fatalf("Loan sweeper failed: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logger := newLogger(cfg, os.Stderr)
	obs := newObservability(cfg, logger)

	store, closeStore, err := openStore(ctx, cfg, logger, obs.metrics)
	if err != nil {
		return err
	}
	defer closeStore()

	books, users, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return err
	}

	if err = reconcileAvailability(ctx, store, books); err != nil {
		return err
	}

	inbox := notifier.NewInbox()
	publisher := notifier.NewNotifier(notifier.WithLogger(logger))
	if err = publisher.Subscribe(inbox); err != nil {
		return err
	}

	if err = publisher.Subscribe(notifier.NewObserverFunc("log", logNotification(logger))); err != nil {
		return err
	}

	eng, err := engine.NewEngine(store, books, users, publisher, obs.engineOptions(cfg)...)
	if err != nil {
		return err
	}

	scheduler, err := newScheduler(ctx, cfg, eng, logger)
	if err != nil {
		return err
	}

	server := newServer(cfg.MetricsAddr, obs.metrics.Handler(), eng, inbox)
	serverErr := make(chan error, 1)

	go func() {
		if listenErr := server.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
			serverErr <- listenErr
		}
	}()

	scheduler.Start()
	logger.Info("loan sweeper started",
		"store", cfg.Store,
		"overdue_schedule", cfg.OverdueSchedule,
		"due_date_schedule", cfg.DueDateSchedule,
		"metrics_addr", cfg.MetricsAddr,
		"books", books.Len(),
		"users", users.Len(),
	)

	if cfg.RunOnStart {
		runSweeps(ctx, eng, logger)
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err = <-serverErr:
		logger.Error("http server failed", shell.LogAttrError, err.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Warn("running sweeps did not finish before the shutdown timeout")
	}

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		err = errors.Join(err, fmt.Errorf("http shutdown: %w", shutdownErr))
	}

	logger.Info("loan sweeper stopped")

	return err
}

func logNotification(logger *slog.Logger) func(context.Context, notifier.Notification) error {
	return func(ctx context.Context, n notifier.Notification) error {
		logger.InfoContext(ctx, "notification published",
			shell.LogAttrUserID, n.UserID.String(),
			shell.LogAttrKind, string(n.Kind),
			"priority", string(n.Priority),
			"message", n.Message,
		)

		return nil
	}
}
