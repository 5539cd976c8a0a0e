package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"hajeri/internal/amqp"
	"hajeri/internal/cli"
	"hajeri/internal/register"
	"hajeri/internal/register/google"
	regmem "hajeri/internal/register/memory"
	"hajeri/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting hajeri-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	backend, cleanup := cli.InitBackend(logger, cfg)
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	// External register target. Without a spreadsheet the worker still
	// runs and records reports in memory, which is useful in dev.
	var registerWriter register.Writer
	if cfg.GoogleSpreadsheetID != "" {
		client, err := google.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		registerWriter = client
		logger.Info("Google Sheets register initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		registerWriter = regmem.New()
		logger.Info("Google Sheets disabled - using in-memory register")
	}

	syncWorker := worker.NewSyncWorker(backend, registerWriter)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// On startup, push the current month so a restarted worker catches up
	// on anything it missed.
	if err := syncWorker.SyncCurrentMonth(ctx); err != nil {
		logger.Error("Startup sync failed", "error", err)
		// Don't exit - continue with normal operation
	}

	g, gctx := errgroup.WithContext(ctx)

	// AMQP consumption is optional; the periodic sync alone still keeps
	// the register eventually consistent.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		g.Go(func() error {
			err := amqpClient.ConsumeRegisterSync(gctx, func(msg *amqp.RegisterSyncMessage) error {
				return syncWorker.HandleSyncMessage(gctx, msg)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		logger.Info("AMQP consumption disabled - no AMQP_URL provided")
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := syncWorker.SyncCurrentMonth(gctx); err != nil {
					logger.Error("Periodic sync failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
