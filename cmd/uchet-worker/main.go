package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"uchet/internal/amqp"
	"uchet/internal/cli"
	"uchet/internal/gsheet"
	"uchet/internal/log"
	"uchet/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting uchet-worker", log.FieldOperation, log.OpStartup)

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("Worker requires a configured spreadsheet - set GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("Worker requires AMQP - set AMQP_URL")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	sheet, err := gsheet.NewClient(context.Background(),
		cfg.GoogleSpreadsheetID, cfg.GoogleSheetName,
		cfg.GoogleCredentialsFile, cfg.GoogleCredentialsJSON, logger)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	events, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer events.Close()

	mirror := worker.NewMirror(repo, sheet, cfg.SyncBatchSize, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// Startup sweep catches anything missed while the worker was down.
	if err := mirror.Sweep(ctx); err != nil {
		logger.Error("Startup sweep failed", log.FieldError, err)
	}

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.SweepSchedule, func() {
		if err := mirror.Sweep(ctx); err != nil {
			logger.Error("Scheduled sweep failed", log.FieldError, err)
		}
	}); err != nil {
		logger.Error("Invalid sweep schedule", log.FieldError, err, "schedule", cfg.SweepSchedule)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return events.ConsumeJournalEvents(gctx, func(ev *amqp.JournalEvent) error {
			return mirror.HandleEvent(gctx, ev)
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Event consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully", log.FieldOperation, log.OpShutdown)
}
