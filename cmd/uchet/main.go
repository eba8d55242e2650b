package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"uchet/internal/amqp"
	"uchet/internal/catalog"
	"uchet/internal/cli"
	"uchet/internal/exchange"
	apphttp "uchet/internal/http"
	"uchet/internal/log"
	"uchet/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting uchet", log.FieldOperation, log.OpStartup)

	cfg := cli.LoadAndValidateConfig(logger)
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// AMQP is optional: without it entries still commit locally and the
	// worker's sweep picks them up from the database.
	var events *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		events = client
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	rates := exchange.NewClient(cfg.ExchangeAPIURL, cfg.ExchangeAPIKey)
	ledger := services.NewLedger(repo, catalog.NewStore(repo), rates, events, cfg.BaseCurrency, logger)

	srv := apphttp.NewServer(":"+cfg.Port, ledger, cfg.AuthToken, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
		}
		cancel()
	}()

	// The admin console shares the ledger with the HTTP endpoint. Typing a
	// quit word shuts the whole process down.
	go func() {
		cli.AdminLoop(ctx, os.Stdin, os.Stdout, logger, func(ctx context.Context, line string) string {
			res, err := ledger.Execute(ctx, line)
			if err != nil {
				if !apphttp.IsUserError(err) {
					logger.ErrorContext(ctx, "Command failed", log.FieldError, err, log.FieldLine, line)
				}
				return apphttp.FormatError(err)
			}
			return apphttp.FormatResult(res)
		})
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
}
