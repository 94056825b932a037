package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"budgetry/internal/amqp"
	"budgetry/internal/config"
	"budgetry/internal/dashboard"
	"budgetry/internal/localstore"
	applog "budgetry/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentPipeline})
	applog.SetDefault(logger)

	logger.Info("Starting dashboard-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var store localstore.Store
	switch cfg.StoreBackend {
	case "file":
		fileStore, err := localstore.NewFileStore(cfg.StoreDir)
		if err != nil {
			logger.Error("Failed to initialize file store", "error", err, "dir", cfg.StoreDir)
			os.Exit(1)
		}
		store = fileStore
		logger.Info("Initialized file store", "dir", cfg.StoreDir)
	default:
		store = localstore.NewMemory()
		logger.Info("Initialized memory store")
	}

	ledger := localstore.NewLedger(store)

	pipeline := dashboard.NewPipeline(ledger, func(snap dashboard.Snapshot) {
		logger.Info("Dashboard refreshed",
			"balance", snap.Cards.Balance,
			"income", snap.Cards.Income,
			"expense", snap.Cards.Expense,
			"trend_months", len(snap.Trend.Labels))
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier := dashboard.NewNotifier()
	notifier.Subscribe(func(ctx context.Context, ev dashboard.ChangeEvent) {
		if err := pipeline.RunIfChanged(ctx); err != nil {
			logger.Error("Dashboard refresh failed", "error", err, "source", string(ev.Source))
		}
	})

	// Bridge bus messages from the record API into the notifier so a
	// write on another process refreshes this dashboard too.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing with polling only", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
			go func() {
				err := amqpClient.ConsumeDataUpdated(ctx, func(msg *amqp.DataUpdatedMessage) error {
					logger.Info("Remote change received", "user_id", msg.UserID, "source", msg.Source)
					notifier.Publish(ctx, dashboard.ChangeEvent{Source: dashboard.SourceRemoteWrite})
					return nil
				})
				if err != nil && err != context.Canceled {
					logger.Error("Message consumption failed", "error", err)
				}
			}()
		}
	} else {
		logger.Info("AMQP disabled - relying on the periodic poll")
	}

	if err := pipeline.Run(ctx); err != nil {
		logger.Error("Initial dashboard build failed", "error", err)
		os.Exit(1)
	}
	notifier.Publish(ctx, dashboard.ChangeEvent{Source: dashboard.SourceInitialLoad})

	poller := dashboard.NewPoller(notifier, cfg.PollInterval)
	poller.Start(ctx)
	logger.Info("Poller started", "interval", cfg.PollInterval)

	<-ctx.Done()
	logger.Info("Shutdown signal received")
	poller.Stop()
	logger.Info("Worker stopped gracefully")
}
