package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"contentops/internal/analyzer"
	"contentops/internal/config"
	"contentops/internal/credits"
	"contentops/internal/engine"
	"contentops/internal/enrich"
	"contentops/internal/events"
	"contentops/internal/llm"
	"contentops/internal/pipeline"
	"contentops/internal/publisher"
	"contentops/internal/scheduler"
	"contentops/internal/source/searchperf"
	"contentops/internal/storage/postgres"
	"contentops/internal/strategy"
	"contentops/internal/transport/httpapi"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Cycle events are optional: without a broker URL the engine runs
	// standalone and downstream consumers simply see nothing.
	var cycleEvents engine.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := events.NewRabbitMQ(events.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		cycleEvents = rabbitMQ
	}

	artifactStore := postgres.NewArtifactStore(db)
	insightStore := postgres.NewInsightStore(db)
	activityStore := postgres.NewActivityStore(db)
	txManager := postgres.NewTransactionManager(db)
	creditStore := postgres.NewCreditStore(db, txManager)

	telemetry := searchperf.New(cfg.Telemetry, logger)
	llmClient := llm.New(cfg.LLM, logger)

	// Unconfigured enrichers stay nil so the pipeline skips their fan-out
	// branch entirely.
	var video pipeline.VideoFinder
	if cfg.Enrich.VideoSearchURL != "" {
		video = enrich.NewVideoFinder(cfg.Enrich)
	}
	var image pipeline.ImageGenerator
	if cfg.Enrich.ImageGenURL != "" {
		image = enrich.NewImageGenerator(cfg.Enrich)
	}
	contentPipeline := pipeline.New(llmClient, video, image, logger)
	// Same for the CMS: a nil publisher means artifacts stay completed and
	// unpublished.
	var cms engine.CMSPublisher
	if cfg.CMS.BaseURL != "" {
		cms = publisher.NewCMS(cfg.CMS, logger)
	}
	gate := credits.NewGate(creditStore)

	eng := engine.New(engine.Deps{
		Telemetry: telemetry,
		Artifacts: artifactStore,
		Insights:  insightStore,
		Activity:  activityStore,
		Gate:      gate,
		Pipeline:  contentPipeline,
		Titles:    llmClient,
		CMS:       cms,
		Events:    cycleEvents,
		Analyzer:  analyzer.New(cfg.Telemetry.MaxRows),
		Selector:  strategy.New(cfg.Strategy, rand.Float64),
		Logger:    logger,
		Costs:     cfg.Credits,
		Cycle:     cfg.Cycle,
	})

	server := httpapi.NewServer(httpapi.Deps{
		Engine:    eng,
		Artifacts: artifactStore,
		Insights:  insightStore,
		Activity:  activityStore,
		Ledger:    creditStore,
		Logger:    logger,
		Server:    cfg.Server,
		Stream:    cfg.Stream,
		Cycle:     cfg.Cycle,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if cfg.Cycle.ScheduleCycles {
		sched := scheduler.NewScheduler(
			eng,
			cfg.Cycle.ProjectID,
			cfg.Cycle.AccountID,
			cfg.Cycle.Interval,
			cfg.Cycle.Timeout,
			logger,
		)
		go func() {
			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("scheduler error", "error", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown error", "error", err)
		}
	}()

	logger.Info("starting content operations engine",
		"addr", cfg.Server.Addr,
		"schedule_cycles", cfg.Cycle.ScheduleCycles,
		"cycle_interval", cfg.Cycle.Interval,
	)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
