// Package main provides the webhook server for DialDish.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/dialdish/dialdish/internal/config"
	"github.com/dialdish/dialdish/internal/db"
	"github.com/dialdish/dialdish/internal/llm"
	"github.com/dialdish/dialdish/internal/metrics"
	"github.com/dialdish/dialdish/internal/notify"
	"github.com/dialdish/dialdish/internal/server"
	"github.com/dialdish/dialdish/internal/service"
	"github.com/dialdish/dialdish/internal/store"
)

const version = "0.1.0"

func main() {
	// Parse flags
	seed := flag.Bool("seed", false, "load demo fixtures on startup")
	memorySessions := flag.Bool("memory-sessions", false, "keep call sessions in memory instead of SurrealDB")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("dialdish-server starting",
		"version", version,
		"surrealdb_url", cfg.SurrealDBURL,
		"port", cfg.ServerPort,
		"restaurant", cfg.DefaultRestaurantID,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	dbCfg := db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}

	collector := metrics.NewCollector()

	dbClient, err := db.NewClient(ctx, dbCfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	dbClient.WithMetrics(collector)
	defer func() {
		logger.Info("closing database connection")
		_ = dbClient.Close(context.Background())
	}()

	// Initialize database schema
	if err := dbClient.InitSchema(ctx); err != nil {
		logger.Error("failed to initialize database schema", "error", err)
		os.Exit(1)
	}

	if *seed {
		if err := dbClient.SeedDemoData(ctx); err != nil {
			logger.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	// Optional LLM fallback for unanswered questions
	var synthesizer service.AnswerSynthesizer
	if cfg.LLMProvider != config.ProviderNone {
		model, err := llm.NewModel(cfg)
		if err != nil {
			logger.Error("failed to create LLM model", "error", err)
			os.Exit(1)
		}
		synthesizer = model
		logger.Info("LLM fallback enabled", "provider", cfg.LLMProvider, "model", model.Name())
	}

	var sessions store.SessionStore = db.NewSessions(dbClient)
	if *memorySessions {
		sessions = store.NewMemory()
		logger.Info("using in-memory session store")
	}

	voice := service.NewVoice(service.Deps{
		Sessions:     sessions,
		Catalog:      db.NewCatalog(dbClient),
		Orders:       db.NewOrders(dbClient),
		Knowledge:    db.NewKnowledge(dbClient),
		Synthesizer:  synthesizer,
		Notifier:     notify.NewLog(logger),
		Metrics:      collector,
		Logger:       logger,
		DedupeWindow: cfg.TurnDedupeWindow,
	})

	srv := server.New(":"+cfg.ServerPort, cfg.DefaultRestaurantID, voice, collector, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("dialdish-server stopped")
}
