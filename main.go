package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/feltpoker/holdem/api"
	"github.com/feltpoker/holdem/config"
	"github.com/feltpoker/holdem/evaluation"
	"github.com/feltpoker/holdem/server"
	"github.com/feltpoker/holdem/server/connection"
	"github.com/feltpoker/holdem/store"
)

func main() {
	cfg := config.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "holdem",
	})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	ctx := context.Background()

	// Hand history is optional. Without a database the server still runs
	// full hands; only persistence and the history feed are disabled.
	var handStore api.HandStore
	if cfg.DatabaseURL != "" {
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("database unavailable, continuing without hand history", "err", err)
		} else {
			defer db.Close()
			if cfg.AutoMigrate {
				if err := db.Migrate(ctx); err != nil {
					logger.Fatal("schema migration failed", "err", err)
				}
			}
			handStore = db
			logger.Info("hand history enabled")
		}
	} else {
		logger.Warn("DATABASE_URL not set, hand history disabled")
	}

	evaluator := evaluation.NewClient(cfg.EvaluatorURL, logger)
	connMgr := connection.NewManager()
	table := server.NewTable(evaluator, connMgr, logger, cfg.Debug)

	ws := server.NewServer(table, connMgr, logger)
	ws.Start()

	router := api.NewRouter(handStore, logger)
	router.Get("/ws", ws.HandleWebSocket)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", "err", err)
	}
}
