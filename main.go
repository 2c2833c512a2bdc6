package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"blockvote/cliparse"
	"blockvote/docstore"
	"blockvote/middleware"
	"blockvote/router"
)

func main() {
	var err error

	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Select document store backend
	var store docstore.Store
	switch cfg.StoreBackend {
	case cliparse.BackendGitHub:
		store, err = docstore.NewGitHubStore(cfg.GitHubToken, cfg.GitHubRepo, cfg.GitHubBranch)
		if err != nil {
			slog.Error("github store setup failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Using GitHub document store", "repo", cfg.GitHubRepo, "branch", cfg.GitHubBranch)
	case cliparse.BackendSQL:
		dbConn, err := sql.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Verify connection
		if err := dbConn.Ping(); err != nil {
			slog.Error("database ping failed", "error", err)
			os.Exit(1)
		}

		store, err = docstore.NewSQLStore(dbConn)
		if err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Using SQL document store", "driver", cfg.DatabaseDriver)
	}

	// Create router
	mux := router.NewRouter(store, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
