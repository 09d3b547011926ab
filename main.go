package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/juniorwahl/auth"
	"github.com/danielhkuo/juniorwahl/cliparse"
	"github.com/danielhkuo/juniorwahl/db"
	"github.com/danielhkuo/juniorwahl/handlers"
	"github.com/danielhkuo/juniorwahl/middleware"
	"github.com/danielhkuo/juniorwahl/parties"
	"github.com/danielhkuo/juniorwahl/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	setupLogging()

	// A .env file is optional; real env variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.PrintAdminKey {
		if !cfg.ReloadEnabled() {
			slog.Error("no admin salt configured, set ADMIN_KEY_SALT or -admin-salt")
			os.Exit(1)
		}
		fmt.Println(auth.GenerateAdminKey(auth.ReloadScope, cfg.AdminKeySalt))
		return
	}

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg cliparse.Config) error {
	// Connect to the respondent database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	store := db.NewStore(dbConn)
	defer store.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		return err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	palette, err := parties.Load(cfg.PartiesFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := middleware.NewMetrics()
	datasets := handlers.NewDatasetHandler(store, cfg, metrics)
	if err := datasets.Load(ctx); err != nil {
		return err
	}
	if !cfg.ReloadEnabled() {
		slog.Info("dataset reload disabled, no admin salt configured")
	}

	// Create router
	mux := router.NewRouter(store, cfg, palette, metrics, datasets)

	// Create server
	server := &http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "threshold", cfg.Threshold)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Wait for Ctrl-C, SIGTERM or a failed listener
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("Shutting down")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// setupLogging picks human-readable logs on a terminal and JSON otherwise
func setupLogging() {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))
}
