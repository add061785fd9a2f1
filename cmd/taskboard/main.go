package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"taskboard/internal/server"
	"taskboard/internal/storage/sqlite"
	"taskboard/internal/util"
)

func main() {
	addrFlag := flag.String("addr", util.EnvOrDefault("TASKBOARD_ADDR", ":8080"), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("TASKBOARD_DB_PATH", "data/taskboard.db"), "Path to sqlite database file")
	staticFlag := flag.String("static", util.EnvOrDefault("TASKBOARD_STATIC_DIR", "web/dist"), "Directory with built frontend")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// One server per database file. SQLite serializes writers internally,
	// but a second process pointed at the same file should fail fast.
	lock := flock.New(lockPath(*dbFlag))
	locked, err := lock.TryLock()
	if err != nil {
		logger.Error("unable to acquire database lock", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !locked {
		logger.Error("another server instance is already using this database", slog.String("db", *dbFlag))
		os.Exit(1)
	}
	defer lock.Unlock()

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Seed(context.Background()); err != nil {
		logger.Error("unable to seed sample data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := server.New(store, logger, *staticFlag)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

func lockPath(dbPath string) string {
	dir := filepath.Dir(dbPath)
	if dir == "" {
		dir = "."
	}
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "taskboard.lock")
}
