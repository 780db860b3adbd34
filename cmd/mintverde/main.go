package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mintverde/config"
	"mintverde/core/appbootstrap"
	"mintverde/core/store"
	"mintverde/core/utils"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	flag.Parse()

	logger := utils.NewLogger()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("config: %v", err)
		os.Exit(1)
	}

	db, err := store.NewDB(cfg, logger)
	if err != nil {
		logger.Errorf("db open: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := store.ApplyMigrations(ctx, db, cfg.DBDriver, logger); err != nil {
		logger.Errorf("migrations: %v", err)
		os.Exit(1)
	}

	runtime, err := appbootstrap.ComposeRuntime(cfg, db, logger)
	if err != nil {
		logger.Errorf("compose: %v", err)
		os.Exit(1)
	}

	for _, w := range runtime.Workers {
		if err := w.Start(); err != nil {
			logger.Errorf("worker start: %v", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           runtime.Server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("HTTP listening on %s", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Printf("shutting down (%s)", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("http: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	for _, w := range runtime.Workers {
		w.Stop()
	}
}
