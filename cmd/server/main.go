package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/weblinks/pkg/app"
	"github.com/wadjakorntonsri/weblinks/pkg/config"
	"github.com/wadjakorntonsri/weblinks/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Development: !cfg.IsProduction(),
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
	})
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	a, err := app.New(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer a.Close()

	server := newServer(":"+cfg.Port, a.Handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.Bool("auth", cfg.AuthEnabled()))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
