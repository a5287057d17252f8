package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sir_venger/foodgram/internal/app/resthttp"
	"github.com/sir_venger/foodgram/internal/config"
	"github.com/sir_venger/foodgram/internal/logger"
)

// main поднимает REST API foodgram и корректно завершает его по сигналу.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, srv, err := resthttp.NewServer(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("init server", zap.Error(err))
	}
	defer func() {
		if err := srv.Close(); err != nil {
			lg.Warn("close server", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	// graceful shutdown по SIGTERM/SIGINT
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("rest shutdown", zap.Error(err))
		}
	}()

	lg.Info("rest listening",
		zap.String("addr", cfg.ListenAddr),
		zap.Strings("media_nodes", cfg.Media.Nodes),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("rest serve", zap.Error(err))
		return
	}
	lg.Info("rest stopped")
}
