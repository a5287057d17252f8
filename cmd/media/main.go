package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sir_venger/foodgram/internal/app/mediahttp"
	"github.com/sir_venger/foodgram/internal/config"
	"github.com/sir_venger/foodgram/internal/logger"
)

const defaultMediaAddr = ":8081"

func main() {
	addr := flag.String("addr", defaultMediaAddr, "listen address")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	dataDir := cfg.Media.Dir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		lg.Fatal("create data dir", zap.String("dir", dataDir), zap.Error(err))
	}

	h := mediahttp.New(mediahttp.Options{
		DataDir:  dataDir,
		GCTTL:    cfg.Media.GCTTL,
		MaxBytes: cfg.Media.MaxImageBytes,
		Log:      lg.Named("media"),
	})

	// фоновый GC брошенных загрузок
	stopGC := mediahttp.StartGC(dataDir, cfg.Media.GCTTL, cfg.Media.GCInterval, lg.Named("gc"))
	defer stopGC()

	server := &http.Server{Addr: *addr, Handler: h}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("media shutdown", zap.Error(err))
		}
	}()

	lg.Info("media listening",
		zap.String("addr", *addr),
		zap.String("data_dir", dataDir),
		zap.Duration("gc_ttl", cfg.Media.GCTTL),
		zap.Duration("gc_every", cfg.Media.GCInterval),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("media serve", zap.Error(err))
	}
}
