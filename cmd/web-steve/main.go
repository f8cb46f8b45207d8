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

	"github.com/Kaiwei0323/web-steve/internal/config"
	httpapi "github.com/Kaiwei0323/web-steve/internal/http"
	"github.com/Kaiwei0323/web-steve/internal/logger"
	"github.com/Kaiwei0323/web-steve/internal/repository"
	"github.com/Kaiwei0323/web-steve/internal/seed"
	"github.com/Kaiwei0323/web-steve/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "web-steve")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	store := openStore(ctx, cfg, log)
	defer store.Close(context.Background())

	devices := service.NewDeviceService(store, log)
	mock := service.NewMockDeviceService()

	router := httpapi.NewRouter(log)
	router.RegisterDeviceRoutes(httpapi.NewDeviceHandler(devices, mock, log))

	if info, err := os.Stat(cfg.FrontendDir); err == nil && info.IsDir() {
		router.RegisterFrontendRoutes(httpapi.NewStaticHandler(cfg.FrontendDir, log))
		log.Info("Serving frontend", zap.String("dir", cfg.FrontendDir))
	} else {
		log.Info("Frontend directory not found, static serving disabled", zap.String("dir", cfg.FrontendDir))
	}

	handler := httpapi.LoggingMiddleware(log, httpapi.CORSMiddleware(cfg.CORS.AllowedOrigins, router))
	srv := service.NewServer(fmt.Sprintf(":%d", cfg.HTTP.Port), handler, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}

// openStore connects the configured backend. When it is unreachable the
// server falls back to a seeded in-memory store, so local development
// never starts against empty pages.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) repository.DocumentStore {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := repository.Open(connectCtx, cfg)
	if err == nil {
		if cfg.Store.Driver == "memory" {
			if _, err := seed.Apply(ctx, store, seed.Options{}, log); err != nil {
				log.Error("Seeding memory store failed", zap.Error(err))
			}
		}
		log.Info("Document store ready", zap.String("driver", cfg.Store.Driver))
		return store
	}

	log.Warn("Store unavailable, falling back to seeded memory store",
		zap.String("driver", cfg.Store.Driver),
		zap.Error(err),
	)
	mem := repository.NewMemoryStore()
	if _, err := seed.Apply(ctx, mem, seed.Options{}, log); err != nil {
		log.Error("Seeding memory store failed", zap.Error(err))
	}
	return mem
}
