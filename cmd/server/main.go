package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"orderdesk/internal/auth"
	"orderdesk/internal/config"
	"orderdesk/internal/dropdown"
	"orderdesk/internal/infrastructure/logger"
	redisclient "orderdesk/internal/infrastructure/redis"
	"orderdesk/internal/order"
	"orderdesk/internal/server"
	"orderdesk/internal/store"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("loading .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := store.Open(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("opening store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer backend.Close()

	var cache *redis.Client
	if cfg.Redis.Enabled() {
		cache, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Warn("redis unavailable, dropdown cache disabled", zap.Error(err))
		} else {
			defer cache.Close()
			zapLogger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	credentials, err := auth.NewFileStore(cfg.Auth.CredentialsFile, zapLogger)
	if err != nil {
		zapLogger.Fatal("loading credentials", zap.Error(err))
	}
	if err := credentials.Watch(ctx); err != nil {
		zapLogger.Warn("credential file will not be reloaded", zap.Error(err))
	}

	router := server.NewRouter(server.Modules{
		Dropdown: dropdown.NewModule(backend.Reference, cfg.Order.Locale, cache, cfg.Redis.TTL, zapLogger),
		Orders:   order.NewModule(backend.Orders, cfg.Order, zapLogger),
		Auth:     auth.NewModule(credentials, cfg.Auth, zapLogger),
	}, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
		return
	}

	zapLogger.Info("server stopped gracefully")
}
