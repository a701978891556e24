package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"agora/internal/cache"
	"agora/internal/config"
	"agora/internal/db"
	"agora/internal/handlers"
	"agora/internal/logger"
	"agora/internal/repository"
	"agora/internal/router"
	"agora/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	zl, err := logger.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	gdb, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("database init failed", zap.Error(err))
	}

	c, err := newCache(cfg, zl)
	if err != nil {
		zl.Fatal("cache init failed", zap.Error(err))
	}

	store := repository.NewStore(gdb)
	env := &handlers.Env{
		Services: services.New(store),
		Cache:    c,
		CacheTTL: cfg.CacheTTL,
		Log:      zl,
	}
	r := router.New(cfg, store, env)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr), zap.String("db", cfg.DBDriver), zap.String("cache", cfg.CacheDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
	zl.Info("server exited")
}

func newCache(cfg *config.Config, zl *zap.Logger) (cache.Cache, error) {
	if cfg.CacheDriver == config.CacheRedis {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		return cache.NewRedis(client, "agora:", zl), nil
	}
	m, err := cache.NewMemory(1000)
	if err != nil {
		return nil, err
	}
	return m, nil
}
