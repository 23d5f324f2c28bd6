package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"assistente-financeiro/ai"
	"assistente-financeiro/config"
	httpLayer "assistente-financeiro/http"
	"assistente-financeiro/logger"
	"assistente-financeiro/metrics"
	"assistente-financeiro/repository"
	"assistente-financeiro/service"
	"assistente-financeiro/whatsapp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("assistant exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, logCloser, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	cache, closeCache := newCache(ctx, cfg.Cache, log)
	defer closeCache()

	history, closeHistory, err := newHistory(cfg.History, log)
	if err != nil {
		return err
	}
	defer closeHistory()

	var completion ai.TextCompletion
	if cfg.AI.Enabled {
		client, closeAI, err := ai.New(ctx, cfg.AI)
		if err != nil {
			return fmt.Errorf("failed to create AI client: %w", err)
		}
		defer closeAI()
		completion = client
		log.Info("AI enabled", "provider", cfg.AI.Provider)
	} else {
		log.Warn("AI disabled, only calculators will answer")
	}

	calculations := service.NewCalculationService(cache, history, m, log, cfg.Cache.ResultTTL)
	assistant := service.NewAssistantService(completion, cache, m, log, cfg.AI.Timeout, cfg.AI.AnswerTTL)

	g, ctx := errgroup.WithContext(ctx)

	var status httpLayer.StatusReporter
	if cfg.WhatsAppEnabled() {
		channel := whatsapp.New(cfg.WhatsApp, log)
		chat := service.NewChatService(assistant, m, log)
		service.NewBot(channel, chat, m, log, cfg.AI.Timeout+10*time.Second)
		status = channel

		g.Go(func() error {
			return channel.Start(ctx)
		})
	}

	if cfg.RESTEnabled() {
		var limiter *httpLayer.RateLimiter
		if cfg.RateLimit.Enabled {
			limiter = httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
			defer limiter.Stop()
		}

		handler := httpLayer.NewHandler(calculations, assistant, status, log)
		server := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      httpLayer.NewRouter(handler, limiter, m, log),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}

		g.Go(func() error {
			log.Info("🚀 API listening", "addr", server.Addr, "mode", cfg.Mode)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			log.Info("shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	log.Info("assistant exited")
	return err
}

func newCache(ctx context.Context, cfg config.CacheConfig, log *slog.Logger) (repository.CacheRepository, func()) {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, falling back to memory cache", "addr", cfg.RedisAddr, "error", err)
		_ = redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	log.Info("using redis cache", "addr", cfg.RedisAddr)
	return redisCache, func() { _ = redisCache.Close() }
}

func newHistory(cfg config.HistoryConfig, log *slog.Logger) (repository.CalculationRepository, func(), error) {
	if cfg.SQLitePath == "" {
		return repository.NewCalculationRepositoryMemory(cfg.Capacity), func() {}, nil
	}

	repo, err := repository.NewCalculationRepositorySQLite(cfg.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	log.Info("using sqlite history", "path", cfg.SQLitePath)
	return repo, func() { _ = repo.Close() }, nil
}
