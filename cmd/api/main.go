package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/events"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/logger"
	"github.com/zizouhuweidi/trivia/internal/metrics"
	"github.com/zizouhuweidi/trivia/internal/ratelimit"
	"github.com/zizouhuweidi/trivia/internal/repository"
	"github.com/zizouhuweidi/trivia/internal/seed"
	"github.com/zizouhuweidi/trivia/internal/websocket"
	"go.uber.org/zap"
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
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize store
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	defer store.Close()
	log.Info("store ready", zap.String("driver", cfg.StoreDriver))

	// The memory store starts empty on every run
	if cfg.StoreDriver == config.DriverMemory {
		fixture, err := seed.Default()
		if err != nil {
			return err
		}
		result, err := seed.Apply(ctx, store.Categories, store.Questions, fixture)
		if err != nil {
			return fmt.Errorf("failed to seed memory store: %w", err)
		}
		log.Info("memory store seeded", zap.Int("questions", result.Questions))
	}

	var pinger handler.Pinger
	if store.Pool != nil {
		pinger = store.Pool
	}

	// Initialize websocket hub
	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	// Events go through Redis when it is configured so every instance's
	// hub sees every change.
	var publisher domain.EventPublisher = events.NewHubPublisher(hub)
	var limiter *ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		redisClient, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()

		publisher = events.NewRedisPublisher(redisClient)
		relay := events.NewRelay(redisClient, hub, log)
		go func() {
			if err := relay.Run(ctx); err != nil {
				log.Error("event relay stopped", zap.Error(err))
			}
		}()

		if cfg.RateLimit > 0 {
			limiter = ratelimit.NewLimiter(redisClient, cfg.RateLimit, cfg.RateLimitWindow)
		}
	} else if cfg.RateLimit > 0 {
		log.Warn("rate limiting needs redis, disabled")
	}

	e := handler.NewRouter(handler.Dependencies{
		Categories: store.Categories,
		Questions:  store.Questions,
		Events:     publisher,
		Logger:     log,
		Hub:        hub,
		Pinger:     pinger,
		Metrics:    metrics.New(),
		Limiter:    limiter,
	})

	// Start server
	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.HTTPAddr))
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
