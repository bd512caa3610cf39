package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/dravail-api/internal/config"
	"github.com/jwalitptl/dravail-api/internal/worker"
	"github.com/jwalitptl/dravail-api/pkg/logger"
	"github.com/jwalitptl/dravail-api/pkg/messaging/redis"
	"github.com/jwalitptl/dravail-api/pkg/metrics"
)

func setupHealthCheck(broker *redis.RedisBroker, registry *prometheus.Registry, zl zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := broker.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: ":8081", Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Error().Err(err).Msg("Health check server failed")
			os.Exit(1)
		}
	}()
	return srv
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	zl := logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 5*time.Second)
	broker, err := redis.NewRedisBroker(connectCtx, redis.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     4,
		MinIdleConns: 1,
	}, zl)
	cancelConnect()
	if err != nil {
		zl.Fatal().Err(err).Msg("Failed to create Redis broker")
	}
	defer broker.Close()

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics("dravail_worker", registry)
	health := setupHealthCheck(broker, registry, zl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		zl.Info().Msg("Shutting down...")
		cancel()
	}()

	monitor := worker.NewDeliveryMonitor(broker, m, zl, worker.DeliveryMonitorConfig{FailureStreak: 5})
	if err := monitor.Start(ctx); err != nil {
		zl.Error().Err(err).Msg("Delivery monitor failed")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = health.Shutdown(shutdownCtx)
}
