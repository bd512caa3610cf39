package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/dravail-api/internal/config"
	"github.com/jwalitptl/dravail-api/internal/email"
	availabilityHandler "github.com/jwalitptl/dravail-api/internal/handler/availability"
	catalogHandler "github.com/jwalitptl/dravail-api/internal/handler/catalog"
	doctorHandler "github.com/jwalitptl/dravail-api/internal/handler/doctor"
	"github.com/jwalitptl/dravail-api/internal/handler/health"
	hospitalHandler "github.com/jwalitptl/dravail-api/internal/handler/hospital"
	messageHandler "github.com/jwalitptl/dravail-api/internal/handler/message"
	promHandler "github.com/jwalitptl/dravail-api/internal/handler/prometheus"
	"github.com/jwalitptl/dravail-api/internal/middleware"
	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/repository/postgres"
	"github.com/jwalitptl/dravail-api/internal/router"
	doctorService "github.com/jwalitptl/dravail-api/internal/service/doctor"
	hospitalService "github.com/jwalitptl/dravail-api/internal/service/hospital"
	"github.com/jwalitptl/dravail-api/internal/service/listing"
	messageService "github.com/jwalitptl/dravail-api/internal/service/message"
	"github.com/jwalitptl/dravail-api/internal/service/notification"
	"github.com/jwalitptl/dravail-api/internal/service/rbac"
	"github.com/jwalitptl/dravail-api/internal/worker"
	"github.com/jwalitptl/dravail-api/pkg/auth"
	"github.com/jwalitptl/dravail-api/pkg/logger"
	"github.com/jwalitptl/dravail-api/pkg/messaging"
	"github.com/jwalitptl/dravail-api/pkg/messaging/redis"
	"github.com/jwalitptl/dravail-api/pkg/metrics"
	"github.com/jwalitptl/dravail-api/pkg/validator"
)

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zl := logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics("dravail", registry)

	checks := map[string]health.Pinger{"database": db}
	broker, err := newBroker(cfg, zl)
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	switch b := broker.(type) {
	case *redis.RedisBroker:
		checks["redis"] = health.PingerFunc(b.Ping)
	case *messaging.MemoryBroker:
		// Without Redis no separate worker can see the events.
		monitor := worker.NewDeliveryMonitor(b, m, zl, worker.DeliveryMonitorConfig{})
		go func() {
			if err := monitor.Start(workerCtx); err != nil {
				zl.Error().Err(err).Msg("delivery monitor stopped")
			}
		}()
	}

	// Repositories
	doctorRepo := postgres.NewDoctorRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	// Services
	v := validator.New()
	if err := middleware.RegisterBindingValidators(); err != nil {
		zl.Fatal().Err(err).Msg("failed to register binding validators")
	}

	notifier := notification.NewService(messageRepo, newMailer(cfg, zl),
		messaging.NewChannelPublisher(broker, notification.Channel), m, zl)
	policy := rbac.NewService()
	listingCfg := listing.Config{PageSize: cfg.Listing.PageSize, NotifyTimeout: cfg.Listing.NotifyTimeout()}

	doctorWorkflow := listing.NewService(model.KindDoctor, listing.NewDoctorStore(doctorRepo), policy, notifier, m, zl, listingCfg)
	hospitalWorkflow := listing.NewService(model.KindHospital, listing.NewHospitalStore(hospitalRepo), policy, notifier, m, zl, listingCfg)

	fingerprintKey := blake2b.Sum256([]byte(cfg.JWT.Secret))
	doctorSvc := doctorService.NewService(doctorRepo, doctorWorkflow, v, m)
	hospitalSvc := hospitalService.NewService(hospitalRepo, hospitalWorkflow, v)
	messageSvc := messageService.NewService(messageRepo, v, fingerprintKey[:], zl)

	// HTTP
	r := router.NewRouter(
		middleware.NewAuthMiddleware(auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer)),
		router.Handlers{
			Doctor:       doctorHandler.NewHandler(doctorSvc),
			Hospital:     hospitalHandler.NewHandler(hospitalSvc),
			Message:      messageHandler.NewHandler(messageSvc),
			Catalog:      catalogHandler.NewHandler(),
			Availability: availabilityHandler.NewHandler(),
			Health:       health.NewHandler(checks),
			Metrics:      promHandler.New(registry),
		},
		m,
		router.RouterConfig{
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			CORSConfig:     middleware.DefaultCORSConfig(cfg.Server.AllowedOrigins...),
			RequestTimeout: cfg.Server.Timeout(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error().Err(err).Msg("server forced to shutdown")
	}

	zl.Info().Msg("server exited properly")
}

// newBroker connects to Redis when enabled and falls back to the in-process
// broker otherwise.
func newBroker(cfg *config.Config, zl zerolog.Logger) (messaging.Broker, error) {
	if !cfg.Redis.Enabled {
		zl.Warn().Msg("redis disabled, notification events stay in process")
		return messaging.NewMemoryBroker(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return redis.NewRedisBroker(ctx, redis.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
		MinIdleConns: 2,
	}, zl)
}

func newMailer(cfg *config.Config, zl zerolog.Logger) email.Service {
	if !cfg.SMTP.Enabled {
		zl.Warn().Msg("smtp disabled, notifications are logged only")
		return email.NewLogService(zl)
	}
	return email.NewSMTPService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
}
