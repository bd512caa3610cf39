package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	availabilityHandler "github.com/jwalitptl/dravail-api/internal/handler/availability"
	catalogHandler "github.com/jwalitptl/dravail-api/internal/handler/catalog"
	doctorHandler "github.com/jwalitptl/dravail-api/internal/handler/doctor"
	"github.com/jwalitptl/dravail-api/internal/handler/health"
	hospitalHandler "github.com/jwalitptl/dravail-api/internal/handler/hospital"
	messageHandler "github.com/jwalitptl/dravail-api/internal/handler/message"
	"github.com/jwalitptl/dravail-api/internal/handler/prometheus"
	"github.com/jwalitptl/dravail-api/internal/middleware"
	"github.com/jwalitptl/dravail-api/pkg/metrics"
)

type Handlers struct {
	Doctor       *doctorHandler.Handler
	Hospital     *hospitalHandler.Handler
	Message      *messageHandler.Handler
	Catalog      *catalogHandler.Handler
	Availability *availabilityHandler.Handler
	Health       *health.Handler
	Metrics      *prometheus.Handler
}

type RouterConfig struct {
	RateLimit      rate.Limit
	RateBurst      int
	CORSConfig     middleware.CORSConfig
	RequestTimeout time.Duration
	MaxBodySize    int64
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *metrics.Metrics
	limiter  *middleware.RateLimiter
	config   RouterConfig
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, m *metrics.Metrics, config RouterConfig) *Router {
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = middleware.DefaultTimeoutConfig().Duration
	}
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = middleware.DefaultMaxBodySize
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		metrics:  m,
		limiter: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		}),
		config: config,
	}

	// RequestID first so every later middleware can log it.
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
		middleware.ErrorHandler(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
		middleware.SizeLimit(config.MaxBodySize),
	)

	return r
}

func (r *Router) Setup() {
	if r.handlers.Metrics != nil {
		r.engine.GET("/metrics", r.handlers.Metrics.Handler())
	}

	api := r.engine.Group("/api/v1")

	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(api)
	}

	r.setupPublicRoutes(api)
	r.setupListingRoutes(api)

	admin := api.Group("/admin")
	admin.Use(r.auth.Authenticate())
	r.setupAdminRoutes(admin)
}

func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.handlers.Catalog.RegisterRoutes(rg)
	r.handlers.Availability.RegisterRoutes(rg)
	r.handlers.Message.RegisterRoutes(rg, r.limiter.RateLimit())
}

func (r *Router) setupListingRoutes(rg *gin.RouterGroup) {
	r.handlers.Doctor.RegisterRoutes(rg, r.auth)
	r.handlers.Hospital.RegisterRoutes(rg, r.auth)
}

func (r *Router) setupAdminRoutes(rg *gin.RouterGroup) {
	r.handlers.Doctor.RegisterAdminRoutes(rg)
	r.handlers.Hospital.RegisterAdminRoutes(rg)
	r.handlers.Message.RegisterAdminRoutes(rg)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
