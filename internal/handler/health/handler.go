package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type Handler struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHandler checks each named dependency on readiness. *sqlx.DB satisfies
// Pinger directly.
func NewHandler(checks map[string]Pinger) *Handler {
	return &Handler{
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	components := make(map[string]string, len(h.checks))
	status := http.StatusOK
	for name, check := range h.checks {
		if err := check.PingContext(ctx); err != nil {
			components[name] = "DOWN"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "UP"
	}

	overall := "UP"
	if status != http.StatusOK {
		overall = "DOWN"
	}
	c.JSON(status, gin.H{"status": overall, "components": components})
}
