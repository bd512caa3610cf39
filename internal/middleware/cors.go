package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CORSConfig lists the browser origins allowed to call the API. "*" matches
// any origin.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig allows the given origins, or any origin when none are
// configured.
func DefaultCORSConfig(origins ...string) CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", HeaderXRequestID},
		ExposeHeaders:    []string{HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
}

// match returns the value for Access-Control-Allow-Origin, or "" when origin
// is not allowed. A wildcard echoes the origin when credentials are allowed.
func (cfg CORSConfig) match(origin string) string {
	if origin == "" {
		return ""
	}
	for _, o := range cfg.AllowOrigins {
		switch {
		case o == origin:
			return origin
		case o == "*" && cfg.AllowCredentials:
			return origin
		case o == "*":
			return "*"
		}
	}
	return ""
}

// CORS answers preflight requests itself. A preflight from an unknown origin
// is refused; other requests from it pass through without CORS headers.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	exposed := strings.Join(cfg.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(c *gin.Context) {
		preflight := c.Request.Method == http.MethodOptions
		allowed := cfg.match(c.GetHeader("Origin"))
		if allowed == "" {
			if preflight {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowed)
		h.Add("Vary", "Origin")
		if cfg.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if preflight {
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Max-Age", maxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if exposed != "" {
			h.Set("Access-Control-Expose-Headers", exposed)
		}
		c.Next()
	}
}
