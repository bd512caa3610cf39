package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/pkg/auth"
	"github.com/jwalitptl/dravail-api/pkg/errors"
	"github.com/jwalitptl/dravail-api/pkg/httputil"
	"github.com/jwalitptl/dravail-api/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthenticate(t *testing.T) {
	jwtSvc := auth.NewJWTService("secret", "dravail")
	m := NewAuthMiddleware(jwtSvc)
	actor := model.Actor{ID: uuid.New(), Email: "doc@example.com", Roles: []string{model.AdministratorsRole}}
	token, err := jwtSvc.GenerateToken(actor, time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/private", m.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, ActorFrom(c))
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := perform(r, http.MethodGet, "/private", headers)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				var got model.Actor
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, actor.ID, got.ID)
				assert.True(t, got.IsAdmin())
			} else {
				resp := decode(t, w)
				assert.Equal(t, "error", resp.Status)
				assert.NotEmpty(t, resp.TraceID)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtSvc := auth.NewJWTService("secret", "dravail")
	m := NewAuthMiddleware(jwtSvc)
	actor := model.Actor{ID: uuid.New()}
	token, err := jwtSvc.GenerateToken(actor, time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/browse", m.OptionalAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, ActorFrom(c).ID.String())
	})

	w := perform(r, http.MethodGet, "/browse", nil)
	assert.Equal(t, uuid.Nil.String(), w.Body.String())

	w = perform(r, http.MethodGet, "/browse", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uuid.Nil.String(), w.Body.String())

	w = perform(r, http.MethodGet, "/browse", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, actor.ID.String(), w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		c.Error(errors.NotFound("doctor", nil))
	})
	r.GET("/invalid", func(c *gin.Context) {
		c.Error(errors.Validation("invalid doctor listing", []string{"Invalid Morning Minutes"}))
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.Internal(assert.AnError))
	})

	w := perform(r, http.MethodGet, "/missing", map[string]string{HeaderXRequestID: "req-1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "doctor not found", resp.Message)
	assert.Equal(t, "req-1", resp.TraceID)

	w = perform(r, http.MethodGet, "/invalid", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Morning Minutes")

	w = perform(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := perform(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderXRequestID))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := perform(r, http.MethodGet, "/", map[string]string{HeaderXRequestID: "abc"})
	assert.Equal(t, "abc", w.Body.String())

	w = perform(r, http.MethodGet, "/", map[string]string{HeaderXRequestID: strings.Repeat("x", 100)})
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
}

func TestRateLimit_PerClient(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 2})

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))

	r := gin.New()
	r.Use(NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1}).RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, http.MethodGet, "/", nil).Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(DefaultCORSConfig("https://dravail.example")))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodOptions, "/", map[string]string{"Origin": "https://dravail.example"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://dravail.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))

	w = perform(r, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestTimeout_SetsDeadline(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(TimeoutConfig{Duration: time.Second}))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/", nil).Code)
}

func TestSizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(SizeLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 32)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMetrics(t *testing.T) {
	m := metrics.New("test")
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/v1/doctors/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(r, http.MethodGet, "/api/v1/doctors/123", nil)
	perform(r, http.MethodGet, "/api/v1/doctors/456", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/doctors/:id", "200")))
}
