package message

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/dravail-api/internal/middleware"
	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/internal/repository"
	messageService "github.com/jwalitptl/dravail-api/internal/service/message"
	"github.com/jwalitptl/dravail-api/pkg/auth"
	"github.com/jwalitptl/dravail-api/pkg/validator"
)

type memRepo struct {
	rows map[uuid.UUID]*model.Message
}

func (r *memRepo) Create(_ context.Context, m *model.Message) error {
	cp := *m
	r.rows[m.ID] = &cp
	return nil
}

func (r *memRepo) Get(_ context.Context, id uuid.UUID) (*model.Message, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memRepo) List(context.Context, model.MessageKind) ([]*model.Message, error) {
	out := make([]*model.Message, 0, len(r.rows))
	for _, m := range r.rows {
		out = append(out, m)
	}
	return out, nil
}

func (r *memRepo) Respond(_ context.Context, id uuid.UUID, response string) (*model.Message, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if m.Responded() {
		return nil, repository.ErrConflict
	}
	now := time.Now().UTC()
	m.AdminResponse = &response
	m.DateResponded = &now
	cp := *m
	return &cp, nil
}

type fixture struct {
	router *gin.Engine
	repo   *memRepo
	jwt    auth.JWTService
}

func newFixture(limit gin.HandlerFunc) *fixture {
	gin.SetMode(gin.TestMode)
	repo := &memRepo{rows: make(map[uuid.UUID]*model.Message)}
	jwtSvc := auth.NewJWTService("secret", "dravail")
	h := NewHandler(messageService.NewService(repo, validator.New(), []byte("key"), zerolog.Nop()))

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	api := r.Group("/api/v1")
	h.RegisterRoutes(api, limit)
	admin := api.Group("/admin")
	admin.Use(middleware.NewAuthMiddleware(jwtSvc).Authenticate())
	h.RegisterAdminRoutes(admin)
	return &fixture{router: r, repo: repo, jwt: jwtSvc}
}

func noLimit(c *gin.Context) { c.Next() }

func (f *fixture) do(t *testing.T, method, path string, actor *model.Actor, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		token, err := f.jwt.GenerateToken(*actor, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

const messageJSON = `{"sender_name": "Meena", "sender_email": "meena@example.com",
	"subject": "Wrong timings", "body": "The evening timings of Dr. Kumar look outdated."}`

func TestSubmitMessage(t *testing.T) {
	f := newFixture(noLimit)

	w := f.do(t, http.MethodPost, "/api/v1/messages", nil, messageJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ID        uuid.UUID `json:"id"`
			Reference string    `json:"reference"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Reference, 8)

	stored := f.repo.rows[resp.Data.ID]
	require.NotNil(t, stored)
	assert.Equal(t, model.MessageUserToAdmin, stored.Kind)
	assert.NotEmpty(t, stored.SenderFingerprint)
}

func TestSubmitMessage_Invalid(t *testing.T) {
	f := newFixture(noLimit)

	w := f.do(t, http.MethodPost, "/api/v1/messages", nil, `{"sender_name": "Meena"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/messages", nil, `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.repo.rows)
}

func TestSubmitMessage_RateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{Rate: 0.001, Burst: 1})
	f := newFixture(limiter.RateLimit())

	w := f.do(t, http.MethodPost, "/api/v1/messages", nil, messageJSON)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/messages", nil, messageJSON)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Len(t, f.repo.rows, 1)
}

func TestAdminInbox(t *testing.T) {
	f := newFixture(noLimit)
	admin := &model.Actor{ID: uuid.New(), Roles: []string{model.AdministratorsRole}}
	visitor := &model.Actor{ID: uuid.New()}

	w := f.do(t, http.MethodPost, "/api/v1/messages", nil, messageJSON)
	require.Equal(t, http.StatusCreated, w.Code)
	var id uuid.UUID
	for k := range f.repo.rows {
		id = k
	}
	path := "/api/v1/admin/messages/" + id.String()

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/v1/admin/messages", nil, "").Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/v1/admin/messages", visitor, "").Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/admin/messages", admin, "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/admin/messages?kind=Other", admin, "").Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, path, admin, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/admin/messages/"+uuid.NewString(), admin, "").Code)

	w = f.do(t, http.MethodPost, path+"/response", admin, `{"response": "   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(t, http.MethodPost, path+"/response", admin, `{"response": "Updated, thanks."}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, f.repo.rows[id].Responded())

	w = f.do(t, http.MethodPost, path+"/response", admin, `{"response": "Again"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}
