package doctor

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
	doctorService "github.com/jwalitptl/dravail-api/internal/service/doctor"
	"github.com/jwalitptl/dravail-api/internal/service/listing"
	"github.com/jwalitptl/dravail-api/internal/service/rbac"
	"github.com/jwalitptl/dravail-api/pkg/auth"
	"github.com/jwalitptl/dravail-api/pkg/metrics"
	"github.com/jwalitptl/dravail-api/pkg/validator"
)

type memRepo struct {
	rows map[uuid.UUID]model.Doctor
}

func (r *memRepo) Create(_ context.Context, d *model.Doctor) error {
	d.Version = 1
	r.rows[d.ID] = *d
	return nil
}

func (r *memRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *memRepo) GetByOwner(context.Context, uuid.UUID) ([]*model.Doctor, error) { return nil, nil }

func (r *memRepo) Update(_ context.Context, d *model.Doctor) error {
	d.Version++
	r.rows[d.ID] = *d
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID, _ int) error {
	delete(r.rows, id)
	return nil
}

func (r *memRepo) List(context.Context, *model.ListingFilter) ([]*model.Doctor, int, error) {
	var out []*model.Doctor
	for _, d := range r.rows {
		d := d
		out = append(out, &d)
	}
	return out, len(out), nil
}

type nopNotifier struct{}

func (nopNotifier) Send(context.Context, model.Notification) error { return nil }

type fixture struct {
	router *gin.Engine
	repo   *memRepo
	jwt    auth.JWTService
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	repo := &memRepo{rows: make(map[uuid.UUID]model.Doctor)}
	m := metrics.New("test")
	workflow := listing.NewService(model.KindDoctor, listing.NewDoctorStore(repo), rbac.NewService(), nopNotifier{}, m,
		zerolog.Nop(), listing.Config{PageSize: 4, NotifyTimeout: time.Second})
	jwtSvc := auth.NewJWTService("secret", "dravail")

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	NewHandler(doctorService.NewService(repo, workflow, validator.New(), m)).
		RegisterRoutes(r.Group("/api/v1"), middleware.NewAuthMiddleware(jwtSvc))
	return &fixture{router: r, repo: repo, jwt: jwtSvc}
}

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

const doctorJSON = `{
	"name": "Dr. Kumar", "reg_number": "TN12345", "speciality": "Cardiologist", "degree": "MBBS",
	"age": 45, "gender": "Male", "practice": "Private", "experience": 18, "city": "Madurai",
	"district": "Madurai", "email": "kumar@example.com", "phone": "9876543210",
	"common_availability": {
		"common_days": {"morning_start": "09:00", "morning_end": "13:00", "evening_start": "17:00", "evening_end": "21:00"}
	}
}`

func TestCreateDoctor(t *testing.T) {
	f := newFixture()
	owner := &model.Actor{ID: uuid.New(), Email: "owner@example.com"}

	w := f.do(t, http.MethodPost, "/api/v1/doctors", nil, doctorJSON)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/doctors", owner, doctorJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data model.Doctor `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.ListingPending, resp.Data.Status)
	assert.Equal(t, owner.ID, resp.Data.OwnerID)
}

func TestCreateDoctor_InvalidSchedule(t *testing.T) {
	f := newFixture()
	owner := &model.Actor{ID: uuid.New()}
	body := strings.Replace(doctorJSON, `"morning_start": "09:00"`, `"morning_start": "09:05"`, 1)

	w := f.do(t, http.MethodPost, "/api/v1/doctors", owner, body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Morning Minutes")
}

func TestDecideAndView(t *testing.T) {
	f := newFixture()
	owner := &model.Actor{ID: uuid.New()}
	admin := &model.Actor{ID: uuid.New(), Roles: []string{model.AdministratorsRole}}

	w := f.do(t, http.MethodPost, "/api/v1/doctors", owner, doctorJSON)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data model.Doctor `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := "/api/v1/doctors/" + created.Data.ID.String()

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, path, nil, "").Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, path+"/decision", owner, `{"approve": true}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, path+"/decision", admin, `{}`).Code)

	w = f.do(t, http.MethodPost, path+"/decision", admin, `{"approve": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"verified"`)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, path, nil, "").Code)
}

func TestGetDoctor_BadID(t *testing.T) {
	f := newFixture()
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/doctors/not-a-uuid", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/doctors/"+uuid.NewString(), nil, "").Code)
}

func TestListDoctors(t *testing.T) {
	f := newFixture()
	w := f.do(t, http.MethodGet, "/api/v1/doctors?page=1&page_size=2&search=kum", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page_size":2`)
}

func TestDeleteDoctor(t *testing.T) {
	f := newFixture()
	owner := &model.Actor{ID: uuid.New()}
	w := f.do(t, http.MethodPost, "/api/v1/doctors", owner, doctorJSON)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data model.Doctor `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := "/api/v1/doctors/" + created.Data.ID.String()

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodDelete, path+"?version=x", owner, "").Code)
	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, path+"?version=1", owner, "").Code)
	assert.Empty(t, f.repo.rows)
}
