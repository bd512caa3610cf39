package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/dravail-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", errors.NotFound("doctor", nil), http.StatusNotFound, "doctor not found"},
		{"forbidden", errors.Forbidden("approve"), http.StatusForbidden, "not allowed to approve"},
		{"conflict", errors.Conflict("stale", nil), http.StatusConflict, "stale"},
		{"validation", errors.Validation("invalid availability", []string{"x"}), http.StatusUnprocessableEntity, "invalid availability"},
		{"wrapped", fmt.Errorf("ctx: %w", errors.Unauthorized(nil)), http.StatusUnauthorized, "unauthorized"},
		{"internal hides cause", errors.Internal(fmt.Errorf("pq: secret")), http.StatusInternalServerError, "internal server error"},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := ErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, "error", resp.Status)
		})
	}
}

func TestRespondWithPagination(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithPagination(c, []string{"a", "b", "c", "d"}, 1, 4, 9)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data PaginatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.Pagination.TotalPage)
	assert.Equal(t, 9, body.Data.Pagination.Total)
}
