package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/dravail-api/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "dravail")
	actor := model.Actor{
		ID:    uuid.New(),
		Email: "admin@dravail.in",
		Name:  "Admin",
		Roles: []string{model.AdministratorsRole},
	}

	token, err := svc.GenerateToken(actor, time.Hour)
	require.NoError(t, err)

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
	assert.True(t, got.IsAdmin())
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", "dravail")
	actor := model.Actor{ID: uuid.New()}

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTService("other", "dravail").GenerateToken(actor, time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := NewJWTService("secret", "elsewhere").GenerateToken(actor, time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := svc.GenerateToken(actor, -time.Minute)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("bad subject", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			Issuer:    "dravail",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("abc.def.ghi")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
