package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/pkg/auth"
	"github.com/jwalitptl/dravail-api/pkg/errors"
)

const ContextActor = "actor"

type AuthMiddleware struct {
	jwt auth.JWTService
}

func NewAuthMiddleware(jwt auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Authenticate verifies the bearer token and stores the actor in the context.
// Requests without a valid token are rejected.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Error(errors.Unauthorized(nil))
			c.Abort()
			return
		}

		actor, err := m.jwt.ValidateToken(token)
		if err != nil {
			c.Error(errors.Unauthorized(err))
			c.Abort()
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a valid token is present and continues
// as anonymous otherwise. Browse endpoints use it so owners see their own
// unverified listings.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if actor, err := m.jwt.ValidateToken(token); err == nil {
				c.Set(ContextActor, actor)
			}
		}
		c.Next()
	}
}

// ActorFrom returns the actor resolved by the auth middleware, or
// model.Anonymous.
func ActorFrom(c *gin.Context) model.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Anonymous
}
