package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jwalitptl/dravail-api/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the token fields the API trusts. Subject carries the user ID.
type Claims struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateToken(actor model.Actor, ttl time.Duration) (string, error)
	ValidateToken(token string) (model.Actor, error)
}

type jwtService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewJWTService(secret, issuer string) JWTService {
	return &jwtService{secret: []byte(secret), issuer: issuer, now: time.Now}
}

func (s *jwtService) GenerateToken(actor model.Actor, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Email: actor.Email,
		Name:  actor.Name,
		Roles: actor.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(token string) (model.Actor, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return model.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Actor{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return model.Actor{
		ID:    id,
		Email: claims.Email,
		Name:  claims.Name,
		Roles: claims.Roles,
	}, nil
}
