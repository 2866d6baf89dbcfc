package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"rapv/site/internal/models"
)

const issuer = "rapv-site"

// PasswordProvider checks a single admin account against a bcrypt hash and
// issues HS256 session tokens.
type PasswordProvider struct {
	Username     string
	PasswordHash []byte
	Secret       []byte
	TTL          time.Duration
	Now          func() time.Time
}

type sessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewPasswordProvider(username, passwordHash, secret string, ttl time.Duration) (*PasswordProvider, error) {
	if passwordHash == "" {
		return nil, errors.New("admin password hash is required")
	}
	if len(secret) < 16 {
		return nil, errors.New("session secret must be at least 16 bytes")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &PasswordProvider{
		Username:     username,
		PasswordHash: []byte(passwordHash),
		Secret:       []byte(secret),
		TTL:          ttl,
		Now:          time.Now,
	}, nil
}

func (p *PasswordProvider) Login(_ context.Context, username, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(p.Username)) != 1 {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := p.Now()
	claims := sessionClaims{
		Name: username,
		Role: string(models.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.Secret)
}

func (p *PasswordProvider) Verify(_ context.Context, token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrMissingToken
	}
	parsed := sessionClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(token, &parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.Secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if parsed.Issuer != issuer {
		return Claims{}, ErrInvalidToken
	}
	if parsed.ExpiresAt == nil || !p.Now().Before(parsed.ExpiresAt.Time) {
		return Claims{}, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	return Claims{UID: parsed.Subject, Name: parsed.Name, Role: parsed.Role}, nil
}
