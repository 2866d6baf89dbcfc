package auth

import (
	"context"
	"errors"
)

var (
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Claims struct {
	UID   string
	Email string
	Name  string
	Role  string
}

// Actor names the claims holder for audit records.
func (c Claims) Actor() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Email != "" {
		return c.Email
	}
	return c.UID
}

type Provider interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Issuer exchanges a username and password for a session token.
type Issuer interface {
	Login(ctx context.Context, username, password string) (string, error)
}
