// Package jwt issues and verifies admin session tokens. A token carries
// the stage of the login it belongs to, so middleware can tell a finished
// login from one still waiting on the second factor.
package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSigningMethod = errors.New("jwt: invalid signing method")
	ErrSigningKeyTooShort   = errors.New("jwt: HS512 key must be at least 64 bytes")
	ErrTokenExpired         = errors.New("jwt: token has expired")
	ErrInvalidToken         = errors.New("jwt: invalid token")
	ErrUnknownStage         = errors.New("jwt: unknown stage")
)

// Stage is how far the holder got through login.
type Stage string

const (
	// StageFull is a completed login.
	StageFull Stage = "full"
	// StageMFA is a password-verified login waiting for a TOTP or backup code.
	StageMFA Stage = "mfa"
)

func (s Stage) Valid() bool {
	return s == StageFull || s == StageMFA
}

type JWT interface {
	Issue(sub Subject) (Token, error)
	Verify(token string) (Claims, error)
}

// Subject describes who a token is issued for. TTL zero means the
// configured default.
type Subject struct {
	AdminID int64
	Email   string
	Stage   Stage
	TTL     time.Duration
}

// Token is a signed token plus the values callers persist or echo.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

type Claims struct {
	jwt.RegisteredClaims
	AdminID int64  `json:"admin_id,string"`
	Email   string `json:"email"`
	Stage   Stage  `json:"stage"`
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

type ctxKey struct{}

// GetAuth returns the claims the auth middleware attached, or nil.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(ctxKey{}).(Claims)
	if !ok {
		return nil
	}
	return &clm
}

func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, clm)
}
