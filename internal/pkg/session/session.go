// Package session holds the cookie shape of an admin session and the redis
// denylist of token ids revoked before they expire.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

type clocker interface {
	Now() time.Time
}

// Cookie describes the session cookie. Value is always a signed JWT.
type Cookie struct {
	Name     string
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// ParseSameSite maps a config string to http.SameSite. Unknown is Lax.
func ParseSameSite(s string) http.SameSite {
	switch s {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (c Cookie) path() string {
	if c.Path == "" {
		return "/"
	}
	return c.Path
}

func (c Cookie) Issue(value string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Domain:   c.Domain,
		Path:     c.path(),
		Expires:  expiresAt,
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: c.SameSite,
	}
}

func (c Cookie) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Domain:   c.Domain,
		Path:     c.path(),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: c.SameSite,
	}
}

// Denylist stores revoked token ids until the token would have expired.
type Denylist struct {
	client redis.UniversalClient
	clock  clocker
}

func NewDenylist(client redis.UniversalClient, clock clocker) *Denylist {
	return &Denylist{client: client, clock: clock}
}

func key(id string) string { return "session:revoked:" + id }

func (d *Denylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	ttl := expiresAt.Sub(d.clock.Now())
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, key(tokenID), 1, ttl.Round(time.Second)+time.Second).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	err := d.client.Get(ctx, key(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
