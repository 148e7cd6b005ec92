package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenylist(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	d := NewDenylist(client, clock.NewFrozen(now))

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", now.Add(10*time.Minute)))
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 10*time.Minute+time.Second, mr.TTL("session:revoked:jti-1"))

	require.NoError(t, d.Revoke(ctx, "jti-old", now.Add(-time.Minute)))
	assert.False(t, mr.Exists("session:revoked:jti-old"))

	mr.FastForward(11 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestCookie(t *testing.T) {
	c := Cookie{Name: "session", Secure: true, SameSite: ParseSameSite("lax")}
	exp := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	issued := c.Issue("tok", exp)
	assert.Equal(t, "tok", issued.Value)
	assert.Equal(t, "/", issued.Path)
	assert.True(t, issued.HttpOnly)
	assert.True(t, issued.Secure)
	assert.Equal(t, http.SameSiteLaxMode, issued.SameSite)
	assert.Equal(t, exp, issued.Expires)

	cleared := c.Clear()
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)

	assert.Equal(t, http.SameSiteStrictMode, ParseSameSite("strict"))
	assert.Equal(t, http.SameSiteNoneMode, ParseSameSite("none"))
}
