package router

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
)

// Access is the session requirement of a route.
type Access int

const (
	AccessProtected Access = iota
	AccessPublic
	AccessMFA
)

// SessionState is the externally visible login state.
type SessionState string

const (
	StateAnonymous     SessionState = "anonymous"
	StateRequires2FA   SessionState = "requires_2fa"
	StateAuthenticated SessionState = "authenticated"
)

// StateOf maps the attached claims to a session state.
func StateOf(ctx context.Context) SessionState {
	clm := jwt.GetAuth(ctx)
	switch {
	case clm == nil:
		return StateAnonymous
	case clm.Stage == jwt.StageMFA:
		return StateRequires2FA
	default:
		return StateAuthenticated
	}
}

type accessTable struct {
	mu sync.RWMutex
	m  map[string]Access
}

func (t *accessTable) set(method, path string, a Access) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.m == nil {
		t.m = map[string]Access{}
	}
	t.m[method+" "+path] = a
}

func (t *accessTable) get(method, path string) Access {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.m[method+" "+path]
}

type sessionConfig struct {
	verifier   jwt.JWT
	revocation Revocation
	cookieName string
	access     *accessTable
}

var errRevoked = errors.New("session revoked")

func middlewareSession(cfg sessionConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class := cfg.access.get(r.Method, matchedRoutePath(r))

			claims, err := cfg.resolve(r)
			if err != nil && !errors.Is(err, errRevoked) && !isTokenError(err) {
				slog.ErrorContext(r.Context(), "failed to resolve session", "error", err)
				// Public routes degrade to anonymous; gated routes fail closed.
				if class != AccessPublic {
					writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
					return
				}
				claims = nil
			}

			if claims != nil {
				r = r.WithContext(jwt.SetAuth(r.Context(), *claims))
			}

			switch class {
			case AccessPublic:
			case AccessMFA:
				if claims == nil {
					writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
					return
				}
				if claims.Stage != jwt.StageMFA {
					writeJSON(w, errorResponse{Message: "Two-factor already completed"}, http.StatusForbidden)
					return
				}
			default:
				if claims == nil {
					writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
					return
				}
				if claims.Stage != jwt.StageFull {
					writeJSON(w, errorResponse{Message: "Two-factor authentication required"}, http.StatusForbidden)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resolve returns nil claims when no usable token is present.
func (cfg sessionConfig) resolve(r *http.Request) (*jwt.Claims, error) {
	raw := bearerToken(r)
	if raw == "" && cfg.cookieName != "" {
		if c, err := r.Cookie(cfg.cookieName); err == nil {
			raw = c.Value
		}
	}
	if raw == "" || cfg.verifier == nil {
		return nil, nil
	}

	claims, err := cfg.verifier.Verify(raw)
	if err != nil {
		return nil, err
	}

	if cfg.revocation != nil {
		revoked, err := cfg.revocation.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, errRevoked
		}
	}

	return &claims, nil
}

func bearerToken(r *http.Request) string {
	p := strings.Fields(r.Header.Get("Authorization"))
	if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
		return ""
	}
	return p[1]
}

func isTokenError(err error) bool {
	return errors.Is(err, jwt.ErrInvalidToken) ||
		errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrInvalidSigningMethod)
}
