package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/pkg/config"
)

// middlewareMaintenance answers 503 for the routes listed in
// app.maintenance.endpoints as "METHOD /route/:param". A bare path blocks
// every method. The list is read per request so a config reload applies.
func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg != nil && underMaintenance(cfg.GetArray("app.maintenance.endpoints"), r.Method, matchedRoutePath(r)) {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func underMaintenance(entries []string, method, route string) bool {
	for _, e := range entries {
		m, p, found := strings.Cut(strings.TrimSpace(e), " ")
		if !found {
			if m == route {
				return true
			}
			continue
		}
		if strings.EqualFold(m, method) && strings.TrimSpace(p) == route {
			return true
		}
	}
	return false
}
