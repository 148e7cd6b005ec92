package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
)

const (
	HeaderCorrelationID = "X-Correlation-ID"
	HeaderRequestID     = "X-Request-ID"

	maxCorrelationIDLen = 128
)

// cleanCorrelationID drops ids that could split headers and caps the length.
func cleanCorrelationID(v string) string {
	if strings.ContainsAny(v, "\r\n") {
		return ""
	}
	v = strings.TrimSpace(v)
	if len(v) > maxCorrelationIDLen {
		v = v[:maxCorrelationIDLen]
	}
	return v
}

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := cleanCorrelationID(r.Header.Get(HeaderCorrelationID))
			if id == "" {
				id = cleanCorrelationID(r.Header.Get(HeaderRequestID))
			}
			if id == "" && gen != nil {
				id = gen.Generate()
			}

			if id != "" {
				w.Header().Set(HeaderCorrelationID, id)
				r = r.WithContext(instrument.SetCorrelationID(r.Context(), id))
			}

			next.ServeHTTP(w, r)
		})
	}
}
