package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
)

type errorResponse struct {
	Message string            `json:"message" example:"Validation error"`
	Error   map[string]string `json:"error,omitempty"`
}

type successResponse struct {
	Message string         `json:"message" example:"request has been successfully"`
	Data    any            `json:"data" swaggertype:"object"`
	Meta    map[string]any `json:"meta,omitempty" swaggertype:"object"`
}

// Handler returns a payload that is wrapped in the success envelope, or an
// error that is translated by the error codec.
//
// A payload may implement StatusCode() int, Message() string,
// Meta() map[string]any and Cookies() []*http.Cookie to shape the response.
type Handler func(r *Request) (any, error)

// Revocation reports whether a token id was revoked before its expiry.
type Revocation interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Config struct {
	Config     config.Config
	UUID       uid.StringID
	JWT        jwt.JWT
	Revocation Revocation
	Instrument instrument.Instrumentation
	// CookieName is the session cookie read when no bearer token is sent.
	CookieName string
}

// Router is an http.Handler over httprouter with a shared middleware chain
// and per-route access classes.
type Router struct {
	hr     *httprouter.Router
	mws    []Middleware
	access *accessTable
}

func NewRouter(cfg Config) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "endpoint not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
		}),
	}

	ro := &Router{hr: hr, access: &accessTable{}}
	ro.mws = []Middleware{
		middlewareRecoverer,
		middlewareIP,
		middlewareCorrelationID(cfg.UUID),
		middlewareObservability(cfg.Instrument),
		middlewareMaintenance(cfg.Config),
		middlewareSession(sessionConfig{
			verifier:   cfg.JWT,
			revocation: cfg.Revocation,
			cookieName: cfg.CookieName,
			access:     ro.access,
		}),
	}

	return ro
}

// Public registers routes that never reject on the session. Claims are
// attached when a usable token is sent.
func (r *Router) Public() *Group { return &Group{r: r, class: AccessPublic} }

// MFA registers routes reachable only while the second factor is pending.
func (r *Router) MFA() *Group { return &Group{r: r, class: AccessMFA} }

// GET registers a route that requires a completed login, as do the other
// verb methods on Router.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(AccessProtected, http.MethodGet, path, h, mws...)
}

func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.endpoint(AccessProtected, http.MethodPost, path, h, mws...)
}

func (r *Router) PUT(path string, h Handler, mws ...Middleware) {
	r.endpoint(AccessProtected, http.MethodPut, path, h, mws...)
}

func (r *Router) PATCH(path string, h Handler, mws ...Middleware) {
	r.endpoint(AccessProtected, http.MethodPatch, path, h, mws...)
}

func (r *Router) DELETE(path string, h Handler, mws ...Middleware) {
	r.endpoint(AccessProtected, http.MethodDelete, path, h, mws...)
}

// Group registers routes under one access class.
type Group struct {
	r     *Router
	class Access
}

func (g *Group) GET(path string, h Handler, mws ...Middleware) {
	g.r.endpoint(g.class, http.MethodGet, path, h, mws...)
}

// GETRaw is for responses that are not JSON envelopes (XML, text, manifests).
func (g *Group) GETRaw(path string, h http.Handler, mws ...Middleware) {
	g.r.handle(g.class, http.MethodGet, path, h, mws...)
}

func (g *Group) POST(path string, h Handler, mws ...Middleware) {
	g.r.endpoint(g.class, http.MethodPost, path, h, mws...)
}

func (g *Group) PUT(path string, h Handler, mws ...Middleware) {
	g.r.endpoint(g.class, http.MethodPut, path, h, mws...)
}

func (g *Group) DELETE(path string, h Handler, mws ...Middleware) {
	g.r.endpoint(g.class, http.MethodDelete, path, h, mws...)
}

func (r *Router) endpoint(class Access, method, path string, h Handler, mws ...Middleware) {
	r.handle(class, method, path, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := h(&Request{Request: req})
		if err != nil {
			if setter, ok := w.(interface{ SetError(error) }); ok {
				setter.SetError(err)
			}
			writeError(req.Context(), w, err)
			return
		}
		writeSuccess(w, resp)
	}), mws...)
}

func (r *Router) handle(class Access, method, path string, h http.Handler, mws ...Middleware) {
	r.access.set(method, path, class)
	r.hr.Handler(method, path, Chain(h, append(r.mws, mws...)...))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		slog.ErrorContext(ctx, "unhandled error reached the router", "error", err)
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	resp := errorResponse{Message: gerr.Msg()}

	var verr validator.ValidationError
	if errors.As(err, &verr) {
		resp.Error = verr.Values()
	} else if len(gerr.Fields()) > 0 {
		resp.Error = gerr.Fields()
	}

	writeJSON(w, resp, gerr.StatusCode())
}

func writeSuccess(w http.ResponseWriter, resp any) {
	if c, ok := resp.(interface{ Cookies() []*http.Cookie }); ok {
		for _, cookie := range c.Cookies() {
			http.SetCookie(w, cookie)
		}
	}

	code := http.StatusOK
	if sc, ok := resp.(interface{ StatusCode() int }); ok {
		code = sc.StatusCode()
	}

	if code == http.StatusNoContent || resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	msg := "request has been successfully"
	if m, ok := resp.(interface{ Message() string }); ok {
		msg = m.Message()
	}

	var meta map[string]any
	if m, ok := resp.(interface{ Meta() map[string]any }); ok {
		meta = m.Meta()
	}

	writeJSON(w, successResponse{Message: msg, Data: resp, Meta: meta}, code)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("server: failed to encode data to json", "error", err)
	}
}
