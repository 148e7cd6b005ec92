package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
)

const maxJSONBodyBytes = 1 << 20

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	*http.Request
}

func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

func (r *Request) GetParamInt64(key string) (int64, error) {
	v, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil || v <= 0 {
		return 0, goerror.NewInvalidFormat("Invalid path parameter " + key)
	}
	return v, nil
}

func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryInt returns 0 when the key is absent.
func (r *Request) GetQueryInt(key string) (int, error) {
	v := r.GetQuery(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid query " + key)
	}
	return n, nil
}

func (r *Request) GetQueryInt64(key string) (int64, error) {
	v := r.GetQuery(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid query " + key)
	}
	return n, nil
}

// GetQueryBool returns nil when the key is absent, so callers can tell
// "not filtered" from false.
func (r *Request) GetQueryBool(key string) (*bool, error) {
	v := r.GetQuery(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, goerror.NewInvalidFormat("Invalid query " + key)
	}
	return &b, nil
}

func (r *Request) GetQueryDate(key, layout string) (time.Time, error) {
	v := r.GetQuery(key)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(layout, v)
	if err != nil {
		return time.Time{}, goerror.NewInvalidFormat("Invalid query " + key)
	}
	return t, nil
}

// DecodeBody decodes exactly one JSON value into dst. Unknown fields and
// trailing data are rejected.
func (r *Request) DecodeBody(dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}

// StreamSingleFile returns the first multipart part named name without
// buffering the body. Parts before it are drained.
func (r *Request) StreamSingleFile(name string) (io.ReadCloser, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, goerror.NewInvalidFormat("Invalid request content-type")
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, goerror.NewInvalidInput(nil, name, "file is required")
		}
		if err != nil {
			return nil, goerror.NewInvalidFormat()
		}

		if part.FormName() == name {
			return part, nil
		}

		_, errCopy := io.Copy(io.Discard, part)
		errClose := part.Close()
		if errCopy != nil || errClose != nil {
			return nil, goerror.NewInvalidFormat()
		}
	}
}
