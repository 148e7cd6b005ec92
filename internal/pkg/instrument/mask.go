package instrument

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

const maskValue = "***"

type maskKeys map[string]struct{}

func newMaskKeys(fields []string) maskKeys {
	keys := make(maskKeys, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			keys[f] = struct{}{}
		}
	}
	return keys
}

func (k maskKeys) has(key string) bool {
	_, ok := k[strings.ToLower(key)]
	return ok
}

// maskHandler replaces the value of sensitive attributes. It also looks
// inside JSON strings and maps, which is how request bodies are logged.
type maskHandler struct {
	next slog.Handler
	keys maskKeys
}

func (h *maskHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *maskHandler) Handle(ctx context.Context, r slog.Record) error {
	if len(h.keys) == 0 {
		return h.next.Handle(ctx, r)
	}

	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.keys.attr(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *maskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.keys.attr(a)
	}
	return &maskHandler{next: h.next.WithAttrs(masked), keys: h.keys}
}

func (h *maskHandler) WithGroup(name string) slog.Handler {
	return &maskHandler{next: h.next.WithGroup(name), keys: h.keys}
}

func (k maskKeys) attr(a slog.Attr) slog.Attr {
	if k.has(a.Key) {
		return slog.String(a.Key, maskValue)
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		group := v.Group()
		masked := make([]slog.Attr, len(group))
		for i, g := range group {
			masked[i] = k.attr(g)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	case slog.KindString:
		if s, ok := k.jsonText([]byte(v.String())); ok {
			return slog.String(a.Key, s)
		}
	case slog.KindAny:
		switch x := v.Any().(type) {
		case []byte:
			if s, ok := k.jsonText(x); ok {
				return slog.String(a.Key, s)
			}
		case map[string]any:
			return slog.Any(a.Key, k.walk(x))
		case map[string]string:
			m := make(map[string]any, len(x))
			for key, val := range x {
				m[key] = val
			}
			return slog.Any(a.Key, k.walk(m))
		}
	}

	return a
}

func (k maskKeys) jsonText(b []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return "", false
	}

	var doc any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return "", false
	}

	out, err := json.Marshal(k.walk(doc))
	if err != nil {
		return "", false
	}
	return string(out), true
}

func (k maskKeys) walk(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for key, val := range x {
			if k.has(key) {
				out[key] = maskValue
				continue
			}
			out[key] = k.walk(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = k.walk(val)
		}
		return out
	default:
		return v
	}
}
