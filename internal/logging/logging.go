package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"netrestrict/internal/auth"
	"netrestrict/internal/middleware"
)

const timeLayout = "2006/01/02 15:04:05"

// leading keys, printed in this order before the sorted rest
var priorityKeys = []string{"method", "url", "status", "duration"}

// textHandler writes lines like:
// 2025/09/06 21:11:44 level=INFO msg="starting" key=value ...
type textHandler struct {
	out      io.Writer
	mu       *sync.Mutex
	minLevel slog.Leveler
	attrs    []slog.Attr
	group    string
}

func newTextHandler(out io.Writer, lvl slog.Leveler) *textHandler {
	return &textHandler{out: out, mu: &sync.Mutex{}, minLevel: lvl}
}

func (h *textHandler) Enabled(_ context.Context, l slog.Level) bool {
	min := slog.LevelInfo
	if h.minLevel != nil {
		min = h.minLevel.Level()
	}
	return l >= min
}

func levelName(l slog.Level) string {
	switch {
	case l <= slog.LevelDebug:
		return "DEBUG"
	case l <= slog.LevelInfo:
		return "INFO"
	case l <= slog.LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

func needsQuoting(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '"' || r == '=' || r == '\\' {
			return true
		}
	}
	return false
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func formatValue(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case time.Duration:
		return v.String()
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func appendKeyVal(sb *strings.Builder, key string, val any) {
	s := formatValue(val)
	sb.WriteByte(' ')
	sb.WriteString(key)
	sb.WriteByte('=')
	if needsQuoting(s) {
		s = quote(s)
	}
	sb.WriteString(s)
}

// contextFields pulls request-scoped identifiers set by middleware.
func contextFields(ctx context.Context, into map[string]any) {
	if ctx == nil {
		return
	}
	if rid, ok := middleware.GetRequestID(ctx); ok {
		into["request_id"] = rid
	}
	if uid, ok := middleware.GetLogUserID(ctx); ok {
		into["user_id"] = uid
	}
	if sid, ok := middleware.GetLogSiteID(ctx); ok {
		into["site_id"] = sid
	}
	if prov, ok := middleware.GetLogProvider(ctx); ok {
		into["provider"] = prov
	}
	if sess, ok := auth.SessionFromContext(ctx); ok && sess != nil {
		into["user_id"] = sess.UserID.String()
		if sess.Provider != "" {
			into["provider"] = sess.Provider
		}
	} else if u, ok := auth.GetUserFromContext(ctx); ok && u != nil {
		into["user_id"] = u.ID.String()
	}
}

func (h *textHandler) Handle(ctx context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var sb strings.Builder
	sb.Grow(256)
	sb.WriteString(ts.Format(timeLayout))
	sb.WriteString(" level=")
	sb.WriteString(levelName(r.Level))
	if r.Message != "" {
		sb.WriteString(" msg=")
		sb.WriteString(quote(r.Message))
	}

	fields := map[string]any{}
	contextFields(ctx, fields)
	for _, a := range h.attrs {
		flatten(fields, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		flatten(fields, h.group, a)
		return true
	})

	for _, k := range priorityKeys {
		if v, ok := fields[k]; ok {
			appendKeyVal(&sb, k, v)
			delete(fields, k)
		}
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		appendKeyVal(&sb, k, fields[k])
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

// flatten writes a into fields, joining group names with dots.
func flatten(fields map[string]any, prefix string, a slog.Attr) {
	if a.Key == "" && a.Value.Kind() != slog.KindGroup {
		return
	}
	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		for _, ga := range v.Group() {
			flatten(fields, key, ga)
		}
	case slog.KindTime:
		fields[key] = v.Time().Format(time.RFC3339)
	default:
		fields[key] = v.Any()
	}
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := *h
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" && a.Key != "" {
			a.Key = h.group + "." + a.Key
		}
		nh.attrs = append(nh.attrs, a)
	}
	return &nh
}

func (h *textHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if h.group != "" {
		nh.group = h.group + "." + name
	} else {
		nh.group = name
	}
	return &nh
}

// ParseLevel maps "debug", "info", "warn", "error" (case-insensitive) to a
// slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to out in text or JSON form.
func New(out io.Writer, level string, json bool) *slog.Logger {
	lvl := ParseLevel(level)
	if json {
		replace := func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				return slog.String(slog.TimeKey, a.Value.Time().Format(timeLayout))
			}
			return a
		}
		return slog.New(&contextHandler{slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl, ReplaceAttr: replace})})
	}
	return slog.New(newTextHandler(out, lvl))
}

// Setup configures slog's default logger on stdout.
func Setup(level string, json bool) *slog.Logger {
	logger := New(os.Stdout, level, json)
	slog.SetDefault(logger)
	return logger
}

// contextHandler adds the request-scoped fields to JSON records.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	fields := map[string]any{}
	contextFields(ctx, fields)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		r.AddAttrs(slog.Any(k, fields[k]))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{h.Handler.WithGroup(name)}
}
