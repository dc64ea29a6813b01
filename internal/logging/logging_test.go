package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"netrestrict/internal/auth"
	"netrestrict/internal/models"
)

func TestTextHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", false)
	log.Info("request", "status", 200, "method", "GET", "zeta", "a b", "duration", 1500*time.Millisecond)

	line := buf.String()
	if !strings.Contains(line, ` level=INFO msg="request" method=GET status=200 duration=1.5s zeta="a b"`) {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatal("line not terminated")
	}
}

func TestTextHandlerLevelAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", false)
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info logged at warn level: %q", buf.String())
	}
	log.WithGroup("db").With("table", "users").Warn("slow", slog.Group("q", "ms", 12))
	if !strings.Contains(buf.String(), "db.q.ms=12 db.table=users") {
		t.Fatalf("groups not flattened: %q", buf.String())
	}
}

func TestContextEnrichment(t *testing.T) {
	uid := uuid.New()
	ctx := auth.WithUser(context.Background(), &models.User{ID: uid})

	var text bytes.Buffer
	New(&text, "info", false).InfoContext(ctx, "hello")
	if !strings.Contains(text.String(), "user_id="+uid.String()) {
		t.Fatalf("text missing user_id: %q", text.String())
	}

	var js bytes.Buffer
	New(&js, "info", true).InfoContext(ctx, "hello")
	var rec map[string]any
	if err := json.Unmarshal(js.Bytes(), &rec); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if rec["user_id"] != uid.String() || rec["msg"] != "hello" {
		t.Fatalf("unexpected json record: %v", rec)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "WARNING": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo, "bogus": slog.LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
