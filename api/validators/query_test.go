package validators

import (
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/pixelcart/pixelcart-backend/pkg/errors"
)

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=25", nil)
	got, err := ParseQueryInt(r, "limit", 100, 1, 500)
	if err != nil {
		t.Fatalf("ParseQueryInt: %v", err)
	}
	if got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryInt(r, "limit", 100, 1, 500)
	if err != nil || got != 100 {
		t.Fatalf("expected default 100, got %d (%v)", got, err)
	}

	r = httptest.NewRequest("GET", "/?limit=ten", nil)
	if _, err := ParseQueryInt(r, "limit", 100, 1, 500); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for non-numeric value")
	}

	r = httptest.NewRequest("GET", "/?limit=9000", nil)
	if _, err := ParseQueryInt(r, "limit", 100, 1, 500); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for out-of-range value")
	}
}

func TestParseQueryBool(t *testing.T) {
	r := httptest.NewRequest("GET", "/?featured=true", nil)
	got, err := ParseQueryBool(r, "featured")
	if err != nil || got == nil || !*got {
		t.Fatalf("expected true, got %v (%v)", got, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryBool(r, "featured")
	if err != nil || got != nil {
		t.Fatalf("absent parameter must return nil, got %v (%v)", got, err)
	}

	r = httptest.NewRequest("GET", "/?featured=maybe", nil)
	if _, err := ParseQueryBool(r, "featured"); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for non-boolean value")
	}
}

func TestParseQueryTime(t *testing.T) {
	r := httptest.NewRequest("GET", "/?from=2026-01-15T10:30:00Z", nil)
	got, err := ParseQueryTime(r, "from")
	if err != nil || got == nil {
		t.Fatalf("ParseQueryTime: %v", err)
	}
	if !got.Equal(time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time %v", got)
	}

	r = httptest.NewRequest("GET", "/?from=2026-01-15", nil)
	got, err = ParseQueryTime(r, "from")
	if err != nil || got == nil || !got.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("plain date not accepted: %v (%v)", got, err)
	}

	r = httptest.NewRequest("GET", "/?from=yesterday", nil)
	if _, err := ParseQueryTime(r, "from"); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for unparseable time")
	}
}
