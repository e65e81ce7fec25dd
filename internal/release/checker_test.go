package release

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckNewerVersionAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version":"1.2.0","url":"https://example.com/todio","notes":"bug fixes"}`))
	}))
	defer srv.Close()

	checker := NewChecker(srv.URL, "1.1.3")
	rel, newer, err := checker.Check(context.Background())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !newer {
		t.Fatalf("expected newer release")
	}
	if rel.Version != "1.2.0" || rel.Notes != "bug fixes" {
		t.Fatalf("unexpected release: %+v", rel)
	}
}

func TestCheckAlreadyCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":"v1.1.3"}`))
	}))
	defer srv.Close()

	checker := NewChecker(srv.URL, "1.1.3")
	_, newer, err := checker.Check(context.Background())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if newer {
		t.Fatalf("did not expect newer release")
	}
}

func TestCheckNoFeedConfigured(t *testing.T) {
	checker := NewChecker("", "1.0.0")
	_, _, err := checker.Check(context.Background())
	if !errors.Is(err, ErrNoFeed) {
		t.Fatalf("expected ErrNoFeed, got %v", err)
	}
}

func TestCheckBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	checker := NewChecker(srv.URL, "1.0.0")
	if _, _, err := checker.Check(context.Background()); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.0", "1.1.9", 1},
		{"1.1.9", "1.2.0", -1},
		{"v2.0", "2.0.0", 0},
		{"1.0", "1.0.1", -1},
		{"10.0.0", "9.9.9", 1},
	}
	for _, tt := range tests {
		if got := compareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
