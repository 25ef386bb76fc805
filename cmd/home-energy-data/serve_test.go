package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestServeHealthz(t *testing.T) {
	h := newHandler(t.TempDir())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	res := rr.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if got := res.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestServeDashboardFiles(t *testing.T) {
	dir := t.TempDir()
	payload := `{"annual_stats":[],"total_stats":{},"charts":[]}`
	if err := os.WriteFile(filepath.Join(dir, "data.json"), []byte(payload), 0644); err != nil {
		t.Fatalf("writing data.json: %v", err)
	}
	h := newHandler(dir)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/data.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != payload {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing.json", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing file, got %d", rr.Code)
	}
}
