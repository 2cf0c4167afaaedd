package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/filedesk/filevault/pkg/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func TestTrimSlash_RedirectsTrailingSlash(t *testing.T) {
	handler := middleware.TrimSlash(okHandler())

	req := httptest.NewRequest("GET", "/files/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/files" {
		t.Errorf("Location = %q, want /files", loc)
	}
}

func TestTrimSlash_PreservesRootAndQuery(t *testing.T) {
	handler := middleware.TrimSlash(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("root path status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest("GET", "/files/?q=tax", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if loc := rec.Header().Get("Location"); loc != "/files?q=tax" {
		t.Errorf("Location = %q, want /files?q=tax", loc)
	}
}

func TestCORS_Disabled(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: false}
	handler := middleware.CORS(cfg)(okHandler())

	req := httptest.NewRequest("GET", "/files", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if h := rec.Header().Get("Access-Control-Allow-Origin"); h != "" {
		t.Errorf("Allow-Origin = %q, want unset when disabled", h)
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:        true,
		Origins:        []string{"https://app.example.com"},
		AllowedMethods: []string{"GET", "POST"},
	}
	handler := middleware.CORS(cfg)(okHandler())

	req := httptest.NewRequest("GET", "/files", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if h := rec.Header().Get("Access-Control-Allow-Origin"); h != "https://app.example.com" {
		t.Errorf("Allow-Origin = %q, want the request origin", h)
	}
	if h := rec.Header().Get("Access-Control-Allow-Methods"); h != "GET, POST" {
		t.Errorf("Allow-Methods = %q, want GET, POST", h)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: true, Origins: []string{"*"}}
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight reached inner handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/files", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestLogger_PassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := middleware.Logger(logger)(okHandler())

	req := httptest.NewRequest("GET", "/files", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("response = (%d, %q), want (200, ok)", rec.Code, rec.Body.String())
	}
}
