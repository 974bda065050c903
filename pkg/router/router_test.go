package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"go-data-quality/pkg/router"
)

func newTestRouter(origins []string) *router.Router {
	r := router.New(zap.NewNop(), origins)
	r.GET("/api/v1/items", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("list"))
	})
	r.GET("/api/v1/items/*", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("item"))
	})
	r.DELETE("/api/v1/items/*", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.GET("/docs/*", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("docs"))
	})
	return r
}

func do(t *testing.T, r *router.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec
}

func TestExactRoute(t *testing.T) {
	rec := do(t, newTestRouter(nil), http.MethodGet, "/api/v1/items")
	if rec.Code != http.StatusOK || rec.Body.String() != "list" {
		t.Fatalf("exact route failed: %d %q", rec.Code, rec.Body.String())
	}
}

func TestWildcardSegment(t *testing.T) {
	rec := do(t, newTestRouter(nil), http.MethodGet, "/api/v1/items/abc-123")
	if rec.Code != http.StatusOK || rec.Body.String() != "item" {
		t.Fatalf("wildcard route failed: %d %q", rec.Code, rec.Body.String())
	}
}

func TestTrailingWildcardMatchesDeepPaths(t *testing.T) {
	rec := do(t, newTestRouter(nil), http.MethodGet, "/docs/index.html")
	if rec.Code != http.StatusOK {
		t.Fatalf("trailing wildcard should match one segment: %d", rec.Code)
	}
	rec = do(t, newTestRouter(nil), http.MethodGet, "/docs/assets/app.js")
	if rec.Code != http.StatusOK {
		t.Fatalf("trailing wildcard should match deep paths: %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestRouter(nil), http.MethodPost, "/api/v1/items")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestNotFound(t *testing.T) {
	rec := do(t, newTestRouter(nil), http.MethodGet, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMethodDispatchOnWildcard(t *testing.T) {
	rec := do(t, newTestRouter(nil), http.MethodDelete, "/api/v1/items/abc")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete on wildcard failed: %d", rec.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	r := newTestRouter([]string{"*"})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS header, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter([]string{"http://example.com"})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/items", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight should return 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	r := newTestRouter([]string{"http://example.com"})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	req.Header.Set("Origin", "http://evil.com")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("disallowed origin must get no CORS header, got %q", got)
	}
}
