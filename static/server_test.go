package static

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestIndexFallback(t *testing.T) {
	for _, p := range []string{"/", "/write", "/missing.js"} {
		w := get(t, p)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: got %d, want %d", p, w.Code, http.StatusOK)
		}
		if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
			t.Fatalf("%s: expected html, got %q", p, w.Header().Get("Content-Type"))
		}
		if w.Header().Get("Cache-Control") != "no-cache" {
			t.Fatalf("%s: index should not be cached", p)
		}
	}
}

func TestAssetsServed(t *testing.T) {
	w := get(t, "/app.js")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "javascript") {
		t.Fatalf("unexpected content type %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "/api/run") {
		t.Fatal("app.js should post to the run endpoint")
	}
}
