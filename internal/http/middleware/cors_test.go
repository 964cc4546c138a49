package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsRequest(t *testing.T, allowed []string, method, origin string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	mw := CORS(allowed)
	req := httptest.NewRequest(method, "/lead-intake", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, req)
	return rec, called
}

func TestCORSEchoesListedOrigin(t *testing.T) {
	rec, called := corsRequest(t, []string{"https://example.com"}, http.MethodPost, "https://example.com")

	if !called {
		t.Fatalf("expected handler to be called")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Fatalf("expected Vary: Origin, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "POST, OPTIONS" {
		t.Fatalf("expected POST, OPTIONS advertised, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Fatalf("expected Content-Type advertised, got %q", got)
	}
}

func TestCORSUnlistedOriginUnderWildcard(t *testing.T) {
	rec, _ := corsRequest(t, []string{"*"}, http.MethodPost, "https://unknown.example")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard fallback, got %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "" {
		t.Fatalf("expected no Vary header on fallback, got %q", got)
	}
}

func TestCORSUnlistedOriginFallsBackToFirstConfigured(t *testing.T) {
	rec, _ := corsRequest(t, []string{"https://a.example", "https://b.example"}, http.MethodPost, "https://unknown.example")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://a.example" {
		t.Fatalf("expected first configured origin, got %q", got)
	}
}

func TestCORSNoOriginHeader(t *testing.T) {
	rec, _ := corsRequest(t, []string{"https://a.example"}, http.MethodPost, "")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://a.example" {
		t.Fatalf("expected fallback origin, got %q", got)
	}
}

func TestCORSEmptyListBehavesAsWildcard(t *testing.T) {
	rec, _ := corsRequest(t, nil, http.MethodPost, "https://any.example")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard, got %q", got)
	}
}

func TestCORSHandlesPreflight(t *testing.T) {
	rec, called := corsRequest(t, []string{"https://example.com"}, http.MethodOptions, "https://example.com")

	if called {
		t.Fatalf("expected handler to not be called on preflight")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty preflight body, got %q", rec.Body.String())
	}
}

func TestResolveOrigin(t *testing.T) {
	policy := NewOriginPolicy([]string{"https://a.example", "*"})

	value, echoed := policy.Resolve("https://a.example")
	if value != "https://a.example" || !echoed {
		t.Fatalf("expected listed origin echoed, got %q echoed=%v", value, echoed)
	}

	value, echoed = policy.Resolve("https://other.example")
	if value != "*" || echoed {
		t.Fatalf("expected wildcard fallback, got %q echoed=%v", value, echoed)
	}
}
