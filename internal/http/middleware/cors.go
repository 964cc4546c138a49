package middleware

import (
	"net/http"
	"strings"
)

// Header values advertised on every response. The relay accepts exactly one
// content type and two methods.
const (
	AllowedMethods = "POST, OPTIONS"
	AllowedHeaders = "Content-Type"
)

// OriginPolicy computes Access-Control-Allow-Origin values from a configured
// allow-list. Explicitly listed origins are echoed back; everything else
// falls back to the wildcard when one is configured, or to the first
// configured origin.
type OriginPolicy struct {
	allowAny bool
	allowed  map[string]struct{}
	fallback string
}

// NewOriginPolicy builds a policy from the configured origin list. An empty
// list behaves like the wildcard.
func NewOriginPolicy(allowedOrigins []string) *OriginPolicy {
	p := &OriginPolicy{allowed: map[string]struct{}{}}
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			p.allowAny = true
			continue
		}
		if p.fallback == "" {
			p.fallback = origin
		}
		p.allowed[origin] = struct{}{}
	}
	if p.allowAny || p.fallback == "" {
		p.fallback = "*"
	}
	return p
}

// Resolve returns the allow-origin header value for a request origin and
// whether that origin was echoed back. Echoed responses need Vary: Origin so
// shared caches do not serve one origin's response to another.
func (p *OriginPolicy) Resolve(origin string) (value string, echoed bool) {
	origin = strings.TrimSpace(origin)
	if origin != "" {
		if _, ok := p.allowed[origin]; ok {
			return origin, true
		}
	}
	return p.fallback, false
}

// CORS applies the relay's origin policy to every response and answers
// preflight requests with 204 and an empty body.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	policy := NewOriginPolicy(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value, echoed := policy.Resolve(r.Header.Get("Origin"))
			w.Header().Set("Access-Control-Allow-Origin", value)
			if echoed {
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", AllowedHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
