package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "lofty-lead-relay/internal/http/middleware"
	"lofty-lead-relay/internal/intake"
	"lofty-lead-relay/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	IntakeHandler      *intake.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// The intake handler performs its own method gate; OPTIONS is handled by
	// the CORS middleware above.
	r.Handle("/lead-intake", cfg.IntakeHandler)

	return r
}
