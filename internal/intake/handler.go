package intake

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"lofty-lead-relay/internal/lofty"
	"lofty-lead-relay/internal/observability/metrics"
	"lofty-lead-relay/pkg/logging"
)

// Response is the outcome of relaying one submission, independent of the
// transport (HTTP server or Lambda) that delivers it.
type Response struct {
	Status int
	Body   map[string]any
}

// Options carries the process-wide intake settings.
type Options struct {
	// APIKeyConfigured gates the relay: without a key the handler fails fast
	// instead of attempting an outbound call that Lofty would reject.
	APIKeyConfigured bool
	DefaultSource    string
	DefaultTags      []string
	AssigneeID       string
	AssigneeKeyStyle string
}

// Handler relays normalized lead submissions to Lofty. It holds no mutable
// state; each request is independent.
type Handler struct {
	client  *lofty.Client
	opts    Options
	logger  *logging.Logger
	metrics *metrics.IntakeMetrics
}

// NewHandler creates a new intake handler. metrics may be nil.
func NewHandler(client *lofty.Client, opts Options, logger *logging.Logger, m *metrics.IntakeMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		client:  client,
		opts:    opts,
		logger:  logger,
		metrics: m,
	}
}

// Relay processes one raw submission body and returns the response to send
// back to the form. It performs at most one outbound call to Lofty; every
// failure mode is terminal for the request.
func (h *Handler) Relay(ctx context.Context, body []byte) Response {
	if !h.opts.APIKeyConfigured {
		h.logger.Error("rejecting submission, no API key configured")
		return Response{
			Status: http.StatusInternalServerError,
			Body:   map[string]any{"error": "Missing LOFTY_API_KEY env var"},
		}
	}

	sub, err := ParseSubmission(body)
	if err != nil {
		h.logger.Error("failed to parse submission", "error", err)
		h.metrics.ObserveSubmission("error")
		return serverError(err)
	}

	lead := Normalize(sub)

	if lead.Honeypot != "" {
		// Report success so automated submitters cannot tell they were caught.
		h.logger.Info("honeypot triggered, dropping submission")
		h.metrics.ObserveSubmission("honeypot")
		return Response{Status: http.StatusOK, Body: map[string]any{"ok": true}}
	}

	lead, err = lead.Validate()
	if err != nil {
		h.metrics.ObserveSubmission("invalid")
		return Response{
			Status: http.StatusBadRequest,
			Body:   map[string]any{"error": err.Error()},
		}
	}

	source := lead.Source
	if source == "" {
		source = h.opts.DefaultSource
	}

	payload := lofty.BuildLeadPayload(lofty.LeadInput{
		FirstName:        lead.FirstName,
		LastName:         lead.LastName,
		Email:            lead.Email,
		Phone:            lead.Phone,
		Notes:            lead.Message,
		Source:           source,
		Tags:             lofty.MergeTags(h.opts.DefaultTags, lead.Tags),
		AssigneeID:       h.opts.AssigneeID,
		AssigneeKeyStyle: h.opts.AssigneeKeyStyle,
	})

	start := time.Now()
	result, err := h.client.CreateLead(ctx, payload)
	h.metrics.ObserveLoftyLatency(time.Since(start).Seconds())
	if err != nil {
		var apiErr *lofty.APIError
		if errors.As(err, &apiErr) {
			h.logger.Error("lofty rejected lead", "status", apiErr.StatusCode, "detail", apiErr.Body)
			h.metrics.ObserveSubmission("upstream_error")
			return Response{
				Status: http.StatusBadGateway,
				Body:   map[string]any{"error": "Lofty API error", "detail": apiErr.Body},
			}
		}
		h.logger.Error("lofty call failed", "error", err)
		h.metrics.ObserveSubmission("error")
		return serverError(err)
	}

	h.logger.Info("lead relayed", "lofty_lead_id", result.LeadID, "source", source)
	h.metrics.ObserveSubmission("relayed")
	return Response{
		Status: http.StatusOK,
		Body:   map[string]any{"ok": true, "loftyLeadId": result.LeadID},
	}
}

// ServeHTTP adapts Relay to net/http. OPTIONS preflights are answered by the
// CORS middleware before reaching here.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Method not allowed"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		resp := serverError(err)
		writeJSON(w, resp.Status, resp.Body)
		return
	}

	resp := h.Relay(r.Context(), body)
	writeJSON(w, resp.Status, resp.Body)
}

func serverError(err error) Response {
	return Response{
		Status: http.StatusInternalServerError,
		Body:   map[string]any{"error": "Server error", "detail": err.Error()},
	}
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
