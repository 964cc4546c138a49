// Package lofty provides a client for the Lofty CRM lead-creation API.
package lofty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lofty-lead-relay/pkg/logging"
)

const (
	defaultBaseURL = "https://api.lofty.com/v1.0"
	defaultTimeout = 10 * time.Second
)

// APIError is a non-2xx response from Lofty. The raw body is retained so
// callers can pass the upstream diagnostic through verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lofty API returned %d: %s", e.StatusCode, e.Body)
}

// Client is a Lofty REST API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the production API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout overrides the outbound HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a new Lofty API client.
func NewClient(apiKey string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateLeadResult is the parsed response from lead creation. LeadID is a
// string or number depending on API version, or nil when Lofty returned no
// recognizable identifier.
type CreateLeadResult struct {
	LeadID any
}

// CreateLead posts a lead payload to Lofty and extracts the created lead's
// identifier. Lofty has returned the id under several shapes across API
// versions (top-level id or leadId, nested lead.id or data.id); all are
// accepted, and an unparsable success body yields a nil LeadID rather than
// an error.
func (c *Client) CreateLead(ctx context.Context, payload LeadPayload) (*CreateLeadResult, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/leads", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	// Lofty uses a custom "token" scheme, not Bearer.
	req.Header.Set("Authorization", "token "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return &CreateLeadResult{LeadID: extractLeadID(respBody)}, nil
}

func extractLeadID(body []byte) any {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}
	if id, ok := parsed["id"]; ok && id != nil {
		return id
	}
	if id, ok := parsed["leadId"]; ok && id != nil {
		return id
	}
	for _, key := range []string{"lead", "data"} {
		if nested, ok := parsed[key].(map[string]any); ok {
			if id, ok := nested["id"]; ok && id != nil {
				return id
			}
		}
	}
	return nil
}
