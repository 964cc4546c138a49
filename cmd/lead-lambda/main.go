package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	appconfig "lofty-lead-relay/internal/config"
	httpmiddleware "lofty-lead-relay/internal/http/middleware"
	"lofty-lead-relay/internal/intake"
	"lofty-lead-relay/internal/lofty"
	"lofty-lead-relay/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	client := lofty.NewClient(cfg.LoftyAPIKey, logger,
		lofty.WithBaseURL(cfg.LoftyBaseURL),
		lofty.WithTimeout(cfg.LoftyTimeout),
	)

	handler := intake.NewHandler(client, intake.Options{
		APIKeyConfigured: cfg.LoftyAPIKey != "",
		DefaultSource:    cfg.DefaultSource,
		DefaultTags:      cfg.DefaultTags,
		AssigneeID:       cfg.AssigneeID,
		AssigneeKeyStyle: cfg.AssigneeKeyStyle,
	}, logger, nil)

	policy := httpmiddleware.NewOriginPolicy(cfg.AllowedOrigins)

	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return handle(ctx, handler, policy, evt)
	})
}

func handle(ctx context.Context, handler *intake.Handler, policy *httpmiddleware.OriginPolicy, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	cors := corsHeaders(policy, headerValue(evt.Headers, "origin"))

	method := strings.ToUpper(strings.TrimSpace(evt.RequestContext.HTTP.Method))
	if method == http.MethodOptions {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusNoContent, Headers: cors}, nil
	}
	if method != http.MethodPost {
		return respond(http.StatusMethodNotAllowed, map[string]any{"error": "Method not allowed"}, cors), nil
	}

	body, err := decodeBody(evt)
	if err != nil {
		return respond(http.StatusInternalServerError, map[string]any{"error": "Server error", "detail": err.Error()}, cors), nil
	}

	resp := handler.Relay(ctx, body)
	return respond(resp.Status, resp.Body, cors), nil
}

func corsHeaders(policy *httpmiddleware.OriginPolicy, origin string) map[string]string {
	value, echoed := policy.Resolve(origin)
	headers := map[string]string{
		"Access-Control-Allow-Origin":  value,
		"Access-Control-Allow-Methods": httpmiddleware.AllowedMethods,
		"Access-Control-Allow-Headers": httpmiddleware.AllowedHeaders,
	}
	if echoed {
		headers["Vary"] = "Origin"
	}
	return headers
}

func respond(status int, body map[string]any, cors map[string]string) events.APIGatewayV2HTTPResponse {
	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range cors {
		headers[k] = v
	}
	encoded, _ := json.Marshal(body)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Body:       string(encoded),
		Headers:    headers,
	}
}

func decodeBody(evt events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if !evt.IsBase64Encoded {
		return []byte(evt.Body), nil
	}
	return base64.StdEncoding.DecodeString(evt.Body)
}

func headerValue(headers map[string]string, key string) string {
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
