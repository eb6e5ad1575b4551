// Package webhook relays finalized quote submissions to an HTTP endpoint.
// Each submission is posted exactly once; any HTTP answer is handed back to
// the caller, which decides whether it counts as success.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"quote-calculator/core/types"
)

// Header names set on every relay request
const (
	HeaderSignature      = "X-Signature"
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
)

// maxResponseBody caps how much of the relay answer is kept for logging
const maxResponseBody = 64 << 10

// Config configures the relay endpoint
type Config struct {
	// Endpoint URL
	Endpoint string

	// Secret signs the body when set
	Secret string

	// Headers to include
	Headers map[string]string

	// Timeout for the whole request; the caller's context may be shorter
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(endpoint string) *Config {
	return &Config{
		Endpoint: endpoint,
		Timeout:  10 * time.Second,
		Headers:  make(map[string]string),
	}
}

// Adapter is the HTTP relay transport
type Adapter struct {
	config     *Config
	httpClient *http.Client
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// New creates a new relay adapter. Redirects are returned as-is so a 3xx
// counts as the single attempt.
func New(config *Config) *Adapter {
	return NewWithClient(config, &http.Client{
		Timeout: config.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	})
}

// NewWithClient creates a relay adapter around an existing client
func NewWithClient(config *Config, client *http.Client) *Adapter {
	return &Adapter{
		config:     config,
		httpClient: client,
		tracer:     otel.Tracer("quote-calculator/webhook"),
		propagator: otel.GetTextMapPropagator(),
	}
}

// Post sends record to the relay endpoint once. Transport errors are returned
// as errors; every HTTP answer is returned as a RelayResponse.
func (a *Adapter) Post(ctx context.Context, record types.SubmissionRecord) (types.RelayResponse, error) {
	ctx, span := a.tracer.Start(ctx, "webhook.Post", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	body, err := json.Marshal(record)
	if err != nil {
		return types.RelayResponse{}, fmt.Errorf("failed to encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return types.RelayResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	id := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderRequestID, id)
	req.Header.Set(HeaderIdempotencyKey, id)
	for k, v := range a.config.Headers {
		req.Header.Set(k, v)
	}
	if a.config.Secret != "" {
		req.Header.Set(HeaderSignature, Sign(body, a.config.Secret))
	}
	a.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	span.SetAttributes(
		attribute.String("http.method", http.MethodPost),
		attribute.String("http.url", a.config.Endpoint),
		attribute.String("relay.request_id", id),
	)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return types.RelayResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
	}

	return types.RelayResponse{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// Sign returns the hex HMAC-SHA256 of payload under secret
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies an incoming webhook signature
func VerifySignature(payload []byte, signature, secret string) bool {
	return hmac.Equal([]byte(signature), []byte(Sign(payload, secret)))
}
