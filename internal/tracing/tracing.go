// Package tracing sets up the OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config configures trace export
type Config struct {
	// JaegerEndpoint is the collector URL or host:port; empty disables export
	JaegerEndpoint string `hcl:"jaeger_endpoint,optional" yaml:"jaeger_endpoint" env:"QUOTE_TRACING_JAEGER_ENDPOINT"`

	// ServiceName is reported on every span
	ServiceName string `hcl:"service_name,optional" yaml:"service_name" env:"QUOTE_TRACING_SERVICE_NAME" env-default:"quote-calculator"`
}

// ShutdownFunc flushes and stops the provider
type ShutdownFunc func(ctx context.Context) error

// Init installs the global propagator and, when an endpoint is configured, a
// Jaeger-exporting tracer provider. Without an endpoint the global no-op
// provider stays in place so spans cost nothing.
func Init(cfg Config) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if strings.TrimSpace(cfg.JaegerEndpoint) == "" {
		return func(context.Context) error { return nil }, nil
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(NormalizeCollector(cfg.JaegerEndpoint)),
	))
	if err != nil {
		return nil, fmt.Errorf("create jaeger exporter: %w", err)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "quote-calculator"
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// NormalizeCollector turns host:port or a base URL into the collector's
// /api/traces endpoint.
func NormalizeCollector(value string) string {
	endpoint := strings.TrimSpace(value)
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	if strings.HasSuffix(endpoint, "/api/traces") {
		return endpoint
	}
	return fmt.Sprintf("%s/api/traces", strings.TrimSuffix(endpoint, "/"))
}
