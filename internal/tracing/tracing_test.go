package tracing

import (
	"context"
	"testing"
)

func TestNormalizeCollector(t *testing.T) {
	cases := map[string]string{
		"jaeger:14268":                         "http://jaeger:14268/api/traces",
		"http://jaeger:14268/":                 "http://jaeger:14268/api/traces",
		"https://collector.example/api/traces": "https://collector.example/api/traces",
		"  localhost:14268  ":                  "http://localhost:14268/api/traces",
	}
	for in, want := range cases {
		if got := NormalizeCollector(in); got != want {
			t.Errorf("NormalizeCollector(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown returned %v", err)
	}
}
