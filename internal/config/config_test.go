package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	qerrors "quote-calculator/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadHCL checks blocks override only the attributes they set
func TestLoadHCL(t *testing.T) {
	t.Setenv("RELAY_TOKEN", "from-env")
	path := writeFile(t, "quote.hcl", `
env = "staging"

relay {
  endpoint = "https://relay.example/posts"
  secret   = env.RELAY_TOKEN
  timeout  = "3s"
  headers  = { "X-Site" = "agency" }
}

antiforgery {
  secret = "form-secret"
}

http {
  cors_origins = ["https://agency.example"]
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "staging" {
		t.Errorf("Expected env staging, got %s", cfg.Env)
	}
	if cfg.Relay.Secret != "from-env" {
		t.Errorf("Expected secret from env, got %q", cfg.Relay.Secret)
	}
	if cfg.Relay.TimeoutDuration() != 3*time.Second {
		t.Errorf("Expected 3s, got %s", cfg.Relay.TimeoutDuration())
	}
	if cfg.Relay.Headers["X-Site"] != "agency" {
		t.Errorf("unexpected headers %v", cfg.Relay.Headers)
	}
	if cfg.Relay.Kind != RelayHTTP || cfg.HTTP.Address != ":8080" {
		t.Error("attributes missing from the file must keep their defaults")
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "https://agency.example" {
		t.Errorf("unexpected cors origins %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Display.CurrencyPrefix != "R" {
		t.Errorf("Expected default prefix R, got %s", cfg.Display.CurrencyPrefix)
	}
}

// TestLoadYAMLWithEnvOverride checks QUOTE_* variables win over the file
func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := writeFile(t, "quote.yaml", `
relay:
  endpoint: https://relay.example/posts
  timeout: 4s
directory:
  cache_ttl: 10m
`)
	t.Setenv("QUOTE_RELAY_TIMEOUT", "7s")
	t.Setenv("QUOTE_DISPLAY_CURRENCY_PREFIX", "$")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Relay.TimeoutDuration() != 7*time.Second {
		t.Errorf("Expected env override 7s, got %s", cfg.Relay.TimeoutDuration())
	}
	if cfg.Directory.CacheTTLDuration() != 10*time.Minute {
		t.Errorf("Expected 10m, got %s", cfg.Directory.CacheTTLDuration())
	}
	if cfg.Display.CurrencyPrefix != "$" {
		t.Errorf("Expected $, got %s", cfg.Display.CurrencyPrefix)
	}
}

// TestLoadEnvOnly checks the file is optional
func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("QUOTE_RELAY_ENDPOINT", "http://localhost:9000/hook")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Relay.Endpoint != "http://localhost:9000/hook" || !cfg.IsLocal() {
		t.Errorf("unexpected config %+v", cfg.Relay)
	}
}

func TestLoadRejectsUnknownHCLBlock(t *testing.T) {
	path := writeFile(t, "bad.hcl", `database { dsn = "x" }`)
	_, err := Load(path)
	if !qerrors.IsType(err, qerrors.TypeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

// TestValidate lists the rules one at a time
func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Relay.Endpoint = "https://relay.example/posts"
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("defaults with endpoint must validate: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing endpoint", func(c *Config) { c.Relay.Endpoint = "" }, "relay.endpoint"},
		{"relative endpoint", func(c *Config) { c.Relay.Endpoint = "/posts" }, "relay.endpoint"},
		{"kafka without brokers", func(c *Config) { c.Relay.Kind = RelayKafka }, "relay.kafka_brokers"},
		{"unknown relay", func(c *Config) { c.Relay.Kind = "smtp" }, "relay.kind"},
		{"bad duration", func(c *Config) { c.Relay.Timeout = "ten seconds" }, "relay.timeout"},
		{"secret outside local", func(c *Config) { c.Env = "production" }, "antiforgery.secret"},
		{"body size", func(c *Config) { c.HTTP.MaxBodySize = 0 }, "http.max_body_size"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if !qerrors.IsType(err, qerrors.TypeConfig) {
				t.Fatalf("expected config error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected %q in %q", tc.want, err.Error())
			}
		})
	}

	kafka := valid()
	kafka.Relay.Kind = RelayKafka
	kafka.Relay.Endpoint = ""
	kafka.Relay.KafkaBrokers = []string{"localhost:9092"}
	if err := kafka.Validate(); err != nil {
		t.Errorf("kafka relay with brokers must validate: %v", err)
	}
}

func TestDurationFallback(t *testing.T) {
	h := HTTPConfig{ReadTimeout: "nope"}
	if h.ReadTimeoutDuration() != 5*time.Second {
		t.Errorf("Expected fallback 5s, got %s", h.ReadTimeoutDuration())
	}
}
