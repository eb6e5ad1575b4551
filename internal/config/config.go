// Package config provides configuration management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	qerrors "quote-calculator/internal/errors"
	"quote-calculator/internal/logging"
	"quote-calculator/internal/tracing"
)

// EnvLocal relaxes secret requirements for development
const EnvLocal = "local"

// Relay kinds
const (
	RelayHTTP  = "http"
	RelayKafka = "kafka"
)

// Config is the main application configuration
type Config struct {
	// Env names the deployment (local, staging, production)
	Env string `hcl:"env,optional" yaml:"env" env:"QUOTE_ENV" env-default:"local"`

	// Logging contains logging configuration
	Logging logging.Config `yaml:"logging"`

	// HTTP contains server configuration
	HTTP HTTPConfig `yaml:"http"`

	// Relay configures the submission transport
	Relay RelayConfig `yaml:"relay"`

	// Directory configures the account-manager lookup
	Directory DirectoryConfig `yaml:"directory"`

	// AntiForgery configures token issuance
	AntiForgery AntiForgeryConfig `yaml:"antiforgery"`

	// Tracing configures span export
	Tracing tracing.Config `yaml:"tracing"`

	// Display contains presentation settings
	Display DisplayConfig `yaml:"display"`
}

// HTTPConfig contains server settings. Durations are Go duration strings.
type HTTPConfig struct {
	Address         string   `hcl:"address,optional" yaml:"address" env:"QUOTE_HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout     string   `hcl:"read_timeout,optional" yaml:"read_timeout" env:"QUOTE_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    string   `hcl:"write_timeout,optional" yaml:"write_timeout" env:"QUOTE_HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout string   `hcl:"shutdown_timeout,optional" yaml:"shutdown_timeout" env:"QUOTE_HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodySize     int64    `hcl:"max_body_size,optional" yaml:"max_body_size" env:"QUOTE_HTTP_MAX_BODY_SIZE" env-default:"1048576"`
	CORSOrigins     []string `hcl:"cors_origins,optional" yaml:"cors_origins" env:"QUOTE_HTTP_CORS_ORIGINS"`
}

// RelayConfig selects and configures the submission transport
type RelayConfig struct {
	// Kind is http or kafka
	Kind string `hcl:"kind,optional" yaml:"kind" env:"QUOTE_RELAY_KIND" env-default:"http"`

	// Endpoint receives the JSON POST when Kind is http
	Endpoint string `hcl:"endpoint,optional" yaml:"endpoint" env:"QUOTE_RELAY_ENDPOINT"`

	// Secret signs the relay body when set
	Secret string `hcl:"secret,optional" yaml:"secret" env:"QUOTE_RELAY_SECRET"`

	// Timeout bounds the single relay attempt
	Timeout string `hcl:"timeout,optional" yaml:"timeout" env:"QUOTE_RELAY_TIMEOUT" env-default:"10s"`

	// Headers are added to every relay request
	Headers map[string]string `hcl:"headers,optional" yaml:"headers" env:"QUOTE_RELAY_HEADERS"`

	KafkaBrokers []string `hcl:"kafka_brokers,optional" yaml:"kafka_brokers" env:"QUOTE_RELAY_KAFKA_BROKERS"`
	KafkaTopic   string   `hcl:"kafka_topic,optional" yaml:"kafka_topic" env:"QUOTE_RELAY_KAFKA_TOPIC" env-default:"quote-submissions"`
}

// DirectoryConfig configures the name lookup and its cache
type DirectoryConfig struct {
	BaseURL       string `hcl:"base_url,optional" yaml:"base_url" env:"QUOTE_DIRECTORY_BASE_URL" env-default:"https://jsonplaceholder.typicode.com"`
	Timeout       string `hcl:"timeout,optional" yaml:"timeout" env:"QUOTE_DIRECTORY_TIMEOUT" env-default:"5s"`
	CacheTTL      string `hcl:"cache_ttl,optional" yaml:"cache_ttl" env:"QUOTE_DIRECTORY_CACHE_TTL" env-default:"1h"`
	RedisAddr     string `hcl:"redis_addr,optional" yaml:"redis_addr" env:"QUOTE_DIRECTORY_REDIS_ADDR"`
	RedisPassword string `hcl:"redis_password,optional" yaml:"redis_password" env:"QUOTE_DIRECTORY_REDIS_PASSWORD"`
	RedisDB       int    `hcl:"redis_db,optional" yaml:"redis_db" env:"QUOTE_DIRECTORY_REDIS_DB"`
}

// AntiForgeryConfig configures the form token
type AntiForgeryConfig struct {
	Secret       string `hcl:"secret,optional" yaml:"secret" env:"QUOTE_ANTIFORGERY_SECRET"`
	Lifetime     string `hcl:"lifetime,optional" yaml:"lifetime" env:"QUOTE_ANTIFORGERY_LIFETIME" env-default:"24h"`
	CookieName   string `hcl:"cookie_name,optional" yaml:"cookie_name" env:"QUOTE_ANTIFORGERY_COOKIE_NAME" env-default:"quote_session"`
	CookieSecure bool   `hcl:"cookie_secure,optional" yaml:"cookie_secure" env:"QUOTE_ANTIFORGERY_COOKIE_SECURE"`
}

// DisplayConfig contains presentation settings
type DisplayConfig struct {
	// CurrencyPrefix is printed before amounts
	CurrencyPrefix string `hcl:"currency_prefix,optional" yaml:"currency_prefix" env:"QUOTE_DISPLAY_CURRENCY_PREFIX" env-default:"R"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Env: EnvLocal,
		Logging: logging.Config{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     "5s",
			WriteTimeout:    "15s",
			ShutdownTimeout: "10s",
			MaxBodySize:     1 << 20,
		},
		Relay: RelayConfig{
			Kind:       RelayHTTP,
			Timeout:    "10s",
			KafkaTopic: "quote-submissions",
		},
		Directory: DirectoryConfig{
			BaseURL:  "https://jsonplaceholder.typicode.com",
			Timeout:  "5s",
			CacheTTL: "1h",
		},
		AntiForgery: AntiForgeryConfig{
			Lifetime:   "24h",
			CookieName: "quote_session",
		},
		Tracing: tracing.Config{
			ServiceName: "quote-calculator",
		},
		Display: DisplayConfig{
			CurrencyPrefix: "R",
		},
	}
}

// Load builds the configuration from defaults, an optional .env file, the
// file at path (HCL when it ends in .hcl, otherwise YAML/JSON/TOML) and
// QUOTE_* environment variables, in that order. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, qerrors.Wrap(qerrors.TypeConfig, "failed to read .env", err)
	}

	cfg := Default()
	switch {
	case path == "":
	case strings.HasSuffix(path, ".hcl"):
		if err := loadHCL(path, cfg); err != nil {
			return nil, err
		}
	default:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, qerrors.Wrap(qerrors.TypeConfig, "failed to read "+path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, qerrors.Wrap(qerrors.TypeConfig, "failed to read environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	var problems []string

	for name, value := range map[string]string{
		"http.read_timeout":     c.HTTP.ReadTimeout,
		"http.write_timeout":    c.HTTP.WriteTimeout,
		"http.shutdown_timeout": c.HTTP.ShutdownTimeout,
		"relay.timeout":         c.Relay.Timeout,
		"directory.timeout":     c.Directory.Timeout,
		"directory.cache_ttl":   c.Directory.CacheTTL,
		"antiforgery.lifetime":  c.AntiForgery.Lifetime,
	} {
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			problems = append(problems, fmt.Sprintf("%s: invalid duration %q", name, value))
		}
	}

	switch c.Relay.Kind {
	case RelayHTTP:
		if u, err := url.Parse(c.Relay.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, "relay.endpoint: absolute URL required for http relay")
		}
	case RelayKafka:
		if len(c.Relay.KafkaBrokers) == 0 {
			problems = append(problems, "relay.kafka_brokers: at least one broker required")
		}
		if c.Relay.KafkaTopic == "" {
			problems = append(problems, "relay.kafka_topic: required")
		}
	default:
		problems = append(problems, fmt.Sprintf("relay.kind: unknown %q (want http or kafka)", c.Relay.Kind))
	}

	if u, err := url.Parse(c.Directory.BaseURL); err != nil || u.Scheme == "" {
		problems = append(problems, "directory.base_url: absolute URL required")
	}

	if c.Env != EnvLocal && c.AntiForgery.Secret == "" {
		problems = append(problems, "antiforgery.secret: required outside local")
	}

	if c.HTTP.MaxBodySize <= 0 {
		problems = append(problems, "http.max_body_size: must be positive")
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unknown %q", c.Logging.Format))
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return qerrors.Config("invalid configuration: "+strings.Join(problems, "; ")).
		WithContext("problems", problems)
}

// IsLocal reports whether the local development relaxations apply
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal
}

// ReadTimeoutDuration returns the parsed read timeout
func (h HTTPConfig) ReadTimeoutDuration() time.Duration {
	return duration(h.ReadTimeout, 5*time.Second)
}

// WriteTimeoutDuration returns the parsed write timeout
func (h HTTPConfig) WriteTimeoutDuration() time.Duration {
	return duration(h.WriteTimeout, 15*time.Second)
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout
func (h HTTPConfig) ShutdownTimeoutDuration() time.Duration {
	return duration(h.ShutdownTimeout, 10*time.Second)
}

// TimeoutDuration returns the parsed relay timeout
func (r RelayConfig) TimeoutDuration() time.Duration {
	return duration(r.Timeout, 10*time.Second)
}

// TimeoutDuration returns the parsed lookup timeout
func (d DirectoryConfig) TimeoutDuration() time.Duration {
	return duration(d.Timeout, 5*time.Second)
}

// CacheTTLDuration returns the parsed shared-cache TTL
func (d DirectoryConfig) CacheTTLDuration() time.Duration {
	return duration(d.CacheTTL, time.Hour)
}

// LifetimeDuration returns the parsed token lifetime
func (a AntiForgeryConfig) LifetimeDuration() time.Duration {
	return duration(a.Lifetime, 24*time.Hour)
}

func duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
