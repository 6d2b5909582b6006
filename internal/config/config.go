// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/jonathan/feedback-quality/internal/llm"
	"github.com/jonathan/feedback-quality/internal/prompts"
)

// Environment variables read by FromEnv.
const (
	EnvProvider         = "FEEDBACK_AI_PROVIDER"
	EnvAPIKey           = "FEEDBACK_AI_API_KEY"
	EnvBaseURL          = "FEEDBACK_AI_BASE_URL"
	EnvModel            = "FEEDBACK_AI_MODEL"
	EnvTimeout          = "FEEDBACK_AI_TIMEOUT"
	EnvCacheTTL         = "FEEDBACK_AI_CACHE_TTL"
	EnvBreakerThreshold = "FEEDBACK_AI_BREAKER_THRESHOLD"
	EnvBreakerCooldown  = "FEEDBACK_AI_BREAKER_COOLDOWN"
	EnvDatabaseURL      = "DATABASE_URL"
	EnvRedisURL         = "REDIS_URL"
	EnvPort             = "PORT"
)

// Defaults
const (
	DefaultProvider         = string(llm.ProviderChat)
	DefaultTimeout          = 30 * time.Second
	DefaultCacheTTL         = time.Hour
	DefaultBreakerThreshold = 5
	DefaultBreakerCooldown  = 60 * time.Second
	DefaultPort             = 8080
)

// Duration is a time.Duration that reads from JSON as "30s" or as a number of seconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("invalid duration %s", string(data))
	}
	*d = Duration(time.Duration(seconds * float64(time.Second)))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config is the service configuration. All fields are optional in the file;
// Defaults supplies the rest.
type Config struct {
	// Model provider
	Provider string   `json:"provider,omitempty"` // chat, openai or gemini
	APIKey   string   `json:"api_key,omitempty"`  // Empty disables model-backed review
	BaseURL  string   `json:"base_url,omitempty"` // Required for the chat provider
	Model    string   `json:"model,omitempty"`    // Overrides every model tier
	Timeout  Duration `json:"timeout,omitempty"`  // Per-call bound

	// Client decorators
	RedisURL         string   `json:"redis_url,omitempty"`         // Enables the response cache
	CacheTTL         Duration `json:"cache_ttl,omitempty"`         // Cached reply lifetime
	BreakerThreshold int      `json:"breaker_threshold,omitempty"` // Consecutive failures before the breaker opens
	BreakerCooldown  Duration `json:"breaker_cooldown,omitempty"`  // Time the breaker stays open

	// Service
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL campaign store
	Port        int    `json:"port,omitempty"`
	Verbose     bool   `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:         DefaultProvider,
		Timeout:          Duration(DefaultTimeout),
		CacheTTL:         Duration(DefaultCacheTTL),
		BreakerThreshold: DefaultBreakerThreshold,
		BreakerCooldown:  Duration(DefaultBreakerCooldown),
		Port:             DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the optional file,
// then the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// FromEnv returns a configuration read from the environment alone, with defaults applied.
func FromEnv() (*Config, error) {
	return Load("")
}

// ApplyEnv overlays every set environment variable onto the config.
// getenv is os.Getenv outside of tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	var errs *multierror.Error

	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *Duration) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: invalid duration %q", key, v))
			return
		}
		*dst = Duration(d)
	}
	setInt := func(key string, dst *int) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: invalid integer %q", key, v))
			return
		}
		*dst = n
	}

	setString(EnvProvider, &c.Provider)
	setString(EnvAPIKey, &c.APIKey)
	setString(EnvBaseURL, &c.BaseURL)
	setString(EnvModel, &c.Model)
	setDuration(EnvTimeout, &c.Timeout)
	setString(EnvRedisURL, &c.RedisURL)
	setDuration(EnvCacheTTL, &c.CacheTTL)
	setInt(EnvBreakerThreshold, &c.BreakerThreshold)
	setDuration(EnvBreakerCooldown, &c.BreakerCooldown)
	setString(EnvDatabaseURL, &c.DatabaseURL)
	setInt(EnvPort, &c.Port)

	return errs.ErrorOrNil()
}

// Validate checks that the configuration has valid values and reports every problem at once.
func (c *Config) Validate() error {
	var errs *multierror.Error

	switch llm.Provider(c.Provider) {
	case llm.ProviderChat, llm.ProviderOpenAI, llm.ProviderGemini:
	default:
		errs = multierror.Append(errs, fmt.Errorf("config error: unknown provider %q", c.Provider))
	}
	if llm.Provider(c.Provider) == llm.ProviderChat && c.APIKey != "" && c.BaseURL == "" {
		errs = multierror.Append(errs, fmt.Errorf("config error: 'base_url' is required for the chat provider"))
	}

	if c.Timeout < 0 {
		errs = multierror.Append(errs, fmt.Errorf("config error: 'timeout' must be non-negative"))
	}
	if c.CacheTTL < 0 {
		errs = multierror.Append(errs, fmt.Errorf("config error: 'cache_ttl' must be non-negative"))
	}
	if c.BreakerThreshold < 0 {
		errs = multierror.Append(errs, fmt.Errorf("config error: 'breaker_threshold' must be non-negative"))
	}
	if c.BreakerCooldown < 0 {
		errs = multierror.Append(errs, fmt.Errorf("config error: 'breaker_cooldown' must be non-negative"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = multierror.Append(errs, fmt.Errorf("config error: 'port' must be between 0 and 65535"))
	}

	if c.RedisURL != "" && !hasScheme(c.RedisURL, "redis", "rediss") {
		errs = multierror.Append(errs, fmt.Errorf("config error: 'redis_url' must use the redis:// or rediss:// scheme"))
	}
	if c.DatabaseURL != "" && !hasScheme(c.DatabaseURL, "postgres", "postgresql") {
		errs = multierror.Append(errs, fmt.Errorf("config error: 'database_url' must use the postgres:// or postgresql:// scheme"))
	}

	return errs.ErrorOrNil()
}

func hasScheme(rawURL string, schemes ...string) bool {
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return true
		}
	}
	return false
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Numeric fields: use default if zero
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	if result.CacheTTL == 0 {
		result.CacheTTL = defaults.CacheTTL
	}
	if result.BreakerThreshold == 0 {
		result.BreakerThreshold = defaults.BreakerThreshold
	}
	if result.BreakerCooldown == 0 {
		result.BreakerCooldown = defaults.BreakerCooldown
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// AIEnabled reports whether a model credential is configured.
func (c *Config) AIEnabled() bool {
	return c.APIKey != ""
}

// LLMConfig returns the client configuration for llm.NewClient.
func (c *Config) LLMConfig() *llm.Config {
	var cfg *llm.Config
	if llm.Provider(c.Provider) == llm.ProviderGemini {
		cfg = llm.DefaultGeminiConfig()
	} else {
		cfg = llm.DefaultConfig()
	}
	if c.Provider != "" {
		cfg.Provider = llm.Provider(c.Provider)
	}
	if c.Model != "" {
		cfg = cfg.WithModel(c.Model)
	}

	cfg.BaseURL = c.BaseURL
	cfg.Timeout = time.Duration(c.Timeout)
	cfg.SystemPrompt = prompts.MustGet(prompts.FeedbackFile, prompts.KeyReviewerPreamble)
	return cfg
}
