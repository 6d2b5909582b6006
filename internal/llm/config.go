// Package llm provides the external evaluation client: a provider-agnostic
// abstraction over hosted language models plus the error taxonomy the
// assessment engine uses to decide when to fall back.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for quick, low-cost checks
	TierLite ModelTier = "lite"
	// TierStandard is the tier used for feedback quality review
	TierStandard ModelTier = "standard"
	// TierAdvanced is for longer response sets that need more careful reading
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderChat is any endpoint speaking the chat-completions JSON shape over HTTP
	ProviderChat Provider = "chat"
	// ProviderOpenAI is the OpenAI API through the official SDK
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 30 * time.Second

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	// BaseURL overrides the provider endpoint. Required for ProviderChat.
	BaseURL string
	// Timeout bounds each call; zero means DefaultTimeout.
	Timeout time.Duration
	// SystemPrompt is sent as the system/preamble message when non-empty.
	SystemPrompt string
	Models       map[ModelTier]string
}

// DefaultConfig returns the default configuration (generic chat endpoint)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderChat,
		Timeout:  DefaultTimeout,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		},
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Timeout:  DefaultTimeout,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with every tier pointed at one model.
func (c *Config) WithModel(model string) *Config {
	next := *c
	next.Models = map[ModelTier]string{
		TierLite:     model,
		TierStandard: model,
		TierAdvanced: model,
	}
	return &next
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
