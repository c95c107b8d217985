package llm

import (
	"context"
	"time"

	"github.com/moktagithub005/news-tool/internal/model"
)

// Provider defines the interface for text-transformer providers. The core
// pipeline depends on nothing beyond "give it a prompt, get text back or an
// error": every call is fallible and callers degrade to the deterministic
// fallback paths on failure instead of propagating the error.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the generated text. The
	// implementation applies the configured timeout; a timeout surfaces
	// as an ordinary error.
	Complete(ctx context.Context, req CompleteRequest) (*CompleteResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompleteRequest contains the input for a transformer call.
type CompleteRequest struct {
	// Prompt is the user-role content.
	Prompt string

	// System is an optional system-role instruction.
	System string

	// Model overrides the configured model (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// CompleteResponse contains the transformer's output.
type CompleteResponse struct {
	// Text is the generated text.
	Text string

	// Model is the model that generated the response.
	Model string

	// TokensUsed tracks token consumption.
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout time.Duration

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30 * time.Second,
		MaxTokens: 1500,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxTokens:  mc.MaxTokens,
		HTTPProxy:  mc.HTTPProxy,
		HTTPSProxy: mc.HTTPSProxy,
	}
}

// Key identifies a provider configuration for memoization in the Pool.
func (c Config) Key() string {
	return c.Provider + "|" + c.Model + "|" + c.BaseURL
}
