package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// Config carries everything a provider client needs.
type Config struct {
	Provider  Provider
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	MaxTokens int
	// RateLimit is requests per minute; zero disables limiting.
	RateLimit int
	// Language is the spoken language of recordings, as a BCP 47 tag
	// ("en-US") or an ISO-639-1 code ("en").
	Language string
}

// Factory creates LLM instances based on provider
type Factory struct{}

// NewFactory creates a new LLM factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateLLM creates an LLM instance based on provider and configuration
func (f *Factory) CreateLLM(cfg Config) (LLM, error) {
	var client LLM
	switch cfg.Provider {
	case ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Claude API key is required")
		}
		client = NewClaudeWithConfig(cfg)

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		client = NewOpenAIWithConfig(cfg)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	return RateLimited(client, cfg.RateLimit), nil
}

// CreateFromEnv fills the unset fields of cfg from environment variables and
// creates the client. OpenAI is the default because it is the only provider
// that can also transcribe audio.
func (f *Factory) CreateFromEnv(cfg Config) (LLM, error) {
	if cfg.Provider == "" {
		cfg.Provider = Provider(strings.ToLower(os.Getenv("LLM_PROVIDER")))
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		cfg.Provider = ProviderOpenAI
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		if cfg.Model == "" {
			cfg.Model = os.Getenv("OPENAI_MODEL")
		}

	case ProviderClaude:
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		if cfg.Model == "" {
			cfg.Model = os.Getenv("CLAUDE_MODEL")
		}

	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER: %s (supported: %s)", cfg.Provider, f.ProviderNames())
	}

	return f.CreateLLM(cfg)
}

// GetAvailableProviders returns a list of available LLM providers
func (f *Factory) GetAvailableProviders() []Provider {
	return []Provider{ProviderClaude, ProviderOpenAI}
}

// ProviderNames joins GetAvailableProviders for help and error text.
func (f *Factory) ProviderNames() string {
	names := make([]string, 0, 2)
	for _, p := range f.GetAvailableProviders() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// CreateFromEnv creates an LLM instance from environment variables
// This is a convenience function that creates a new factory and uses it
func CreateFromEnv(cfg Config) (LLM, error) {
	cfg.Provider = Provider(strings.ToLower(string(cfg.Provider)))
	return NewFactory().CreateFromEnv(cfg)
}
