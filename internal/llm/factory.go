package llm

import (
	"fmt"
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/config"
	"github.com/IndigoBlueInChina/meetingsummary/internal/logger"
)

// New builds the Client selected by configuration. Provider selection
// happens once at startup; the rest of the pipeline only sees the
// Client interface.
func New(cfg config.LLMConfig, log logger.Logger) (Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch cfg.Provider {
	case "ollama":
		return NewOllama(cfg.Model, cfg.APIURL, timeout), nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm.api_key is required for provider openai")
		}
		return NewChat("openai", cfg.Model, chatURL(cfg.APIURL, openAIURL), cfg.APIKey, timeout), nil

	case "deepseek":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm.api_key is required for provider deepseek")
		}
		return NewChat("deepseek", cfg.Model, chatURL(cfg.APIURL, deepseekURL), cfg.APIKey, timeout), nil

	case "gemini":
		keys := cfg.APIKeys
		if len(keys) == 0 && cfg.APIKey != "" {
			keys = []string{cfg.APIKey}
		}
		if len(keys) == 0 {
			return nil, fmt.Errorf("llm.api_key or llm.api_keys is required for provider gemini")
		}
		return NewGemini(cfg.Model, keys, log), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

func chatURL(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}
