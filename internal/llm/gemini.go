package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/IndigoBlueInChina/meetingsummary/internal/logger"
)

type implGemini struct {
	model   string
	apiKeys []string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Client for the Gemini API that rotates through
// the supplied API keys when one is rate limited
func NewGemini(model string, apiKeys []string, log logger.Logger) Client {
	return &implGemini{
		model:   model,
		apiKeys: apiKeys,
		logger:  log,
	}
}

func (g *implGemini) Name() string {
	return "gemini/" + g.model
}

func (g *implGemini) Generate(ctx context.Context, prompt string, opts *Options) (string, error) {
	var genCfg *genai.GenerateContentConfig
	if opts != nil && (opts.Temperature != nil || opts.MaxTokens > 0) {
		genCfg = &genai.GenerateContentConfig{}
		if opts.Temperature != nil {
			genCfg.Temperature = genai.Ptr(float32(*opts.Temperature))
		}
		if opts.MaxTokens > 0 {
			genCfg.MaxOutputTokens = int32(opts.MaxTokens)
		}
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIndex := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", keyIndex+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			if strings.TrimSpace(text.String()) == "" {
				return "", ErrEmptyResponse
			}
			return text.String(), nil
		}

		return "", ErrEmptyResponse
	}

	return "", fmt.Errorf("all gemini API keys exhausted: %w", lastErr)
}

func (g *implGemini) activeKey() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *implGemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
