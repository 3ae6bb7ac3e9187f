package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openAIURL   = "https://api.openai.com/v1/chat/completions"
	deepseekURL = "https://api.deepseek.com/v1/chat/completions"
)

// implChat speaks the OpenAI chat-completions wire format, which both
// OpenAI and Deepseek expose.
type implChat struct {
	provider string
	model    string
	apiURL   string
	apiKey   string
	timeout  time.Duration
	client   *http.Client
}

// NewChat creates a Client for an OpenAI-compatible chat completions API
func NewChat(provider, model, apiURL, apiKey string, timeout time.Duration) Client {
	return &implChat{
		provider: provider,
		model:    model,
		apiURL:   apiURL,
		apiKey:   apiKey,
		timeout:  timeout,
		client:   &http.Client{},
	}
}

func (c *implChat) Name() string {
	return c.provider + "/" + c.model
}

func (c *implChat) Generate(ctx context.Context, prompt string, opts *Options) (string, error) {
	payload := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	if opts != nil {
		if opts.Temperature != nil {
			payload["temperature"] = *opts.Temperature
		}
		if opts.MaxTokens > 0 {
			payload["max_tokens"] = opts.MaxTokens
		}
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout(c.timeout, opts))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", c.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%s status %d: %s", c.provider, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var wrapper struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(wrapper.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(wrapper.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}
