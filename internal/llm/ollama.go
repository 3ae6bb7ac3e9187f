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

type implOllama struct {
	model   string
	apiURL  string
	timeout time.Duration
	client  *http.Client
}

// NewOllama creates a Client for a local Ollama server
func NewOllama(model, apiURL string, timeout time.Duration) Client {
	return &implOllama{
		model:   model,
		apiURL:  strings.TrimSuffix(apiURL, "/"),
		timeout: timeout,
		client:  &http.Client{},
	}
}

func (o *implOllama) Name() string {
	return "ollama/" + o.model
}

func (o *implOllama) Generate(ctx context.Context, prompt string, opts *Options) (string, error) {
	payload := map[string]interface{}{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
	}
	if opts != nil {
		modelOpts := map[string]interface{}{}
		if opts.Temperature != nil {
			modelOpts["temperature"] = *opts.Temperature
		}
		if opts.MaxTokens > 0 {
			modelOpts["num_predict"] = opts.MaxTokens
		}
		if len(modelOpts) > 0 {
			payload["options"] = modelOpts
		}
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout(o.timeout, opts))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.apiURL+"/api/generate", bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", ErrEmptyResponse
	}

	return out.Response, nil
}

func callTimeout(base time.Duration, opts *Options) time.Duration {
	if opts != nil && opts.Timeout > 0 {
		return opts.Timeout
	}
	if base <= 0 {
		return 300 * time.Second
	}
	return base
}
