package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		Paths: PathsConfig{
			Input:  "data/transcripts",
			Output: "data/summaries",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid minimal config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing input path",
			mutate:  func(c *Config) { c.Paths.Input = "" },
			wantErr: true,
		},
		{
			name:    "missing output path",
			mutate:  func(c *Config) { c.Paths.Output = "" },
			wantErr: true,
		},
		{
			name:    "unsupported provider",
			mutate:  func(c *Config) { c.LLM.Provider = "vllm" },
			wantErr: true,
		},
		{
			name:    "negative chunk delay",
			mutate:  func(c *Config) { c.Pipeline.ChunkDelaySeconds = -1 },
			wantErr: true,
		},
		{
			name:    "bad notes style",
			mutate:  func(c *Config) { c.Notes.Style = "standup" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.LLM.Provider != "ollama" {
		t.Errorf("Provider = %v, want ollama", cfg.LLM.Provider)
	}
	if cfg.LLM.APIURL != "http://localhost:11434" {
		t.Errorf("APIURL = %v, want ollama default", cfg.LLM.APIURL)
	}
	if cfg.LLM.MaxRetries != 3 {
		t.Errorf("MaxRetries = %v, want 3", cfg.LLM.MaxRetries)
	}
	if cfg.Chunking.MaxTokens != 4000 {
		t.Errorf("MaxTokens = %v, want 4000", cfg.Chunking.MaxTokens)
	}
	if cfg.Pipeline.ChunkDelaySeconds != 1 {
		t.Errorf("ChunkDelaySeconds = %v, want 1", cfg.Pipeline.ChunkDelaySeconds)
	}
	if cfg.Pipeline.MaxConcurrent != 1 {
		t.Errorf("MaxConcurrent = %v, want 1", cfg.Pipeline.MaxConcurrent)
	}
	if cfg.Proofread.MaxTokens != 2000 {
		t.Errorf("Proofread.MaxTokens = %v, want 2000", cfg.Proofread.MaxTokens)
	}
	if cfg.Notes.MaxTokens != 1500 {
		t.Errorf("Notes.MaxTokens = %v, want 1500", cfg.Notes.MaxTokens)
	}
}

func TestLoad(t *testing.T) {
	content := `
llm:
  provider: "deepseek"
  api_key: "sk-test"
  max_retries: 5

chunking:
  max_tokens: 2500

pipeline:
  chunk_delay_seconds: 2
  output_language: "zh"

paths:
  input: "data/transcripts"
  output: "data/summaries"

logging:
  level: "debug"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLM.Provider != "deepseek" {
		t.Errorf("Provider = %v, want deepseek", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "deepseek-chat" {
		t.Errorf("Model = %v, want deepseek-chat default", cfg.LLM.Model)
	}
	if cfg.LLM.MaxRetries != 5 {
		t.Errorf("MaxRetries = %v, want 5", cfg.LLM.MaxRetries)
	}
	if cfg.Chunking.MaxTokens != 2500 {
		t.Errorf("MaxTokens = %v, want 2500", cfg.Chunking.MaxTokens)
	}
	if cfg.Pipeline.OutputLanguage != "zh" {
		t.Errorf("OutputLanguage = %v, want zh", cfg.Pipeline.OutputLanguage)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
