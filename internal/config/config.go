package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Proofread ProofreadConfig `yaml:"proofread"`
	Notes     NotesConfig     `yaml:"notes"`
	Paths     PathsConfig     `yaml:"paths"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type LLMConfig struct {
	Provider       string   `yaml:"provider"`
	Model          string   `yaml:"model"`
	APIURL         string   `yaml:"api_url"`
	APIKey         string   `yaml:"api_key"`
	APIKeys        []string `yaml:"api_keys"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	MaxRetries     int      `yaml:"max_retries"`
}

type ChunkingConfig struct {
	MaxTokens     int    `yaml:"max_tokens"`
	TokenizerPath string `yaml:"tokenizer_path"`
}

type PipelineConfig struct {
	ChunkDelaySeconds int    `yaml:"chunk_delay_seconds"`
	MaxConcurrent     int    `yaml:"max_concurrent"`
	OutputLanguage    string `yaml:"output_language"`
	PromptDir         string `yaml:"prompt_dir"`
}

type ProofreadConfig struct {
	Enabled   bool `yaml:"enabled"`
	MaxTokens int  `yaml:"max_tokens"`
}

type NotesConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Style      string `yaml:"style"`
	MaxTokens  int    `yaml:"max_tokens"`
	ExportDocx bool   `yaml:"export_docx"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and validates a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
	}
	switch c.LLM.Provider {
	case "ollama":
		if c.LLM.APIURL == "" {
			c.LLM.APIURL = "http://localhost:11434"
		}
		if c.LLM.Model == "" {
			c.LLM.Model = "qwen2.5"
		}
	case "openai":
		if c.LLM.Model == "" {
			c.LLM.Model = "gpt-3.5-turbo"
		}
	case "deepseek":
		if c.LLM.Model == "" {
			c.LLM.Model = "deepseek-chat"
		}
	case "gemini":
		if c.LLM.Model == "" {
			c.LLM.Model = "gemini-2.5-flash"
		}
	default:
		return fmt.Errorf("unsupported llm.provider: %s", c.LLM.Provider)
	}

	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 300
	}
	if c.LLM.MaxRetries <= 0 {
		c.LLM.MaxRetries = 3
	}

	if c.Chunking.MaxTokens <= 0 {
		c.Chunking.MaxTokens = 4000
	}
	if c.Pipeline.ChunkDelaySeconds < 0 {
		return fmt.Errorf("pipeline.chunk_delay_seconds must not be negative")
	}
	if c.Pipeline.ChunkDelaySeconds == 0 {
		c.Pipeline.ChunkDelaySeconds = 1
	}
	if c.Pipeline.MaxConcurrent <= 0 {
		c.Pipeline.MaxConcurrent = 1
	}

	if c.Proofread.MaxTokens <= 0 {
		c.Proofread.MaxTokens = 2000
	}
	if c.Notes.MaxTokens <= 0 {
		c.Notes.MaxTokens = 1500
	}
	if c.Notes.Style == "" {
		c.Notes.Style = "meeting"
	}
	if c.Notes.Style != "meeting" && c.Notes.Style != "lecture" {
		return fmt.Errorf("notes.style must be meeting or lecture, got %s", c.Notes.Style)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
