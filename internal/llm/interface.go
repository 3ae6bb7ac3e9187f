// Package llm abstracts text-generation backends behind a single
// Generate capability so the pipeline stays provider-agnostic.
package llm

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyResponse marks a backend reply with no usable text; callers
// treat it as transient and retry
var ErrEmptyResponse = errors.New("empty response from llm")

// Options override per-call generation parameters. Nil fields keep
// the provider defaults.
type Options struct {
	Temperature *float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client is the one capability the pipeline consumes from a backend
type Client interface {
	// Generate sends prompt and returns the model's text output
	Generate(ctx context.Context, prompt string, opts *Options) (string, error)
	// Name identifies the provider and model for result metadata
	Name() string
}
