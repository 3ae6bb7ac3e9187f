// Package summarize implements the map-reduce summarization pipeline:
// chunk the transcript, analyze each chunk through the LLM, then merge
// the partial analyses into one final summary.
package summarize

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEmptyTranscript means there was nothing to process
	ErrEmptyTranscript = errors.New("transcript is empty")
	// ErrAllChunksFailed means no chunk produced a usable result
	ErrAllChunksFailed = errors.New("all chunks failed processing")
	// ErrReduceFailed means chunk analyses existed but could not be
	// combined into a final summary
	ErrReduceFailed = errors.New("final summary generation failed")
)

// Hints carries optional caller-supplied context for the prompts
type Hints struct {
	Topic    string
	Keywords []string
}

// ChunkResult is the parsed analysis of a single chunk
type ChunkResult struct {
	ChunkIndex int
	Summary    string
	KeyTerms   []string
	Domains    []string
	Raw        string
}

// Metadata describes how the final summary was produced
type Metadata struct {
	ModelUsed   string    `json:"model_used"`
	ChunkCount  int       `json:"chunk_count"`
	KeyTerms    []string  `json:"key_terms"`
	Domains     []string  `json:"domains"`
	MeetingType string    `json:"meeting_type"`
	GeneratedAt time.Time `json:"generated_at"`
}

// FinalSummary is the terminal artifact of the pipeline
type FinalSummary struct {
	Text     string
	Metadata Metadata
}

// Summarizer runs the full chunk/process/reduce pipeline
type Summarizer interface {
	Summarize(ctx context.Context, transcript string, hints *Hints) (*FinalSummary, error)
	State() State
}
