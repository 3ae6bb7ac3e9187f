// Package proofread corrects transcription errors chunk by chunk
// without rewriting content. Unlike summarization, failed chunks are
// never dropped; the original text is kept so the output always covers
// the whole transcript.
package proofread

import "context"

// Result is the corrected transcript plus a log of what changed
type Result struct {
	Text    string
	Changes []string
}

// Proofreader corrects a transcript while preserving its structure
type Proofreader interface {
	Proofread(ctx context.Context, text string) (*Result, error)
}
