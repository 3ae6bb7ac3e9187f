// Package processor orchestrates the per-file pipeline: read a
// transcript, summarize it and write the output artifacts, with
// optional proofreading and notes generation.
package processor

import "context"

// Processor handles one transcript file end to end
type Processor interface {
	Process(ctx context.Context, transcriptPath string) error
}
