package notes

import (
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/chunker"
	"github.com/IndigoBlueInChina/meetingsummary/internal/config"
	"github.com/IndigoBlueInChina/meetingsummary/internal/llm"
	"github.com/IndigoBlueInChina/meetingsummary/internal/logger"
)

type implGenerator struct {
	llm       llm.Client
	chunker   chunker.Chunker
	logger    logger.Logger
	style     string
	promptDir string

	maxRetries int
	retryBase  time.Duration
	chunkDelay time.Duration

	now func() time.Time
}

// New creates a notes Generator for the configured style. Unknown
// styles fall back to meeting notes.
func New(cfg *config.Config, client llm.Client, chk chunker.Chunker, log logger.Logger) Generator {
	style := cfg.Notes.Style
	if style != StyleLecture {
		style = StyleMeeting
	}
	return &implGenerator{
		llm:        client,
		chunker:    chk,
		logger:     log,
		style:      style,
		promptDir:  cfg.Pipeline.PromptDir,
		maxRetries: cfg.LLM.MaxRetries,
		retryBase:  time.Second,
		chunkDelay: time.Duration(cfg.Pipeline.ChunkDelaySeconds) * time.Second,
		now:        time.Now,
	}
}
