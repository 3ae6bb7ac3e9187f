package proofread

import (
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/chunker"
	"github.com/IndigoBlueInChina/meetingsummary/internal/config"
	"github.com/IndigoBlueInChina/meetingsummary/internal/llm"
	"github.com/IndigoBlueInChina/meetingsummary/internal/logger"
)

type implProofreader struct {
	llm     llm.Client
	chunker chunker.Chunker
	logger  logger.Logger

	maxRetries int
	retryBase  time.Duration
	chunkDelay time.Duration
}

// New creates a Proofreader. The chunker should carry the proofread
// token budget, which is smaller than the summarization one because
// the corrected text comes back in full.
func New(cfg *config.Config, client llm.Client, chk chunker.Chunker, log logger.Logger) Proofreader {
	return &implProofreader{
		llm:        client,
		chunker:    chk,
		logger:     log,
		maxRetries: cfg.LLM.MaxRetries,
		retryBase:  time.Second,
		chunkDelay: time.Duration(cfg.Pipeline.ChunkDelaySeconds) * time.Second,
	}
}
