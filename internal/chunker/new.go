package chunker

import (
	"github.com/IndigoBlueInChina/meetingsummary/internal/logger"
	"github.com/IndigoBlueInChina/meetingsummary/internal/token"
)

type implChunker struct {
	counter   token.Counter
	maxTokens int
	logger    logger.Logger
}

// New creates a Chunker packing up to maxTokens per chunk
func New(counter token.Counter, maxTokens int, log logger.Logger) Chunker {
	return &implChunker{
		counter:   counter,
		maxTokens: maxTokens,
		logger:    log,
	}
}
