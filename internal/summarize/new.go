package summarize

import (
	"sync/atomic"
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/chunker"
	"github.com/IndigoBlueInChina/meetingsummary/internal/config"
	"github.com/IndigoBlueInChina/meetingsummary/internal/llm"
	"github.com/IndigoBlueInChina/meetingsummary/internal/logger"
)

type implPipeline struct {
	llm     llm.Client
	chunker chunker.Chunker
	prompts *PromptStore
	logger  logger.Logger

	maxRetries     int
	retryBase      time.Duration
	chunkDelay     time.Duration
	maxConcurrent  int
	outputLanguage string

	state atomic.Int32
}

// New creates a Summarizer wired to the given LLM client and chunker
func New(cfg *config.Config, client llm.Client, chk chunker.Chunker, log logger.Logger) Summarizer {
	return &implPipeline{
		llm:            client,
		chunker:        chk,
		prompts:        NewPromptStore(cfg.Pipeline.PromptDir),
		logger:         log,
		maxRetries:     cfg.LLM.MaxRetries,
		retryBase:      time.Second,
		chunkDelay:     time.Duration(cfg.Pipeline.ChunkDelaySeconds) * time.Second,
		maxConcurrent:  cfg.Pipeline.MaxConcurrent,
		outputLanguage: cfg.Pipeline.OutputLanguage,
	}
}

func (p *implPipeline) State() State {
	return State(p.state.Load())
}

func (p *implPipeline) setState(s State) {
	p.state.Store(int32(s))
}
