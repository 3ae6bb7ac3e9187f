package processor

import (
	"github.com/IndigoBlueInChina/meetingsummary/internal/config"
	"github.com/IndigoBlueInChina/meetingsummary/internal/logger"
	"github.com/IndigoBlueInChina/meetingsummary/internal/notes"
	"github.com/IndigoBlueInChina/meetingsummary/internal/proofread"
	"github.com/IndigoBlueInChina/meetingsummary/internal/summarize"
)

type implProcessor struct {
	cfg        *config.Config
	summarizer summarize.Summarizer
	proofread  proofread.Proofreader
	notes      notes.Generator
	logger     logger.Logger
}

// New creates a Processor. proofreader and notesGen are optional; nil
// disables the corresponding stage.
func New(cfg *config.Config, s summarize.Summarizer, p proofread.Proofreader, n notes.Generator, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		summarizer: s,
		proofread:  p,
		notes:      n,
		logger:     log,
	}
}
