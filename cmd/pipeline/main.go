package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/IndigoBlueInChina/meetingsummary/internal/chunker"
	"github.com/IndigoBlueInChina/meetingsummary/internal/config"
	"github.com/IndigoBlueInChina/meetingsummary/internal/llm"
	"github.com/IndigoBlueInChina/meetingsummary/internal/logger"
	"github.com/IndigoBlueInChina/meetingsummary/internal/notes"
	"github.com/IndigoBlueInChina/meetingsummary/internal/processor"
	"github.com/IndigoBlueInChina/meetingsummary/internal/proofread"
	"github.com/IndigoBlueInChina/meetingsummary/internal/summarize"
	"github.com/IndigoBlueInChina/meetingsummary/internal/token"
	"github.com/IndigoBlueInChina/meetingsummary/internal/watcher"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Summarization Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "LLM provider: %s (model: %s)", cfg.LLM.Provider, cfg.LLM.Model)
	log.Info(ctx, "Chunk budget: %d tokens", cfg.Chunking.MaxTokens)
	log.Info(ctx, "Configuration loaded successfully")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	client, err := llm.New(cfg.LLM, log)
	if err != nil {
		log.Error(ctx, "Failed to create LLM client: %v", err)
		os.Exit(1)
	}

	if cfg.LLM.Provider == "ollama" {
		if status := llm.CheckStatus(ctx, cfg.LLM.APIURL); status != llm.StatusReady {
			log.Warn(ctx, "LLM backend %s is %s; processing will retry per chunk", cfg.LLM.APIURL, status)
		}
	}

	counter := newTokenCounter(ctx, cfg, log)

	summarizer := summarize.New(cfg, client, chunker.New(counter, cfg.Chunking.MaxTokens, log), log)

	var proofreader proofread.Proofreader
	if cfg.Proofread.Enabled {
		proofreader = proofread.New(cfg, client, chunker.New(counter, cfg.Proofread.MaxTokens, log), log)
	}

	var notesGen notes.Generator
	if cfg.Notes.Enabled {
		notesGen = notes.New(cfg, client, chunker.New(counter, cfg.Notes.MaxTokens, log), log)
	}

	proc := processor.New(cfg, summarizer, proofreader, notesGen, log)

	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Pipeline.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Transcripts dropped in before startup still get processed.
	processExisting(ctx, cfg.Paths.Input, proc, log)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Proofread: %v, Notes: %v (style: %s)", cfg.Proofread.Enabled, cfg.Notes.Enabled, cfg.Notes.Style)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Pipeline stopped")
}

// newTokenCounter prefers the configured tokenizer model and falls
// back to the heuristic estimator when it cannot be loaded
func newTokenCounter(ctx context.Context, cfg *config.Config, log logger.Logger) token.Counter {
	if cfg.Chunking.TokenizerPath != "" {
		counter, err := token.NewPretrained(cfg.Chunking.TokenizerPath)
		if err == nil {
			log.Info(ctx, "Using tokenizer: %s", cfg.Chunking.TokenizerPath)
			return counter
		}
		log.Warn(ctx, "Failed to load tokenizer %s: %v; using estimator", cfg.Chunking.TokenizerPath, err)
	}
	return token.NewEstimator()
}

// processExisting runs the pipeline over transcripts already present
// in the input directory at startup
func processExisting(ctx context.Context, inputDir string, proc processor.Processor, log logger.Logger) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		log.Warn(ctx, "Failed to scan input directory: %v", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		path := filepath.Join(inputDir, entry.Name())
		log.Info(ctx, "Processing existing transcript: %s", path)
		if err := proc.Process(ctx, path); err != nil {
			log.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
