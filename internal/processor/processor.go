package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/notes"
)

// Process runs the full pipeline over one transcript file
func (p *implProcessor) Process(ctx context.Context, transcriptPath string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting transcript processing: %s", transcriptPath)
	p.logger.Info(ctx, "========================================")

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	text := string(data)

	base := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))

	summaryPath, err := p.summarize(ctx, base, text)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if p.proofread != nil {
		if err := p.runProofread(ctx, base, text); err != nil {
			p.logger.Warn(ctx, "Proofread failed: %v", err)
		}
	}

	if p.notes != nil {
		if err := p.runNotes(ctx, base, text); err != nil {
			p.logger.Warn(ctx, "Notes generation failed: %v", err)
		}
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Output summary: %s", summaryPath)
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return nil
}

// summarize writes <name>_summary.md with the summary text and
// <name>_summary.json with the run metadata
func (p *implProcessor) summarize(ctx context.Context, base, text string) (string, error) {
	final, err := p.summarizer.Summarize(ctx, text, nil)
	if err != nil {
		return "", err
	}

	summaryPath := filepath.Join(p.cfg.Paths.Output, base+"_summary.md")
	if err := os.WriteFile(summaryPath, []byte(final.Text), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	metaPath := filepath.Join(p.cfg.Paths.Output, base+"_summary.json")
	meta, err := json.MarshalIndent(final.Metadata, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, meta, 0o644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	return summaryPath, nil
}

func (p *implProcessor) runProofread(ctx context.Context, base, text string) error {
	result, err := p.proofread.Proofread(ctx, text)
	if err != nil {
		return err
	}

	outPath := filepath.Join(p.cfg.Paths.Output, base+"_proofread.txt")
	if err := os.WriteFile(outPath, []byte(result.Text), 0o644); err != nil {
		return fmt.Errorf("write proofread text: %w", err)
	}

	p.logger.Info(ctx, "Proofread written: %s (%d corrections)", outPath, len(result.Changes))
	return nil
}

func (p *implProcessor) runNotes(ctx context.Context, base, text string) error {
	markdown, err := p.notes.Generate(ctx, text)
	if err != nil {
		return err
	}

	mdPath := filepath.Join(p.cfg.Paths.Output, base+"_notes.md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write notes: %w", err)
	}
	p.logger.Info(ctx, "Notes written: %s", mdPath)

	if p.cfg.Notes.ExportDocx {
		docxPath := filepath.Join(p.cfg.Paths.Output, base+"_notes.docx")
		if err := notes.ExportDocx(base, markdown, docxPath); err != nil {
			return fmt.Errorf("export docx: %w", err)
		}
		p.logger.Info(ctx, "Notes exported: %s", docxPath)
	}

	return nil
}
