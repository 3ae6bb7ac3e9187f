package processor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/config"
	"github.com/IndigoBlueInChina/meetingsummary/internal/logger"
	"github.com/IndigoBlueInChina/meetingsummary/internal/proofread"
	"github.com/IndigoBlueInChina/meetingsummary/internal/summarize"
)

type fakeSummarizer struct {
	final *summarize.FinalSummary
	err   error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string, hints *summarize.Hints) (*summarize.FinalSummary, error) {
	return f.final, f.err
}

func (f *fakeSummarizer) State() summarize.State { return summarize.StateDone }

type fakeProofreader struct {
	result *proofread.Result
	err    error
}

func (f *fakeProofreader) Proofread(ctx context.Context, text string) (*proofread.Result, error) {
	return f.result, f.err
}

type fakeNotes struct {
	markdown string
	err      error
}

func (f *fakeNotes) Generate(ctx context.Context, text string) (string, error) {
	return f.markdown, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Paths: config.PathsConfig{
			Input:  t.TempDir(),
			Output: t.TempDir(),
		},
	}
}

func writeTranscript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessWritesSummaryArtifacts(t *testing.T) {
	cfg := testConfig(t)
	summarizer := &fakeSummarizer{
		final: &summarize.FinalSummary{
			Text: "the summary",
			Metadata: summarize.Metadata{
				ModelUsed:   "fake/model",
				ChunkCount:  3,
				KeyTerms:    []string{"alpha"},
				MeetingType: "discussion",
				GeneratedAt: time.Now(),
			},
		},
	}

	p := New(cfg, summarizer, nil, nil, logger.New("error"))
	path := writeTranscript(t, cfg.Paths.Input, "standup.txt", "transcript text")

	if err := p.Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "standup_summary.md"))
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if string(got) != "the summary" {
		t.Errorf("summary = %q", got)
	}

	metaRaw, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "standup_summary.json"))
	if err != nil {
		t.Fatalf("metadata not written: %v", err)
	}
	var meta summarize.Metadata
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		t.Fatalf("metadata not valid JSON: %v", err)
	}
	if meta.ChunkCount != 3 || meta.ModelUsed != "fake/model" {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestProcessSummarizeFailureAborts(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &fakeSummarizer{err: errors.New("backend down")}, nil, nil, logger.New("error"))
	path := writeTranscript(t, cfg.Paths.Input, "standup.txt", "text")

	if err := p.Process(context.Background(), path); err == nil {
		t.Fatal("Process() should fail when summarization fails")
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "standup_summary.md")); !os.IsNotExist(err) {
		t.Error("no summary should be written on failure")
	}
}

func TestProcessOptionalStages(t *testing.T) {
	cfg := testConfig(t)
	summarizer := &fakeSummarizer{final: &summarize.FinalSummary{Text: "s"}}
	proofreader := &fakeProofreader{result: &proofread.Result{Text: "corrected", Changes: []string{"fix"}}}
	notesGen := &fakeNotes{markdown: "# Notes"}

	p := New(cfg, summarizer, proofreader, notesGen, logger.New("error"))
	path := writeTranscript(t, cfg.Paths.Input, "standup.txt", "text")

	if err := p.Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "standup_proofread.txt"))
	if err != nil {
		t.Fatalf("proofread output not written: %v", err)
	}
	if string(got) != "corrected" {
		t.Errorf("proofread text = %q", got)
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "standup_notes.md")); err != nil {
		t.Errorf("notes output not written: %v", err)
	}
}

func TestProcessOptionalStageFailureDoesNotAbort(t *testing.T) {
	cfg := testConfig(t)
	summarizer := &fakeSummarizer{final: &summarize.FinalSummary{Text: "s"}}
	proofreader := &fakeProofreader{err: errors.New("backend down")}

	p := New(cfg, summarizer, proofreader, nil, logger.New("error"))
	path := writeTranscript(t, cfg.Paths.Input, "standup.txt", "text")

	if err := p.Process(context.Background(), path); err != nil {
		t.Errorf("Process() error = %v, optional stage failure should not abort", err)
	}
}

func TestProcessMissingFile(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &fakeSummarizer{}, nil, nil, logger.New("error"))

	if err := p.Process(context.Background(), filepath.Join(cfg.Paths.Input, "missing.txt")); err == nil {
		t.Error("Process() should fail for a missing file")
	}
}
