package summarize

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/chunker"
	"github.com/IndigoBlueInChina/meetingsummary/internal/llm"
	"github.com/IndigoBlueInChina/meetingsummary/internal/logger"
)

// fakeClient scripts LLM behavior per prompt for pipeline tests
type fakeClient struct {
	mu       sync.Mutex
	calls    int
	generate func(call int, prompt string) (string, error)
}

func (f *fakeClient) Generate(ctx context.Context, prompt string, opts *llm.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.generate(call, prompt)
}

func (f *fakeClient) Name() string { return "fake/model" }

func newTestPipeline(client llm.Client) *implPipeline {
	return &implPipeline{
		llm:           client,
		prompts:       NewPromptStore(""),
		logger:        logger.New("error"),
		maxRetries:    3,
		retryBase:     time.Millisecond,
		chunkDelay:    time.Millisecond,
		maxConcurrent: 1,
	}
}

func TestParseChunkResponse(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		wantSummary  string
		wantKeyTerms []string
		wantDomains  []string
	}{
		{
			name:         "delimited json tail",
			response:     "The team discussed budgets.\n---\n{\"key_terms\": [\"budget\"], \"domains\": [\"finance\"]}",
			wantSummary:  "The team discussed budgets.",
			wantKeyTerms: []string{"budget"},
			wantDomains:  []string{"finance"},
		},
		{
			name:         "json between two delimiters",
			response:     "The team discussed budgets.\n---\n{\"key_terms\": [\"budget\"], \"domains\": [\"finance\"]}\n---\n",
			wantSummary:  "The team discussed budgets.",
			wantKeyTerms: []string{"budget"},
			wantDomains:  []string{"finance"},
		},
		{
			name:         "no delimiter degrades to raw",
			response:     "just prose, no structure at all",
			wantSummary:  "just prose, no structure at all",
			wantKeyTerms: []string{},
			wantDomains:  []string{},
		},
		{
			name:         "malformed json degrades to raw",
			response:     "summary text\n---\n{not json at all",
			wantSummary:  "summary text\n---\n{not json at all",
			wantKeyTerms: []string{},
			wantDomains:  []string{},
		},
		{
			name:         "json missing fields keeps empty lists",
			response:     "summary text\n---\n{}",
			wantSummary:  "summary text",
			wantKeyTerms: []string{},
			wantDomains:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseChunkResponse(2, tt.response)
			if got.ChunkIndex != 2 {
				t.Errorf("ChunkIndex = %d, want 2", got.ChunkIndex)
			}
			if got.Summary != tt.wantSummary {
				t.Errorf("Summary = %q, want %q", got.Summary, tt.wantSummary)
			}
			if !reflect.DeepEqual(got.KeyTerms, tt.wantKeyTerms) {
				t.Errorf("KeyTerms = %v, want %v", got.KeyTerms, tt.wantKeyTerms)
			}
			if !reflect.DeepEqual(got.Domains, tt.wantDomains) {
				t.Errorf("Domains = %v, want %v", got.Domains, tt.wantDomains)
			}
			if got.Raw != tt.response {
				t.Errorf("Raw = %q, want original response", got.Raw)
			}
		})
	}
}

func TestProcessChunkRetriesThenSucceeds(t *testing.T) {
	client := &fakeClient{
		generate: func(call int, prompt string) (string, error) {
			if call <= 2 {
				return "", errors.New("connection refused")
			}
			return "recovered summary", nil
		},
	}
	p := newTestPipeline(client)

	result, err := p.processChunk(context.Background(), chunker.Chunk{Index: 0, Text: "some text"}, 1, nil, MeetingTypeUnknown)
	if err != nil {
		t.Fatalf("processChunk() error = %v, want success on third attempt", err)
	}
	if result == nil || result.Summary != "recovered summary" {
		t.Errorf("result = %+v, want recovered summary", result)
	}
	if client.calls != 3 {
		t.Errorf("calls = %d, want 3", client.calls)
	}
}

func TestProcessChunkExhaustsRetries(t *testing.T) {
	client := &fakeClient{
		generate: func(call int, prompt string) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	p := newTestPipeline(client)

	result, err := p.processChunk(context.Background(), chunker.Chunk{Index: 1, Text: "some text"}, 3, nil, MeetingTypeUnknown)
	if err == nil {
		t.Fatal("processChunk() should fail after exhausting retries")
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on terminal failure", result)
	}
	if client.calls != 3 {
		t.Errorf("calls = %d, want retry bound of 3", client.calls)
	}
}

func TestBuildChunkPrompt(t *testing.T) {
	p := newTestPipeline(&fakeClient{})

	chunk := chunker.Chunk{
		Index: 1,
		Text:  "[00:10:00] budget talk\nmore detail\n[00:20:00] wrap up",
	}
	hints := &Hints{Topic: "Q3 planning", Keywords: []string{"budget", "roadmap"}}

	prompt := p.buildChunkPrompt(chunk, 4, hints, MeetingTypeUnknown)

	for _, want := range []string{
		"part 2 of 4",
		"from [00:10:00] to [00:20:00]",
		"Q3 planning",
		"budget, roadmap",
		chunk.Text,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
