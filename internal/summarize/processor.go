package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/chunker"
	"github.com/IndigoBlueInChina/meetingsummary/internal/transcript"
)

// processChunk analyzes one chunk with bounded retries. A nil result
// with an error means the chunk is dropped; the pipeline keeps going
// with the chunks that succeeded.
func (p *implPipeline) processChunk(ctx context.Context, chunk chunker.Chunk, total int, hints *Hints, meetingType string) (*ChunkResult, error) {
	prompt := p.buildChunkPrompt(chunk, total, hints, meetingType)

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.retryDelay(attempt)):
			}
		}

		response, err := p.llm.Generate(ctx, prompt, nil)
		if err != nil {
			lastErr = err
			p.logger.Warn(ctx, "Error processing chunk %d (attempt %d/%d): %v", chunk.Index+1, attempt+1, p.maxRetries, err)
			continue
		}

		return parseChunkResponse(chunk.Index, response), nil
	}

	return nil, fmt.Errorf("chunk %d failed after %d attempts: %w", chunk.Index+1, p.maxRetries, lastErr)
}

func (p *implPipeline) buildChunkPrompt(chunk chunker.Chunk, total int, hints *Hints, meetingType string) string {
	var context strings.Builder
	fmt.Fprintf(&context, "This is part %d of %d from the meeting transcript.", chunk.Index+1, total)

	first := transcript.FirstTimestamp(chunk.Text)
	last := transcript.LastTimestamp(chunk.Text)
	if first != "" && last != "" {
		fmt.Fprintf(&context, "\nThis section covers from %s to %s", first, last)
	}

	if hints != nil {
		if hints.Topic != "" {
			fmt.Fprintf(&context, "\nThe meeting topic is: %s", hints.Topic)
		}
		if len(hints.Keywords) > 0 {
			fmt.Fprintf(&context, "\nPay special attention to these keywords: %s", strings.Join(hints.Keywords, ", "))
		}
	}

	return fmt.Sprintf(p.prompts.ChunkPrompt(meetingType), context.String(), chunk.Text)
}

// parseChunkResponse extracts the free-text summary and the JSON tail.
// Structured extraction from semi-structured model output is fragile,
// so any parse failure degrades to the whole raw response with empty
// metadata; it never fails.
func parseChunkResponse(index int, response string) *ChunkResult {
	result := &ChunkResult{
		ChunkIndex: index,
		Summary:    strings.TrimSpace(response),
		Raw:        response,
		KeyTerms:   []string{},
		Domains:    []string{},
	}

	parts := strings.Split(response, jsonDelimiter)
	// Models often close the JSON block with another delimiter line,
	// as the prompt example shows; drop empty trailing parts.
	for len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 2 {
		return result
	}

	var metadata struct {
		KeyTerms []string `json:"key_terms"`
		Domains  []string `json:"domains"`
	}
	tail := strings.TrimSpace(parts[len(parts)-1])
	if err := json.Unmarshal([]byte(tail), &metadata); err != nil {
		return result
	}

	result.Summary = strings.TrimSpace(strings.Join(parts[:len(parts)-1], jsonDelimiter))
	if metadata.KeyTerms != nil {
		result.KeyTerms = metadata.KeyTerms
	}
	if metadata.Domains != nil {
		result.Domains = metadata.Domains
	}
	return result
}

// retryDelay grows exponentially per attempt, capped at 30 seconds
func (p *implPipeline) retryDelay(attempt int) time.Duration {
	base := p.retryBase
	if base <= 0 {
		base = time.Second
	}
	delay := base << min(attempt-1, 5)
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	return delay
}
