package proofread

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/llm"
	"github.com/IndigoBlueInChina/meetingsummary/internal/transcript"
)

const proofreadPrompt = `Proofread the following transcript with extreme precision:

Proofreading Guidelines:
1. Language: %s
2. Correction Scope:
   - Correct spelling errors
   - Refine colloquial expressions
   - Maintain original meaning
   - Preserve sentence structure and intent
3. DO NOT:
   - Rewrite or rephrase content
   - Add or remove substantive information
   - Change the core meaning
   - Alter technical or specific terminology

Original Transcript:
%s

Return response in JSON format:
{
    "corrected_text": "the corrected transcript",
    "corrections_made": ["change 1", "change 2"]
}`

// Proofread corrects the transcript chunk by chunk and joins the
// corrected chunks back in order. A chunk that keeps failing is passed
// through unchanged with a note in the change log.
func (p *implProofreader) Proofread(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return &Result{Text: text, Changes: []string{}}, nil
	}

	lang := transcript.DetectLanguage(text)
	chunks := p.chunker.Chunk(text)
	p.logger.Info(ctx, "Proofreading %d chunks, language %s", len(chunks), lang)

	corrected := make([]string, 0, len(chunks))
	changes := []string{}

	for i, chunk := range chunks {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.chunkDelay):
			}
		}

		chunkText, chunkChanges, err := p.proofreadChunk(ctx, chunk.Text)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logger.Error(ctx, "Keeping chunk %d unchanged: %v", i+1, err)
			corrected = append(corrected, chunk.Text)
			changes = append(changes, fmt.Sprintf("[Error processing chunk %d: %v]", i+1, err))
			continue
		}
		corrected = append(corrected, chunkText)
		changes = append(changes, chunkChanges...)
	}

	return &Result{
		Text:    strings.Join(corrected, "\n"),
		Changes: changes,
	}, nil
}

func (p *implProofreader) proofreadChunk(ctx context.Context, text string) (string, []string, error) {
	prompt := fmt.Sprintf(proofreadPrompt, transcript.DetectLanguage(text), text)

	var temperature float64
	opts := &llm.Options{Temperature: &temperature, MaxTokens: 4000}

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			delay := p.retryBase << min(attempt-1, 5)
			select {
			case <-ctx.Done():
				return "", nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		response, err := p.llm.Generate(ctx, prompt, opts)
		if err != nil {
			lastErr = err
			p.logger.Warn(ctx, "Proofread attempt %d/%d failed: %v", attempt+1, p.maxRetries, err)
			continue
		}

		corrected, changes := parseProofreadResponse(response)
		if strings.TrimSpace(corrected) == "" {
			lastErr = fmt.Errorf("empty corrected text")
			continue
		}
		return corrected, changes, nil
	}

	return "", nil, fmt.Errorf("proofread failed after %d attempts: %w", p.maxRetries, lastErr)
}

// parseProofreadResponse expects the JSON contract but degrades to the
// raw response when the model ignored it
func parseProofreadResponse(response string) (string, []string) {
	var parsed struct {
		CorrectedText   string   `json:"corrected_text"`
		CorrectionsMade []string `json:"corrections_made"`
	}

	candidate := strings.TrimSpace(response)
	if fenced := stripCodeFence(candidate); fenced != "" {
		candidate = fenced
	}

	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil || strings.TrimSpace(parsed.CorrectedText) == "" {
		return strings.TrimSpace(response), []string{"JSON parsing failed"}
	}
	if parsed.CorrectionsMade == nil {
		parsed.CorrectionsMade = []string{}
	}
	return parsed.CorrectedText, parsed.CorrectionsMade
}

// stripCodeFence unwraps a ```json ... ``` block, returning "" when
// the input is not fenced
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return ""
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
