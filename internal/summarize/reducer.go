package summarize

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/transcript"
)

// reduce merges the chunk analyses into one final summary through a
// single further LLM call with its own retry budget.
func (p *implPipeline) reduce(ctx context.Context, results []*ChunkResult, lang transcript.Language, meetingType string) (*FinalSummary, error) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].ChunkIndex < results[j].ChunkIndex
	})

	var allKeyTerms, allDomains []string
	for _, r := range results {
		allKeyTerms = append(allKeyTerms, r.KeyTerms...)
		allDomains = append(allDomains, r.Domains...)
	}
	keyTerms := dedupeStrings(allKeyTerms)
	domains := dedupeStrings(allDomains)

	var combined []string
	for _, r := range results {
		combined = append(combined, fmt.Sprintf("Part %d:\n%s", r.ChunkIndex+1, r.Summary))
	}

	prompt := fmt.Sprintf(p.prompts.ReducePrompt(),
		p.languageInstruction(lang),
		strings.Join(domains, ", "),
		strings.Join(keyTerms, ", "),
		strings.Join(combined, "\n\n"),
	)

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.retryDelay(attempt)):
			}
		}

		finalText, err := p.llm.Generate(ctx, prompt, nil)
		if err != nil {
			lastErr = err
			p.logger.Warn(ctx, "Error generating final summary (attempt %d/%d): %v", attempt+1, p.maxRetries, err)
			continue
		}

		return &FinalSummary{
			Text: strings.TrimSpace(finalText),
			Metadata: Metadata{
				ModelUsed:   p.llm.Name(),
				ChunkCount:  len(results),
				KeyTerms:    keyTerms,
				Domains:     domains,
				MeetingType: meetingType,
				GeneratedAt: time.Now(),
			},
		}, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrReduceFailed, lastErr)
}

func (p *implPipeline) languageInstruction(lang transcript.Language) string {
	if p.outputLanguage != "" {
		return fmt.Sprintf("Write the final summary in %s.", p.outputLanguage)
	}
	return fmt.Sprintf("Keep the language the same as the original transcript (%s). Do not translate.", lang)
}

// dedupeStrings removes duplicates while preserving first-seen order
func dedupeStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	deduped := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		deduped = append(deduped, item)
	}
	return deduped
}
