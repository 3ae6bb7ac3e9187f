package chunker

import (
	"context"
	"strings"

	"github.com/IndigoBlueInChina/meetingsummary/internal/transcript"
)

// Chunk splits the transcript using the strategy matching its detected
// format. Concatenating the returned chunks in order reconstructs the
// input up to whitespace normalization; only a single sentence longer
// than the budget may exceed it. Empty or blank input yields no chunks.
func (c *implChunker) Chunk(text string) []Chunk {
	ctx := context.Background()

	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []Chunk
	switch transcript.DetectFormat(text) {
	case transcript.FormatTimestamped:
		c.logger.Info(ctx, "Detected timestamped format - using timestamp-based chunking")
		chunks = c.pack(splitTimestampSpans(text), "")
	default:
		c.logger.Info(ctx, "Detected plain text format - using content-based chunking")
		chunks = c.pack(transcript.SplitSegments(text), "\n")
	}

	c.logger.Info(ctx, "Split transcript into %d chunks", len(chunks))
	return chunks
}

// splitTimestampSpans performs a lookahead split so each timestamp
// stays attached to the text that follows it.
func splitTimestampSpans(text string) []string {
	locs := transcript.TimestampRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var spans []string
	if locs[0][0] > 0 {
		spans = append(spans, text[:locs[0][0]])
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		spans = append(spans, text[loc[0]:end])
	}
	return spans
}

// pack greedily accumulates spans until the next one would overflow
// the budget. A span that alone exceeds the budget is re-split at
// sentence granularity before packing resumes, for both strategies.
func (c *implChunker) pack(spans []string, sep string) []Chunk {
	var chunks []Chunk
	var current []string
	currentTokens := 0

	flush := func() {
		if len(current) > 0 {
			chunks = c.appendChunk(chunks, strings.Join(current, sep))
			current = nil
			currentTokens = 0
		}
	}

	for _, span := range spans {
		if strings.TrimSpace(span) == "" {
			continue
		}
		spanTokens := c.counter.Count(span)

		if currentTokens+spanTokens > c.maxTokens {
			flush()

			if spanTokens > c.maxTokens {
				chunks = c.packSentences(chunks, span)
				continue
			}
		}

		current = append(current, span)
		currentTokens += spanTokens
	}
	flush()

	return chunks
}

// packSentences re-splits an oversized span and packs its sentences. A
// single sentence over the budget still becomes its own chunk; there
// is no finer split.
func (c *implChunker) packSentences(chunks []Chunk, span string) []Chunk {
	var current []string
	currentTokens := 0

	for _, sentence := range transcript.SplitSentences(span) {
		sentenceTokens := c.counter.Count(sentence)

		if currentTokens+sentenceTokens > c.maxTokens && len(current) > 0 {
			chunks = c.appendChunk(chunks, strings.Join(current, "\n"))
			current = nil
			currentTokens = 0
		}

		current = append(current, sentence)
		currentTokens += sentenceTokens
	}
	if len(current) > 0 {
		chunks = c.appendChunk(chunks, strings.Join(current, "\n"))
	}

	return chunks
}

func (c *implChunker) appendChunk(chunks []Chunk, text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return chunks
	}
	return append(chunks, Chunk{
		Index:      len(chunks),
		Text:       text,
		TokenCount: c.counter.Count(text),
	})
}
