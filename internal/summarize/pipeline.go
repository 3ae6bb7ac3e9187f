package summarize

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/IndigoBlueInChina/meetingsummary/internal/chunker"
	"github.com/IndigoBlueInChina/meetingsummary/internal/transcript"
)

// Summarize runs the full pipeline over one transcript. Individual
// chunk failures only shrink the result; the call fails outright when
// nothing was processable, every chunk failed, the reduce step failed,
// or ctx was cancelled.
func (p *implPipeline) Summarize(ctx context.Context, text string, hints *Hints) (*FinalSummary, error) {
	p.setState(StateChunking)

	if strings.TrimSpace(text) == "" {
		p.setState(StateFailed)
		return nil, ErrEmptyTranscript
	}

	chunks := p.chunker.Chunk(text)
	if len(chunks) == 0 {
		p.setState(StateFailed)
		return nil, ErrEmptyTranscript
	}

	lang := transcript.DetectLanguage(text)
	meetingType := p.classifyMeeting(ctx, chunks[0].Text)
	p.logger.Info(ctx, "Detected meeting type: %s, language: %s", meetingType, lang)

	p.setState(StateProcessing)
	results, err := p.processChunks(ctx, chunks, hints, meetingType)
	if err != nil {
		p.setState(StateFailed)
		return nil, err
	}
	if len(results) == 0 {
		p.setState(StateFailed)
		return nil, ErrAllChunksFailed
	}
	if len(results) < len(chunks) {
		p.logger.Warn(ctx, "Proceeding with %d of %d chunks", len(results), len(chunks))
	}

	p.setState(StateReducing)
	final, err := p.reduce(ctx, results, lang, meetingType)
	if err != nil {
		p.setState(StateFailed)
		return nil, err
	}

	p.setState(StateDone)
	return final, nil
}

func (p *implPipeline) processChunks(ctx context.Context, chunks []chunker.Chunk, hints *Hints, meetingType string) ([]*ChunkResult, error) {
	if p.maxConcurrent > 1 {
		return p.processConcurrent(ctx, chunks, hints, meetingType)
	}
	return p.processSequential(ctx, chunks, hints, meetingType)
}

// processSequential walks chunks in order with a fixed delay between
// LLM calls to stay inside backend rate limits.
func (p *implPipeline) processSequential(ctx context.Context, chunks []chunker.Chunk, hints *Hints, meetingType string) ([]*ChunkResult, error) {
	var results []*ChunkResult

	for i, chunk := range chunks {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.chunkDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p.logger.Info(ctx, "Processing chunk %d/%d", chunk.Index+1, len(chunks))
		result, err := p.processChunk(ctx, chunk, len(chunks), hints, meetingType)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logger.Error(ctx, "Dropping chunk %d: %v", chunk.Index+1, err)
			continue
		}
		results = append(results, result)
	}

	return results, nil
}

// processConcurrent runs chunk analyses on a bounded worker pool.
// Starts are still paced by the inter-call delay so the backend sees
// the same request rate as the sequential path; the reduce step only
// runs after every worker finished.
func (p *implPipeline) processConcurrent(ctx context.Context, chunks []chunker.Chunk, hints *Hints, meetingType string) ([]*ChunkResult, error) {
	sem := make(chan struct{}, p.maxConcurrent)

	var (
		mu      sync.Mutex
		results []*ChunkResult
		wg      sync.WaitGroup
	)

	dispatchErr := func() error {
		for i, chunk := range chunks {
			if i > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(p.chunkDelay):
				}
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}

			wg.Add(1)
			go func(chunk chunker.Chunk) {
				defer wg.Done()
				defer func() { <-sem }()

				if ctx.Err() != nil {
					return
				}

				p.logger.Info(ctx, "Processing chunk %d/%d", chunk.Index+1, len(chunks))
				result, err := p.processChunk(ctx, chunk, len(chunks), hints, meetingType)
				if err != nil {
					p.logger.Error(ctx, "Dropping chunk %d: %v", chunk.Index+1, err)
					return
				}

				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}(chunk)
		}
		return nil
	}()

	wg.Wait()

	if dispatchErr != nil {
		return nil, dispatchErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ChunkIndex < results[j].ChunkIndex
	})
	return results, nil
}
