package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultMeetingPrompt = `Analyze the following meeting transcript section and produce structured notes.

Return ONLY a JSON object with exactly these fields:
{
    "keywords": ["keyword1", "keyword2"],
    "summary": "a concise summary of this section",
    "key_discussion_points": ["point 1", "point 2"],
    "decisions": ["decision 1"],
    "action_items": [{"description": "task", "owner": "person", "deadline": "date"}],
    "next_steps": ["step 1"]
}
Use empty lists for fields with no content. Do not add any text outside the JSON.

Transcript section:
%s`

const defaultLecturePrompt = `Analyze the following lecture transcript section and produce structured study notes.

Return ONLY a JSON object with exactly these fields:
{
    "keywords": ["keyword1", "keyword2"],
    "summary": "a concise summary of this section",
    "content": "the concepts explained in this section, reorganized as clear prose"
}
Do not add any text outside the JSON.

Transcript section:
%s`

type actionItem struct {
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Deadline    string `json:"deadline"`
}

// chunkNotes holds the union of both styles' JSON fields; each style
// only fills its own.
type chunkNotes struct {
	Keywords            []string     `json:"keywords"`
	Summary             string       `json:"summary"`
	KeyDiscussionPoints []string     `json:"key_discussion_points"`
	Decisions           []string     `json:"decisions"`
	ActionItems         []actionItem `json:"action_items"`
	NextSteps           []string     `json:"next_steps"`
	Content             string       `json:"content"`
}

// Generate chunks the transcript, extracts structured notes per chunk
// and renders the merged result as markdown. Chunk failures insert a
// placeholder entry instead of aborting the whole document.
func (g *implGenerator) Generate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("transcript is empty")
	}

	template := g.promptTemplate()
	chunks := g.chunker.Chunk(text)
	g.logger.Info(ctx, "Generating %s notes from %d chunks", g.style, len(chunks))

	var all []chunkNotes
	for i, chunk := range chunks {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(g.chunkDelay):
			}
		}

		parsed, err := g.processChunk(ctx, fmt.Sprintf(template, chunk.Text))
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			g.logger.Error(ctx, "Using placeholder for chunk %d: %v", i+1, err)
			all = append(all, g.placeholder(i+1, chunk.Text))
			continue
		}
		all = append(all, *parsed)
	}

	merged := g.merge(all)
	if g.style == StyleLecture {
		return g.renderLecture(merged), nil
	}
	return g.renderMeeting(merged), nil
}

func (g *implGenerator) processChunk(ctx context.Context, prompt string) (*chunkNotes, error) {
	var lastErr error
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		if attempt > 0 {
			delay := g.retryBase << min(attempt-1, 5)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		response, err := g.llm.Generate(ctx, prompt, nil)
		if err != nil {
			lastErr = err
			g.logger.Warn(ctx, "Notes attempt %d/%d failed: %v", attempt+1, g.maxRetries, err)
			continue
		}

		var parsed chunkNotes
		candidate := strings.TrimSpace(response)
		if fenced := stripCodeFence(candidate); fenced != "" {
			candidate = fenced
		}
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			lastErr = fmt.Errorf("parse notes response: %w", err)
			g.logger.Warn(ctx, "Notes attempt %d/%d returned unparseable JSON", attempt+1, g.maxRetries)
			continue
		}
		return &parsed, nil
	}
	return nil, lastErr
}

// placeholder mirrors the failed chunk so the notes still account for
// every part of the transcript
func (g *implGenerator) placeholder(index int, chunkText string) chunkNotes {
	n := chunkNotes{
		Keywords: []string{},
		Summary:  fmt.Sprintf("[Processing error in chunk %d]", index),
	}
	if g.style == StyleLecture {
		n.Content = chunkText
	} else {
		n.KeyDiscussionPoints = []string{fmt.Sprintf("[Error processing chunk %d]", index)}
	}
	return n
}

func (g *implGenerator) merge(all []chunkNotes) chunkNotes {
	var merged chunkNotes
	seen := make(map[string]bool)

	var summaries, contents []string
	for _, n := range all {
		for _, kw := range n.Keywords {
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			merged.Keywords = append(merged.Keywords, kw)
		}
		if s := strings.TrimSpace(n.Summary); s != "" {
			summaries = append(summaries, s)
		}
		if c := strings.TrimSpace(n.Content); c != "" {
			contents = append(contents, c)
		}
		merged.KeyDiscussionPoints = append(merged.KeyDiscussionPoints, n.KeyDiscussionPoints...)
		merged.Decisions = append(merged.Decisions, n.Decisions...)
		merged.ActionItems = append(merged.ActionItems, n.ActionItems...)
		merged.NextSteps = append(merged.NextSteps, n.NextSteps...)
	}

	if g.style == StyleLecture {
		// Lecture notes keep the opening summary as the document
		// overview; section detail lives in the content body.
		if len(summaries) > 0 {
			merged.Summary = summaries[0]
		}
	} else {
		merged.Summary = strings.Join(summaries, "\n\n")
	}
	merged.Content = strings.Join(contents, "\n\n")
	return merged
}

func (g *implGenerator) renderMeeting(n chunkNotes) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Meeting Notes\n*Generated: %s*\n\n", g.now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "## Keywords\n%s\n\n", strings.Join(n.Keywords, ", "))
	fmt.Fprintf(&b, "## Summary\n%s\n\n", orDefault(n.Summary, "No summary available"))
	fmt.Fprintf(&b, "## Key Discussion Points\n%s\n\n", bulletList(n.KeyDiscussionPoints))
	fmt.Fprintf(&b, "## Decisions Made\n%s\n\n", bulletList(n.Decisions))
	fmt.Fprintf(&b, "## Action Items\n%s\n\n", actionList(n.ActionItems))
	fmt.Fprintf(&b, "## Next Steps\n%s\n", bulletList(n.NextSteps))
	return b.String()
}

func (g *implGenerator) renderLecture(n chunkNotes) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Lecture Notes (%s)\n\n", g.now().Format("2006-01-02"))
	fmt.Fprintf(&b, "## Keywords\n%s\n\n", strings.Join(n.Keywords, ", "))
	fmt.Fprintf(&b, "## Summary\n%s\n\n", orDefault(n.Summary, "No summary available"))
	fmt.Fprintf(&b, "## Detailed Content\n%s\n", orDefault(n.Content, "No detailed content available"))
	return b.String()
}

func (g *implGenerator) promptTemplate() string {
	name, fallback := "meeting_notes.md", defaultMeetingPrompt
	if g.style == StyleLecture {
		name, fallback = "lecture_notes.md", defaultLecturePrompt
	}
	if g.promptDir == "" {
		return fallback
	}
	data, err := os.ReadFile(filepath.Join(g.promptDir, name))
	if err != nil || len(data) == 0 {
		return fallback
	}
	return string(data)
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- No items recorded"
	}
	var lines []string
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func actionList(items []actionItem) string {
	if len(items) == 0 {
		return "- No action items recorded"
	}
	var lines []string
	for _, item := range items {
		desc := orDefault(item.Description, "Unnamed action")
		owner := orDefault(item.Owner, "Unassigned")
		deadline := orDefault(item.Deadline, "Not specified")
		lines = append(lines, fmt.Sprintf("- %s (Owner: %s, Deadline: %s)", desc, owner, deadline))
	}
	return strings.Join(lines, "\n")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

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
