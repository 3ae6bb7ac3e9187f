package summarize

import (
	"context"
	"fmt"
	"strings"
)

// Meeting types steering which chunk prompt is used
const (
	MeetingTypeDiscussion = "discussion"
	MeetingTypeLecture    = "lecture"
	MeetingTypeUnknown    = "unknown"
)

// classifyMeeting asks the LLM whether the transcript is a discussion
// or a lecture, judging from the first chunk only. Classification is a
// prompt refinement, not a requirement, so any failure degrades to
// unknown instead of aborting the pipeline.
func (p *implPipeline) classifyMeeting(ctx context.Context, firstChunk string) string {
	prompt := fmt.Sprintf(p.prompts.MeetingTypePrompt(), firstChunk)

	response, err := p.llm.Generate(ctx, prompt, nil)
	if err != nil {
		p.logger.Warn(ctx, "Meeting type classification failed: %v", err)
		return MeetingTypeUnknown
	}

	lower := strings.ToLower(response)
	switch {
	case strings.Contains(lower, MeetingTypeDiscussion):
		return MeetingTypeDiscussion
	case strings.Contains(lower, MeetingTypeLecture), strings.Contains(lower, "presentation"):
		return MeetingTypeLecture
	default:
		return MeetingTypeUnknown
	}
}
