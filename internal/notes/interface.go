// Package notes turns transcripts into structured meeting or lecture
// notes rendered as markdown, with optional docx export.
package notes

import "context"

// Note styles selecting the prompt and markdown layout
const (
	StyleMeeting = "meeting"
	StyleLecture = "lecture"
)

// Generator produces markdown notes from a transcript
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}
