// Package transcript classifies and segments raw transcript text.
package transcript

import (
	"regexp"
	"strings"
)

// Format tags a transcript as timestamped or plain text
type Format int

const (
	FormatPlain Format = iota
	FormatTimestamped
)

func (f Format) String() string {
	if f == FormatTimestamped {
		return "timestamped"
	}
	return "plain"
}

// TimestampRe matches the timestamp shapes produced by the recording
// layer: [HH:MM:SS], bare HH:MM:SS and (MM:SS).
var TimestampRe = regexp.MustCompile(`\[\d{2}:\d{2}:\d{2}\]|\d{2}:\d{2}:\d{2}|\(\d{2}:\d{2}\)`)

// detectLines bounds the scan so multi-hour transcripts are not walked
// end to end just to classify them.
const detectLines = 10

// DetectFormat classifies the transcript by inspecting its first lines.
// Empty input is plain.
func DetectFormat(text string) Format {
	lines := strings.Split(text, "\n")
	if len(lines) > detectLines {
		lines = lines[:detectLines]
	}

	for _, line := range lines {
		if TimestampRe.MatchString(line) {
			return FormatTimestamped
		}
	}
	return FormatPlain
}

// FirstTimestamp returns the first timestamp occurring in text, or ""
func FirstTimestamp(text string) string {
	return TimestampRe.FindString(text)
}

// LastTimestamp returns the last timestamp occurring in text, or ""
func LastTimestamp(text string) string {
	matches := TimestampRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}
