package transcript

import (
	"regexp"
	"strings"
	"unicode"
)

var speakerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][a-z]+:`),     // Name:
	regexp.MustCompile(`^Speaker \d+:`),     // Speaker 1:
	regexp.MustCompile(`^\[[A-Z][a-z]+\]:`), // [Name]:
}

func isSpeakerLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, re := range speakerPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// SplitSegments splits text into speaker turns. A line matching a
// speaker marker starts a new segment. When no line in the whole text
// carries a speaker marker the text is split into sentences instead,
// so speaker-less transcripts still chunk at sub-segment granularity.
func SplitSegments(text string) []string {
	lines := strings.Split(text, "\n")

	hasSpeakers := false
	for _, line := range lines {
		if isSpeakerLine(line) {
			hasSpeakers = true
			break
		}
	}
	if !hasSpeakers {
		return SplitSentences(text)
	}

	var segments []string
	var current []string

	for _, line := range lines {
		if isSpeakerLine(line) && len(current) > 0 {
			segments = append(segments, strings.Join(current, "\n"))
			current = []string{line}
		} else {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, "\n"))
	}

	return segments
}

// SplitSentences splits text at sentence boundaries. ASCII terminators
// end a sentence only when followed by whitespace or end of text, so
// decimals and abbreviations mid-token stay intact; CJK terminators end
// one unconditionally. Never returns an empty slice for non-blank
// input: if no boundary is found the whole text is the one sentence.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)

		boundary := false
		switch r {
		case '。', '！', '？', '…':
			boundary = true
		case '.', '!', '?':
			boundary = i+1 >= len(runes) || unicode.IsSpace(runes[i+1])
		}

		if boundary {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}

	if len(sentences) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return sentences
}
