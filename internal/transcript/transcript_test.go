package transcript

import (
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Format
	}{
		{"empty", "", FormatPlain},
		{"plain prose", "Hello everyone.\nLet's get started.", FormatPlain},
		{"bracketed timestamp", "[00:01:15] Alice: welcome", FormatTimestamped},
		{"bare timestamp", "00:01:15 welcome everyone", FormatTimestamped},
		{"paren timestamp", "(01:15) welcome everyone", FormatTimestamped},
		{
			"timestamp beyond scan window",
			strings.Repeat("plain line\n", 15) + "[00:01:15] late entry",
			FormatPlain,
		},
		{
			"timestamp on tenth line",
			strings.Repeat("plain line\n", 9) + "[00:01:15] just in time",
			FormatTimestamped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.text); got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstLastTimestamp(t *testing.T) {
	text := "[00:01:00] opening remarks\nsome discussion\n[00:45:30] closing remarks"

	if got := FirstTimestamp(text); got != "[00:01:00]" {
		t.Errorf("FirstTimestamp() = %q", got)
	}
	if got := LastTimestamp(text); got != "[00:45:30]" {
		t.Errorf("LastTimestamp() = %q", got)
	}
	if got := FirstTimestamp("no times here"); got != "" {
		t.Errorf("FirstTimestamp(no match) = %q, want empty", got)
	}
}

func TestSplitSegmentsSpeakers(t *testing.T) {
	text := "Alice: good morning everyone\nwe have a lot to cover\nBob: thanks Alice\nSpeaker 2: quick question"

	segments := SplitSegments(text)
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3: %q", len(segments), segments)
	}
	if !strings.HasPrefix(segments[0], "Alice:") {
		t.Errorf("segment 0 = %q, want Alice's turn", segments[0])
	}
	if !strings.Contains(segments[0], "a lot to cover") {
		t.Errorf("continuation line not folded into Alice's turn: %q", segments[0])
	}
	if !strings.HasPrefix(segments[1], "Bob:") {
		t.Errorf("segment 1 = %q, want Bob's turn", segments[1])
	}
	if !strings.HasPrefix(segments[2], "Speaker 2:") {
		t.Errorf("segment 2 = %q, want Speaker 2's turn", segments[2])
	}
}

func TestSplitSegmentsNoSpeakersFallsBackToSentences(t *testing.T) {
	text := "This is the first point. This is the second point. And a third."

	segments := SplitSegments(text)
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3 sentences: %q", len(segments), segments)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"two sentences", "Hello world. This is a test.", 2},
		{"question and exclamation", "Really? Yes! Moving on.", 3},
		{"cjk terminators", "今天开会。讨论预算！有问题吗？", 3},
		{"decimal not split", "The value is 3.14 exactly. Done.", 2},
		{"no boundary", "an unterminated fragment of text", 1},
		{"trailing fragment", "First sentence. trailing words", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != tt.want {
				t.Errorf("SplitSentences() = %q, want %d sentences", got, tt.want)
			}
		})
	}
}

func TestSplitSentencesBlank(t *testing.T) {
	if got := SplitSentences("   \n "); got != nil {
		t.Errorf("SplitSentences(blank) = %q, want nil", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{"english", "The quarterly review went well.", LanguageEnglish},
		{"simplified chinese", "今天的国际会议说明了简体办法", LanguageChineseSimplified},
		{"traditional chinese", "今天的國際會議說明了簡體辦法", LanguageChineseTraditional},
		{"japanese", "今日の会議はとても良かったです", LanguageJapanese},
		{"korean", "오늘 회의는 잘 진행되었습니다", LanguageKorean},
		{"russian", "Сегодняшняя встреча прошла хорошо", LanguageRussian},
		{"empty defaults to english", "", LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage() = %v, want %v", got, tt.want)
			}
		})
	}
}
