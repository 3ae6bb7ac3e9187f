package summarize

import (
	"os"
	"path/filepath"
)

// jsonDelimiter separates the free-text analysis from the structured
// JSON tail in chunk responses.
const jsonDelimiter = "---"

const defaultChunkPrompt = `%s
Please analyze this section and provide:
1. Main topics discussed in this section
2. Key decisions made (if any)
3. Action items mentioned (if any)
4. Important details that should be connected with other parts
5. Extract 5-10 key terms/phrases that best represent the content
6. Identify the primary knowledge domains/fields this content belongs to

Format the key terms and domains in JSON format at the end of your response like this:
---
{"key_terms": ["term1", "term2", "term3"], "domains": ["domain1", "domain2"]}
---

Here's the transcript section:
%s`

const defaultDiscussionPrompt = `%s
This section comes from a discussion meeting. Please analyze it and provide:
1. The problems or questions raised in this section
2. Positions taken and arguments made by the participants
3. Key decisions made (if any)
4. Action items mentioned (if any)
5. Extract 5-10 key terms/phrases that best represent the content
6. Identify the primary knowledge domains/fields this content belongs to

Format the key terms and domains in JSON format at the end of your response like this:
---
{"key_terms": ["term1", "term2", "term3"], "domains": ["domain1", "domain2"]}
---

Here's the transcript section:
%s`

const defaultLecturePrompt = `%s
This section comes from a lecture or knowledge-sharing session. Please analyze it and provide:
1. The concepts introduced in this section, in order
2. Explanations and examples given for each concept
3. Questions from the audience and the answers (if any)
4. Important details that should be connected with other parts
5. Extract 5-10 key terms/phrases that best represent the content
6. Identify the primary knowledge domains/fields this content belongs to

Format the key terms and domains in JSON format at the end of your response like this:
---
{"key_terms": ["term1", "term2", "term3"], "domains": ["domain1", "domain2"]}
---

Here's the transcript section:
%s`

const defaultReducePrompt = `You are an AI assistant specializing in professional meeting summaries. The input consists of multiple summarized chunks from a meeting. Your task is to combine these into a comprehensive summary with the following sections:

    Knowledge Domains: Analyze and categorize the main fields/domains discussed, explaining their relevance.
    Key Terms Glossary: Organize and explain the key terms by domain/category.
    Key Topics and Agenda: A concise overview of the main topics discussed.
    Discussion Highlights: Summarize the key points under each topic.
    Decisions Made: Outline the decisions and agreements reached.
    Action Items: List actionable tasks, owners, and deadlines if mentioned.
    Questions Raised and Answers: Highlight significant questions and answers.
    Overall Conclusion: Provide a high-level summary.

Make the final summary professional and well-organized. %s

Known domains: %s
Known key terms: %s

Individual summaries:
%s`

const defaultMeetingTypePrompt = `Read the following meeting transcript excerpt and classify the session.
Answer with exactly one word on the first line: "discussion" if participants debate problems and make decisions together, or "lecture" if one person mainly presents content to the others.
You may add a short justification after the first line.

Transcript excerpt:
%s`

// PromptStore resolves prompt templates, preferring user overrides
// dropped into the prompt directory over the embedded defaults.
type PromptStore struct {
	dir string
}

// NewPromptStore creates a store reading overrides from dir; an empty
// dir means defaults only
func NewPromptStore(dir string) *PromptStore {
	return &PromptStore{dir: dir}
}

func (s *PromptStore) load(name, fallback string) string {
	if s.dir == "" {
		return fallback
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil || len(data) == 0 {
		return fallback
	}
	return string(data)
}

// ChunkPrompt returns the per-chunk analysis template for the meeting
// type, with %s slots for positional context and chunk text
func (s *PromptStore) ChunkPrompt(meetingType string) string {
	switch meetingType {
	case MeetingTypeDiscussion:
		return s.load("chunk_discussion.txt", defaultDiscussionPrompt)
	case MeetingTypeLecture:
		return s.load("chunk_lecture.txt", defaultLecturePrompt)
	default:
		return s.load("chunk.txt", defaultChunkPrompt)
	}
}

// ReducePrompt returns the final combine template with %s slots for
// the language instruction, domains, key terms and combined summaries
func (s *PromptStore) ReducePrompt() string {
	return s.load("reduce.txt", defaultReducePrompt)
}

// MeetingTypePrompt returns the classification template with a %s slot
// for the transcript excerpt
func (s *PromptStore) MeetingTypePrompt() string {
	return s.load("meeting_type.txt", defaultMeetingTypePrompt)
}
