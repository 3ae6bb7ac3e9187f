package chunker

// Chunk is one token-bounded unit of transcript text submitted to the
// LLM in a single call. Index is 0-based and follows source order.
type Chunk struct {
	Index      int
	Text       string
	TokenCount int
}

// Chunker splits a transcript into ordered token-bounded chunks
type Chunker interface {
	Chunk(text string) []Chunk
}
