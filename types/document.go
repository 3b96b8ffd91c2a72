package types

import "time"

// PageText is the raw text extracted from a single page of the source manual.
type PageText struct {
	Number int    // 1-based page number
	Text   string // extracted text, may be empty for image-only pages
}

// DocumentChunk is an immutable slice of the manual produced by the chunker.
type DocumentChunk struct {
	ChunkID      string // stable ordinal identifier, e.g. "chunk_0007"
	Content      string
	PageNumbers  []int  // ascending, never empty
	SectionTitle string // optional, empty when unknown
	ChunkIndex   int    // 0-based position among all chunks of the document
	TotalChunks  int
}

// SearchDocument is a chunk plus its embedding, ready for upload to the index.
type SearchDocument struct {
	ChunkID       string
	Content       string
	ContentVector []float32
	PageNumbers   []int
	SectionTitle  string
	ChunkIndex    int
	DocumentName  string
	IndexedAt     time.Time
}

// RetrievedMatch is a single hybrid-search hit. Score is the fusion score of
// the store's ranking algorithm and is not comparable across algorithms.
type RetrievedMatch struct {
	ChunkID      string  `json:"chunk_id"`
	Content      string  `json:"content"`
	PageNumbers  []int   `json:"page_numbers"`
	SectionTitle string  `json:"section_title,omitempty"`
	Score        float64 `json:"score"`
}
