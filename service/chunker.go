package service

import (
	"fmt"
	"strings"

	"github.com/dbarkol/telco-ai-solution-labs/types"
)

// chunkSeparators are tried largest-first when looking for a place to end a
// chunk. A hard character cut is the implicit last resort.
var chunkSeparators = []string{"\n\n", "\n", ". ", " "}

// pageSeparator joins page texts in the combined buffer.
const pageSeparator = "\n\n"

// ChunkerService splits extracted page text into overlapping, size-bounded
// chunks and records which pages each chunk spans.
type ChunkerService struct {
	chunkSize int // target chunk size in bytes
	overlap   int // bytes shared between consecutive chunks
}

func NewChunkerService(chunkSize, overlap int) *ChunkerService {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &ChunkerService{
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// pageSpan records the half-open byte range [start, end) a page occupies in
// the combined buffer.
type pageSpan struct {
	page  int
	start int
	end   int
}

// segment is a half-open byte range [start, end) of the combined buffer. The
// splitter returns offsets directly so page attribution never has to re-search
// chunk text in the buffer, which would be ambiguous for repeated substrings.
type segment struct {
	start int
	end   int
}

// ChunkPages concatenates the non-empty pages into one buffer, splits it into
// overlapping segments and maps every segment back to the pages it intersects.
// Empty pages contribute nothing; a chunk that matches no page is attributed
// to page 1 so PageNumbers is never empty.
func (c *ChunkerService) ChunkPages(pages []types.PageText) []types.DocumentChunk {
	var buf strings.Builder
	var bounds []pageSpan
	for _, p := range pages {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		start := buf.Len()
		buf.WriteString(p.Text)
		buf.WriteString(pageSeparator)
		bounds = append(bounds, pageSpan{page: p.Number, start: start, end: buf.Len()})
	}
	full := buf.String()

	var chunks []types.DocumentChunk
	for _, seg := range c.split(full) {
		content, start, end := trimSegment(full, seg)
		if content == "" {
			continue
		}
		chunks = append(chunks, types.DocumentChunk{
			ChunkID:     fmt.Sprintf("chunk_%04d", len(chunks)),
			Content:     content,
			PageNumbers: pagesFor(bounds, start, end),
			ChunkIndex:  len(chunks),
		})
	}
	for i := range chunks {
		chunks[i].TotalChunks = len(chunks)
	}
	return chunks
}

// split cuts text into segments of at most chunkSize bytes. Each cut lands on
// the largest separator available inside the window; the next segment starts
// overlap bytes before the cut, unless that would stall progress.
func (c *ChunkerService) split(text string) []segment {
	n := len(text)
	if n == 0 {
		return nil
	}
	var segs []segment
	start := 0
	for {
		end := start + c.chunkSize
		if end >= n {
			segs = append(segs, segment{start: start, end: n})
			return segs
		}
		cut := c.findCut(text, start, end)
		segs = append(segs, segment{start: start, end: cut})
		next := cut - c.overlap
		if next <= start {
			next = cut
		}
		start = next
	}
}

// findCut returns the byte offset just past the best boundary in (start, end].
// Falls back to a hard cut at end when the window contains no separator.
func (c *ChunkerService) findCut(text string, start, end int) int {
	window := text[start:end]
	for _, sep := range chunkSeparators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return start + idx + len(sep)
		}
	}
	return end
}

// trimSegment strips surrounding whitespace and returns the trimmed content
// together with its adjusted [start, end) offsets in the buffer.
func trimSegment(text string, seg segment) (string, int, int) {
	raw := text[seg.start:seg.end]
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", seg.start, seg.start
	}
	lead := len(raw) - len(strings.TrimLeft(raw, " \t\r\n\f"))
	return trimmed, seg.start + lead, seg.start + lead + len(trimmed)
}

// pagesFor collects, in ascending page order, every page whose span intersects
// the half-open chunk range [start, end).
func pagesFor(bounds []pageSpan, start, end int) []int {
	var pages []int
	for _, b := range bounds {
		if start < b.end && end > b.start {
			pages = append(pages, b.page)
		}
	}
	if len(pages) == 0 {
		return []int{1}
	}
	return pages
}
