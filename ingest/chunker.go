package ingest

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"tabreview-backend/extraction"
)

const (
	// DefaultMaxChunkSize caps chunk text length in runes.
	DefaultMaxChunkSize = 1500

	// DefaultPageSize is the number of runes treated as one page when
	// estimating page numbers for plain-text documents.
	DefaultPageSize = 3000
)

var (
	paragraphSplitRe  = regexp.MustCompile(`\n\s*\n`)
	numberedHeadingRe = regexp.MustCompile(`^(?:\d+|[IVXLC]+)\.\s+\S`)
)

// Chunker splits document text into paragraph-aligned chunks. Paragraphs are
// separated by blank lines; heading-like paragraphs open a new section and
// oversized paragraphs are hard-split at the size limit.
type Chunker struct {
	MaxChunkSize int
	PageSize     int
}

// NewChunker returns a chunker with the default size limits.
func NewChunker() *Chunker {
	return &Chunker{
		MaxChunkSize: DefaultMaxChunkSize,
		PageSize:     DefaultPageSize,
	}
}

// Chunk splits text into ordered chunks carrying estimated page numbers and
// the most recent section heading. Whitespace-only input yields no chunks.
func (c *Chunker) Chunk(text string) []extraction.Chunk {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	chunks := make([]extraction.Chunk, 0)
	section := ""
	var parts []string
	partsLen := 0
	offset := 0

	flush := func() {
		if len(parts) == 0 {
			return
		}
		chunkText := strings.Join(parts, "\n\n")
		page := offset/c.PageSize + 1
		chunks = append(chunks, extraction.Chunk{
			Text:       chunkText,
			PageNumber: &page,
			Section:    section,
		})
		offset += utf8.RuneCountInString(chunkText) + 2
		parts = parts[:0]
		partsLen = 0
	}

	for _, paragraph := range paragraphSplitRe.Split(normalized, -1) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		if isHeading(paragraph) {
			flush()
			section = paragraph
		}

		size := utf8.RuneCountInString(paragraph)
		if size > c.MaxChunkSize {
			flush()
			for _, piece := range splitRunes(paragraph, c.MaxChunkSize) {
				parts = append(parts, piece)
				flush()
			}
			continue
		}

		if partsLen > 0 && partsLen+2+size > c.MaxChunkSize {
			flush()
		}
		if partsLen > 0 {
			partsLen += 2
		}
		parts = append(parts, paragraph)
		partsLen += size
	}
	flush()

	return chunks
}

// PageCount estimates how many pages the text spans, never less than one.
func (c *Chunker) PageCount(text string) int {
	runes := utf8.RuneCountInString(text)
	if runes == 0 {
		return 1
	}
	return (runes-1)/c.PageSize + 1
}

// isHeading reports whether a single-line paragraph looks like a section
// heading: a numbered clause ("3. Term") or a short all-caps line.
func isHeading(paragraph string) bool {
	if strings.Contains(paragraph, "\n") {
		return false
	}
	if utf8.RuneCountInString(paragraph) > 80 {
		return false
	}
	if numberedHeadingRe.MatchString(paragraph) {
		return true
	}

	letters, uppers := 0, 0
	for _, r := range paragraph {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	return letters >= 3 && letters == uppers
}

// splitRunes cuts s into pieces of at most limit runes.
func splitRunes(s string, limit int) []string {
	runes := []rune(s)
	pieces := make([]string, 0, len(runes)/limit+1)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}
