package extraction

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultCitationTopK bounds how many citations accompany one extraction.
	DefaultCitationTopK = 3

	// DefaultCitationTextLimit caps citation text length in characters.
	DefaultCitationTextLimit = 500

	// substringBoost is added to a chunk's score when the query text appears
	// verbatim inside it.
	substringBoost = 0.3
)

// CitationRanker scores document chunks against a query snippet and returns
// the best-matching chunks as citations. Scoring is purely lexical: Jaccard
// similarity over lowercased word sets, boosted when the query appears
// verbatim in the chunk.
type CitationRanker struct {
	// TopK is the maximum number of citations returned per query.
	TopK int
	// TextLimit caps the length of each citation's text.
	TextLimit int
}

// NewCitationRanker returns a ranker with the default top-K and text limit.
func NewCitationRanker() *CitationRanker {
	return &CitationRanker{
		TopK:      DefaultCitationTopK,
		TextLimit: DefaultCitationTextLimit,
	}
}

// Rank scores every chunk against queryText and returns up to TopK citations
// in descending relevance order. Zero-scoring chunks are excluded, tied
// chunks keep their input order, and an empty query yields no citations.
func (r *CitationRanker) Rank(queryText string, chunks []Chunk) []Citation {
	citations := make([]Citation, 0)
	if queryText == "" {
		return citations
	}

	queryLower := strings.ToLower(queryText)
	queryTokens := tokenSet(queryLower)

	type scoredChunk struct {
		index      int
		similarity float64
	}

	scored := make([]scoredChunk, 0, len(chunks))
	for i, chunk := range chunks {
		chunkLower := strings.ToLower(chunk.Text)
		similarity := jaccard(queryTokens, tokenSet(chunkLower))
		if strings.Contains(chunkLower, queryLower) {
			similarity = math.Min(1.0, similarity+substringBoost)
		}
		scored = append(scored, scoredChunk{index: i, similarity: similarity})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].similarity > scored[b].similarity
	})

	limit := r.TopK
	if limit > len(scored) {
		limit = len(scored)
	}

	for _, sc := range scored[:limit] {
		if sc.similarity <= 0.0 {
			continue
		}
		chunk := chunks[sc.index]
		page := 1
		if chunk.PageNumber != nil {
			page = *chunk.PageNumber
		}
		section := chunk.Section
		if section == "" {
			section = "Main"
		}
		chunkID := chunk.ID
		if chunkID == "" {
			chunkID = strconv.Itoa(sc.index)
		}
		citations = append(citations, Citation{
			CitationText:   truncateRunes(chunk.Text, r.TextLimit),
			PageNumber:     page,
			SectionTitle:   section,
			RelevanceScore: sc.similarity,
			ChunkID:        chunkID,
		})
	}

	return citations
}

// tokenSet splits lowercased text into its unique whitespace-delimited words.
func tokenSet(textLower string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, word := range strings.Fields(textLower) {
		tokens[word] = struct{}{}
	}
	return tokens
}

// jaccard is intersection size over union size, zero when both sets are
// empty.
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
