package extraction_test

import (
	"strings"
	"testing"

	"tabreview-backend/extraction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestRankOrdersByRelevance(t *testing.T) {
	chunks := []extraction.Chunk{
		{Text: "completely unrelated boilerplate clause"},
		{Text: "the agreement is effective January 15, 2024", PageNumber: intPtr(2), Section: "Term"},
		{Text: "effective January 15"},
	}

	ranker := extraction.NewCitationRanker()
	citations := ranker.Rank("effective January 15, 2024", chunks)

	require.Len(t, citations, 2, "zero-scoring chunks are excluded")
	assert.Equal(t, "1", citations[0].ChunkID)
	assert.Equal(t, 2, citations[0].PageNumber)
	assert.Equal(t, "Term", citations[0].SectionTitle)
	assert.Equal(t, "2", citations[1].ChunkID)
	assert.Greater(t, citations[0].RelevanceScore, citations[1].RelevanceScore)
	for _, c := range citations {
		assert.GreaterOrEqual(t, c.RelevanceScore, 0.0)
		assert.LessOrEqual(t, c.RelevanceScore, 1.0)
	}
}

func TestRankSubstringBoost(t *testing.T) {
	// Both chunks overlap the query by the same four words; only the second
	// contains the query verbatim and takes the boost.
	chunks := []extraction.Chunk{
		{Text: "noted herein: 2024 15, January effective"},
		{Text: "effective January 15, 2024 as executed"},
	}

	ranker := extraction.NewCitationRanker()
	citations := ranker.Rank("effective January 15, 2024", chunks)

	require.Len(t, citations, 2)
	assert.Equal(t, "1", citations[0].ChunkID)
	assert.InDelta(t, 4.0/6.0+0.3, citations[0].RelevanceScore, 1e-9)
	assert.Equal(t, "0", citations[1].ChunkID)
	assert.InDelta(t, 4.0/6.0, citations[1].RelevanceScore, 1e-9)
}

func TestRankTopKBound(t *testing.T) {
	chunks := make([]extraction.Chunk, 6)
	for i := range chunks {
		chunks[i] = extraction.Chunk{Text: "payment due upon receipt"}
	}

	ranker := extraction.NewCitationRanker()
	citations := ranker.Rank("payment due", chunks)

	require.Len(t, citations, 3)
	// Ties keep input order.
	assert.Equal(t, "0", citations[0].ChunkID)
	assert.Equal(t, "1", citations[1].ChunkID)
	assert.Equal(t, "2", citations[2].ChunkID)
}

func TestRankEmptyQuery(t *testing.T) {
	chunks := []extraction.Chunk{{Text: "some chunk"}}

	ranker := extraction.NewCitationRanker()
	assert.Empty(t, ranker.Rank("", chunks))
}

func TestRankNoChunks(t *testing.T) {
	ranker := extraction.NewCitationRanker()
	assert.Empty(t, ranker.Rank("effective date", nil))
}

func TestRankTruncatesCitationText(t *testing.T) {
	long := "effective date " + strings.Repeat("x", 600)
	chunks := []extraction.Chunk{{Text: long}}

	ranker := extraction.NewCitationRanker()
	citations := ranker.Rank("effective date", chunks)

	require.Len(t, citations, 1)
	assert.Len(t, citations[0].CitationText, 500)
	assert.Equal(t, long[:500], citations[0].CitationText)
}

func TestRankDefaultsPageAndSection(t *testing.T) {
	chunks := []extraction.Chunk{{Text: "governing law of Delaware"}}

	ranker := extraction.NewCitationRanker()
	citations := ranker.Rank("governing law", chunks)

	require.Len(t, citations, 1)
	assert.Equal(t, 1, citations[0].PageNumber)
	assert.Equal(t, "Main", citations[0].SectionTitle)
}

func TestRankCarriesChunkID(t *testing.T) {
	chunks := []extraction.Chunk{
		{ID: "6b0a2e1c-3f44-4f6e-9c1d-2a7b8e9f0a1b", Text: "governing law of Delaware"},
		{Text: "governing law of New York"},
	}

	ranker := extraction.NewCitationRanker()
	citations := ranker.Rank("governing law", chunks)

	require.Len(t, citations, 2)
	assert.Equal(t, "6b0a2e1c-3f44-4f6e-9c1d-2a7b8e9f0a1b", citations[0].ChunkID)
	// Chunks without an ID fall back to their position.
	assert.Equal(t, "1", citations[1].ChunkID)
}
