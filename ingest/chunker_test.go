package ingest_test

import (
	"strings"
	"testing"

	"tabreview-backend/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkMergesSmallParagraphs(t *testing.T) {
	text := "First paragraph of the agreement.\n\nSecond paragraph with more detail."

	chunks := ingest.NewChunker().Chunk(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, "First paragraph of the agreement.\n\nSecond paragraph with more detail.", chunks[0].Text)
	require.NotNil(t, chunks[0].PageNumber)
	assert.Equal(t, 1, *chunks[0].PageNumber)
	assert.Empty(t, chunks[0].Section)
}

func TestChunkSplitsAtSizeLimit(t *testing.T) {
	chunker := &ingest.Chunker{MaxChunkSize: 40, PageSize: ingest.DefaultPageSize}
	text := strings.Join([]string{
		strings.Repeat("a", 30),
		strings.Repeat("b", 30),
		strings.Repeat("c", 30),
	}, "\n\n")

	chunks := chunker.Chunk(text)

	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("a", 30), chunks[0].Text)
	assert.Equal(t, strings.Repeat("b", 30), chunks[1].Text)
	assert.Equal(t, strings.Repeat("c", 30), chunks[2].Text)
}

func TestChunkHardSplitsOversizedParagraph(t *testing.T) {
	chunker := &ingest.Chunker{MaxChunkSize: 100, PageSize: ingest.DefaultPageSize}
	text := strings.Repeat("x", 250)

	chunks := chunker.Chunk(text)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0].Text, 100)
	assert.Len(t, chunks[1].Text, 100)
	assert.Len(t, chunks[2].Text, 50)
}

func TestChunkTracksSectionHeadings(t *testing.T) {
	text := strings.Join([]string{
		"This Agreement is made between the parties.",
		"CONFIDENTIALITY",
		"Each party shall keep the terms confidential.",
		"3. Term",
		"The term is two years.",
	}, "\n\n")

	chunker := &ingest.Chunker{MaxChunkSize: 60, PageSize: ingest.DefaultPageSize}
	chunks := chunker.Chunk(text)

	require.GreaterOrEqual(t, len(chunks), 3)
	assert.Empty(t, chunks[0].Section)

	var sections []string
	for _, chunk := range chunks {
		sections = append(sections, chunk.Section)
	}
	assert.Contains(t, sections, "CONFIDENTIALITY")
	assert.Contains(t, sections, "3. Term")

	// The heading text itself stays in the document flow.
	joined := ""
	for _, chunk := range chunks {
		joined += chunk.Text + "\n\n"
	}
	assert.Contains(t, joined, "CONFIDENTIALITY")
	assert.Contains(t, joined, "The term is two years.")
}

func TestChunkEstimatesPageNumbers(t *testing.T) {
	chunker := &ingest.Chunker{MaxChunkSize: 20, PageSize: 25}
	text := strings.Join([]string{
		strings.Repeat("a", 20),
		strings.Repeat("b", 20),
		strings.Repeat("c", 20),
	}, "\n\n")

	chunks := chunker.Chunk(text)

	require.Len(t, chunks, 3)
	require.NotNil(t, chunks[0].PageNumber)
	assert.Equal(t, 1, *chunks[0].PageNumber)
	require.NotNil(t, chunks[1].PageNumber)
	assert.Equal(t, 1, *chunks[1].PageNumber)
	require.NotNil(t, chunks[2].PageNumber)
	assert.Equal(t, 2, *chunks[2].PageNumber)
}

func TestChunkEmptyInput(t *testing.T) {
	chunker := ingest.NewChunker()

	assert.Empty(t, chunker.Chunk(""))
	assert.Empty(t, chunker.Chunk("   \n\n   \n"))
}

func TestChunkNormalizesLineEndings(t *testing.T) {
	chunks := ingest.NewChunker().Chunk("first\r\n\r\nsecond")

	require.Len(t, chunks, 1)
	assert.Equal(t, "first\n\nsecond", chunks[0].Text)
}

func TestPageCount(t *testing.T) {
	chunker := ingest.NewChunker()

	assert.Equal(t, 1, chunker.PageCount(""))
	assert.Equal(t, 1, chunker.PageCount(strings.Repeat("a", ingest.DefaultPageSize)))
	assert.Equal(t, 2, chunker.PageCount(strings.Repeat("a", ingest.DefaultPageSize+1)))
}
