package extraction_test

import (
	"testing"

	"tabreview-backend/extraction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateComparisonFillsEveryDocument(t *testing.T) {
	documents := []extraction.DocumentRef{
		{ID: "doc-1", Filename: "nda_a.txt", FileType: "txt"},
		{ID: "doc-2", Filename: "nda_b.txt", FileType: "txt"},
	}
	entries := []extraction.ComparisonEntry{
		{
			ExtractionID:    "ext-1",
			DocumentID:      "doc-1",
			FieldName:       "Effective Date",
			FieldType:       extraction.FieldTypeDate,
			ExtractedValue:  strPtr("1/15/2024"),
			NormalizedValue: strPtr("2024-01-15"),
			ConfidenceScore: 0.9,
			Status:          "extracted",
		},
		{
			ExtractionID:   "ext-2",
			DocumentID:     "doc-1",
			FieldName:      "Governing Law",
			FieldType:      extraction.FieldTypeText,
			ExtractedValue: strPtr("Delaware"),
			Status:         "approved",
		},
		{
			ExtractionID:   "ext-3",
			DocumentID:     "doc-2",
			FieldName:      "Governing Law",
			FieldType:      extraction.FieldTypeText,
			ExtractedValue: strPtr("New York"),
			Status:         "extracted",
		},
	}

	rows := extraction.AggregateComparison(documents, entries)

	require.Len(t, rows, 2)

	// Field order follows first appearance.
	assert.Equal(t, "Effective Date", rows[0].FieldName)
	assert.Equal(t, extraction.FieldTypeDate, rows[0].FieldType)
	assert.Equal(t, "Governing Law", rows[1].FieldName)

	// Every document has a cell in every row.
	for _, row := range rows {
		require.Len(t, row.DocumentResults, 2)
		require.Contains(t, row.DocumentResults, "doc-1")
		require.Contains(t, row.DocumentResults, "doc-2")
	}

	cell := rows[0].DocumentResults["doc-1"]
	assert.Equal(t, "ext-1", cell.ExtractionID)
	require.NotNil(t, cell.NormalizedValue)
	assert.Equal(t, "2024-01-15", *cell.NormalizedValue)
	assert.InDelta(t, 0.9, cell.ConfidenceScore, 1e-9)

	// doc-2 has no Effective Date extraction and gets the sentinel.
	missing := rows[0].DocumentResults["doc-2"]
	assert.Empty(t, missing.ExtractionID)
	require.NotNil(t, missing.ExtractedValue)
	assert.Equal(t, "N/A", *missing.ExtractedValue)
	assert.Zero(t, missing.ConfidenceScore)
}

func TestAggregateComparisonEmptyInputs(t *testing.T) {
	documents := []extraction.DocumentRef{{ID: "doc-1", Filename: "a.txt"}}
	entries := []extraction.ComparisonEntry{{DocumentID: "doc-1", FieldName: "X"}}

	assert.Empty(t, extraction.AggregateComparison(nil, entries))
	assert.Empty(t, extraction.AggregateComparison(documents, nil))
}

func TestAggregateComparisonDuplicateKeepsLast(t *testing.T) {
	documents := []extraction.DocumentRef{{ID: "doc-1", Filename: "a.txt"}}
	entries := []extraction.ComparisonEntry{
		{ExtractionID: "ext-old", DocumentID: "doc-1", FieldName: "Term", ExtractedValue: strPtr("1 year")},
		{ExtractionID: "ext-new", DocumentID: "doc-1", FieldName: "Term", ExtractedValue: strPtr("2 years")},
	}

	rows := extraction.AggregateComparison(documents, entries)

	require.Len(t, rows, 1)
	cell := rows[0].DocumentResults["doc-1"]
	assert.Equal(t, "ext-new", cell.ExtractionID)
	require.NotNil(t, cell.ExtractedValue)
	assert.Equal(t, "2 years", *cell.ExtractedValue)
}

func TestAggregateComparisonDropsUnlistedDocuments(t *testing.T) {
	documents := []extraction.DocumentRef{{ID: "doc-1", Filename: "a.txt"}}
	entries := []extraction.ComparisonEntry{
		{ExtractionID: "ext-1", DocumentID: "doc-1", FieldName: "Term", ExtractedValue: strPtr("1 year")},
		{ExtractionID: "ext-2", DocumentID: "doc-ghost", FieldName: "Term", ExtractedValue: strPtr("5 years")},
	}

	rows := extraction.AggregateComparison(documents, entries)

	require.Len(t, rows, 1)
	require.Len(t, rows[0].DocumentResults, 1)
	assert.NotContains(t, rows[0].DocumentResults, "doc-ghost")
}

func TestFlattenTable(t *testing.T) {
	documents := []extraction.DocumentRef{
		{ID: "doc-1", Filename: "nda_a.txt", FileType: "txt"},
		{ID: "doc-2", Filename: "nda_b.txt", FileType: "txt"},
	}
	entries := []extraction.ComparisonEntry{
		{ExtractionID: "ext-1", DocumentID: "doc-1", FieldName: "Effective Date", FieldType: extraction.FieldTypeDate, ExtractedValue: strPtr("1/15/2024")},
		{ExtractionID: "ext-2", DocumentID: "doc-2", FieldName: "Term", FieldType: extraction.FieldTypeText, ExtractedValue: strPtr("2 years")},
	}
	rows := extraction.AggregateComparison(documents, entries)

	table := extraction.FlattenTable(documents, rows)

	require.Len(t, table, 3)
	assert.Equal(t, []string{"Field Name", "Field Type", "nda_a.txt", "nda_b.txt"}, table[0])
	assert.Equal(t, []string{"Effective Date", "DATE", "1/15/2024", "N/A"}, table[1])
	assert.Equal(t, []string{"Term", "TEXT", "N/A", "2 years"}, table[2])
}

func TestFlattenTableEmptyRows(t *testing.T) {
	documents := []extraction.DocumentRef{{ID: "doc-1", Filename: "a.txt"}}

	table := extraction.FlattenTable(documents, nil)

	require.Len(t, table, 1)
	assert.Equal(t, []string{"Field Name", "Field Type", "a.txt"}, table[0])
}
