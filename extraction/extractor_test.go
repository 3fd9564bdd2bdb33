package extraction_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tabreview-backend/extraction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestExtractHeuristicDateField(t *testing.T) {
	documentText := "This Agreement is effective January 15, 2024 between Acme Corp and Beta LLC."
	chunks := []extraction.Chunk{{Text: documentText}}

	extractor := extraction.NewFieldExtractor()
	records := extractor.Extract(context.Background(), documentText, chunks, []extraction.FieldDefinition{
		{Name: "Effective Date", FieldType: extraction.FieldTypeDate},
	}, "doc-1")

	require.Len(t, records, 1)
	record := records[0]

	assert.Equal(t, "Effective Date", record.FieldName)
	assert.Equal(t, extraction.FieldTypeDate, record.FieldType)
	assert.Equal(t, extraction.MethodHeuristic, record.Method)
	assert.Equal(t, "doc-1", record.DocumentID)
	assert.Nil(t, record.Error)

	require.NotNil(t, record.ExtractedValue)
	assert.Equal(t, "January 15, 2024", *record.ExtractedValue)
	require.NotNil(t, record.NormalizedValue)
	assert.Equal(t, "January 15, 2024", *record.NormalizedValue)

	// Month-name match boosts to 1.0, then the non-ISO normalized form
	// scales it by 0.6.
	assert.InDelta(t, 0.6, record.ConfidenceScore, 1e-9)

	require.NotNil(t, record.RawText)
	assert.Contains(t, *record.RawText, "January 15, 2024")

	require.NotEmpty(t, record.Citations)
	assert.Equal(t, "0", record.Citations[0].ChunkID)
	assert.Equal(t, 1, record.Citations[0].PageNumber)
	assert.Equal(t, "Main", record.Citations[0].SectionTitle)
	assert.InDelta(t, 1.0, record.Citations[0].RelevanceScore, 1e-9)
}

func TestExtractFirstPatternWinsOverDocumentOrder(t *testing.T) {
	// The month-name date appears first in the document, but the slash
	// pattern is tried first and short-circuits candidate evaluation.
	documentText := "Signed January 15, 2024. Renewal due 03/01/2025 unless terminated."

	extractor := extraction.NewFieldExtractor()
	records := extractor.Extract(context.Background(), documentText, nil, []extraction.FieldDefinition{
		{Name: "Effective Date", FieldType: extraction.FieldTypeDate},
	}, "")

	require.Len(t, records, 1)
	record := records[0]

	require.NotNil(t, record.ExtractedValue)
	assert.Equal(t, "03/01/2025", *record.ExtractedValue)
	require.NotNil(t, record.NormalizedValue)
	assert.Equal(t, "2025-03-01", *record.NormalizedValue)
	assert.InDelta(t, 0.9, record.ConfidenceScore, 1e-9)
}

func TestExtractFieldNotFound(t *testing.T) {
	documentText := "Nothing in this text resembles the requested field."
	chunks := []extraction.Chunk{{Text: documentText}}

	extractor := extraction.NewFieldExtractor()
	records := extractor.Extract(context.Background(), documentText, chunks, []extraction.FieldDefinition{
		{Name: "Notice Period", FieldType: extraction.FieldTypeText},
	}, "doc-1")

	require.Len(t, records, 1)
	record := records[0]

	assert.Nil(t, record.ExtractedValue)
	assert.Nil(t, record.RawText)
	assert.Nil(t, record.NormalizedValue)
	assert.Zero(t, record.ConfidenceScore)
	assert.Empty(t, record.Citations)
	assert.Nil(t, record.Error)
	assert.Equal(t, extraction.MethodHeuristic, record.Method)
}

func TestExtractMalformedFieldsDoNotAbortBatch(t *testing.T) {
	documentText := "Governing Law: Delaware. Payment terms to follow."

	extractor := extraction.NewFieldExtractor()
	records := extractor.Extract(context.Background(), documentText, nil, []extraction.FieldDefinition{
		{Name: "", FieldType: extraction.FieldTypeText},
		{Name: "Amount", FieldType: "FLOAT"},
		{Name: "Governing Law"},
	}, "doc-1")

	require.Len(t, records, 3)

	for _, record := range records[:2] {
		require.NotNil(t, record.Error)
		assert.Nil(t, record.ExtractedValue)
		assert.Nil(t, record.NormalizedValue)
		assert.Zero(t, record.ConfidenceScore)
		assert.Empty(t, record.Citations)
	}
	assert.Contains(t, *records[0].Error, "no name")
	assert.Contains(t, *records[1].Error, "unsupported field type")

	// An empty field type defaults to TEXT and extracts normally.
	valid := records[2]
	assert.Nil(t, valid.Error)
	assert.Equal(t, extraction.FieldTypeText, valid.FieldType)
	require.NotNil(t, valid.ExtractedValue)
	assert.Equal(t, "Delaware", *valid.ExtractedValue)
	assert.InDelta(t, 0.64, valid.ConfidenceScore, 1e-9)
}

func TestExtractWithCompleter(t *testing.T) {
	documentText := "Effective Date: January 15, 2024. Signed by both parties."
	backend := &fakeCompleter{
		response: `{"value": "2024-01-15", "raw_text": "Effective Date: January 15, 2024", "confidence": 0.95}`,
	}

	extractor := extraction.NewFieldExtractor(extraction.WithCompleter(backend))
	records := extractor.Extract(context.Background(), documentText, nil, []extraction.FieldDefinition{
		{Name: "Effective Date", FieldType: extraction.FieldTypeDate, Description: "The date the agreement takes effect"},
	}, "doc-1")

	require.Len(t, records, 1)
	record := records[0]

	assert.Equal(t, extraction.MethodLLM, record.Method)
	require.NotNil(t, record.ExtractedValue)
	assert.Equal(t, "2024-01-15", *record.ExtractedValue)
	require.NotNil(t, record.NormalizedValue)
	assert.Equal(t, "2024-01-15", *record.NormalizedValue)
	assert.InDelta(t, 0.95, record.ConfidenceScore, 1e-9)

	require.Len(t, backend.prompts, 1)
	assert.Contains(t, backend.prompts[0], "Field Name: Effective Date")
	assert.Contains(t, backend.prompts[0], "Field Type: DATE")
	assert.Contains(t, backend.prompts[0], "The date the agreement takes effect")
	assert.Contains(t, backend.prompts[0], "Effective Date: January 15, 2024")
}

func TestExtractCompleterFailureDegrades(t *testing.T) {
	testCases := []struct {
		name    string
		backend *fakeCompleter
	}{
		{
			name:    "backend error",
			backend: &fakeCompleter{err: errors.New("rate limited")},
		},
		{
			name:    "unparseable response",
			backend: &fakeCompleter{response: "the value is probably January"},
		},
		{
			name:    "wrong shape",
			backend: &fakeCompleter{response: `{"value": 42, "confidence": "high"}`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			extractor := extraction.NewFieldExtractor(extraction.WithCompleter(tc.backend))
			records := extractor.Extract(context.Background(), "some text", nil, []extraction.FieldDefinition{
				{Name: "Effective Date", FieldType: extraction.FieldTypeDate},
			}, "doc-1")

			require.Len(t, records, 1)
			record := records[0]

			assert.Nil(t, record.Error, "backend failures are not extraction errors")
			assert.Nil(t, record.ExtractedValue)
			assert.Zero(t, record.ConfidenceScore)
			assert.Empty(t, record.Citations)
			assert.Equal(t, extraction.MethodLLM, record.Method)
		})
	}
}

func TestExtractConfidenceStaysInRange(t *testing.T) {
	testCases := []struct {
		name     string
		response string
		want     float64
	}{
		{
			name:     "overconfident backend is clamped",
			response: `{"value": "Acme Corp", "raw_text": "Acme Corp", "confidence": 3.2}`,
			want:     0.8,
		},
		{
			name:     "negative confidence is clamped to zero",
			response: `{"value": "Acme Corp", "raw_text": "Acme Corp", "confidence": -0.5}`,
			want:     0.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &fakeCompleter{response: tc.response}
			extractor := extraction.NewFieldExtractor(extraction.WithCompleter(backend))

			records := extractor.Extract(context.Background(), "Acme Corp provides services.", nil, []extraction.FieldDefinition{
				{Name: "Provider", FieldType: extraction.FieldTypeText},
			}, "")

			require.Len(t, records, 1)
			assert.InDelta(t, tc.want, records[0].ConfidenceScore, 1e-9)
			assert.GreaterOrEqual(t, records[0].ConfidenceScore, 0.0)
			assert.LessOrEqual(t, records[0].ConfidenceScore, 1.0)
		})
	}
}

func TestExtractPromptTruncatesDocument(t *testing.T) {
	documentText := strings.Repeat("a", 6000)
	backend := &fakeCompleter{response: `{"value": null, "raw_text": null, "confidence": 0.0}`}

	extractor := extraction.NewFieldExtractor(extraction.WithCompleter(backend))
	extractor.Extract(context.Background(), documentText, nil, []extraction.FieldDefinition{
		{Name: "Anything", FieldType: extraction.FieldTypeText},
	}, "")

	require.Len(t, backend.prompts, 1)
	assert.Contains(t, backend.prompts[0], strings.Repeat("a", 5000)+"...")
	assert.NotContains(t, backend.prompts[0], strings.Repeat("a", 5001))
}

func TestExtractRecordPerFieldInOrder(t *testing.T) {
	documentText := "Total due: $12,500.00 payable between Acme Corp and Beta LLC."

	extractor := extraction.NewFieldExtractor()
	fields := []extraction.FieldDefinition{
		{Name: "Contract Amount", FieldType: extraction.FieldTypeCurrency},
		{Name: "First Party", FieldType: extraction.FieldTypeEntity},
		{Name: "Missing Field", FieldType: extraction.FieldTypeText},
	}
	records := extractor.Extract(context.Background(), documentText, nil, fields, "doc-1")

	require.Len(t, records, 3)
	for i, field := range fields {
		assert.Equal(t, field.Name, records[i].FieldName)
	}

	require.NotNil(t, records[0].ExtractedValue)
	assert.Equal(t, "$12,500.00", *records[0].ExtractedValue)
	require.NotNil(t, records[0].NormalizedValue)
	assert.Equal(t, "USD 12500.00", *records[0].NormalizedValue)
	assert.InDelta(t, 1.0, records[0].ConfidenceScore, 1e-9)
}
