package extraction_test

import (
	"context"
	"testing"

	"tabreview-backend/extraction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatesForCategorySelection(t *testing.T) {
	library := extraction.NewPatternLibrary()

	testCases := []struct {
		name      string
		field     extraction.FieldDefinition
		wantCount int
	}{
		{
			name:      "date by name",
			field:     extraction.FieldDefinition{Name: "Closing Date", FieldType: extraction.FieldTypeText},
			wantCount: 4,
		},
		{
			name:      "date by type",
			field:     extraction.FieldDefinition{Name: "Signed On", FieldType: extraction.FieldTypeDate},
			wantCount: 4,
		},
		{
			name:      "party",
			field:     extraction.FieldDefinition{Name: "First Party", FieldType: extraction.FieldTypeEntity},
			wantCount: 3,
		},
		{
			name:      "effective term",
			field:     extraction.FieldDefinition{Name: "Effective Period", FieldType: extraction.FieldTypeText},
			wantCount: 3,
		},
		{
			name:      "currency by name",
			field:     extraction.FieldDefinition{Name: "Total Amount", FieldType: extraction.FieldTypeText},
			wantCount: 3,
		},
		{
			name:      "liability",
			field:     extraction.FieldDefinition{Name: "Liability Cap", FieldType: extraction.FieldTypeText},
			wantCount: 2,
		},
		{
			name:      "no category gets the generic pattern only",
			field:     extraction.FieldDefinition{Name: "Notice Period", FieldType: extraction.FieldTypeText},
			wantCount: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			candidates := library.CandidatesFor(tc.field)
			require.Len(t, candidates, tc.wantCount)

			last := candidates[len(candidates)-1]
			assert.InDelta(t, 0.2, last.ConfidenceBoost, 1e-9)
			assert.Contains(t, last.Expression, tc.field.Name)
		})
	}
}

func TestCandidatesForSingleCategory(t *testing.T) {
	// "Effective Date" matches both the date and the effective categories;
	// only the first category in rule order contributes.
	library := extraction.NewPatternLibrary()

	candidates := library.CandidatesFor(extraction.FieldDefinition{
		Name:      "Effective Date",
		FieldType: extraction.FieldTypeDate,
	})

	require.Len(t, candidates, 4)
	assert.Contains(t, candidates[0].Expression, `\d{1,2}/\d{1,2}/\d{4}`)
}

func TestExtractFieldNameWithRegexMetacharacters(t *testing.T) {
	documentText := "Price ($): 100. Payable on delivery."

	extractor := extraction.NewFieldExtractor()
	records := extractor.Extract(context.Background(), documentText, nil, []extraction.FieldDefinition{
		{Name: "Price ($)", FieldType: extraction.FieldTypeText},
	}, "")

	require.Len(t, records, 1)
	assert.Nil(t, records[0].Error)
	require.NotNil(t, records[0].ExtractedValue)
	assert.Equal(t, "100", *records[0].ExtractedValue)
}
