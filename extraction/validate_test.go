package extraction_test

import (
	"testing"

	"tabreview-backend/extraction"

	"github.com/stretchr/testify/assert"
)

func TestValidateExtraction(t *testing.T) {
	testCases := []struct {
		name       string
		extracted  *string
		normalized *string
		fieldType  extraction.FieldType
		want       float64
	}{
		{
			name:      "nothing extracted",
			extracted: nil,
			fieldType: extraction.FieldTypeDate,
			want:      0.0,
		},
		{
			name:      "empty extraction",
			extracted: strPtr(""),
			fieldType: extraction.FieldTypeText,
			want:      0.0,
		},
		{
			name:      "normalization produced nothing",
			extracted: strPtr("something"),
			fieldType: extraction.FieldTypeText,
			want:      0.5,
		},
		{
			name:       "date in canonical form",
			extracted:  strPtr("1/15/2024"),
			normalized: strPtr("2024-01-15"),
			fieldType:  extraction.FieldTypeDate,
			want:       1.0,
		},
		{
			name:       "date not canonical",
			extracted:  strPtr("January 15, 2024"),
			normalized: strPtr("January 15, 2024"),
			fieldType:  extraction.FieldTypeDate,
			want:       0.6,
		},
		{
			name:       "currency in canonical form",
			extracted:  strPtr("$5,000"),
			normalized: strPtr("USD 5000"),
			fieldType:  extraction.FieldTypeCurrency,
			want:       1.0,
		},
		{
			name:       "currency not canonical",
			extracted:  strPtr("five thousand"),
			normalized: strPtr("five thousand"),
			fieldType:  extraction.FieldTypeCurrency,
			want:       0.6,
		},
		{
			name:       "boolean canonical",
			extracted:  strPtr("yes"),
			normalized: strPtr("true"),
			fieldType:  extraction.FieldTypeBoolean,
			want:       1.0,
		},
		{
			name:       "boolean not canonical",
			extracted:  strPtr("maybe"),
			normalized: strPtr("maybe"),
			fieldType:  extraction.FieldTypeBoolean,
			want:       0.5,
		},
		{
			name:       "text defaults",
			extracted:  strPtr("net 30"),
			normalized: strPtr("net 30"),
			fieldType:  extraction.FieldTypeText,
			want:       0.8,
		},
		{
			name:       "entity defaults",
			extracted:  strPtr("acme corp"),
			normalized: strPtr("Acme Corp"),
			fieldType:  extraction.FieldTypeEntity,
			want:       0.8,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := extraction.ValidateExtraction(tc.extracted, tc.normalized, tc.fieldType)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}
