package extraction_test

import (
	"testing"

	"tabreview-backend/extraction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func TestNormalizeValue(t *testing.T) {
	testCases := []struct {
		name      string
		value     *string
		fieldType extraction.FieldType
		want      *string
	}{
		{
			name:      "nil value",
			value:     nil,
			fieldType: extraction.FieldTypeText,
			want:      nil,
		},
		{
			name:      "empty value",
			value:     strPtr(""),
			fieldType: extraction.FieldTypeDate,
			want:      nil,
		},
		{
			name:      "slash date zero-pads to ISO",
			value:     strPtr("1/5/2024"),
			fieldType: extraction.FieldTypeDate,
			want:      strPtr("2024-01-05"),
		},
		{
			name:      "slash date inside larger text",
			value:     strPtr("executed on 12/31/2023 in New York"),
			fieldType: extraction.FieldTypeDate,
			want:      strPtr("2023-12-31"),
		},
		{
			name:      "iso date reduces to the date itself",
			value:     strPtr("dated 2024-03-01 as amended"),
			fieldType: extraction.FieldTypeDate,
			want:      strPtr("2024-03-01"),
		},
		{
			name:      "unparseable date passes through trimmed",
			value:     strPtr("  January 15, 2024  "),
			fieldType: extraction.FieldTypeDate,
			want:      strPtr("January 15, 2024"),
		},
		{
			name:      "currency strips symbol and commas",
			value:     strPtr("$12,500.00"),
			fieldType: extraction.FieldTypeCurrency,
			want:      strPtr("USD 12500.00"),
		},
		{
			name:      "currency without symbol",
			value:     strPtr("5,000 payable monthly"),
			fieldType: extraction.FieldTypeCurrency,
			want:      strPtr("USD 5000"),
		},
		{
			name:      "currency with no numeric run passes through",
			value:     strPtr("five thousand"),
			fieldType: extraction.FieldTypeCurrency,
			want:      strPtr("five thousand"),
		},
		{
			name:      "boolean affirmative",
			value:     strPtr("Yes, as agreed"),
			fieldType: extraction.FieldTypeBoolean,
			want:      strPtr("true"),
		},
		{
			name:      "boolean negative",
			value:     strPtr("Denied by counsel"),
			fieldType: extraction.FieldTypeBoolean,
			want:      strPtr("false"),
		},
		{
			name:      "boolean affirmative wins over negative",
			value:     strPtr("confirmed, not denied"),
			fieldType: extraction.FieldTypeBoolean,
			want:      strPtr("true"),
		},
		{
			name:      "boolean with neither keyword passes through",
			value:     strPtr("subject to review"),
			fieldType: extraction.FieldTypeBoolean,
			want:      strPtr("subject to review"),
		},
		{
			name:      "entity title-cases words",
			value:     strPtr("ACME CORPORATION   ltd"),
			fieldType: extraction.FieldTypeEntity,
			want:      strPtr("Acme Corporation Ltd"),
		},
		{
			name:      "text trims only",
			value:     strPtr("  net 30 days  "),
			fieldType: extraction.FieldTypeText,
			want:      strPtr("net 30 days"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := extraction.NormalizeValue(tc.value, tc.fieldType)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestNormalizeValueIsIdempotentForDates(t *testing.T) {
	once := extraction.NormalizeValue(strPtr("3/7/2024"), extraction.FieldTypeDate)
	require.NotNil(t, once)
	twice := extraction.NormalizeValue(once, extraction.FieldTypeDate)
	require.NotNil(t, twice)
	assert.Equal(t, *once, *twice)
}
