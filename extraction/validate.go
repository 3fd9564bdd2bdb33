package extraction

import (
	"regexp"
	"strings"
)

var (
	isoDatePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	numericRunRe    = regexp.MustCompile(`[\d,]+\.?\d*`)
)

// ValidateExtraction scores how well a normalized value conforms to its
// declared field type. The result is a multiplier in [0, 1] applied to the
// strategy confidence, not a standalone confidence: 0.0 when nothing was
// extracted, 0.5 when normalization produced nothing, and a type-specific
// conformance score otherwise.
func ValidateExtraction(extractedValue, normalizedValue *string, fieldType FieldType) float64 {
	if extractedValue == nil || *extractedValue == "" {
		return 0.0
	}
	if normalizedValue == nil || *normalizedValue == "" {
		return 0.5
	}

	switch fieldType {
	case FieldTypeDate:
		if isoDatePrefixRe.MatchString(*normalizedValue) {
			return 1.0
		}
		return 0.6
	case FieldTypeCurrency:
		if strings.Contains(*normalizedValue, "USD") && numericRunRe.MatchString(*normalizedValue) {
			return 1.0
		}
		return 0.6
	case FieldTypeBoolean:
		if *normalizedValue == "true" || *normalizedValue == "false" {
			return 1.0
		}
		return 0.5
	}

	return 0.8
}
