package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	slashDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	isoDateRe   = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	currencyRe  = regexp.MustCompile(`\$?([\d,]+\.?\d*)`)
)

var (
	affirmativeWords = []string{"yes", "true", "agreed", "confirmed"}
	negativeWords    = []string{"no", "false", "denied", "rejected"}
)

// NormalizeValue converts a raw extracted value into the canonical form for
// its field type. Values that do not fit the type's grammar pass through
// trimmed but otherwise unchanged, and absent or empty input normalizes to
// nil. Normalization never fails.
func NormalizeValue(value *string, fieldType FieldType) *string {
	if value == nil || *value == "" {
		return nil
	}

	trimmed := strings.TrimSpace(*value)

	switch fieldType {
	case FieldTypeDate:
		return normalizeDate(trimmed)
	case FieldTypeCurrency:
		return normalizeCurrency(trimmed)
	case FieldTypeBoolean:
		return normalizeBoolean(trimmed)
	case FieldTypeEntity:
		return normalizeEntity(trimmed)
	}

	return &trimmed
}

// normalizeDate rewrites M/D/YYYY dates as zero-padded ISO dates and reduces
// values containing an ISO date to that date. Anything else passes through.
func normalizeDate(value string) *string {
	if m := slashDateRe.FindStringSubmatch(value); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		normalized := fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
		return &normalized
	}
	if m := isoDateRe.FindString(value); m != "" {
		return &m
	}
	return &value
}

// normalizeCurrency rewrites the first numeric run as "USD <amount>" with
// separator commas removed. Values with no numeric run pass through.
func normalizeCurrency(value string) *string {
	m := currencyRe.FindStringSubmatch(value)
	if m == nil {
		return &value
	}
	normalized := "USD " + strings.ReplaceAll(m[1], ",", "")
	return &normalized
}

// normalizeBoolean maps affirmative and negative keywords to "true" and
// "false", checking affirmatives first. Values containing neither pass
// through.
func normalizeBoolean(value string) *string {
	valueLower := strings.ToLower(value)
	for _, word := range affirmativeWords {
		if strings.Contains(valueLower, word) {
			normalized := "true"
			return &normalized
		}
	}
	for _, word := range negativeWords {
		if strings.Contains(valueLower, word) {
			normalized := "false"
			return &normalized
		}
	}
	return &value
}

// normalizeEntity title-cases each word and collapses runs of whitespace to
// single spaces.
func normalizeEntity(value string) *string {
	words := strings.Fields(value)
	for i, word := range words {
		words[i] = capitalizeWord(word)
	}
	normalized := strings.Join(words, " ")
	return &normalized
}

// capitalizeWord uppercases the first rune and lowercases the rest.
func capitalizeWord(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError && size <= 1 {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
