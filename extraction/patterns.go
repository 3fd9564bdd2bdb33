package extraction

import (
	"regexp"
	"strings"
)

// PatternCandidate pairs one regular expression with the confidence boost
// applied when it produces the winning match. Expressions are compiled with
// case-insensitive and multi-line flags at match time.
type PatternCandidate struct {
	Expression      string
	ConfidenceBoost float64
}

// categoryRule maps a field-name predicate to the ordered pattern set for
// that category. Rules are checked in order and only the first matching
// category contributes its patterns.
type categoryRule struct {
	applies  func(nameLower string, fieldType FieldType) bool
	patterns []PatternCandidate
}

// PatternLibrary resolves a field definition to an ordered list of extraction
// pattern candidates. It is a pure lookup over a fixed rule table.
type PatternLibrary struct {
	rules []categoryRule
}

func nameContains(substr string) func(string, FieldType) bool {
	return func(nameLower string, _ FieldType) bool {
		return strings.Contains(nameLower, substr)
	}
}

// NewPatternLibrary returns the library of built-in legal field patterns.
func NewPatternLibrary() *PatternLibrary {
	return &PatternLibrary{
		rules: []categoryRule{
			{
				applies: func(nameLower string, fieldType FieldType) bool {
					return strings.Contains(nameLower, "date") || fieldType == FieldTypeDate
				},
				patterns: []PatternCandidate{
					{Expression: `(\d{1,2}/\d{1,2}/\d{4})`, ConfidenceBoost: 0.3},
					{Expression: `(\d{4}-\d{2}-\d{2})`, ConfidenceBoost: 0.3},
					{Expression: `((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4})`, ConfidenceBoost: 0.4},
				},
			},
			{
				applies: func(nameLower string, _ FieldType) bool {
					return strings.Contains(nameLower, "party") || strings.Contains(nameLower, "parties")
				},
				patterns: []PatternCandidate{
					{Expression: `(?:Between|BETWEEN|between)\s+([A-Z][A-Za-z\s&.,]+?)\s+(?:and|AND)`, ConfidenceBoost: 0.3},
					{Expression: `(?:Party|PARTY):\s*([A-Z][A-Za-z\s&.,]+?)(?:\n|;)`, ConfidenceBoost: 0.4},
				},
			},
			{
				applies: func(nameLower string, _ FieldType) bool {
					return strings.Contains(nameLower, "effective") || strings.Contains(nameLower, "term")
				},
				patterns: []PatternCandidate{
					{Expression: `(?:effective|Effective|EFFECTIVE)(?:\s+date)?[:\s]+([A-Za-z0-9\s,./\-]+?)(?:[,;]|and|on)`, ConfidenceBoost: 0.3},
					{Expression: `(?:term|Term|TERM)[:\s]+([A-Za-z0-9\s,./\-]+?)(?:[,;]|and|\n)`, ConfidenceBoost: 0.3},
				},
			},
			{
				applies: func(nameLower string, fieldType FieldType) bool {
					return strings.Contains(nameLower, "currency") || strings.Contains(nameLower, "amount") || fieldType == FieldTypeCurrency
				},
				patterns: []PatternCandidate{
					{Expression: `\$[\d,]+\.?\d*`, ConfidenceBoost: 0.4},
					{Expression: `(USD|EUR|GBP)[\s]*[\d,]+\.?\d*`, ConfidenceBoost: 0.3},
				},
			},
			{
				applies: func(nameLower string, _ FieldType) bool {
					return strings.Contains(nameLower, "liable") || strings.Contains(nameLower, "liability")
				},
				patterns: []PatternCandidate{
					{Expression: `(?:liability|Liability|LIABLE)[:\s]+([A-Za-z0-9\s,\-$().%]+?)(?:[.;]|and|as)`, ConfidenceBoost: 0.3},
				},
			},
		},
	}
}

// CandidatesFor returns the ordered pattern candidates for a field. At most
// one category contributes, and a generic pattern built from the literal
// field name is always appended last.
func (l *PatternLibrary) CandidatesFor(field FieldDefinition) []PatternCandidate {
	nameLower := strings.ToLower(field.Name)

	var candidates []PatternCandidate
	for _, rule := range l.rules {
		if rule.applies(nameLower, field.FieldType) {
			candidates = append(candidates, rule.patterns...)
			break
		}
	}

	candidates = append(candidates, PatternCandidate{
		Expression:      `(?:` + regexp.QuoteMeta(field.Name) + `)[:\s]+([A-Za-z0-9\s,\-$().%]+?)(?:[.;]|and)`,
		ConfidenceBoost: 0.2,
	})

	return candidates
}
