// Package extraction implements the field extraction pipeline for legal
// documents: pattern-based and LLM-backed value extraction, citation ranking
// over document chunks, type-aware normalization, confidence validation,
// cross-document comparison, and evaluation against human reference values.
//
// The package is self-contained and side-effect free. It never touches the
// database or the network directly; generative backends plug in through the
// Completer interface and callers own all persistence.
package extraction

import "time"

// FieldType enumerates the supported field value types.
type FieldType string

const (
	FieldTypeText     FieldType = "TEXT"
	FieldTypeDate     FieldType = "DATE"
	FieldTypeCurrency FieldType = "CURRENCY"
	FieldTypeBoolean  FieldType = "BOOLEAN"
	FieldTypeEntity   FieldType = "ENTITY"
)

// ValidFieldType reports whether t is one of the supported field types.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeDate, FieldTypeCurrency, FieldTypeBoolean, FieldTypeEntity:
		return true
	}
	return false
}

// Method identifies which strategy produced an extraction.
type Method string

const (
	MethodLLM       Method = "llm"
	MethodHeuristic Method = "heuristic"
)

// FieldDefinition describes one named, typed value to extract from a document.
// An empty FieldType defaults to TEXT.
type FieldDefinition struct {
	Name        string    `json:"name"`
	FieldType   FieldType `json:"field_type"`
	Description string    `json:"description,omitempty"`
}

// Chunk is a contiguous span of document text tagged with page and section
// metadata, produced by the ingestion layer. ID is the caller's identifier
// for the chunk; citations fall back to the chunk's position when it is
// empty.
type Chunk struct {
	ID         string `json:"id,omitempty"`
	Text       string `json:"text"`
	PageNumber *int   `json:"page_number,omitempty"`
	Section    string `json:"section,omitempty"`
}

// Citation points at the chunk evidence supporting an extracted value.
type Citation struct {
	CitationText   string  `json:"citation_text"`
	PageNumber     int     `json:"page_number"`
	SectionTitle   string  `json:"section_title"`
	RelevanceScore float64 `json:"relevance_score"`
	ChunkID        string  `json:"chunk_id"`
}

// ExtractionRecord is the result of extracting one field from one document.
// Records are immutable once produced; review overrides live with the caller.
// A record with Error set carries nil values, zero confidence, and no
// citations, and reports a malformed field definition or a strategy fault,
// never a value that simply was not found.
type ExtractionRecord struct {
	DocumentID      string     `json:"document_id,omitempty"`
	FieldName       string     `json:"field_name"`
	FieldType       FieldType  `json:"field_type"`
	ExtractedValue  *string    `json:"extracted_value"`
	RawText         *string    `json:"raw_text"`
	NormalizedValue *string    `json:"normalized_value"`
	ConfidenceScore float64    `json:"confidence_score"`
	Citations       []Citation `json:"citations"`
	Method          Method     `json:"method,omitempty"`
	Error           *string    `json:"error,omitempty"`
	ExtractedAt     time.Time  `json:"extracted_at"`
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
