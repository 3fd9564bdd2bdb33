package extraction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
)

// FieldExtractor runs the extraction pipeline for one document: a strategy
// produces raw values, the ranker attaches citations, and normalization and
// validation finish each record. The strategy is fixed at construction:
// configure a Completer to extract through the generative backend, otherwise
// the heuristic pattern strategy runs.
type FieldExtractor struct {
	strategy strategy
	ranker   *CitationRanker
	library  *PatternLibrary
	backend  Completer
}

// FieldExtractorOption configures a FieldExtractor.
type FieldExtractorOption func(*FieldExtractor)

// WithCompleter selects the generative-model strategy backed by c. A nil
// Completer leaves the heuristic strategy in place.
func WithCompleter(c Completer) FieldExtractorOption {
	return func(e *FieldExtractor) {
		e.backend = c
	}
}

// WithPatternLibrary replaces the built-in pattern library used by the
// heuristic strategy.
func WithPatternLibrary(l *PatternLibrary) FieldExtractorOption {
	return func(e *FieldExtractor) {
		e.library = l
	}
}

// WithCitationRanker replaces the default citation ranker.
func WithCitationRanker(r *CitationRanker) FieldExtractorOption {
	return func(e *FieldExtractor) {
		e.ranker = r
	}
}

// NewFieldExtractor creates a field extractor with the given options.
func NewFieldExtractor(opts ...FieldExtractorOption) *FieldExtractor {
	e := &FieldExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.library == nil {
		e.library = NewPatternLibrary()
	}
	if e.ranker == nil {
		e.ranker = NewCitationRanker()
	}
	if e.backend != nil {
		e.strategy = &llmStrategy{backend: e.backend}
	} else {
		e.strategy = &heuristicStrategy{library: e.library}
	}
	return e
}

// Extract produces exactly one record per field definition, in input order.
// A failure on one field yields an error record for that field only and
// never aborts the rest of the batch.
func (e *FieldExtractor) Extract(ctx context.Context, documentText string, chunks []Chunk, fields []FieldDefinition, documentID string) []ExtractionRecord {
	records := make([]ExtractionRecord, 0, len(fields))
	for _, field := range fields {
		records = append(records, e.extractField(ctx, documentText, chunks, field, documentID))
	}
	return records
}

func (e *FieldExtractor) extractField(ctx context.Context, documentText string, chunks []Chunk, field FieldDefinition, documentID string) ExtractionRecord {
	if field.FieldType == "" {
		field.FieldType = FieldTypeText
	}

	if err := validateFieldDefinition(field); err != nil {
		log.Printf("Warning: skipping field %q: %v", field.Name, err)
		return errorRecord(field, documentID, err)
	}

	result, err := e.strategy.extract(ctx, documentText, field)
	if err != nil {
		log.Printf("Warning: extraction failed for field %q: %v", field.Name, err)
		return errorRecord(field, documentID, err)
	}

	// No extracted value means no citations, whatever raw text came back.
	query := ""
	if result.Value != nil && *result.Value != "" {
		query = *result.Value
		if result.RawText != nil && *result.RawText != "" {
			query = *result.RawText
		}
	}
	citations := e.ranker.Rank(query, chunks)

	normalized := NormalizeValue(result.Value, field.FieldType)
	validation := ValidateExtraction(result.Value, normalized, field.FieldType)
	confidence := math.Min(1.0, result.Confidence*validation)

	return ExtractionRecord{
		DocumentID:      documentID,
		FieldName:       field.Name,
		FieldType:       field.FieldType,
		ExtractedValue:  result.Value,
		RawText:         result.RawText,
		NormalizedValue: normalized,
		ConfidenceScore: clamp01(confidence),
		Citations:       citations,
		Method:          e.strategy.method(),
		ExtractedAt:     time.Now().UTC(),
	}
}

func validateFieldDefinition(field FieldDefinition) error {
	if strings.TrimSpace(field.Name) == "" {
		return errors.New("field definition has no name")
	}
	if !ValidFieldType(field.FieldType) {
		return fmt.Errorf("unsupported field type %q", field.FieldType)
	}
	return nil
}

// errorRecord reports a per-field failure without aborting the batch.
func errorRecord(field FieldDefinition, documentID string, err error) ExtractionRecord {
	msg := err.Error()
	return ExtractionRecord{
		DocumentID:      documentID,
		FieldName:       field.Name,
		FieldType:       field.FieldType,
		ConfidenceScore: 0.0,
		Citations:       []Citation{},
		Error:           &msg,
		ExtractedAt:     time.Now().UTC(),
	}
}
