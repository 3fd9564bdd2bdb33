package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// promptDocumentLimit caps how much document text is sent to the
	// generative backend.
	promptDocumentLimit = 5000

	// contextPadding is how many characters of surrounding text are kept
	// on each side of a heuristic match as its supporting raw text.
	contextPadding = 100
)

// Completer is the contract for a generative-model backend. It receives a
// rendered prompt and returns the model's raw text response. Implementations
// own their transport, timeouts, and retry policy; the extraction pipeline
// never retries on its own.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// strategyResult is the raw outcome of one strategy run, before citations,
// normalization, and validation are applied. A nil Value with zero confidence
// means the field was not found.
type strategyResult struct {
	Value      *string
	RawText    *string
	Confidence float64
}

// strategy produces a raw extraction for one field from document text.
type strategy interface {
	extract(ctx context.Context, documentText string, field FieldDefinition) (strategyResult, error)
	method() Method
}

// heuristicStrategy extracts values with the pattern library. Candidates are
// tried in order and the first candidate that matches anywhere wins, even if
// a later candidate would match earlier in the document.
type heuristicStrategy struct {
	library *PatternLibrary
}

func (s *heuristicStrategy) method() Method { return MethodHeuristic }

func (s *heuristicStrategy) extract(_ context.Context, documentText string, field FieldDefinition) (strategyResult, error) {
	for _, candidate := range s.library.CandidatesFor(field) {
		re, err := regexp.Compile(`(?im)` + candidate.Expression)
		if err != nil {
			return strategyResult{}, fmt.Errorf("invalid pattern for field %q: %w", field.Name, err)
		}

		loc := re.FindStringSubmatchIndex(documentText)
		if loc == nil {
			continue
		}

		start, end := loc[0], loc[1]
		valStart, valEnd := start, end
		if len(loc) > 2 && loc[2] >= 0 {
			valStart, valEnd = loc[2], loc[3]
		}

		value := strings.TrimSpace(documentText[valStart:valEnd])
		rawText := contextWindow(documentText, start, end)
		return strategyResult{
			Value:      &value,
			RawText:    &rawText,
			Confidence: math.Min(1.0, 0.6+candidate.ConfidenceBoost),
		}, nil
	}

	return strategyResult{}, nil
}

// contextWindow returns the text of [start, end) padded by up to
// contextPadding characters on each side, trimmed of outer whitespace.
func contextWindow(text string, start, end int) string {
	s := start
	for i := 0; i < contextPadding && s > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:s])
		s -= size
	}
	e := end
	for i := 0; i < contextPadding && e < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[e:])
		e += size
	}
	return strings.TrimSpace(text[s:e])
}

// llmStrategy extracts values through a generative backend. Backend failures
// and unparseable responses degrade to a not-found result with zero
// confidence; they are never surfaced as extraction errors.
type llmStrategy struct {
	backend Completer
}

func (s *llmStrategy) method() Method { return MethodLLM }

func (s *llmStrategy) extract(ctx context.Context, documentText string, field FieldDefinition) (strategyResult, error) {
	prompt := buildExtractionPrompt(documentText, field)

	response, err := s.backend.Complete(ctx, prompt)
	if err != nil {
		log.Printf("Warning: LLM extraction failed for field %q: %v", field.Name, err)
		return strategyResult{}, nil
	}

	var parsed struct {
		Value      *string `json:"value"`
		RawText    *string `json:"raw_text"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		log.Printf("Warning: unparseable LLM response for field %q: %v", field.Name, err)
		return strategyResult{}, nil
	}

	return strategyResult{
		Value:      parsed.Value,
		RawText:    parsed.RawText,
		Confidence: clamp01(parsed.Confidence),
	}, nil
}

// buildExtractionPrompt renders the extraction prompt for one field over the
// leading slice of document text.
func buildExtractionPrompt(documentText string, field FieldDefinition) string {
	return fmt.Sprintf(`Extract the following field from the legal document:

Field Name: %s
Field Type: %s
Description: %s

Document:
%s...

Please provide:
1. The extracted value
2. The raw text from the document supporting this extraction
3. Your confidence score (0.0-1.0)

Respond in JSON format:
{
    "value": "...",
    "raw_text": "...",
    "confidence": 0.0
}`, field.Name, field.FieldType, field.Description, truncateRunes(documentText, promptDocumentLimit))
}

// truncateRunes returns s cut to at most limit runes.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
