package extraction

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultMatchThreshold classifies an evaluation as matched when its score
// strictly exceeds this value.
const DefaultMatchThreshold = 0.8

// EvaluationRecord captures one comparison between an AI-derived value and a
// human reference value for a document and field pair.
type EvaluationRecord struct {
	DocumentID      string  `json:"document_id"`
	FieldName       string  `json:"field_name"`
	AIValue         *string `json:"ai_value"`
	HumanValue      *string `json:"human_value"`
	MatchScore      float64 `json:"match_score"`
	NormalizedMatch bool    `json:"normalized_match"`
}

// SimilarityScorer computes similarity in [0, 1] between AI and human values
// and classifies matches against its threshold.
type SimilarityScorer struct {
	// Threshold is the strict lower bound for a match classification.
	Threshold float64
}

// NewSimilarityScorer returns a scorer with the default match threshold.
func NewSimilarityScorer() *SimilarityScorer {
	return &SimilarityScorer{Threshold: DefaultMatchThreshold}
}

// Score returns the similarity between the two values. When either side is
// absent or empty the score is 1.0 if both sides are identical and 0.0
// otherwise. Present values are lowercased and trimmed; equal strings score
// 1.0 and everything else scores the character sequence ratio.
func (s *SimilarityScorer) Score(aiValue, humanValue *string) float64 {
	if isAbsent(aiValue) || isAbsent(humanValue) {
		if equalValues(aiValue, humanValue) {
			return 1.0
		}
		return 0.0
	}

	ai := strings.TrimSpace(strings.ToLower(*aiValue))
	human := strings.TrimSpace(strings.ToLower(*humanValue))
	if ai == human {
		return 1.0
	}

	matcher := difflib.NewMatcher(strings.Split(ai, ""), strings.Split(human, ""))
	return matcher.Ratio()
}

// Matches reports whether score clears the strict match threshold.
func (s *SimilarityScorer) Matches(score float64) bool {
	return score > s.Threshold
}

// Evaluate builds the evaluation record for one document and field pair.
func (s *SimilarityScorer) Evaluate(documentID, fieldName string, aiValue, humanValue *string) EvaluationRecord {
	score := s.Score(aiValue, humanValue)
	return EvaluationRecord{
		DocumentID:      documentID,
		FieldName:       fieldName,
		AIValue:         aiValue,
		HumanValue:      humanValue,
		MatchScore:      score,
		NormalizedMatch: s.Matches(score),
	}
}

func isAbsent(v *string) bool {
	return v == nil || *v == ""
}

func equalValues(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// FieldResult is the per-field accuracy rollup in an evaluation report.
type FieldResult struct {
	FieldName string  `json:"field_name"`
	Total     int     `json:"total"`
	Matched   int     `json:"matched"`
	Accuracy  float64 `json:"accuracy"`
}

// EvaluationMetrics are the project-wide evaluation aggregates. A project
// with no evaluations reports all zeros.
type EvaluationMetrics struct {
	TotalFields        int     `json:"total_fields"`
	MatchedFields      int     `json:"matched_fields"`
	FieldAccuracy      float64 `json:"field_accuracy"`
	AverageConfidence  float64 `json:"average_confidence"`
	CoveragePercentage float64 `json:"coverage_percentage"`
}

// EvaluationReport combines project metrics with per-field accuracy.
type EvaluationReport struct {
	Metrics      EvaluationMetrics `json:"metrics"`
	FieldResults []FieldResult     `json:"field_results"`
	Summary      string            `json:"summary"`
}

// EvaluationAggregator rolls evaluation records into per-field accuracy and
// project-wide metrics using its match threshold.
type EvaluationAggregator struct {
	Threshold float64
}

// NewEvaluationAggregator returns an aggregator with the default threshold.
func NewEvaluationAggregator() *EvaluationAggregator {
	return &EvaluationAggregator{Threshold: DefaultMatchThreshold}
}

// Aggregate rolls up evaluations into a report. Field results keep the order
// in which fields first appear in the input.
func (a *EvaluationAggregator) Aggregate(evaluations []EvaluationRecord) EvaluationReport {
	report := EvaluationReport{
		FieldResults: make([]FieldResult, 0),
	}
	if len(evaluations) == 0 {
		report.Summary = summaryLine(0, 0.0)
		return report
	}

	order := make([]string, 0)
	perField := make(map[string]*FieldResult)
	matched := 0
	scoreSum := 0.0

	for _, eval := range evaluations {
		result, ok := perField[eval.FieldName]
		if !ok {
			result = &FieldResult{FieldName: eval.FieldName}
			perField[eval.FieldName] = result
			order = append(order, eval.FieldName)
		}
		result.Total++
		scoreSum += eval.MatchScore
		if eval.MatchScore > a.Threshold {
			result.Matched++
			matched++
		}
	}

	for _, fieldName := range order {
		result := perField[fieldName]
		result.Accuracy = float64(result.Matched) / float64(result.Total)
		report.FieldResults = append(report.FieldResults, *result)
	}

	total := len(evaluations)
	report.Metrics = EvaluationMetrics{
		TotalFields:        total,
		MatchedFields:      matched,
		FieldAccuracy:      float64(matched) / float64(total),
		AverageConfidence:  scoreSum / float64(total),
		CoveragePercentage: float64(matched) / float64(total) * 100,
	}
	report.Summary = summaryLine(total, report.Metrics.FieldAccuracy)
	return report
}

func summaryLine(totalFields int, accuracy float64) string {
	return fmt.Sprintf("Extracted %d fields with %.1f%% accuracy", totalFields, accuracy*100)
}
