package extraction_test

import (
	"testing"

	"tabreview-backend/extraction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAbsentValues(t *testing.T) {
	scorer := extraction.NewSimilarityScorer()

	testCases := []struct {
		name  string
		ai    *string
		human *string
		want  float64
	}{
		{name: "both nil", ai: nil, human: nil, want: 1.0},
		{name: "both empty", ai: strPtr(""), human: strPtr(""), want: 1.0},
		{name: "ai missing", ai: nil, human: strPtr("2024-01-15"), want: 0.0},
		{name: "human missing", ai: strPtr("2024-01-15"), human: nil, want: 0.0},
		{name: "nil against empty", ai: nil, human: strPtr(""), want: 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, scorer.Score(tc.ai, tc.human), 1e-9)
		})
	}
}

func TestScoreIsCaseAndSpaceInsensitive(t *testing.T) {
	scorer := extraction.NewSimilarityScorer()

	assert.InDelta(t, 1.0, scorer.Score(strPtr("Acme Corp"), strPtr("  acme corp ")), 1e-9)
	assert.InDelta(t, 1.0, scorer.Score(strPtr("2024-01-15"), strPtr("2024-01-15")), 1e-9)
}

func TestScoreNearMatch(t *testing.T) {
	scorer := extraction.NewSimilarityScorer()

	// "january 15, 2024" vs "january 15 2024" share "january 15" and " 2024"
	// as matching blocks: ratio = 2*15/(16+15).
	score := scorer.Score(strPtr("January 15, 2024"), strPtr("January 15 2024"))
	assert.InDelta(t, 30.0/31.0, score, 1e-3)
	assert.True(t, scorer.Matches(score))
}

func TestScoreDisjointValues(t *testing.T) {
	scorer := extraction.NewSimilarityScorer()

	score := scorer.Score(strPtr("Delaware"), strPtr("New York"))
	assert.Less(t, score, 0.5)
	assert.False(t, scorer.Matches(score))
}

func TestMatchesIsStrict(t *testing.T) {
	scorer := extraction.NewSimilarityScorer()

	assert.False(t, scorer.Matches(0.8))
	assert.True(t, scorer.Matches(0.8000001))
}

func TestEvaluateBuildsRecord(t *testing.T) {
	scorer := extraction.NewSimilarityScorer()

	record := scorer.Evaluate("doc-1", "Effective Date", strPtr("2024-01-15"), strPtr("2024-01-15"))

	assert.Equal(t, "doc-1", record.DocumentID)
	assert.Equal(t, "Effective Date", record.FieldName)
	assert.InDelta(t, 1.0, record.MatchScore, 1e-9)
	assert.True(t, record.NormalizedMatch)
}

func TestAggregateEvaluations(t *testing.T) {
	evaluations := []extraction.EvaluationRecord{
		{FieldName: "Effective Date", MatchScore: 1.0},
		{FieldName: "Effective Date", MatchScore: 0.9},
		{FieldName: "Governing Law", MatchScore: 0.5},
		{FieldName: "Governing Law", MatchScore: 0.2},
	}

	report := extraction.NewEvaluationAggregator().Aggregate(evaluations)

	assert.Equal(t, 4, report.Metrics.TotalFields)
	assert.Equal(t, 2, report.Metrics.MatchedFields)
	assert.InDelta(t, 0.5, report.Metrics.FieldAccuracy, 1e-9)
	assert.InDelta(t, 0.65, report.Metrics.AverageConfidence, 1e-9)
	assert.InDelta(t, 50.0, report.Metrics.CoveragePercentage, 1e-9)
	assert.Equal(t, "Extracted 4 fields with 50.0% accuracy", report.Summary)

	require.Len(t, report.FieldResults, 2)
	assert.Equal(t, "Effective Date", report.FieldResults[0].FieldName)
	assert.Equal(t, 2, report.FieldResults[0].Total)
	assert.Equal(t, 2, report.FieldResults[0].Matched)
	assert.InDelta(t, 1.0, report.FieldResults[0].Accuracy, 1e-9)
	assert.Equal(t, "Governing Law", report.FieldResults[1].FieldName)
	assert.Equal(t, 0, report.FieldResults[1].Matched)
	assert.InDelta(t, 0.0, report.FieldResults[1].Accuracy, 1e-9)
}

func TestAggregateNoEvaluations(t *testing.T) {
	report := extraction.NewEvaluationAggregator().Aggregate(nil)

	assert.Zero(t, report.Metrics.TotalFields)
	assert.Zero(t, report.Metrics.MatchedFields)
	assert.Zero(t, report.Metrics.FieldAccuracy)
	assert.Zero(t, report.Metrics.AverageConfidence)
	assert.Zero(t, report.Metrics.CoveragePercentage)
	assert.Empty(t, report.FieldResults)
	assert.Equal(t, "Extracted 0 fields with 0.0% accuracy", report.Summary)
}

func TestAggregateThresholdIsStrict(t *testing.T) {
	evaluations := []extraction.EvaluationRecord{
		{FieldName: "Term", MatchScore: 0.8},
	}

	report := extraction.NewEvaluationAggregator().Aggregate(evaluations)

	assert.Equal(t, 0, report.Metrics.MatchedFields)
	assert.InDelta(t, 0.8, report.Metrics.AverageConfidence, 1e-9)
}
