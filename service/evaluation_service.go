package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tabreview-backend/extraction"
	"tabreview-backend/models"
	"tabreview-backend/repository"

	"github.com/google/uuid"
)

// EvaluationService scores AI-extracted values against human reference values
// and rolls project-wide accuracy reports
type EvaluationService struct {
	extractionRepo *repository.ExtractionRepository
	evaluationRepo *repository.EvaluationRepository
	taskRepo       *repository.TaskRepository
	scorer         *extraction.SimilarityScorer
	aggregator     *extraction.EvaluationAggregator
}

// EvaluationServiceOption is a functional option for EvaluationService
type EvaluationServiceOption func(*EvaluationService)

// EvaluationWithExtractionRepository sets the extraction repository
func EvaluationWithExtractionRepository(repo *repository.ExtractionRepository) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.extractionRepo = repo
	}
}

// EvaluationWithEvaluationRepository sets the evaluation repository
func EvaluationWithEvaluationRepository(repo *repository.EvaluationRepository) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.evaluationRepo = repo
	}
}

// EvaluationWithTaskRepository sets the task repository
func EvaluationWithTaskRepository(repo *repository.TaskRepository) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.taskRepo = repo
	}
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(opts ...EvaluationServiceOption) *EvaluationService {
	s := &EvaluationService{
		scorer:     extraction.NewSimilarityScorer(),
		aggregator: extraction.NewEvaluationAggregator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EvaluationStatusNotFound marks an evaluation request whose document and
// field pair has no extraction to score
const EvaluationStatusNotFound = "extraction_not_found"

// EvaluationItem is one document and field pair to evaluate against a human
// reference value
type EvaluationItem struct {
	DocumentID uuid.UUID
	FieldName  string
	HumanValue *string
}

// EvaluateExtractionResult mirrors the stored evaluation. Status is set only
// when no extraction matched the request.
type EvaluateExtractionResult struct {
	Status          string     `json:"status,omitempty"`
	ID              *uuid.UUID `json:"id,omitempty"`
	FieldName       string     `json:"field_name,omitempty"`
	AIValue         *string    `json:"ai_value,omitempty"`
	HumanValue      *string    `json:"human_value,omitempty"`
	MatchScore      float64    `json:"match_score"`
	NormalizedMatch bool       `json:"normalized_match"`
}

// EvaluateExtraction scores the AI value of one document and field pair
// against a human reference value and stores the evaluation. A pair with no
// extraction yields a not-found status, not an error.
func (s *EvaluationService) EvaluateExtraction(ctx context.Context, projectID uuid.UUID, item EvaluationItem) (*EvaluateExtractionResult, error) {
	if s.extractionRepo == nil {
		return nil, errors.New("extraction repository not set")
	}
	if s.evaluationRepo == nil {
		return nil, errors.New("evaluation repository not set")
	}

	extractions, err := s.extractionRepo.ListByProject(ctx, projectID, &item.FieldName, &item.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}
	if len(extractions) == 0 {
		return &EvaluateExtractionResult{Status: EvaluationStatusNotFound}, nil
	}

	row := extractions[0]
	aiValue := row.ExtractedValue
	if row.NormalizedValue != nil && *row.NormalizedValue != "" {
		aiValue = row.NormalizedValue
	}

	record := s.scorer.Evaluate(item.DocumentID.String(), item.FieldName, aiValue, item.HumanValue)

	evaluation := &models.Evaluation{
		ProjectID:       projectID,
		DocumentID:      item.DocumentID,
		FieldName:       item.FieldName,
		AIValue:         record.AIValue,
		HumanValue:      record.HumanValue,
		MatchScore:      record.MatchScore,
		NormalizedMatch: record.NormalizedMatch,
	}
	if err := s.evaluationRepo.Create(ctx, evaluation); err != nil {
		return nil, fmt.Errorf("failed to store evaluation: %w", err)
	}

	return &EvaluateExtractionResult{
		ID:              &evaluation.ID,
		FieldName:       item.FieldName,
		AIValue:         record.AIValue,
		HumanValue:      record.HumanValue,
		MatchScore:      record.MatchScore,
		NormalizedMatch: record.NormalizedMatch,
	}, nil
}

// RunEvaluation evaluates each item, then stores the refreshed project report
// as the task result. It is meant to run in a background goroutine detached
// from the request context.
func (s *EvaluationService) RunEvaluation(ctx context.Context, taskID, projectID uuid.UUID, items []EvaluationItem) error {
	if s.taskRepo == nil {
		return errors.New("task repository not set")
	}

	if err := s.taskRepo.MarkProcessing(ctx, taskID); err != nil {
		return fmt.Errorf("failed to mark task processing: %w", err)
	}

	runErr := func() error {
		for _, item := range items {
			if _, err := s.EvaluateExtraction(ctx, projectID, item); err != nil {
				return err
			}
		}
		return nil
	}()

	var report *EvaluationReportResult
	if runErr == nil {
		report, runErr = s.Report(ctx, projectID)
	}

	if runErr != nil {
		if err := s.taskRepo.Fail(ctx, taskID, runErr.Error()); err != nil {
			log.Printf("Warning: Failed to mark task %s failed: %v", taskID, err)
		}
		return runErr
	}

	result := models.TaskResult{
		"project_id":    report.ProjectID.String(),
		"metrics":       report.Metrics,
		"field_results": report.FieldResults,
		"summary":       report.Summary,
		"generated_at":  report.GeneratedAt,
	}
	if err := s.taskRepo.Complete(ctx, taskID, result); err != nil {
		return fmt.Errorf("failed to mark task completed: %w", err)
	}
	return nil
}

// EvaluationReportResult is the project-wide evaluation report
type EvaluationReportResult struct {
	ProjectID    uuid.UUID                    `json:"project_id"`
	Metrics      extraction.EvaluationMetrics `json:"metrics"`
	FieldResults []extraction.FieldResult     `json:"field_results"`
	Summary      string                       `json:"summary"`
	GeneratedAt  time.Time                    `json:"generated_at"`
}

// Report aggregates every stored evaluation of a project into accuracy
// metrics and per-field results
func (s *EvaluationService) Report(ctx context.Context, projectID uuid.UUID) (*EvaluationReportResult, error) {
	if s.evaluationRepo == nil {
		return nil, errors.New("evaluation repository not set")
	}

	evaluations, err := s.evaluationRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	records := make([]extraction.EvaluationRecord, 0, len(evaluations))
	for _, e := range evaluations {
		records = append(records, extraction.EvaluationRecord{
			DocumentID:      e.DocumentID.String(),
			FieldName:       e.FieldName,
			AIValue:         e.AIValue,
			HumanValue:      e.HumanValue,
			MatchScore:      e.MatchScore,
			NormalizedMatch: e.NormalizedMatch,
		})
	}

	report := s.aggregator.Aggregate(records)

	return &EvaluationReportResult{
		ProjectID:    projectID,
		Metrics:      report.Metrics,
		FieldResults: report.FieldResults,
		Summary:      report.Summary,
		GeneratedAt:  time.Now(),
	}, nil
}
