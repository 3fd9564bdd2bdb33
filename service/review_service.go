package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tabreview-backend/models"
	"tabreview-backend/repository"

	"github.com/google/uuid"
)

// ReviewService handles human review decisions over extracted values
type ReviewService struct {
	extractionRepo *repository.ExtractionRepository
	reviewRepo     *repository.ReviewRepository
}

// ReviewServiceOption is a functional option for ReviewService
type ReviewServiceOption func(*ReviewService)

// ReviewWithExtractionRepository sets the extraction repository
func ReviewWithExtractionRepository(repo *repository.ExtractionRepository) ReviewServiceOption {
	return func(s *ReviewService) {
		s.extractionRepo = repo
	}
}

// ReviewWithReviewRepository sets the review repository
func ReviewWithReviewRepository(repo *repository.ReviewRepository) ReviewServiceOption {
	return func(s *ReviewService) {
		s.reviewRepo = repo
	}
}

// NewReviewService creates a new review service
func NewReviewService(opts ...ReviewServiceOption) *ReviewService {
	s := &ReviewService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrInvalidReviewStatus = errors.New("invalid review status")
	ErrExtractionNotFound  = errors.New("extraction not found")
)

// UpdateReviewRequest represents a review decision on an extraction
type UpdateReviewRequest struct {
	ExtractionID  uuid.UUID
	Status        models.ExtractionStatus
	ManualValue   *string
	ReviewerNotes *string
}

// UpdateReviewResult represents the review state after a decision
type UpdateReviewResult struct {
	ID            uuid.UUID               `json:"id"`
	ExtractionID  uuid.UUID               `json:"extraction_id"`
	Status        models.ExtractionStatus `json:"status"`
	AIValue       *string                 `json:"ai_value"`
	ManualValue   *string                 `json:"manual_value"`
	ReviewerNotes *string                 `json:"reviewer_notes"`
	ReviewedAt    time.Time               `json:"reviewed_at"`
}

// UpdateReview records a review decision. The review state is created on the
// fly when the extraction has none yet, and the extraction's own status moves
// with the decision.
func (s *ReviewService) UpdateReview(ctx context.Context, req UpdateReviewRequest) (*UpdateReviewResult, error) {
	if s.extractionRepo == nil {
		return nil, errors.New("extraction repository not set")
	}
	if s.reviewRepo == nil {
		return nil, errors.New("review repository not set")
	}

	if !validReviewStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReviewStatus, req.Status)
	}

	extraction, err := s.extractionRepo.GetByID(ctx, req.ExtractionID)
	if err != nil {
		return nil, ErrExtractionNotFound
	}

	review, err := s.reviewRepo.GetByExtractionID(ctx, req.ExtractionID)
	if err != nil {
		review = &models.ReviewState{
			ProjectID:       extraction.ProjectID,
			ExtractionID:    extraction.ID,
			Status:          models.ExtractionStatusPending,
			AIValue:         extraction.ExtractedValue,
			ConfidenceScore: extraction.ConfidenceScore,
		}
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			return nil, fmt.Errorf("failed to create review state: %w", err)
		}
	}

	reviewedAt := time.Now()
	if err := s.reviewRepo.UpdateDecision(ctx, review.ID, req.Status, req.ManualValue, req.ReviewerNotes, reviewedAt); err != nil {
		return nil, fmt.Errorf("failed to update review state: %w", err)
	}

	if err := s.extractionRepo.UpdateStatus(ctx, extraction.ID, req.Status); err != nil {
		return nil, fmt.Errorf("failed to update extraction status: %w", err)
	}

	return &UpdateReviewResult{
		ID:            review.ID,
		ExtractionID:  extraction.ID,
		Status:        req.Status,
		AIValue:       review.AIValue,
		ManualValue:   req.ManualValue,
		ReviewerNotes: req.ReviewerNotes,
		ReviewedAt:    reviewedAt,
	}, nil
}

// PendingReviews lists a project's review states still waiting for a
// decision, lowest confidence first
func (s *ReviewService) PendingReviews(ctx context.Context, projectID uuid.UUID) ([]*models.ReviewState, error) {
	if s.reviewRepo == nil {
		return nil, errors.New("review repository not set")
	}
	return s.reviewRepo.ListPendingByProject(ctx, projectID)
}

func validReviewStatus(status models.ExtractionStatus) bool {
	switch status {
	case models.ExtractionStatusPending,
		models.ExtractionStatusApproved,
		models.ExtractionStatusRejected,
		models.ExtractionStatusModified:
		return true
	}
	return false
}
