package repository

import (
	"context"
	"time"

	"tabreview-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewRepository handles database operations for review states
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create creates a new review state
func (r *ReviewRepository) Create(ctx context.Context, review *models.ReviewState) error {
	query := `
		INSERT INTO review_states (
			project_id, extraction_id, status, ai_value, manual_value,
			reviewer_notes, confidence_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		review.ProjectID,
		review.ExtractionID,
		review.Status,
		review.AIValue,
		review.ManualValue,
		review.ReviewerNotes,
		review.ConfidenceScore,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	return err
}

// GetByExtractionID retrieves the review state of an extraction
func (r *ReviewRepository) GetByExtractionID(ctx context.Context, extractionID uuid.UUID) (*models.ReviewState, error) {
	review := &models.ReviewState{}
	query := `
		SELECT id, project_id, extraction_id, status, ai_value, manual_value,
			reviewer_notes, confidence_score, reviewed_at, created_at, updated_at
		FROM review_states
		WHERE extraction_id = $1`

	err := r.db.QueryRow(ctx, query, extractionID).Scan(
		&review.ID,
		&review.ProjectID,
		&review.ExtractionID,
		&review.Status,
		&review.AIValue,
		&review.ManualValue,
		&review.ReviewerNotes,
		&review.ConfidenceScore,
		&review.ReviewedAt,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return review, nil
}

// UpdateDecision records a review decision on a review state
func (r *ReviewRepository) UpdateDecision(ctx context.Context, id uuid.UUID, status models.ExtractionStatus, manualValue, reviewerNotes *string, reviewedAt time.Time) error {
	query := `
		UPDATE review_states SET
			status = $2,
			manual_value = $3,
			reviewer_notes = $4,
			reviewed_at = $5,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status, manualValue, reviewerNotes, reviewedAt)
	return err
}

// ListPendingByProject retrieves the review states of a project still waiting
// for a decision, lowest confidence first
func (r *ReviewRepository) ListPendingByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ReviewState, error) {
	query := `
		SELECT id, project_id, extraction_id, status, ai_value, manual_value,
			reviewer_notes, confidence_score, reviewed_at, created_at, updated_at
		FROM review_states
		WHERE project_id = $1 AND status = $2
		ORDER BY confidence_score ASC`

	rows, err := r.db.Query(ctx, query, projectID, models.ExtractionStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.ReviewState
	for rows.Next() {
		review := &models.ReviewState{}
		err := rows.Scan(
			&review.ID,
			&review.ProjectID,
			&review.ExtractionID,
			&review.Status,
			&review.AIValue,
			&review.ManualValue,
			&review.ReviewerNotes,
			&review.ConfidenceScore,
			&review.ReviewedAt,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}
