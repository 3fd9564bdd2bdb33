package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewState tracks the human review of one extraction. AIValue and
// ConfidenceScore are snapshots taken when the extraction was stored.
type ReviewState struct {
	ID              uuid.UUID        `json:"id"`
	ProjectID       uuid.UUID        `json:"project_id"`
	ExtractionID    uuid.UUID        `json:"extraction_id"`
	Status          ExtractionStatus `json:"status"`
	AIValue         *string          `json:"ai_value"`
	ManualValue     *string          `json:"manual_value,omitempty"`
	ReviewerNotes   *string          `json:"reviewer_notes,omitempty"`
	ConfidenceScore float64          `json:"confidence_score"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
