package models

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation compares one AI-extracted value against a human reference value
type Evaluation struct {
	ID              uuid.UUID `json:"id"`
	ProjectID       uuid.UUID `json:"project_id"`
	DocumentID      uuid.UUID `json:"document_id"`
	FieldName       string    `json:"field_name"`
	AIValue         *string   `json:"ai_value"`
	HumanValue      *string   `json:"human_value"`
	MatchScore      float64   `json:"match_score"`
	NormalizedMatch bool      `json:"normalized_match"`
	CreatedAt       time.Time `json:"created_at"`
}
