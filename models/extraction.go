package models

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionStatus tracks an extraction through human review
type ExtractionStatus string

const (
	ExtractionStatusPending   ExtractionStatus = "pending"
	ExtractionStatusExtracted ExtractionStatus = "extracted"
	ExtractionStatusApproved  ExtractionStatus = "approved"
	ExtractionStatusRejected  ExtractionStatus = "rejected"
	ExtractionStatusModified  ExtractionStatus = "modified"
)

// Extraction represents one extracted field value for one document
type Extraction struct {
	ID              uuid.UUID        `json:"id"`
	ProjectID       uuid.UUID        `json:"project_id"`
	DocumentID      uuid.UUID        `json:"document_id"`
	FieldName       string           `json:"field_name"`
	FieldType       string           `json:"field_type"`
	ExtractedValue  *string          `json:"extracted_value"`
	RawText         *string          `json:"raw_text,omitempty"`
	NormalizedValue *string          `json:"normalized_value"`
	ConfidenceScore float64          `json:"confidence_score"`
	Method          *string          `json:"method,omitempty"`
	ErrorMessage    *string          `json:"error_message,omitempty"`
	Status          ExtractionStatus `json:"status"`
	ExtractedAt     time.Time        `json:"extracted_at"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Citation represents stored chunk evidence for an extraction
type Citation struct {
	ID             uuid.UUID  `json:"id"`
	ExtractionID   uuid.UUID  `json:"extraction_id"`
	DocumentID     uuid.UUID  `json:"document_id"`
	CitationText   string     `json:"citation_text"`
	PageNumber     *int       `json:"page_number,omitempty"`
	SectionTitle   *string    `json:"section_title,omitempty"`
	RelevanceScore float64    `json:"relevance_score"`
	ChunkID        *uuid.UUID `json:"chunk_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
