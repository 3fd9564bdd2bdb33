package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle status of a review project
type ProjectStatus string

const (
	ProjectStatusCreated    ProjectStatus = "created"
	ProjectStatusProcessing ProjectStatus = "processing"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// Project represents a legal review project grouping documents for
// side-by-side field comparison
type Project struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Description     *string       `json:"description,omitempty"`
	FieldTemplateID *uuid.UUID    `json:"field_template_id,omitempty"`
	Status          ProjectStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
