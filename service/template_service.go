package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tabreview-backend/extraction"
	"tabreview-backend/models"
	"tabreview-backend/repository"

	"github.com/google/uuid"
)

// TemplateService handles business logic for field templates
type TemplateService struct {
	templateRepo *repository.FieldTemplateRepository
}

// TemplateServiceOption is a functional option for TemplateService
type TemplateServiceOption func(*TemplateService)

// TemplateWithFieldTemplateRepository sets the field template repository
func TemplateWithFieldTemplateRepository(repo *repository.FieldTemplateRepository) TemplateServiceOption {
	return func(s *TemplateService) {
		s.templateRepo = repo
	}
}

// NewTemplateService creates a new template service
func NewTemplateService(opts ...TemplateServiceOption) *TemplateService {
	s := &TemplateService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrTemplateNameRequired   = errors.New("template name is required")
	ErrTemplateFieldsRequired = errors.New("template requires at least one field")
	ErrTemplateFieldInvalid   = errors.New("invalid template field")
	ErrTemplateNotFound       = errors.New("field template not found")
)

const defaultTemplateListLimit = 100

// CreateTemplateRequest represents a request to create a field template
type CreateTemplateRequest struct {
	Name        string
	Description *string
	Fields      []models.TemplateField
}

// CreateTemplateResult represents the result of creating a field template
type CreateTemplateResult struct {
	Template *models.FieldTemplate
}

// CreateTemplate creates a new field template at version 1
func (s *TemplateService) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*CreateTemplateResult, error) {
	if s.templateRepo == nil {
		return nil, errors.New("field template repository not set")
	}
	if req.Name == "" {
		return nil, ErrTemplateNameRequired
	}
	if len(req.Fields) == 0 {
		return nil, ErrTemplateFieldsRequired
	}

	for _, field := range req.Fields {
		if field.Name == "" {
			return nil, fmt.Errorf("%w: field name is required", ErrTemplateFieldInvalid)
		}
		if !extraction.ValidFieldType(extraction.FieldType(field.FieldType)) {
			return nil, fmt.Errorf("%w: unsupported field type %q for field %q", ErrTemplateFieldInvalid, field.FieldType, field.Name)
		}
	}

	template := &models.FieldTemplate{
		Name:        req.Name,
		Description: req.Description,
		Fields:      models.TemplateFields(req.Fields),
		Version:     1,
		IsActive:    true,
	}

	err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}

	return &CreateTemplateResult{Template: template}, nil
}

// GetTemplateRequest represents a request to get a field template
type GetTemplateRequest struct {
	ID uuid.UUID
}

// GetTemplateResult represents the result of getting a field template
type GetTemplateResult struct {
	Template *models.FieldTemplate
}

// GetTemplate retrieves a field template by ID
func (s *TemplateService) GetTemplate(ctx context.Context, req GetTemplateRequest) (*GetTemplateResult, error) {
	if s.templateRepo == nil {
		return nil, errors.New("field template repository not set")
	}

	template, err := s.templateRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrTemplateNotFound
	}

	return &GetTemplateResult{Template: template}, nil
}

// ListTemplatesRequest represents a request to list field templates
type ListTemplatesRequest struct {
	Limit  int
	Offset int
}

// TemplateSummary is the list-view shape for a field template
type TemplateSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Version     int       `json:"version"`
	FieldsCount int       `json:"fields_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListTemplatesResult represents the result of listing field templates
type ListTemplatesResult struct {
	Templates []TemplateSummary
}

// ListTemplates lists field template summaries
func (s *TemplateService) ListTemplates(ctx context.Context, req ListTemplatesRequest) (*ListTemplatesResult, error) {
	if s.templateRepo == nil {
		return nil, errors.New("field template repository not set")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultTemplateListLimit
	}

	templates, err := s.templateRepo.List(ctx, limit, req.Offset)
	if err != nil {
		return nil, err
	}

	summaries := make([]TemplateSummary, 0, len(templates))
	for _, t := range templates {
		summaries = append(summaries, TemplateSummary{
			ID:          t.ID,
			Name:        t.Name,
			Version:     t.Version,
			FieldsCount: len(t.Fields),
			CreatedAt:   t.CreatedAt,
		})
	}

	return &ListTemplatesResult{Templates: summaries}, nil
}
