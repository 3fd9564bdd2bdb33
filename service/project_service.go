package service

import (
	"context"
	"errors"

	"tabreview-backend/models"
	"tabreview-backend/repository"

	"github.com/google/uuid"
)

// ProjectService handles business logic for review projects
type ProjectService struct {
	projectRepo    *repository.ProjectRepository
	documentRepo   *repository.DocumentRepository
	extractionRepo *repository.ExtractionRepository
}

// ProjectServiceOption is a functional option for ProjectService
type ProjectServiceOption func(*ProjectService)

// WithProjectRepository sets the project repository
func WithProjectRepository(repo *repository.ProjectRepository) ProjectServiceOption {
	return func(s *ProjectService) {
		s.projectRepo = repo
	}
}

// WithDocumentRepository sets the document repository
func WithDocumentRepository(repo *repository.DocumentRepository) ProjectServiceOption {
	return func(s *ProjectService) {
		s.documentRepo = repo
	}
}

// WithExtractionRepository sets the extraction repository
func WithExtractionRepository(repo *repository.ExtractionRepository) ProjectServiceOption {
	return func(s *ProjectService) {
		s.extractionRepo = repo
	}
}

// NewProjectService creates a new project service
func NewProjectService(opts ...ProjectServiceOption) *ProjectService {
	s := &ProjectService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrProjectNameRequired = errors.New("project name is required")
	ErrProjectNotFound     = errors.New("project not found")
)

const defaultProjectListLimit = 100

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name            string
	Description     *string
	FieldTemplateID *uuid.UUID
}

// CreateProjectResult represents the result of creating a project
type CreateProjectResult struct {
	Project *models.Project
}

// CreateProject creates a new project in the created state
func (s *ProjectService) CreateProject(ctx context.Context, req CreateProjectRequest) (*CreateProjectResult, error) {
	if s.projectRepo == nil {
		return nil, errors.New("project repository not set")
	}
	if req.Name == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		Name:            req.Name,
		Description:     req.Description,
		FieldTemplateID: req.FieldTemplateID,
		Status:          models.ProjectStatusCreated,
	}

	err := s.projectRepo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	return &CreateProjectResult{Project: project}, nil
}

// GetProjectRequest represents a request to get a project
type GetProjectRequest struct {
	ID uuid.UUID
}

// GetProjectResult carries the project with its document and extraction counts
type GetProjectResult struct {
	Project         *models.Project
	DocumentCount   int
	ExtractionCount int
}

// GetProject retrieves a project with its stats
func (s *ProjectService) GetProject(ctx context.Context, req GetProjectRequest) (*GetProjectResult, error) {
	if s.projectRepo == nil {
		return nil, errors.New("project repository not set")
	}
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}
	if s.extractionRepo == nil {
		return nil, errors.New("extraction repository not set")
	}

	project, err := s.projectRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	documentCount, err := s.documentRepo.CountByProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	extractionCount, err := s.extractionRepo.CountByProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &GetProjectResult{
		Project:         project,
		DocumentCount:   documentCount,
		ExtractionCount: extractionCount,
	}, nil
}

// UpdateProjectRequest represents a partial project update. Nil fields are
// left unchanged; Name is also skipped when empty.
type UpdateProjectRequest struct {
	ID              uuid.UUID
	Name            *string
	Description     *string
	FieldTemplateID *uuid.UUID
	Status          *models.ProjectStatus
}

// UpdateProjectResult represents the result of updating a project
type UpdateProjectResult struct {
	Project *models.Project
}

// UpdateProject applies a partial update to a project
func (s *ProjectService) UpdateProject(ctx context.Context, req UpdateProjectRequest) (*UpdateProjectResult, error) {
	if s.projectRepo == nil {
		return nil, errors.New("project repository not set")
	}

	project, err := s.projectRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	if req.Name != nil && *req.Name != "" {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.FieldTemplateID != nil {
		project.FieldTemplateID = req.FieldTemplateID
	}
	if req.Status != nil {
		project.Status = *req.Status
	}

	err = s.projectRepo.Update(ctx, project)
	if err != nil {
		return nil, err
	}

	return &UpdateProjectResult{Project: project}, nil
}

// ListProjectsRequest represents a request to list projects
type ListProjectsRequest struct {
	Limit  int
	Offset int
}

// ListProjectsResult represents the result of listing projects
type ListProjectsResult struct {
	Projects []*models.Project
}

// ListProjects lists projects, most recent first
func (s *ProjectService) ListProjects(ctx context.Context, req ListProjectsRequest) (*ListProjectsResult, error) {
	if s.projectRepo == nil {
		return nil, errors.New("project repository not set")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultProjectListLimit
	}

	projects, err := s.projectRepo.List(ctx, limit, req.Offset)
	if err != nil {
		return nil, err
	}

	return &ListProjectsResult{Projects: projects}, nil
}
