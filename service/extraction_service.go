package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tabreview-backend/extraction"
	"tabreview-backend/models"
	"tabreview-backend/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ExtractionService runs field extraction over documents and persists the
// resulting extractions, citations, and review states
type ExtractionService struct {
	projectRepo    *repository.ProjectRepository
	documentRepo   *repository.DocumentRepository
	chunkRepo      *repository.ChunkRepository
	templateRepo   *repository.FieldTemplateRepository
	extractionRepo *repository.ExtractionRepository
	reviewRepo     *repository.ReviewRepository
	taskRepo       *repository.TaskRepository
	extractor      *extraction.FieldExtractor
}

// ExtractionServiceOption is a functional option for ExtractionService
type ExtractionServiceOption func(*ExtractionService)

// ExtractionWithProjectRepository sets the project repository
func ExtractionWithProjectRepository(repo *repository.ProjectRepository) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.projectRepo = repo
	}
}

// ExtractionWithDocumentRepository sets the document repository
func ExtractionWithDocumentRepository(repo *repository.DocumentRepository) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.documentRepo = repo
	}
}

// ExtractionWithChunkRepository sets the chunk repository
func ExtractionWithChunkRepository(repo *repository.ChunkRepository) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.chunkRepo = repo
	}
}

// ExtractionWithFieldTemplateRepository sets the field template repository
func ExtractionWithFieldTemplateRepository(repo *repository.FieldTemplateRepository) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.templateRepo = repo
	}
}

// ExtractionWithExtractionRepository sets the extraction repository
func ExtractionWithExtractionRepository(repo *repository.ExtractionRepository) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.extractionRepo = repo
	}
}

// ExtractionWithReviewRepository sets the review repository
func ExtractionWithReviewRepository(repo *repository.ReviewRepository) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.reviewRepo = repo
	}
}

// ExtractionWithTaskRepository sets the task repository
func ExtractionWithTaskRepository(repo *repository.TaskRepository) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.taskRepo = repo
	}
}

// ExtractionWithExtractor sets the field extractor
func ExtractionWithExtractor(extractor *extraction.FieldExtractor) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.extractor = extractor
	}
}

// NewExtractionService creates a new extraction service. Without an explicit
// extractor it runs the heuristic strategy.
func NewExtractionService(opts ...ExtractionServiceOption) *ExtractionService {
	s := &ExtractionService{
		extractor: extraction.NewFieldExtractor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrFieldTemplateNotSet = errors.New("project has no field template")
)

// extractWorkers bounds concurrent per-document extraction in a project run
const extractWorkers = 4

// ResolveFields validates that a project exists and carries a field template,
// then returns the template's field definitions
func (s *ExtractionService) ResolveFields(ctx context.Context, projectID uuid.UUID) ([]extraction.FieldDefinition, error) {
	if s.projectRepo == nil {
		return nil, errors.New("project repository not set")
	}
	if s.templateRepo == nil {
		return nil, errors.New("field template repository not set")
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if project.FieldTemplateID == nil {
		return nil, ErrFieldTemplateNotSet
	}

	template, err := s.templateRepo.GetByID(ctx, *project.FieldTemplateID)
	if err != nil {
		return nil, ErrTemplateNotFound
	}

	fields := make([]extraction.FieldDefinition, 0, len(template.Fields))
	for _, f := range template.Fields {
		fields = append(fields, extraction.FieldDefinition{
			Name:        f.Name,
			FieldType:   extraction.FieldType(f.FieldType),
			Description: f.Description,
		})
	}

	return fields, nil
}

// RunExtraction performs the extraction work tracked by a task, over one
// document when documentID is set and over the whole project otherwise. It is
// meant to run in a background goroutine detached from the request context.
func (s *ExtractionService) RunExtraction(ctx context.Context, taskID, projectID uuid.UUID, documentID *uuid.UUID, fields []extraction.FieldDefinition) error {
	if s.taskRepo == nil {
		return errors.New("task repository not set")
	}

	if err := s.taskRepo.MarkProcessing(ctx, taskID); err != nil {
		return fmt.Errorf("failed to mark task processing: %w", err)
	}
	s.updateProjectStatus(ctx, projectID, models.ProjectStatusProcessing)

	var result models.TaskResult
	var runErr error

	if documentID != nil {
		var res *ExtractDocumentResult
		res, runErr = s.ExtractDocument(ctx, ExtractDocumentRequest{
			ProjectID:  projectID,
			DocumentID: *documentID,
			Fields:     fields,
		})
		if runErr == nil {
			result = models.TaskResult{
				"document_id":      res.DocumentID.String(),
				"fields_extracted": res.FieldsExtracted,
			}
		}
	} else {
		var res *ExtractProjectResult
		res, runErr = s.ExtractProject(ctx, ExtractProjectRequest{
			ProjectID: projectID,
			Fields:    fields,
		})
		if runErr == nil {
			result = models.TaskResult{
				"project_id":             res.ProjectID.String(),
				"documents_processed":    res.DocumentsProcessed,
				"total_fields_extracted": res.TotalFieldsExtracted,
			}
		}
	}

	if runErr != nil {
		if err := s.taskRepo.Fail(ctx, taskID, runErr.Error()); err != nil {
			log.Printf("Warning: Failed to mark task %s failed: %v", taskID, err)
		}
		return runErr
	}

	if err := s.taskRepo.Complete(ctx, taskID, result); err != nil {
		return fmt.Errorf("failed to mark task completed: %w", err)
	}
	s.updateProjectStatus(ctx, projectID, models.ProjectStatusCompleted)
	return nil
}

// ExtractDocumentRequest represents a request to extract one document
type ExtractDocumentRequest struct {
	ProjectID  uuid.UUID
	DocumentID uuid.UUID
	Fields     []extraction.FieldDefinition
}

// ExtractDocumentResult represents the result of extracting one document
type ExtractDocumentResult struct {
	DocumentID      uuid.UUID
	FieldsExtracted int
}

// ExtractDocument runs the field extractor over one document and persists an
// extraction, its citations, and a pending review state per field
func (s *ExtractionService) ExtractDocument(ctx context.Context, req ExtractDocumentRequest) (*ExtractDocumentResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}
	if s.chunkRepo == nil {
		return nil, errors.New("chunk repository not set")
	}
	if s.extractionRepo == nil {
		return nil, errors.New("extraction repository not set")
	}
	if s.reviewRepo == nil {
		return nil, errors.New("review repository not set")
	}

	document, err := s.documentRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, ErrDocumentNotFound
	}

	chunkRows, err := s.chunkRepo.ListByDocument(ctx, req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks: %w", err)
	}

	chunks := make([]extraction.Chunk, 0, len(chunkRows))
	for _, row := range chunkRows {
		section := "Main"
		if row.SectionTitle != nil && *row.SectionTitle != "" {
			section = *row.SectionTitle
		}
		chunks = append(chunks, extraction.Chunk{
			ID:         row.ID.String(),
			Text:       row.Text,
			PageNumber: row.PageNumber,
			Section:    section,
		})
	}

	records := s.extractor.Extract(ctx, document.FullText, chunks, req.Fields, document.ID.String())

	for _, record := range records {
		if err := s.persistExtraction(ctx, req.ProjectID, document.ID, record); err != nil {
			return nil, err
		}
	}

	if err := s.documentRepo.UpdateStatus(ctx, document.ID, models.DocumentStatusExtracted); err != nil {
		return nil, err
	}

	return &ExtractDocumentResult{
		DocumentID:      document.ID,
		FieldsExtracted: len(records),
	}, nil
}

// ExtractProjectRequest represents a request to extract every document in a
// project
type ExtractProjectRequest struct {
	ProjectID uuid.UUID
	Fields    []extraction.FieldDefinition
}

// ExtractProjectResult represents the result of a project-wide extraction run
type ExtractProjectResult struct {
	ProjectID            uuid.UUID
	DocumentsProcessed   int
	TotalFieldsExtracted int
}

// ExtractProject extracts fields from every document in the project. Work
// fans out across documents with bounded concurrency; one document's failure
// is logged and does not stop the others.
func (s *ExtractionService) ExtractProject(ctx context.Context, req ExtractProjectRequest) (*ExtractProjectResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}

	documents, err := s.documentRepo.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractWorkers)

	counts := make([]int, len(documents))
	failed := make([]bool, len(documents))

	for i, document := range documents {
		g.Go(func() error {
			res, err := s.ExtractDocument(gctx, ExtractDocumentRequest{
				ProjectID:  req.ProjectID,
				DocumentID: document.ID,
				Fields:     req.Fields,
			})
			if err != nil {
				log.Printf("Warning: Extraction failed for document %s: %v", document.ID, err)
				failed[i] = true
				return nil
			}
			counts[i] = res.FieldsExtracted
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	processed := 0
	total := 0
	for i := range documents {
		if failed[i] {
			continue
		}
		processed++
		total += counts[i]
	}

	return &ExtractProjectResult{
		ProjectID:            req.ProjectID,
		DocumentsProcessed:   processed,
		TotalFieldsExtracted: total,
	}, nil
}

// persistExtraction stores one extraction record with its citations and a
// pending review state
func (s *ExtractionService) persistExtraction(ctx context.Context, projectID, documentID uuid.UUID, record extraction.ExtractionRecord) error {
	method := string(record.Method)
	row := &models.Extraction{
		ProjectID:       projectID,
		DocumentID:      documentID,
		FieldName:       record.FieldName,
		FieldType:       string(record.FieldType),
		ExtractedValue:  record.ExtractedValue,
		RawText:         record.RawText,
		NormalizedValue: record.NormalizedValue,
		ConfidenceScore: record.ConfidenceScore,
		Method:          &method,
		ErrorMessage:    record.Error,
		Status:          models.ExtractionStatusExtracted,
		ExtractedAt:     record.ExtractedAt,
	}

	if err := s.extractionRepo.Create(ctx, row); err != nil {
		return fmt.Errorf("failed to store extraction for field %q: %w", record.FieldName, err)
	}

	for _, citation := range record.Citations {
		page := citation.PageNumber
		section := citation.SectionTitle
		var chunkID *uuid.UUID
		if parsed, err := uuid.Parse(citation.ChunkID); err == nil {
			chunkID = &parsed
		}
		citationRow := &models.Citation{
			ExtractionID:   row.ID,
			DocumentID:     documentID,
			CitationText:   citation.CitationText,
			PageNumber:     &page,
			SectionTitle:   &section,
			RelevanceScore: citation.RelevanceScore,
			ChunkID:        chunkID,
		}
		if err := s.extractionRepo.CreateCitation(ctx, citationRow); err != nil {
			return fmt.Errorf("failed to store citation for field %q: %w", record.FieldName, err)
		}
	}

	review := &models.ReviewState{
		ProjectID:       projectID,
		ExtractionID:    row.ID,
		Status:          models.ExtractionStatusPending,
		AIValue:         row.ExtractedValue,
		ConfidenceScore: row.ConfidenceScore,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return fmt.Errorf("failed to store review state for field %q: %w", record.FieldName, err)
	}

	return nil
}

func (s *ExtractionService) updateProjectStatus(ctx context.Context, projectID uuid.UUID, status models.ProjectStatus) {
	if s.projectRepo == nil {
		return
	}
	if err := s.projectRepo.UpdateStatus(ctx, projectID, status); err != nil {
		log.Printf("Warning: Failed to update project %s status: %v", projectID, err)
	}
}
