package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"tabreview-backend/extraction"
	"tabreview-backend/repository"

	"github.com/google/uuid"
)

// ComparisonService builds cross-document comparison tables from persisted
// extractions
type ComparisonService struct {
	documentRepo   *repository.DocumentRepository
	extractionRepo *repository.ExtractionRepository
}

// ComparisonServiceOption is a functional option for ComparisonService
type ComparisonServiceOption func(*ComparisonService)

// ComparisonWithDocumentRepository sets the document repository
func ComparisonWithDocumentRepository(repo *repository.DocumentRepository) ComparisonServiceOption {
	return func(s *ComparisonService) {
		s.documentRepo = repo
	}
}

// ComparisonWithExtractionRepository sets the extraction repository
func ComparisonWithExtractionRepository(repo *repository.ExtractionRepository) ComparisonServiceOption {
	return func(s *ComparisonService) {
		s.extractionRepo = repo
	}
}

// NewComparisonService creates a new comparison service
func NewComparisonService(opts ...ComparisonServiceOption) *ComparisonService {
	s := &ComparisonService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComparisonTableResult is a field-by-document comparison table for a project
type ComparisonTableResult struct {
	ProjectID           uuid.UUID                  `json:"project_id"`
	DocumentCount       int                        `json:"document_count"`
	RowCount            int                        `json:"row_count"`
	Documents           []extraction.DocumentRef   `json:"documents"`
	Rows                []extraction.ComparisonRow `json:"rows"`
	GenerationTimestamp time.Time                  `json:"generation_timestamp"`
}

// BuildTable assembles the comparison table for a project: one row per field
// name, one cell per document. Projects without documents or extractions get
// an empty table.
func (s *ComparisonService) BuildTable(ctx context.Context, projectID uuid.UUID) (*ComparisonTableResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}
	if s.extractionRepo == nil {
		return nil, errors.New("extraction repository not set")
	}

	documents, err := s.documentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	extractions, err := s.extractionRepo.ListByProject(ctx, projectID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}

	refs := make([]extraction.DocumentRef, 0, len(documents))
	for _, doc := range documents {
		refs = append(refs, extraction.DocumentRef{
			ID:       doc.ID.String(),
			Filename: doc.Filename,
			FileType: doc.FileType,
		})
	}

	entries := make([]extraction.ComparisonEntry, 0, len(extractions))
	for _, e := range extractions {
		entries = append(entries, extraction.ComparisonEntry{
			ExtractionID:    e.ID.String(),
			DocumentID:      e.DocumentID.String(),
			FieldName:       e.FieldName,
			FieldType:       extraction.FieldType(e.FieldType),
			ExtractedValue:  e.ExtractedValue,
			NormalizedValue: e.NormalizedValue,
			ConfidenceScore: e.ConfidenceScore,
			Status:          string(e.Status),
		})
	}

	rows := extraction.AggregateComparison(refs, entries)

	return &ComparisonTableResult{
		ProjectID:           projectID,
		DocumentCount:       len(documents),
		RowCount:            len(rows),
		Documents:           refs,
		Rows:                rows,
		GenerationTimestamp: time.Now(),
	}, nil
}

// ExportCSVResult carries a rendered CSV export
type ExportCSVResult struct {
	Format   string `json:"format"`
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

// ExportCSV renders the project's comparison table as CSV text
func (s *ComparisonService) ExportCSV(ctx context.Context, projectID uuid.UUID) (*ExportCSVResult, error) {
	table, err := s.BuildTable(ctx, projectID)
	if err != nil {
		return nil, err
	}

	records := extraction.FlattenTable(table.Documents, table.Rows)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to render csv: %w", err)
	}

	return &ExportCSVResult{
		Format:   "csv",
		Content:  buf.String(),
		Filename: fmt.Sprintf("legal_review_%s.csv", projectID),
	}, nil
}
