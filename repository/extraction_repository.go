package repository

import (
	"context"
	"fmt"

	"tabreview-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExtractionRepository handles database operations for extractions and their
// citations
type ExtractionRepository struct {
	db *pgxpool.Pool
}

// NewExtractionRepository creates a new extraction repository
func NewExtractionRepository(db *pgxpool.Pool) *ExtractionRepository {
	return &ExtractionRepository{db: db}
}

// Create creates a new extraction
func (r *ExtractionRepository) Create(ctx context.Context, extraction *models.Extraction) error {
	query := `
		INSERT INTO extractions (
			project_id, document_id, field_name, field_type, extracted_value,
			raw_text, normalized_value, confidence_score, method, error_message,
			status, extracted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		extraction.ProjectID,
		extraction.DocumentID,
		extraction.FieldName,
		extraction.FieldType,
		extraction.ExtractedValue,
		extraction.RawText,
		extraction.NormalizedValue,
		extraction.ConfidenceScore,
		extraction.Method,
		extraction.ErrorMessage,
		extraction.Status,
		extraction.ExtractedAt,
	).Scan(&extraction.ID, &extraction.CreatedAt, &extraction.UpdatedAt)

	return err
}

// GetByID retrieves an extraction by ID
func (r *ExtractionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Extraction, error) {
	extraction := &models.Extraction{}
	query := `
		SELECT id, project_id, document_id, field_name, field_type, extracted_value,
			raw_text, normalized_value, confidence_score, method, error_message,
			status, extracted_at, created_at, updated_at
		FROM extractions
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&extraction.ID,
		&extraction.ProjectID,
		&extraction.DocumentID,
		&extraction.FieldName,
		&extraction.FieldType,
		&extraction.ExtractedValue,
		&extraction.RawText,
		&extraction.NormalizedValue,
		&extraction.ConfidenceScore,
		&extraction.Method,
		&extraction.ErrorMessage,
		&extraction.Status,
		&extraction.ExtractedAt,
		&extraction.CreatedAt,
		&extraction.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return extraction, nil
}

// ListByProject retrieves extractions for a project, optionally filtered by
// field name and document, ordered by creation time
func (r *ExtractionRepository) ListByProject(ctx context.Context, projectID uuid.UUID, fieldName *string, documentID *uuid.UUID) ([]*models.Extraction, error) {
	query := `
		SELECT id, project_id, document_id, field_name, field_type, extracted_value,
			raw_text, normalized_value, confidence_score, method, error_message,
			status, extracted_at, created_at, updated_at
		FROM extractions
		WHERE project_id = $1`

	args := []interface{}{projectID}
	argIndex := 2

	if fieldName != nil {
		query += fmt.Sprintf(" AND field_name = $%d", argIndex)
		args = append(args, *fieldName)
		argIndex++
	}
	if documentID != nil {
		query += fmt.Sprintf(" AND document_id = $%d", argIndex)
		args = append(args, *documentID)
		argIndex++
	}

	query += " ORDER BY created_at ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*models.Extraction
	for rows.Next() {
		extraction := &models.Extraction{}
		err := rows.Scan(
			&extraction.ID,
			&extraction.ProjectID,
			&extraction.DocumentID,
			&extraction.FieldName,
			&extraction.FieldType,
			&extraction.ExtractedValue,
			&extraction.RawText,
			&extraction.NormalizedValue,
			&extraction.ConfidenceScore,
			&extraction.Method,
			&extraction.ErrorMessage,
			&extraction.Status,
			&extraction.ExtractedAt,
			&extraction.CreatedAt,
			&extraction.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		extractions = append(extractions, extraction)
	}

	return extractions, rows.Err()
}

// UpdateStatus updates the review status of an extraction
func (r *ExtractionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ExtractionStatus) error {
	query := `
		UPDATE extractions SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	return err
}

// CountByProject returns the number of extractions in a project
func (r *ExtractionRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM extractions WHERE project_id = $1`

	err := r.db.QueryRow(ctx, query, projectID).Scan(&count)
	return count, err
}

// DeleteByDocument removes all extractions of a document
func (r *ExtractionRepository) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	query := `DELETE FROM extractions WHERE document_id = $1`
	_, err := r.db.Exec(ctx, query, documentID)
	return err
}

// CreateCitation creates a citation row for an extraction
func (r *ExtractionRepository) CreateCitation(ctx context.Context, citation *models.Citation) error {
	query := `
		INSERT INTO citations (
			extraction_id, document_id, citation_text, page_number,
			section_title, relevance_score, chunk_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		citation.ExtractionID,
		citation.DocumentID,
		citation.CitationText,
		citation.PageNumber,
		citation.SectionTitle,
		citation.RelevanceScore,
		citation.ChunkID,
	).Scan(&citation.ID, &citation.CreatedAt)

	return err
}

// ListCitations retrieves the citations of an extraction, most relevant first
func (r *ExtractionRepository) ListCitations(ctx context.Context, extractionID uuid.UUID) ([]*models.Citation, error) {
	query := `
		SELECT id, extraction_id, document_id, citation_text, page_number,
			section_title, relevance_score, chunk_id, created_at
		FROM citations
		WHERE extraction_id = $1
		ORDER BY relevance_score DESC`

	rows, err := r.db.Query(ctx, query, extractionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var citations []*models.Citation
	for rows.Next() {
		citation := &models.Citation{}
		err := rows.Scan(
			&citation.ID,
			&citation.ExtractionID,
			&citation.DocumentID,
			&citation.CitationText,
			&citation.PageNumber,
			&citation.SectionTitle,
			&citation.RelevanceScore,
			&citation.ChunkID,
			&citation.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		citations = append(citations, citation)
	}

	return citations, rows.Err()
}
