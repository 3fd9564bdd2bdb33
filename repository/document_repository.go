package repository

import (
	"context"

	"tabreview-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document
func (r *DocumentRepository) Create(ctx context.Context, document *models.Document) error {
	query := `
		INSERT INTO documents (
			project_id, filename, file_type, storage_path, file_size,
			full_text, status, page_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		document.ProjectID,
		document.Filename,
		document.FileType,
		document.StoragePath,
		document.FileSize,
		document.FullText,
		document.Status,
		document.PageCount,
	).Scan(&document.ID, &document.CreatedAt, &document.UpdatedAt)

	return err
}

// GetByID retrieves a document by ID, including its full text
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	document := &models.Document{}
	query := `
		SELECT id, project_id, filename, file_type, storage_path, file_size,
			full_text, status, page_count, created_at, updated_at
		FROM documents
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&document.ID,
		&document.ProjectID,
		&document.Filename,
		&document.FileType,
		&document.StoragePath,
		&document.FileSize,
		&document.FullText,
		&document.Status,
		&document.PageCount,
		&document.CreatedAt,
		&document.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return document, nil
}

// ListByProject retrieves all documents in a project, oldest first. Full
// text is not loaded.
func (r *DocumentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Document, error) {
	query := `
		SELECT id, project_id, filename, file_type, storage_path, file_size,
			status, page_count, created_at, updated_at
		FROM documents
		WHERE project_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		document := &models.Document{}
		err := rows.Scan(
			&document.ID,
			&document.ProjectID,
			&document.Filename,
			&document.FileType,
			&document.StoragePath,
			&document.FileSize,
			&document.Status,
			&document.PageCount,
			&document.CreatedAt,
			&document.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}

	return documents, rows.Err()
}

// UpdateStatus updates the status of a document
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.DocumentStatus) error {
	query := `
		UPDATE documents SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	return err
}

// CountByProject returns the number of documents in a project
func (r *DocumentRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM documents WHERE project_id = $1`

	err := r.db.QueryRow(ctx, query, projectID).Scan(&count)
	return count, err
}

// Delete deletes a document
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
