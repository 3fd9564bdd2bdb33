package repository

import (
	"context"

	"tabreview-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChunkRepository handles database operations for document chunks
type ChunkRepository struct {
	db *pgxpool.Pool
}

// NewChunkRepository creates a new chunk repository
func NewChunkRepository(db *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// Create creates a new document chunk
func (r *ChunkRepository) Create(ctx context.Context, chunk *models.DocumentChunk) error {
	query := `
		INSERT INTO document_chunks (
			document_id, chunk_index, text, page_number, section_title
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		chunk.DocumentID,
		chunk.ChunkIndex,
		chunk.Text,
		chunk.PageNumber,
		chunk.SectionTitle,
	).Scan(&chunk.ID, &chunk.CreatedAt)

	return err
}

// ListByDocument retrieves all chunks of a document in chunk order
func (r *ChunkRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*models.DocumentChunk, error) {
	query := `
		SELECT id, document_id, chunk_index, text, page_number, section_title, created_at
		FROM document_chunks
		WHERE document_id = $1
		ORDER BY chunk_index ASC`

	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*models.DocumentChunk
	for rows.Next() {
		chunk := &models.DocumentChunk{}
		err := rows.Scan(
			&chunk.ID,
			&chunk.DocumentID,
			&chunk.ChunkIndex,
			&chunk.Text,
			&chunk.PageNumber,
			&chunk.SectionTitle,
			&chunk.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// DeleteByDocument removes all chunks of a document
func (r *ChunkRepository) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	query := `DELETE FROM document_chunks WHERE document_id = $1`
	_, err := r.db.Exec(ctx, query, documentID)
	return err
}
