package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus represents the ingestion status of a document
type DocumentStatus string

const (
	DocumentStatusUploaded  DocumentStatus = "uploaded"
	DocumentStatusIndexed   DocumentStatus = "indexed"
	DocumentStatusExtracted DocumentStatus = "extracted"
	DocumentStatusFailed    DocumentStatus = "failed"
)

// Document represents one uploaded legal document within a project. FullText
// is stored but excluded from JSON responses.
type Document struct {
	ID          uuid.UUID      `json:"id"`
	ProjectID   uuid.UUID      `json:"project_id"`
	Filename    string         `json:"filename"`
	FileType    string         `json:"file_type"`
	StoragePath *string        `json:"storage_path,omitempty"`
	FileSize    int64          `json:"file_size"`
	FullText    string         `json:"-"`
	Status      DocumentStatus `json:"status"`
	PageCount   int            `json:"page_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DocumentChunk is one contiguous span of parsed document text
type DocumentChunk struct {
	ID           uuid.UUID `json:"id"`
	DocumentID   uuid.UUID `json:"document_id"`
	ChunkIndex   int       `json:"chunk_index"`
	Text         string    `json:"text"`
	PageNumber   *int      `json:"page_number,omitempty"`
	SectionTitle *string   `json:"section_title,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
