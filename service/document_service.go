package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"tabreview-backend/extraction"
	"tabreview-backend/ingest"
	"tabreview-backend/models"
	"tabreview-backend/repository"
	"tabreview-backend/storage"

	"github.com/google/uuid"
)

// DocumentService handles document ingestion and listing
type DocumentService struct {
	projectRepo  *repository.ProjectRepository
	documentRepo *repository.DocumentRepository
	chunkRepo    *repository.ChunkRepository
	storage      storage.Storage
	chunker      *ingest.Chunker
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// DocumentWithProjectRepository sets the project repository
func DocumentWithProjectRepository(repo *repository.ProjectRepository) DocumentServiceOption {
	return func(s *DocumentService) {
		s.projectRepo = repo
	}
}

// DocumentWithDocumentRepository sets the document repository
func DocumentWithDocumentRepository(repo *repository.DocumentRepository) DocumentServiceOption {
	return func(s *DocumentService) {
		s.documentRepo = repo
	}
}

// DocumentWithChunkRepository sets the chunk repository
func DocumentWithChunkRepository(repo *repository.ChunkRepository) DocumentServiceOption {
	return func(s *DocumentService) {
		s.chunkRepo = repo
	}
}

// DocumentWithStorage sets the file storage backend
func DocumentWithStorage(store storage.Storage) DocumentServiceOption {
	return func(s *DocumentService) {
		s.storage = store
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	s := &DocumentService{
		chunker: ingest.NewChunker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrUnsupportedFileType = errors.New("unsupported file format")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrDocumentTextEmpty   = errors.New("document text is empty")
)

// IngestDocumentRequest represents an uploaded file to ingest
type IngestDocumentRequest struct {
	ProjectID uuid.UUID
	Filename  string
	Data      []byte
}

// IngestDocumentResult represents the result of ingesting a document
type IngestDocumentResult struct {
	Document   *models.Document
	ChunkCount int
}

// IngestDocument stores the raw file, parses its text, chunks it, and
// persists the document with its chunks. The document ends in the indexed
// state.
func (s *DocumentService) IngestDocument(ctx context.Context, req IngestDocumentRequest) (*IngestDocumentResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}
	if s.chunkRepo == nil {
		return nil, errors.New("chunk repository not set")
	}
	if s.projectRepo == nil {
		return nil, errors.New("project repository not set")
	}
	if s.storage == nil {
		return nil, errors.New("storage not set")
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, ErrProjectNotFound
	}

	if !ingest.IsSupported(req.Filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, req.Filename)
	}

	text, err := ingest.ExtractText(req.Filename, req.Data)
	if err != nil {
		return nil, err
	}

	storagePath, err := s.storage.Upload(ctx, req.ProjectID, req.Filename, bytes.NewReader(req.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	document := &models.Document{
		ProjectID:   req.ProjectID,
		Filename:    req.Filename,
		FileType:    ingest.FileType(req.Filename),
		StoragePath: &storagePath,
		FileSize:    int64(len(req.Data)),
		FullText:    text,
		Status:      models.DocumentStatusUploaded,
		PageCount:   s.chunker.PageCount(text),
	}

	err = s.documentRepo.Create(ctx, document)
	if err != nil {
		// Clean up the stored file since the database record failed
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			log.Printf("Warning: Failed to clean up stored document %s: %v", storagePath, delErr)
		}
		return nil, err
	}

	chunkCount, err := s.persistChunks(ctx, document.ID, s.chunker.Chunk(text))
	if err != nil {
		s.markFailed(ctx, document.ID)
		return nil, err
	}

	err = s.documentRepo.UpdateStatus(ctx, document.ID, models.DocumentStatusIndexed)
	if err != nil {
		return nil, err
	}
	document.Status = models.DocumentStatusIndexed

	return &IngestDocumentResult{
		Document:   document,
		ChunkCount: chunkCount,
	}, nil
}

// IngestChunk is one externally parsed chunk in a JSON ingest request
type IngestChunk struct {
	Text       string  `json:"text"`
	PageNumber *int    `json:"page_number,omitempty"`
	Section    *string `json:"section,omitempty"`
}

// IngestParsedRequest represents pre-parsed document text to ingest, for
// callers that parse binary formats externally
type IngestParsedRequest struct {
	ProjectID uuid.UUID
	Filename  string
	Text      string
	Chunks    []IngestChunk
}

// IngestParsed persists a document from already-parsed text. When the caller
// supplies chunks they are stored as-is; otherwise the text is chunked here.
// No raw file is stored.
func (s *DocumentService) IngestParsed(ctx context.Context, req IngestParsedRequest) (*IngestDocumentResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}
	if s.chunkRepo == nil {
		return nil, errors.New("chunk repository not set")
	}
	if s.projectRepo == nil {
		return nil, errors.New("project repository not set")
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, ErrProjectNotFound
	}

	if req.Text == "" {
		return nil, ErrDocumentTextEmpty
	}

	document := &models.Document{
		ProjectID: req.ProjectID,
		Filename:  req.Filename,
		FileType:  ingest.FileType(req.Filename),
		FileSize:  int64(len(req.Text)),
		FullText:  req.Text,
		Status:    models.DocumentStatusUploaded,
		PageCount: s.chunker.PageCount(req.Text),
	}

	err := s.documentRepo.Create(ctx, document)
	if err != nil {
		return nil, err
	}

	var chunkCount int
	if len(req.Chunks) > 0 {
		chunkCount, err = s.persistClientChunks(ctx, document.ID, req.Chunks)
	} else {
		chunkCount, err = s.persistChunks(ctx, document.ID, s.chunker.Chunk(req.Text))
	}
	if err != nil {
		s.markFailed(ctx, document.ID)
		return nil, err
	}

	err = s.documentRepo.UpdateStatus(ctx, document.ID, models.DocumentStatusIndexed)
	if err != nil {
		return nil, err
	}
	document.Status = models.DocumentStatusIndexed

	return &IngestDocumentResult{
		Document:   document,
		ChunkCount: chunkCount,
	}, nil
}

// GetDocumentRequest represents a request to get a document
type GetDocumentRequest struct {
	ID uuid.UUID
}

// GetDocumentResult represents the result of getting a document
type GetDocumentResult struct {
	Document *models.Document
}

// GetDocument retrieves a document by ID
func (s *DocumentService) GetDocument(ctx context.Context, req GetDocumentRequest) (*GetDocumentResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}

	document, err := s.documentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrDocumentNotFound
	}

	return &GetDocumentResult{Document: document}, nil
}

// ListDocumentsRequest represents a request to list project documents
type ListDocumentsRequest struct {
	ProjectID uuid.UUID
}

// ListDocumentsResult represents the result of listing project documents
type ListDocumentsResult struct {
	Documents []*models.Document
}

// ListDocuments lists documents in a project, oldest first
func (s *DocumentService) ListDocuments(ctx context.Context, req ListDocumentsRequest) (*ListDocumentsResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}

	documents, err := s.documentRepo.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	return &ListDocumentsResult{Documents: documents}, nil
}

func (s *DocumentService) persistChunks(ctx context.Context, documentID uuid.UUID, chunks []extraction.Chunk) (int, error) {
	for i, chunk := range chunks {
		row := &models.DocumentChunk{
			DocumentID: documentID,
			ChunkIndex: i,
			Text:       chunk.Text,
			PageNumber: chunk.PageNumber,
		}
		if chunk.Section != "" {
			section := chunk.Section
			row.SectionTitle = &section
		}
		if err := s.chunkRepo.Create(ctx, row); err != nil {
			return 0, fmt.Errorf("failed to store chunk %d: %w", i, err)
		}
	}
	return len(chunks), nil
}

func (s *DocumentService) persistClientChunks(ctx context.Context, documentID uuid.UUID, chunks []IngestChunk) (int, error) {
	for i, chunk := range chunks {
		row := &models.DocumentChunk{
			DocumentID:   documentID,
			ChunkIndex:   i,
			Text:         chunk.Text,
			PageNumber:   chunk.PageNumber,
			SectionTitle: chunk.Section,
		}
		if err := s.chunkRepo.Create(ctx, row); err != nil {
			return 0, fmt.Errorf("failed to store chunk %d: %w", i, err)
		}
	}
	return len(chunks), nil
}

func (s *DocumentService) markFailed(ctx context.Context, documentID uuid.UUID) {
	if err := s.documentRepo.UpdateStatus(ctx, documentID, models.DocumentStatusFailed); err != nil {
		log.Printf("Warning: Failed to mark document %s as failed: %v", documentID, err)
	}
}
