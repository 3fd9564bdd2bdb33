// Package storage persists the original uploaded document files behind the
// parsed text kept in Postgres, on the local filesystem by default or in S3
// when configured.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage stores uploaded document files grouped by project. Upload returns
// an opaque storage path that is persisted on the document row and later
// passed to Download and Delete.
type Storage interface {
	Upload(ctx context.Context, projectID uuid.UUID, filename string, data io.Reader) (string, error)
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
}

// Backend selects a storage implementation.
type Backend string

const (
	BackendLocal Backend = "local"
	BackendS3    Backend = "s3"
)

// Config holds settings for both storage backends.
type Config struct {
	Backend      Backend
	LocalPath    string
	S3Bucket     string
	S3Region     string
	AWSAccessKey string
	AWSSecretKey string
}

// New creates the storage backend named by cfg.Backend.
func New(cfg Config) (Storage, error) {
	switch cfg.Backend {
	case BackendLocal:
		return NewLocalStorage(cfg.LocalPath)
	case BackendS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// FromEnv creates a storage backend from STORAGE_TYPE and the backend's
// environment variables. Defaults to local storage under
// ./storage/documents.
func FromEnv() (Storage, error) {
	backend := Backend(os.Getenv("STORAGE_TYPE"))
	if backend == "" {
		backend = BackendLocal
	}

	cfg := Config{Backend: backend}

	switch backend {
	case BackendLocal:
		cfg.LocalPath = os.Getenv("STORAGE_LOCAL_PATH")
		if cfg.LocalPath == "" {
			cfg.LocalPath = "./storage/documents"
		}
	case BackendS3:
		cfg.S3Bucket = os.Getenv("AWS_S3_BUCKET")
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		cfg.S3Region = os.Getenv("AWS_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}

	return New(cfg)
}

// objectName builds the storage path for one uploaded document. Documents
// are grouped per project, and a fresh UUID prefix keeps documents with the
// same filename apart.
func objectName(projectID uuid.UUID, filename string) string {
	base := filepath.Base(filename)
	base = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\':
			return '_'
		}
		return r
	}, base)
	return fmt.Sprintf("projects/%s/%s_%s", projectID, uuid.New(), base)
}
