// Package ingest turns uploaded document content into plain text and ordered,
// page-estimated chunks ready for indexing and field extraction.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// IsSupported reports whether the filename has a parseable extension.
func IsSupported(filename string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// FileType returns the lowercased extension without the leading dot, or
// "unknown" when the filename has none.
func FileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "unknown"
	}
	return strings.TrimPrefix(ext, ".")
}

// ExtractText converts raw document bytes into normalized plain text. Only
// plain-text formats are handled; richer formats must be converted before
// upload.
func ExtractText(filename string, data []byte) (string, error) {
	if !IsSupported(filename) {
		return "", fmt.Errorf("unsupported file format: %s", filepath.Ext(filename))
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return text, nil
}
