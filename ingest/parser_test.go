package ingest_test

import (
	"testing"

	"tabreview-backend/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupported(t *testing.T) {
	assert.True(t, ingest.IsSupported("nda.txt"))
	assert.True(t, ingest.IsSupported("NOTES.TXT"))
	assert.True(t, ingest.IsSupported("summary.md"))
	assert.False(t, ingest.IsSupported("scan.pdf"))
	assert.False(t, ingest.IsSupported("contract.docx"))
	assert.False(t, ingest.IsSupported("README"))
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "txt", ingest.FileType("nda.txt"))
	assert.Equal(t, "txt", ingest.FileType("NDA.TXT"))
	assert.Equal(t, "unknown", ingest.FileType("README"))
}

func TestExtractText(t *testing.T) {
	text, err := ingest.ExtractText("nda.txt", []byte("line one\r\nline two"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := ingest.ExtractText("scan.pdf", []byte("%PDF-1.4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}
