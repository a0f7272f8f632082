// internal/analyzer/extract_test.go
package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internmatch/internal/common/errors"
)

func TestExtractorRegistry_PlainText(t *testing.T) {
	r := NewExtractorRegistry()

	text, err := r.Extract(Document{
		Name:        "resume.txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte("Experienced with python"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Experienced with python", text)
}

func TestExtractorRegistry_UnsupportedContentType(t *testing.T) {
	r := NewExtractorRegistry()

	_, err := r.Extract(Document{
		Name:        "resume.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	})
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeUnsupportedEncoding, stdErr.Code)
}

func TestPlainTextExtractor_InvalidUTF8(t *testing.T) {
	e := &PlainTextExtractor{}

	_, err := e.Extract([]byte{0xff, 0xfe})
	require.Error(t, err)
}
