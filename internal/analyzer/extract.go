// internal/analyzer/extract.go
package analyzer

import (
	"strings"
	"unicode/utf8"

	"internmatch/internal/common/errors"
)

// ==========================
// Document Text Extraction
// ==========================

// Document is one uploaded resume file awaiting analysis.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// TextExtractor converts one document format into analyzable plain text.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// ExtractorRegistry dispatches documents to extractors by content type.
type ExtractorRegistry struct {
	byType map[string]TextExtractor
}

// NewExtractorRegistry returns a registry with the plain-text extractor
// registered for the text content types.
func NewExtractorRegistry() *ExtractorRegistry {
	r := &ExtractorRegistry{byType: make(map[string]TextExtractor)}
	plain := &PlainTextExtractor{}
	r.Register("text/plain", plain)
	r.Register("text/markdown", plain)
	return r
}

// Register adds or replaces the extractor for a content type.
func (r *ExtractorRegistry) Register(contentType string, ex TextExtractor) {
	r.byType[normalizeContentType(contentType)] = ex
}

// Extract converts one document to text, failing with UNSUPPORTED_ENCODING
// when no extractor handles its content type.
func (r *ExtractorRegistry) Extract(doc Document) (string, error) {
	ex, ok := r.byType[normalizeContentType(doc.ContentType)]
	if !ok {
		return "", errors.NewUnsupportedEncodingError(doc.Name, doc.ContentType)
	}
	return ex.Extract(doc.Data)
}

// normalizeContentType strips parameters like "; charset=utf-8".
func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// PlainTextExtractor passes UTF-8 text through unchanged.
type PlainTextExtractor struct{}

func (e *PlainTextExtractor) Extract(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.NewUnsupportedEncodingError("", "text/plain")
	}
	return string(data), nil
}
