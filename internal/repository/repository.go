package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"codebind/internal/model"
)

var (
	// ErrDocumentNotFound is returned by Load when no document has been persisted yet.
	ErrDocumentNotFound = errors.New("code document not found")

	// ErrDocumentCorrupt is returned by Load when the persisted bytes are not a valid document.
	ErrDocumentCorrupt = errors.New("code document is corrupt")
)

// DocumentStore loads and saves the whole code document.
type DocumentStore interface {
	// Load returns the persisted document. Absent and malformed documents are
	// reported as ErrDocumentNotFound and ErrDocumentCorrupt respectively.
	Load(ctx context.Context) (*model.Document, error)

	// Save replaces the persisted document with doc.
	Save(ctx context.Context, doc *model.Document) error
}

// decodeDocument parses raw document bytes. Anything that is not a JSON object
// with a string list "codes" and a string map "bindings" is corrupt.
func decodeDocument(data []byte) (*model.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrDocumentCorrupt
	}

	var doc model.Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentCorrupt, err)
	}
	doc.EnsureDefaults()

	return &doc, nil
}

// encodeDocument serialises doc with two-space indentation and a trailing newline.
func encodeDocument(doc *model.Document) ([]byte, error) {
	out := doc.Clone()
	out.EnsureDefaults()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode code document: %w", err)
	}

	return buf.Bytes(), nil
}
