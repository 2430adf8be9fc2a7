package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"codebind/internal/model"

	"github.com/rs/zerolog"
)

// fileStore implements DocumentStore on top of a single JSON file.
type fileStore struct {
	path   string
	logger zerolog.Logger
}

// NewFileStore creates a JSON file backed document store.
func NewFileStore(path string, logger zerolog.Logger) DocumentStore {
	return &fileStore{
		path:   path,
		logger: logger.With().Str("store", "file").Str("file", path).Logger(),
	}
}

// Load reads and decodes the document file.
func (s *fileStore) Load(ctx context.Context) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		s.logger.Error().Err(err).Msg("failed to read code document")
		return nil, fmt.Errorf("failed to read code document %s: %w", s.path, err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("code document is malformed")
		return nil, err
	}

	return doc, nil
}

// Save writes the document to a temporary file and renames it over the
// target, so readers never observe a half-written document.
func (s *fileStore) Save(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create temporary document file")
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		s.logger.Error().Err(err).Msg("failed to write code document")
		return fmt.Errorf("failed to write code document: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary document file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		s.logger.Error().Err(err).Msg("failed to replace code document")
		return fmt.Errorf("failed to replace code document %s: %w", s.path, err)
	}

	s.logger.Debug().
		Int("codes", len(doc.Codes)).
		Int("bindings", len(doc.Bindings)).
		Msg("code document saved")

	return nil
}
