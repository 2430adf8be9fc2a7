package repository

import (
	"context"
	"errors"
	"fmt"

	"codebind/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema creates the table holding named code documents.
const Schema = `
	CREATE TABLE IF NOT EXISTS code_documents (
		name TEXT PRIMARY KEY,
		document JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

// postgresStore implements DocumentStore as a single JSONB row.
type postgresStore struct {
	pool   *pgxpool.Pool
	name   string
	logger zerolog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed document store for the document
// called name, creating the schema if needed.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, name string, logger zerolog.Logger) (DocumentStore, error) {
	logger = logger.With().Str("store", "postgres").Str("document", name).Logger()

	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to create code_documents table")
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &postgresStore{
		pool:   pool,
		name:   name,
		logger: logger,
	}, nil
}

// Load reads the document row.
func (s *postgresStore) Load(ctx context.Context) (*model.Document, error) {
	query := `
		SELECT document::text
		FROM code_documents
		WHERE name = $1
	`

	var raw string
	err := s.pool.QueryRow(ctx, query, s.name).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		s.logger.Error().Err(err).Msg("failed to query code document")
		return nil, fmt.Errorf("failed to query code document: %w", err)
	}

	doc, err := decodeDocument([]byte(raw))
	if err != nil {
		s.logger.Warn().Err(err).Msg("code document is malformed")
		return nil, err
	}

	return doc, nil
}

// Save upserts the document row.
func (s *postgresStore) Save(ctx context.Context, doc *model.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO code_documents (name, document, updated_at)
		VALUES ($1, $2::jsonb, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.pool.Exec(ctx, query, s.name, string(data)); err != nil {
		s.logger.Error().Err(err).Msg("failed to save code document")
		return fmt.Errorf("failed to save code document: %w", err)
	}

	s.logger.Debug().
		Int("codes", len(doc.Codes)).
		Int("bindings", len(doc.Bindings)).
		Msg("code document saved")

	return nil
}
