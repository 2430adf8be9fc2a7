package coupon

import (
	"context"
	"errors"
	"fmt"

	"codebind/internal/model"
	"codebind/internal/repository"

	"github.com/rs/zerolog"
)

// ProvisionResult summarises a provisioning run.
type ProvisionResult struct {
	Added          int
	AlreadyPresent int
	AlreadyBound   int
}

// Provision appends every code of set that is neither available nor bound to
// the document in store. Unlike the registry, it refuses to run on top of an
// unreadable document so a corrupt store is never overwritten.
func Provision(ctx context.Context, store repository.DocumentStore, set CodeSet, logger zerolog.Logger) (ProvisionResult, error) {
	logger = logger.With().Str("component", "provisioner").Logger()

	doc, err := store.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrDocumentNotFound):
		logger.Info().Msg("no code document yet, creating a new one")
		doc = model.NewDocument()
	case err != nil:
		return ProvisionResult{}, fmt.Errorf("failed to load code document: %w", err)
	}

	var result ProvisionResult
	available := NewAvailableSet(doc.Codes)

	for _, code := range set.Codes() {
		if available.Contains(code) {
			result.AlreadyPresent++
			continue
		}
		if _, _, bound := findBinding(doc.Bindings, code); bound {
			result.AlreadyBound++
			continue
		}
		doc.Codes = append(doc.Codes, code)
		result.Added++
	}

	if result.Added == 0 {
		logger.Info().Int("already_present", result.AlreadyPresent).Msg("nothing to provision")
		return result, nil
	}

	if err := store.Save(ctx, doc); err != nil {
		return ProvisionResult{}, fmt.Errorf("failed to save code document: %w", err)
	}

	logger.Info().
		Int("added", result.Added).
		Int("already_present", result.AlreadyPresent).
		Int("already_bound", result.AlreadyBound).
		Msg("codes provisioned")

	return result, nil
}
