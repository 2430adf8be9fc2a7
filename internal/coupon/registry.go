package coupon

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"codebind/internal/model"
	"codebind/internal/repository"

	"github.com/rs/zerolog"
)

// registry implements Registry on top of a DocumentStore.
type registry struct {
	store  repository.DocumentStore
	logger zerolog.Logger

	// mu serializes load-mutate-save cycles within this process.
	mu sync.Mutex
}

// NewRegistry creates a code registry backed by store.
func NewRegistry(store repository.DocumentStore, logger zerolog.Logger) Registry {
	return &registry{
		store:  store,
		logger: logger.With().Str("component", "code-registry").Logger(),
	}
}

// Validate reports whether a code is available or bound.
func (r *registry) Validate(ctx context.Context, rawCode string) Validation {
	code := Normalize(rawCode)
	if code == "" {
		return Validation{}
	}

	doc := r.load(ctx)

	if NewAvailableSet(doc.Codes).Contains(code) {
		return Validation{Code: code, Correct: true}
	}

	if _, game, ok := findBinding(doc.Bindings, code); ok {
		return Validation{Code: code, Correct: true, Bound: true, Game: game}
	}

	r.logger.Debug().Str("code", code).Msg("code is neither available nor bound")
	return Validation{Code: code}
}

// Bind associates an available code with game. The first bind wins: later
// binds of the same code return the stored game and write nothing.
func (r *registry) Bind(ctx context.Context, rawCode, rawGame string) (*Binding, error) {
	code := Normalize(rawCode)
	game := strings.TrimSpace(rawGame)
	if code == "" || game == "" {
		return nil, model.ErrMissingCodeOrGame
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load(ctx)

	if _, existing, ok := findBinding(doc.Bindings, code); ok {
		r.logger.Debug().
			Str("code", code).
			Str("game", existing).
			Msg("code already bound, keeping existing game")
		return &Binding{Code: code, Game: existing, Locked: true, Existing: true}, nil
	}

	if !NewAvailableSet(doc.Codes).Contains(code) {
		return nil, model.ErrInvalidCode
	}

	next := doc.Clone()
	next.Bindings[code] = game
	next.Codes = slices.DeleteFunc(next.Codes, func(entry string) bool {
		return Normalize(entry) == code
	})

	if err := r.store.Save(ctx, next); err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to save binding")
		return nil, fmt.Errorf("%w: %w", model.ErrSaveFailed, err)
	}

	r.logger.Info().Str("code", code).Str("game", game).Msg("code bound")

	return &Binding{Code: code, Game: game, Locked: true}, nil
}

// Unbind deletes the binding for a code and puts the code back in the pool.
func (r *registry) Unbind(ctx context.Context, rawCode string) (string, error) {
	code := Normalize(rawCode)
	if code == "" {
		return "", model.ErrMissingCode
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load(ctx)

	key, game, ok := findBinding(doc.Bindings, code)
	if !ok {
		return "", model.ErrBindingNotFound
	}

	next := doc.Clone()
	delete(next.Bindings, key)
	// Duplicates are collapsed when the available set is built.
	next.Codes = append(next.Codes, code)

	if err := r.store.Save(ctx, next); err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to save unbind")
		return "", fmt.Errorf("%w: %w", model.ErrSaveFailed, err)
	}

	r.logger.Info().Str("code", code).Str("game", game).Msg("binding deleted")

	return code, nil
}

// load reads the document, treating any failure as an empty document.
// Absent documents are expected on first start; anything else is logged
// because a corrupt store is otherwise indistinguishable from an empty one.
func (r *registry) load(ctx context.Context) *model.Document {
	doc, err := r.store.Load(ctx)
	if err == nil {
		return doc
	}

	if errors.Is(err, repository.ErrDocumentNotFound) {
		r.logger.Debug().Msg("code document not found, using empty document")
	} else {
		r.logger.Warn().Err(err).Msg("code document unreadable, using empty document")
	}

	return model.NewDocument()
}

// findBinding looks up the binding for a normalized code. Stored keys are
// expected to be normalized already, but legacy un-normalized keys are
// matched by normalizing them.
// TODO: drop the normalized scan once every store has been rewritten with normalized keys.
func findBinding(bindings map[string]string, code string) (key, game string, ok bool) {
	if game, ok := bindings[code]; ok {
		return code, game, true
	}

	for _, key := range slices.Sorted(maps.Keys(bindings)) {
		if Normalize(key) == code {
			return key, bindings[key], true
		}
	}

	return "", "", false
}
