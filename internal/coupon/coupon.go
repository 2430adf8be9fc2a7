package coupon

import (
	"context"
)

// Registry implements the validate / bind / unbind state machine over the
// code document.
type Registry interface {
	// Validate reports whether a code is currently available or already bound.
	// It never fails and never changes state.
	Validate(ctx context.Context, rawCode string) Validation

	// Bind permanently associates an available code with a game. Binding an
	// already bound code returns the existing game without writing.
	Bind(ctx context.Context, rawCode, rawGame string) (*Binding, error)

	// Unbind removes a binding and returns the code to the available pool.
	// It returns the normalized code.
	Unbind(ctx context.Context, rawCode string) (string, error)
}

// Validation is the outcome of Registry.Validate.
type Validation struct {
	// Code is the normalized input.
	Code string

	// Correct is true when the code is available or bound.
	Correct bool

	// Bound is true when the code already has a game; Game holds it.
	Bound bool
	Game  string
}

// Binding is the outcome of a successful Registry.Bind.
type Binding struct {
	Code   string
	Game   string
	Locked bool

	// Existing is true when the code was bound before this call.
	Existing bool
}

// CodeSet represents a set of normalized codes for fast lookup.
type CodeSet interface {
	// Contains checks if a code exists in the set.
	Contains(code string) bool

	// Size returns the number of codes in the set.
	Size() int

	// Codes returns the codes in ascending order.
	Codes() []string
}

// Loader defines the interface for loading code lists used to provision the pool.
type Loader interface {
	// Load reads a code list, one code per line, and returns it as a CodeSet.
	Load(ctx context.Context, path string) (CodeSet, error)
}
