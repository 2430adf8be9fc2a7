package service

import (
	"context"

	"codebind/internal/model"
)

// CodeService exposes the code registry through the API contract.
type CodeService interface {
	// Validate reports whether a code is correct and, when bound, its game.
	Validate(ctx context.Context, req *model.ValidateRequest) *model.ValidateResponse

	// Bind binds a code to a game, or returns the game it is already locked to.
	Bind(ctx context.Context, req *model.BindRequest) (*model.BindResponse, error)

	// DeleteBinding removes a binding and makes the code available again.
	DeleteBinding(ctx context.Context, req *model.DeleteBindingRequest) (*model.DeleteBindingResponse, error)
}
