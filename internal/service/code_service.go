package service

import (
	"context"

	"codebind/internal/coupon"
	"codebind/internal/metrics"
	"codebind/internal/model"

	"github.com/rs/zerolog"
)

// codeService implements CodeService.
type codeService struct {
	registry coupon.Registry
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewCodeService creates a new code service. m may be nil.
func NewCodeService(registry coupon.Registry, m *metrics.Metrics, logger zerolog.Logger) CodeService {
	return &codeService{
		registry: registry,
		metrics:  m,
		logger:   logger.With().Str("service", "code").Logger(),
	}
}

// Validate reports whether a code is correct and, when bound, its game.
func (s *codeService) Validate(ctx context.Context, req *model.ValidateRequest) *model.ValidateResponse {
	var raw string
	if req != nil {
		raw = req.Code.String()
	}

	result := s.registry.Validate(ctx, raw)
	if !result.Correct {
		s.metrics.Observe("validate", metrics.OutcomeWrong)
		return &model.ValidateResponse{Status: model.StatusWrong}
	}

	s.metrics.Observe("validate", metrics.OutcomeCorrect)

	resp := &model.ValidateResponse{Status: model.StatusCorrect}
	if result.Bound {
		game := result.Game
		resp.Game = &game
	}
	return resp
}

// Bind binds a code to a game, or returns the game it is already locked to.
func (s *codeService) Bind(ctx context.Context, req *model.BindRequest) (*model.BindResponse, error) {
	if req == nil {
		req = &model.BindRequest{}
	}

	binding, err := s.registry.Bind(ctx, req.Code.String(), req.Game.String())
	if err != nil {
		s.metrics.Observe("bind", model.ErrorCode(err))
		s.logger.Warn().
			Str("code", req.Code.String()).
			Err(err).
			Msg("bind rejected")
		return nil, err
	}

	if binding.Existing {
		s.metrics.Observe("bind", metrics.OutcomeLocked)
	} else {
		s.metrics.Observe("bind", metrics.OutcomeBound)
	}

	return &model.BindResponse{
		OK:     true,
		Code:   binding.Code,
		Game:   binding.Game,
		Locked: binding.Locked,
	}, nil
}

// DeleteBinding removes a binding and makes the code available again.
func (s *codeService) DeleteBinding(ctx context.Context, req *model.DeleteBindingRequest) (*model.DeleteBindingResponse, error) {
	if req == nil {
		req = &model.DeleteBindingRequest{}
	}

	code, err := s.registry.Unbind(ctx, req.Code.String())
	if err != nil {
		s.metrics.Observe("delete_binding", model.ErrorCode(err))
		s.logger.Warn().
			Str("code", req.Code.String()).
			Err(err).
			Msg("delete binding rejected")
		return nil, err
	}

	s.metrics.Observe("delete_binding", metrics.OutcomeDeleted)

	return &model.DeleteBindingResponse{
		OK:      true,
		Code:    code,
		Message: model.DeleteBindingMessage,
	}, nil
}
