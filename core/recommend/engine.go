package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"EchoFM/logger"
	"EchoFM/model"
)

// ValidationError marks a malformed recommendation request. Validation
// failures surface to the caller immediately and never trigger a fallback.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Engine orchestrates recommendation requests: it validates the request,
// dispatches to the strategy for the requested mode and applies that
// strategy's fallback policy when the primary path fails. The engine is
// stateless and safe for concurrent use.
type Engine struct {
	strategies map[string]Strategy
}

// NewEngine wires the three mode strategies to their collaborators.
func NewEngine(library Library, provider SimilarProvider, translator MoodTranslator) *Engine {
	e := &Engine{strategies: make(map[string]Strategy, 3)}
	for _, s := range []Strategy{
		&similarStrategy{library: library, provider: provider},
		&discoveryStrategy{library: library, provider: provider},
		&moodStrategy{library: library, translator: translator},
	} {
		e.strategies[s.Mode()] = s
	}
	return e
}

// GetRecommendations is the single public entry point of the engine. It only
// fails on validation errors and on discovery-mode provider failures; every
// other downstream failure is converted into a fallback result.
func (e *Engine) GetRecommendations(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Limit <= 0 {
		req.Limit = model.DefaultLimit
	}

	strategy := e.strategies[req.Mode]
	start := time.Now()

	result, err := strategy.Recommend(ctx, req)
	if err != nil {
		logger.Warn("recommendation primary path failed",
			logger.String("mode", req.Mode),
			logger.ErrorField(err))
		result, err = strategy.Fallback(ctx, req, err)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("recommendations served",
		logger.String("mode", result.Mode),
		logger.String("source", result.Source),
		logger.Int("songs", len(result.Songs)),
		logger.Duration("elapsed", time.Since(start)))
	return result, nil
}

func validateRequest(req *model.RecommendationRequest) error {
	switch req.Mode {
	case model.ModeSimilar, model.ModeDiscovery:
		if strings.TrimSpace(req.Artist) == "" || strings.TrimSpace(req.Title) == "" {
			return newValidationError("%s mode requires a seed track (artist and title)", req.Mode)
		}
	case model.ModeMood:
		if strings.TrimSpace(req.Mood) == "" {
			return newValidationError("mood mode requires a mood description")
		}
	default:
		return newValidationError("unknown recommendation mode %q", req.Mode)
	}
	return nil
}
