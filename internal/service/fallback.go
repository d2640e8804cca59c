package service

import (
	"context"

	"go.uber.org/zap"
)

// Result sources reported by the tiered services
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// runWithFallback runs the primary model-backed path once and, on any
// failure, falls back to the deterministic path. The returned source tag
// records which path produced the value. Primary is never retried; fallback
// errors are data errors and surface to the caller.
func runWithFallback[T any](
	ctx context.Context,
	log *zap.Logger,
	name string,
	enabled bool,
	primary func(ctx context.Context) (T, error),
	fallback func(ctx context.Context) (T, error),
) (T, string, error) {
	if enabled {
		value, err := primary(ctx)
		if err == nil {
			return value, SourceLLM, nil
		}
		log.Warn("model path failed, using fallback",
			zap.String("service", name),
			zap.Error(err),
		)
	}

	value, err := fallback(ctx)
	if err != nil {
		var zero T
		return zero, SourceFallback, err
	}
	return value, SourceFallback, nil
}
