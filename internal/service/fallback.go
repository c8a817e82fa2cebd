package service

import (
	"context"

	"go.uber.org/zap"
)

// strategy is one tier of an ordered fallback chain.
type strategy[T any] struct {
	name string
	run  func(ctx context.Context) (T, error)
}

// tryInOrder attempts strategies sequentially, stopping at the first
// success. Each tier runs at most once; a tier's failure is the trigger for
// the next. Only the final tier's failure propagates. Returns the winning
// tier's name alongside its result.
func tryInOrder[T any](ctx context.Context, logger *zap.Logger, flow string, strategies []strategy[T]) (T, string, error) {
	var zero T
	var lastErr error
	for i, s := range strategies {
		out, err := s.run(ctx)
		if err == nil {
			if i > 0 {
				logger.Info("Fallback tier succeeded",
					zap.String("flow", flow),
					zap.String("tier", s.name))
			}
			return out, s.name, nil
		}
		lastErr = err
		logger.Warn("Tier failed",
			zap.String("flow", flow),
			zap.String("tier", s.name),
			zap.Error(err))
	}
	return zero, "", lastErr
}
