// Package sequence contains the order-number allocation strategies. Exactly one
// strategy is active per deployment, selected by configuration; formats and
// ordering expectations differ between strategies, so they are never mixed.
package sequence

import (
	"fmt"
	"log/slog"

	"depot/config"
	"depot/internal/domain/constants"
	"depot/internal/domain/repository"
	"depot/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the OrderNumberAllocator, injected by Fx
type Params struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Orders    repository.OrderRepository
	Sequences repository.SequenceRepository
}

// NewOrderNumberAllocator creates the allocator strategy selected by configuration.
func NewOrderNumberAllocator(params Params) (service.OrderNumberAllocator, error) {
	cfg := params.Config.Ordering
	logger := params.Logger

	switch cfg.Strategy {
	case constants.AllocationStrategyCounter:
		logger.Info("Using atomic-counter order number allocation",
			slog.String("prefix", cfg.Prefix),
			slog.Int("digits", cfg.Digits),
		)

		return newCounterAllocator(params.Sequences, cfg.Prefix, cfg.Digits, cfg.MaxAttempts), nil

	case constants.AllocationStrategyDerive:
		logger.Info("Using derive-and-retry order number allocation",
			slog.String("prefix", cfg.Prefix),
			slog.Int("digits", cfg.Digits),
		)

		return newDeriveAllocator(params.Orders, cfg.Prefix, cfg.Digits, cfg.MaxAttempts), nil

	case constants.AllocationStrategyRandom:
		logger.Info("Using random-with-retry order number allocation",
			slog.String("prefix", cfg.Prefix),
			slog.Int("digits", cfg.RandomDigits),
		)

		return newRandomAllocator(cfg.Prefix, cfg.RandomDigits, cfg.MaxAttempts), nil

	default:
		return nil, errors.Errorf("unknown allocation strategy: %s", cfg.Strategy)
	}
}

// formatOrderNumber renders a sequence value as a zero-padded order number.
// Values wider than the configured width keep all their digits.
func formatOrderNumber(prefix string, digits int, value int64) string {
	return fmt.Sprintf("%s%0*d", prefix, digits, value)
}

// Module provides the order number allocator FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewOrderNumberAllocator),
)
