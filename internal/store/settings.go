package store

import (
	"context"

	"github.com/phrazzld/algodeck/internal/domain"
)

// SettingsStore defines the interface for the key-value settings table,
// most importantly the interval configuration singleton consumed by the
// scheduler.
type SettingsStore interface {
	// Get returns the raw value for a settings key.
	// Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set writes a settings key.
	Set(ctx context.Context, key, value string) error

	// IntervalConfig returns the current interval configuration,
	// initializing and persisting the defaults on first access.
	IntervalConfig(ctx context.Context) (domain.IntervalConfig, error)

	// SetIntervalConfig persists a new interval configuration. It takes
	// effect for all subsequent scheduling computations but never
	// retroactively alters already-stored review dates.
	SetIntervalConfig(ctx context.Context, cfg domain.IntervalConfig) error
}
