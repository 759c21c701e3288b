package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

func TestSettingsStore_GetSet(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	settings := NewSettingsStore(db.Conn(), nil)
	ctx := context.Background()

	_, err := settings.Get(ctx, "theme")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, settings.Set(ctx, "theme", "dark"))
	got, err := settings.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", got)

	// Upsert semantics.
	require.NoError(t, settings.Set(ctx, "theme", "light"))
	got, err = settings.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", got)
}

func TestSettingsStore_IntervalConfigDefaults(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	settings := NewSettingsStore(db.Conn(), nil)
	ctx := context.Background()

	cfg, err := settings.IntervalConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultIntervalConfig(), cfg)

	// First access persists the defaults.
	raw, err := settings.Get(ctx, intervalConfigKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"again":1,"hard":10,"good":1,"easy":4}`, raw)
}

func TestSettingsStore_SetIntervalConfig(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	settings := NewSettingsStore(db.Conn(), nil)
	ctx := context.Background()

	cfg := domain.IntervalConfig{AgainMinutes: 5, HardMinutes: 30, GoodDays: 2, EasyDays: 7}
	require.NoError(t, settings.SetIntervalConfig(ctx, cfg))

	got, err := settings.IntervalConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	// A fresh store reads the same config back from disk.
	fresh := NewSettingsStore(db.Conn(), nil)
	got, err = fresh.IntervalConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestSettingsStore_SetIntervalConfigRejectsInvalid(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	settings := NewSettingsStore(db.Conn(), nil)

	err := settings.SetIntervalConfig(context.Background(),
		domain.IntervalConfig{AgainMinutes: 0, HardMinutes: 10, GoodDays: 1, EasyDays: 4})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}
