package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/algodeck/internal/domain"
	"github.com/phrazzld/algodeck/internal/store"
)

// intervalConfigKey is the settings row holding the scheduler's four
// interval knobs as JSON.
const intervalConfigKey = "sm2_intervals"

// SettingsStore implements store.SettingsStore on SQLite. The interval
// configuration is read on every rating submission, so it is cached in
// memory after the first load; Set invalidations keep the cache exact for
// this single-process design.
type SettingsStore struct {
	db     store.DBTX
	logger *slog.Logger

	mu        sync.Mutex
	intervals *domain.IntervalConfig
}

// NewSettingsStore creates the SQLite implementation of store.SettingsStore.
func NewSettingsStore(db store.DBTX, logger *slog.Logger) *SettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

var _ store.SettingsStore = (*SettingsStore)(nil)

// Get implements store.SettingsStore.Get.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: setting %q", store.ErrNotFound, key)
	}
	if err != nil {
		return "", store.NewStoreError("settings", "get", "query failed", err)
	}
	return value, nil
}

// Set implements store.SettingsStore.Set.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return store.NewStoreError("settings", "set", "exec failed", err)
	}
	return nil
}

// IntervalConfig implements store.SettingsStore.IntervalConfig. Defaults
// are written back on first access so the stored row always exists after
// first run.
func (s *SettingsStore) IntervalConfig(ctx context.Context) (domain.IntervalConfig, error) {
	s.mu.Lock()
	if s.intervals != nil {
		cfg := *s.intervals
		s.mu.Unlock()
		return cfg, nil
	}
	s.mu.Unlock()

	raw, err := s.Get(ctx, intervalConfigKey)
	if errors.Is(err, store.ErrNotFound) {
		cfg := domain.DefaultIntervalConfig()
		if err := s.SetIntervalConfig(ctx, cfg); err != nil {
			return domain.IntervalConfig{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return domain.IntervalConfig{}, err
	}

	cfg := domain.DefaultIntervalConfig()
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.logger.Warn("stored interval configuration unreadable, using defaults",
			slog.String("error", err.Error()))
		cfg = domain.DefaultIntervalConfig()
	}

	s.mu.Lock()
	s.intervals = &cfg
	s.mu.Unlock()
	return cfg, nil
}

// SetIntervalConfig implements store.SettingsStore.SetIntervalConfig.
func (s *SettingsStore) SetIntervalConfig(ctx context.Context, cfg domain.IntervalConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return store.NewStoreError("settings", "set_intervals", "marshal config", err)
	}
	if err := s.Set(ctx, intervalConfigKey, string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	s.intervals = &cfg
	s.mu.Unlock()
	return nil
}
