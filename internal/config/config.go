package config

import "path/filepath"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

// DataConfig locates the on-disk state: the database and captured
// screenshots live under one directory.
type DataConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// ReminderConfig controls the daily review reminder.
type ReminderConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Hour is the local hour (0-23) at which the reminder fires.
	Hour int `mapstructure:"hour" validate:"gte=0,lte=23"`
}

// DatabasePath returns the location of the SQLite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.Dir, "algodeck.db")
}

// ScreenshotDir returns the directory captured screenshots are copied to.
func (c *Config) ScreenshotDir() string {
	return filepath.Join(c.Data.Dir, "screenshots")
}
