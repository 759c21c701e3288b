// Package config loads and validates application settings from an optional
// YAML file (~/.config/algodeck/config.yaml by default) and ALGODECK_-prefixed
// environment variables, with env taking precedence over the file.
package config
