// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. It covers the preview server settings and
// the create_env presets (log level, plan output, fallback environment name and
// ruby version).
package config
