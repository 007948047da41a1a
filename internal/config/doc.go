// Package config loads, normalizes, and validates the cellar TOML
// configuration.
package config
