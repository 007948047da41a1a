// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"cellar/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Providers are disabled by default so no test reaches the network by
// accident.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.CrossOver.BottlesDir = filepath.Join(base, "bottles")
	cfgVal.CrossOver.DefaultBottle = "Main"
	cfgVal.Providers.RAWG.Enabled = false
	cfgVal.Providers.GiantBomb.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRAWG enables the RAWG provider against the given base URL.
func WithRAWG(apiKey, baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Providers.RAWG = config.Provider{Enabled: true, APIKey: apiKey, BaseURL: baseURL}
	}
}

// WithGiantBomb enables the Giant Bomb provider against the given base URL.
func WithGiantBomb(apiKey, baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Providers.GiantBomb = config.Provider{Enabled: true, APIKey: apiKey, BaseURL: baseURL}
	}
}

// WithNtfyTopic points notifications at the given endpoint.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
