package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCrossOver(); err != nil {
		return err
	}
	c.normalizeProviders()
	c.normalizeImporter()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCrossOver() error {
	var err error
	if strings.TrimSpace(c.CrossOver.AppPath) == "" {
		c.CrossOver.AppPath = defaultCrossOverApp
	}
	if c.CrossOver.AppPath, err = expandPath(c.CrossOver.AppPath); err != nil {
		return fmt.Errorf("crossover.app_path: %w", err)
	}
	if strings.TrimSpace(c.CrossOver.BottlesDir) == "" {
		c.CrossOver.BottlesDir = defaultBottlesDir
	}
	if c.CrossOver.BottlesDir, err = expandPath(c.CrossOver.BottlesDir); err != nil {
		return fmt.Errorf("crossover.bottles_dir: %w", err)
	}
	c.CrossOver.DefaultBottle = strings.TrimSpace(c.CrossOver.DefaultBottle)
	c.CrossOver.Locale = strings.TrimSpace(c.CrossOver.Locale)
	if c.CrossOver.Locale == "" {
		c.CrossOver.Locale = defaultLocale
	}
	c.CrossOver.WineDebug = strings.TrimSpace(c.CrossOver.WineDebug)
	if c.CrossOver.WineDebug == "" {
		c.CrossOver.WineDebug = defaultWineDebug
	}
	return nil
}

func (c *Config) normalizeProviders() {
	if c.Providers.RequestTimeout <= 0 {
		c.Providers.RequestTimeout = defaultProviderTimeout
	}
	c.Providers.RAWG.APIKey = strings.TrimSpace(c.Providers.RAWG.APIKey)
	if c.Providers.RAWG.APIKey == "" {
		if value, ok := os.LookupEnv("RAWG_API_KEY"); ok {
			c.Providers.RAWG.APIKey = strings.TrimSpace(value)
		}
	}
	c.Providers.RAWG.BaseURL = strings.TrimSpace(c.Providers.RAWG.BaseURL)
	if c.Providers.RAWG.BaseURL == "" {
		c.Providers.RAWG.BaseURL = defaultRAWGBaseURL
	}
	c.Providers.GiantBomb.APIKey = strings.TrimSpace(c.Providers.GiantBomb.APIKey)
	if c.Providers.GiantBomb.APIKey == "" {
		if value, ok := os.LookupEnv("GIANTBOMB_API_KEY"); ok {
			c.Providers.GiantBomb.APIKey = strings.TrimSpace(value)
		}
	}
	c.Providers.GiantBomb.BaseURL = strings.TrimSpace(c.Providers.GiantBomb.BaseURL)
	if c.Providers.GiantBomb.BaseURL == "" {
		c.Providers.GiantBomb.BaseURL = defaultGiantBombBaseURL
	}
}

func (c *Config) normalizeImporter() {
	if c.Importer.MaxDepth <= 0 {
		c.Importer.MaxDepth = defaultImporterMaxDepth
	}
	exts := make([]string, 0, len(c.Importer.ExecutableExtensions))
	seen := make(map[string]struct{}, len(c.Importer.ExecutableExtensions))
	for _, ext := range c.Importer.ExecutableExtensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = []string{".exe"}
	}
	c.Importer.ExecutableExtensions = exts
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
