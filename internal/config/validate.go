package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCrossOver(); err != nil {
		return err
	}
	if err := c.validateProviders(); err != nil {
		return err
	}
	if err := c.validateImporter(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateCrossOver() error {
	if strings.TrimSpace(c.CrossOver.AppPath) == "" {
		return errors.New("crossover.app_path must be set")
	}
	if strings.TrimSpace(c.CrossOver.BottlesDir) == "" {
		return errors.New("crossover.bottles_dir must be set")
	}
	return nil
}

func (c *Config) validateProviders() error {
	if c.Providers.RequestTimeout <= 0 {
		return errors.New("providers.request_timeout must be positive (seconds)")
	}
	if c.Providers.RAWG.Enabled && strings.TrimSpace(c.Providers.RAWG.BaseURL) == "" {
		return errors.New("providers.rawg.base_url must be set when providers.rawg.enabled is true")
	}
	if c.Providers.GiantBomb.Enabled && strings.TrimSpace(c.Providers.GiantBomb.BaseURL) == "" {
		return errors.New("providers.giantbomb.base_url must be set when providers.giantbomb.enabled is true")
	}
	return nil
}

func (c *Config) validateImporter() error {
	if c.Importer.MaxDepth <= 0 {
		return errors.New("importer.max_depth must be positive")
	}
	if len(c.Importer.ExecutableExtensions) == 0 {
		return errors.New("importer.executable_extensions must include at least one extension")
	}
	for _, ext := range c.Importer.ExecutableExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("importer.executable_extensions entry %q must start with a dot", ext)
		}
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
