// Package providers wires configured metadata sources into provider clients.
package providers

import (
	"fmt"
	"log/slog"
	"time"

	"cellar/internal/config"
	"cellar/internal/logging"
	"cellar/internal/metasearch"
	"cellar/internal/metasearch/giantbomb"
	"cellar/internal/metasearch/rawg"
)

// FromConfig builds a client for every enabled provider. Providers without
// an API key are skipped with a warning rather than failing startup, so a
// partially configured install can still search the sources it has keys for.
func FromConfig(cfg *config.Config, logger *slog.Logger) ([]metasearch.Provider, error) {
	log := logging.NewComponentLogger(logger, "metasearch")
	timeout := time.Duration(cfg.Providers.RequestTimeout) * time.Second

	var out []metasearch.Provider
	if cfg.Providers.RAWG.Enabled {
		if cfg.Providers.RAWG.APIKey == "" {
			log.Warn("rawg enabled without api key, skipping",
				logging.String(logging.FieldProvider, rawg.Source))
		} else {
			client, err := rawg.New(cfg.Providers.RAWG.APIKey, cfg.Providers.RAWG.BaseURL, timeout)
			if err != nil {
				return nil, fmt.Errorf("configure rawg: %w", err)
			}
			out = append(out, client)
		}
	}
	if cfg.Providers.GiantBomb.Enabled {
		if cfg.Providers.GiantBomb.APIKey == "" {
			log.Warn("giantbomb enabled without api key, skipping",
				logging.String(logging.FieldProvider, giantbomb.Source))
		} else {
			client, err := giantbomb.New(cfg.Providers.GiantBomb.APIKey, cfg.Providers.GiantBomb.BaseURL, timeout)
			if err != nil {
				return nil, fmt.Errorf("configure giantbomb: %w", err)
			}
			out = append(out, client)
		}
	}
	return out, nil
}
