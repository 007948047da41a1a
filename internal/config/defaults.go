package config

const (
	defaultDataDir          = "~/.local/share/cellar"
	defaultLogDir           = "~/.local/share/cellar/logs"
	defaultCrossOverApp     = "/Applications/CrossOver.app"
	defaultBottlesDir       = "~/Library/Application Support/CrossOver/Bottles"
	defaultLocale           = "en_US.UTF-8"
	defaultWineDebug        = "-all"
	defaultRAWGBaseURL      = "https://api.rawg.io/api"
	defaultGiantBombBaseURL = "https://www.giantbomb.com/api"
	defaultProviderTimeout  = 10
	defaultNotifyTimeout    = 10
	defaultImporterMaxDepth = 4
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		CrossOver: CrossOver{
			AppPath:    defaultCrossOverApp,
			BottlesDir: defaultBottlesDir,
			Locale:     defaultLocale,
			WineDebug:  defaultWineDebug,
		},
		Providers: Providers{
			RequestTimeout: defaultProviderTimeout,
			RAWG: Provider{
				Enabled: true,
				BaseURL: defaultRAWGBaseURL,
			},
			GiantBomb: Provider{
				Enabled: true,
				BaseURL: defaultGiantBombBaseURL,
			},
		},
		Importer: Importer{
			ExecutableExtensions: []string{".exe"},
			MaxDepth:             defaultImporterMaxDepth,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Launch:         true,
			Sessions:       true,
			Import:         true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
