package config

const (
	defaultDatabasePath = "~/.local/share/sapling/catalog.json"
	defaultLogDir       = "~/.local/share/sapling/logs"
	defaultLocale       = "en-US"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DatabasePath: defaultDatabasePath,
			LogDir:       defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Locale: defaultLocale,
	}
}
