package config

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".treeutil.yml"

// EnvPrefix prefixes environment overrides, e.g. TREEUTIL_LOG_LEVEL.
const EnvPrefix = "TREEUTIL_"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		IncludeHidden:    false,
		TraverseSymlinks: false,
		Recurse:          false,
		Overwrite:        false,
		LogLevel:         "info",
		Output:           OutputText,
		Progress:         true,
	}
}
