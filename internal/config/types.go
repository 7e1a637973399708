package config

// OutputFormat selects how listings and reports are printed.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Config is the top-level treeutil configuration, corresponding to .treeutil.yml.
// Every field is a default that a command-line flag can override.
type Config struct {
	IncludeHidden    bool         `yaml:"include_hidden" koanf:"include_hidden"`
	TraverseSymlinks bool         `yaml:"traverse_symlinks" koanf:"traverse_symlinks"`
	Recurse          bool         `yaml:"recurse" koanf:"recurse"`
	Overwrite        bool         `yaml:"overwrite" koanf:"overwrite"`
	LogLevel         string       `yaml:"log_level" koanf:"log_level"`
	Output           OutputFormat `yaml:"output" koanf:"output"`
	Progress         bool         `yaml:"progress" koanf:"progress"`
}
