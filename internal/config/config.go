// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps"`
}

// Config represents the osinfo CLI configuration.
// Loaded from ~/.osinfo/config.yaml, validated against embedded CUE schema.
type Config struct {
	// DataDirs replaces the system, local and user data directories.
	// Env: OSINFO_DATA_DIRS (path list), Flag: --data-dir
	DataDirs []string `mapstructure:"dataDirs" yaml:"dataDirs"`

	// Output is the default output format: table, json or yaml.
	// Env: OSINFO_OUTPUT, Flag: -o/--output
	Output string `mapstructure:"output" yaml:"output"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `osinfo config init` to generate initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		DataDirs: []string{},
		Output:   "table",
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}

// ResolvedValue records where one configuration value came from.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}
