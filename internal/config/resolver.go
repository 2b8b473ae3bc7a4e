package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Environment variables read by the resolver.
const (
	EnvDataDirs   = "OSINFO_DATA_DIRS"
	EnvOutput     = "OSINFO_OUTPUT"
	EnvTimestamps = "OSINFO_LOG_TIMESTAMPS"
)

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) OSINFO_CONFIG env, (3) ~/.osinfo/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvConfig)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	if opts.FlagValue != "" {
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	} else if envValue != "" {
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	} else {
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// ResolveOptions carries the global flag values. Unset flags are zero.
type ResolveOptions struct {
	ConfigFlag     string
	DataDirFlags   []string
	OutputFlag     string
	TimestampsFlag *bool
	// SkipFile resolves without reading the configuration file, for
	// commands that must work while the file is broken.
	SkipFile bool
}

// Resolved is the effective configuration after applying precedence.
type Resolved struct {
	// Config is the configuration file content.
	Config *Config
	// ConfigPath is the file the configuration was read from.
	ConfigPath string
	// DataDirs is empty when the default data directories apply.
	DataDirs   []string
	Output     output.OutputFormat
	Timestamps bool
	// Values records the resolution of each key for verbose logging.
	Values []ResolvedValue
}

// Resolve loads the configuration file and resolves every setting using
// flag > env > config > default precedence.
func Resolve(opts ResolveOptions) (*Resolved, error) {
	pathResult, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: opts.ConfigFlag})
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	cfg := &Config{}
	if !opts.SkipFile {
		if cfg, err = NewLoader().Load(pathResult.ConfigPath); err != nil {
			return nil, err
		}
	}

	r := &Resolved{Config: cfg, ConfigPath: pathResult.ConfigPath}
	r.Values = append(r.Values, ResolvedValue{
		Key:      "config",
		Value:    pathResult.ConfigPath,
		Source:   pathResult.Source,
		Shadowed: toAny(pathResult.Shadowed),
	})

	dirs := resolve("dataDirs",
		candidate{SourceFlag, opts.DataDirFlags, len(opts.DataDirFlags) > 0},
		candidate{SourceEnv, filepath.SplitList(os.Getenv(EnvDataDirs)), os.Getenv(EnvDataDirs) != ""},
		candidate{SourceConfig, cfg.DataDirs, len(cfg.DataDirs) > 0},
		candidate{SourceDefault, []string(nil), true},
	)
	r.DataDirs = slices.Clone(dirs.Value.([]string))
	for i, d := range r.DataDirs {
		if r.DataDirs[i], err = ExpandPath(d); err != nil {
			return nil, fmt.Errorf("expanding data directory %s: %w", d, err)
		}
	}
	r.Values = append(r.Values, dirs)

	envOutput := os.Getenv(EnvOutput)
	out := resolve("output",
		candidate{SourceFlag, opts.OutputFlag, opts.OutputFlag != ""},
		candidate{SourceEnv, envOutput, envOutput != ""},
		candidate{SourceConfig, cfg.Output, cfg.Output != ""},
		candidate{SourceDefault, string(output.FormatTable), true},
	)
	format, ok := output.ParseOutputFormat(out.Value.(string))
	if !ok {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("invalid output format %q", out.Value),
			string(out.Source), "output",
			fmt.Sprintf("Valid formats: %v", output.ValidFormats()))
	}
	r.Output = format
	r.Values = append(r.Values, out)

	envTS, envTSSet := envBool(EnvTimestamps)
	ts := resolve("log.timestamps",
		candidate{SourceFlag, derefBool(opts.TimestampsFlag), opts.TimestampsFlag != nil},
		candidate{SourceEnv, envTS, envTSSet},
		candidate{SourceConfig, derefBool(cfg.Log.Timestamps), cfg.Log.Timestamps != nil},
		candidate{SourceDefault, true, true},
	)
	r.Timestamps = ts.Value.(bool)
	r.Values = append(r.Values, ts)

	return r, nil
}

type candidate struct {
	source ConfigSource
	value  any
	set    bool
}

// resolve picks the first set candidate and records the set candidates
// it shadows. Defaults are never reported as shadowed.
func resolve(key string, candidates ...candidate) ResolvedValue {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]any)}
	found := false
	for _, c := range candidates {
		if !c.set {
			continue
		}
		if !found {
			rv.Value, rv.Source = c.value, c.source
			found = true
			continue
		}
		if c.source != SourceDefault {
			rv.Shadowed[c.source] = c.value
		}
	}
	return rv
}

func envBool(name string) (bool, bool) {
	s := os.Getenv(name)
	if s == "" {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		output.Warn("ignoring invalid boolean", "env", name, "value", s)
		return false, false
	}
	return b, true
}

func derefBool(b *bool) bool {
	return b != nil && *b
}

func toAny(m map[ConfigSource]string) map[ConfigSource]any {
	out := make(map[ConfigSource]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
