package config

import (
	"os"
	"strconv"

	"github.com/vitestrap/cli/internal/output"
)

// Environment variables read by the resolver.
const (
	EnvPackageManager = "VITESTRAP_PACKAGE_MANAGER"
	EnvTemplate       = "VITESTRAP_TEMPLATE"
	EnvTailwind       = "VITESTRAP_TAILWIND"
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

// ResolvedValue is one configuration value after precedence was applied.
type ResolvedValue struct {
	Key    string
	Value  any
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]any
}

// Flags carries command-line values. A nil field means the flag was not
// given explicitly and does not take part in resolution.
type Flags struct {
	PackageManager *string
	Template       *string
	Tailwind       *bool
	Hooks          *bool
	GitInit        *bool
	Timestamps     *bool
}

// Settings are the effective values for one invocation.
type Settings struct {
	PackageManager string
	Template       string
	Tailwind       bool
	Hooks          bool
	GitInit        bool
	DefaultBranch  string
	Timestamps     bool

	// Values lists every resolution in a stable order, for debug logging
	// and `config view`.
	Values []ResolvedValue
}

// Resolve applies flag > env > config > default to every setting.
// Values are returned raw; callers validate enums and fall back themselves.
func Resolve(cfg *Config, flags Flags) *Settings {
	if cfg == nil {
		cfg = &Config{}
	}
	defaults := DefaultConfig()

	pm := resolve("packageManager",
		fromString(SourceFlag, flags.PackageManager),
		fromEnv(EnvPackageManager),
		fromValue(SourceConfig, cfg.PackageManager),
		fromValue(SourceDefault, defaults.PackageManager),
	)
	tmpl := resolve("template",
		fromString(SourceFlag, flags.Template),
		fromEnv(EnvTemplate),
		fromValue(SourceConfig, cfg.Template),
		fromValue(SourceDefault, defaults.Template),
	)
	tailwind := resolve("tailwind",
		fromBool(SourceFlag, flags.Tailwind),
		fromBoolEnv(EnvTailwind),
		fromBool(SourceConfig, cfg.Tailwind),
		fromBool(SourceDefault, defaults.Tailwind),
	)
	hooks := resolve("hooks",
		fromBool(SourceFlag, flags.Hooks),
		fromBool(SourceConfig, cfg.Hooks),
		fromBool(SourceDefault, defaults.Hooks),
	)
	gitInit := resolve("git.init",
		fromBool(SourceFlag, flags.GitInit),
		fromBool(SourceConfig, cfg.Git.Init),
		fromBool(SourceDefault, defaults.Git.Init),
	)
	branch := resolve("git.defaultBranch",
		fromValue(SourceConfig, cfg.Git.DefaultBranch),
		fromValue(SourceDefault, defaults.Git.DefaultBranch),
	)
	timestamps := resolve("log.timestamps",
		fromBool(SourceFlag, flags.Timestamps),
		fromBool(SourceConfig, cfg.Log.Timestamps),
		fromBool(SourceDefault, defaults.Log.Timestamps),
	)

	return &Settings{
		PackageManager: pm.Value.(string),
		Template:       tmpl.Value.(string),
		Tailwind:       tailwind.Value.(bool),
		Hooks:          hooks.Value.(bool),
		GitInit:        gitInit.Value.(bool),
		DefaultBranch:  branch.Value.(string),
		Timestamps:     timestamps.Value.(bool),
		Values:         []ResolvedValue{pm, tmpl, tailwind, hooks, gitInit, branch, timestamps},
	}
}

// Config returns the effective settings as a fully populated Config.
func (s *Settings) Config() *Config {
	return &Config{
		PackageManager: s.PackageManager,
		Template:       s.Template,
		Tailwind:       boolPtr(s.Tailwind),
		Hooks:          boolPtr(s.Hooks),
		Git: GitConfig{
			Init:          boolPtr(s.GitInit),
			DefaultBranch: s.DefaultBranch,
		},
		Log: LogConfig{
			Timestamps: boolPtr(s.Timestamps),
		},
	}
}

// candidate is one possible value for a setting; ok is false when the
// source has nothing to say.
type candidate struct {
	source ConfigSource
	value  any
	ok     bool
}

func fromValue(source ConfigSource, s string) candidate {
	return candidate{source: source, value: s, ok: s != ""}
}

func fromString(source ConfigSource, s *string) candidate {
	if s == nil {
		return candidate{}
	}
	return candidate{source: source, value: *s, ok: true}
}

func fromBool(source ConfigSource, b *bool) candidate {
	if b == nil {
		return candidate{}
	}
	return candidate{source: source, value: *b, ok: true}
}

func fromEnv(name string) candidate {
	return fromValue(SourceEnv, os.Getenv(name))
}

func fromBoolEnv(name string) candidate {
	raw := os.Getenv(name)
	if raw == "" {
		return candidate{}
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		output.Warn("ignoring invalid boolean in environment", "var", name, "value", raw)
		return candidate{}
	}
	return candidate{source: SourceEnv, value: b, ok: true}
}

// resolve picks the first available candidate; every later available
// candidate is recorded as shadowed.
func resolve(key string, candidates ...candidate) ResolvedValue {
	result := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]any),
	}
	for _, c := range candidates {
		if !c.ok {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

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
// (1) --config flag, (2) VITESTRAP_CONFIG env, (3) ~/.vitestrap/config.yaml.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvConfigFile)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
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
