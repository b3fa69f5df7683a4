// Package config provides configuration loading and management.
package config

import (
	"github.com/vitestrap/cli/internal/pkgmanager"
	"github.com/vitestrap/cli/internal/project"
	"github.com/vitestrap/cli/internal/vcs"
)

// GitConfig contains repository initialization settings.
type GitConfig struct {
	// Init controls whether a repository is ensured after scaffolding.
	// Default: true. Override with --no-git.
	Init *bool `json:"init,omitempty" yaml:"init,omitempty" mapstructure:"init" jsonschema_description:"Initialize a git repository in the new project"`

	// DefaultBranch is the branch name for newly created repositories.
	DefaultBranch string `json:"defaultBranch,omitempty" yaml:"defaultBranch,omitempty" mapstructure:"defaultBranch" jsonschema:"pattern=^[A-Za-z0-9._/-]+$" jsonschema_description:"Branch name for newly created repositories"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps" jsonschema_description:"Show timestamps in log output"`
}

// Config represents the vitestrap CLI configuration.
// Loaded from ~/.vitestrap/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// PackageManager is the default package manager.
	// Env: VITESTRAP_PACKAGE_MANAGER
	PackageManager string `json:"packageManager,omitempty" yaml:"packageManager,omitempty" mapstructure:"packageManager" jsonschema:"enum=npm,enum=yarn,enum=pnpm" jsonschema_description:"Package manager used to run the generator and install dependencies"`

	// Template is the default Vite template.
	// Env: VITESTRAP_TEMPLATE
	Template string `json:"template,omitempty" yaml:"template,omitempty" mapstructure:"template" jsonschema:"enum=javascript,enum=js,enum=react,enum=typescript,enum=ts,enum=react-ts" jsonschema_description:"Vite template flavour"`

	// Tailwind enables the Tailwind add-on by default.
	// Env: VITESTRAP_TAILWIND
	Tailwind *bool `json:"tailwind,omitempty" yaml:"tailwind,omitempty" mapstructure:"tailwind" jsonschema_description:"Enable the Tailwind CSS add-on"`

	// Hooks controls whether git hooks are installed. Default: true.
	Hooks *bool `json:"hooks,omitempty" yaml:"hooks,omitempty" mapstructure:"hooks" jsonschema_description:"Install the husky pre-commit hook"`

	Git GitConfig `json:"git,omitempty" yaml:"git,omitempty" mapstructure:"git"`

	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `vitestrap config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		PackageManager: pkgmanager.Default.String(),
		Template:       project.DefaultLanguage.String(),
		Tailwind:       boolPtr(false),
		Hooks:          boolPtr(true),
		Git: GitConfig{
			Init:          boolPtr(true),
			DefaultBranch: vcs.DefaultBranch,
		},
		Log: LogConfig{
			Timestamps: boolPtr(true),
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
