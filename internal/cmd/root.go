// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vitestrap/cli/internal/config"
	"github.com/vitestrap/cli/internal/output"
	"github.com/vitestrap/cli/internal/scaffold"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	loadedConfig *config.Config
	configPath   string
	settings     *config.Settings
)

// Option customizes the root command.
type Option func(*rootOptions)

type rootOptions struct {
	scaffold []scaffold.Option
	prompt   promptFunc
}

// WithScaffoldOptions passes options to every Scaffolder the root command creates.
func WithScaffoldOptions(opts ...scaffold.Option) Option {
	return func(o *rootOptions) {
		o.scaffold = append(o.scaffold, opts...)
	}
}

// withPrompt replaces the interactive prompt.
func withPrompt(p promptFunc) Option {
	return func(o *rootOptions) {
		o.prompt = p
	}
}

// NewRootCmd creates the root command for the vitestrap CLI.
func NewRootCmd(opts ...Option) *cobra.Command {
	ro := &rootOptions{prompt: promptProject}
	for _, opt := range opts {
		opt(ro)
	}

	flags := &createFlags{}

	rootCmd := &cobra.Command{
		Use:   "vitestrap [flags] <app-name> [template]",
		Short: "Scaffold a React + Vite project with linting and formatting preconfigured",
		Long: `vitestrap generates a React project with Vite and layers an opinionated
setup on top: Prettier, ESLint, VS Code settings, a Husky pre-commit hook
running lint-staged, and optionally Tailwind CSS.

Arguments:
  app-name   Project directory to create (required)
  template   javascript (default) or typescript; aliases js, ts, react, react-ts

Re-running with --overlay-only on an existing project reapplies the overlay
without touching values you changed.`,
		Example: `  # JavaScript project with npm
  vitestrap my-app

  # TypeScript project with pnpm and Tailwind CSS
  vitestrap my-app typescript -p pnpm -t

  # Reapply the overlay to an existing project, offline
  vitestrap my-app --overlay-only --skip-install`,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, flags, ro)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "Path to config file (env: VITESTRAP_CONFIG)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	flags.register(rootCmd)

	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command, args []string) error {
	resolvedPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return err
	}
	configPath = resolvedPath.ConfigPath

	// A broken config file must not block `config init --force` or `config vet`.
	cfg, loadErr := config.NewLoader().Load(configPath)
	if loadErr != nil {
		cfg = &config.Config{}
	}
	loadedConfig = cfg

	settings = config.Resolve(loadedConfig, resolveFlags(cmd, args))

	output.SetupLogging(output.LogConfig{
		Verbose:    verboseFlag,
		Timestamps: output.BoolPtr(settings.Timestamps),
	})

	if loadErr != nil {
		output.Warn("ignoring unreadable config file", "path", configPath, "err", loadErr)
	}

	output.Debug("initializing CLI",
		"config", configPath,
		"config_source", resolvedPath.Source,
	)
	config.LogResolvedValues(settings.Values)

	return nil
}

// resolveFlags collects the explicitly set flags of cmd. The optional
// template positional argument only exists on the root command.
func resolveFlags(cmd *cobra.Command, args []string) config.Flags {
	var f config.Flags

	if v, ok := changedString(cmd, "package-manager"); ok {
		f.PackageManager = &v
	}
	if !cmd.HasParent() && len(args) > 1 {
		tmpl := args[1]
		f.Template = &tmpl
	}

	f.Tailwind = changedBool(cmd, "tailwind", false)
	f.Hooks = changedBool(cmd, "no-hooks", true)
	f.GitInit = changedBool(cmd, "no-git", true)
	f.Timestamps = changedBool(cmd, "timestamps", false)

	return f
}

func changedString(cmd *cobra.Command, name string) (string, bool) {
	fl := cmd.Flags().Lookup(name)
	if fl == nil || !fl.Changed {
		return "", false
	}
	return fl.Value.String(), true
}

func changedBool(cmd *cobra.Command, name string, invert bool) *bool {
	fl := cmd.Flags().Lookup(name)
	if fl == nil || !fl.Changed {
		return nil
	}
	b, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	if invert {
		b = !b
	}
	return &b
}
