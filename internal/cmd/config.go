package cmd

import (
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long: `Configuration management for the vitestrap CLI.

The config file lives at ~/.vitestrap/config.yaml unless --config or
VITESTRAP_CONFIG points elsewhere. Values resolve per key in the order
flag, environment, config file, built-in default.`,
	}

	c.AddCommand(NewConfigInitCmd())
	c.AddCommand(NewConfigVetCmd())
	c.AddCommand(NewConfigViewCmd())
	c.AddCommand(NewConfigSchemaCmd())

	return c
}
