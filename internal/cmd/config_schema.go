package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vitestrap/cli/internal/config"
)

// NewConfigSchemaCmd creates the config schema command.
func NewConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration file",
		Long: `Print the JSON Schema of ~/.vitestrap/config.yaml.

Point an editor's YAML language server at the output to get completion and
validation while editing the config file.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			data, err := config.JSONSchema()
			if err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(data)
			return err
		},
	}
}
