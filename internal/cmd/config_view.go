package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/vitestrap/cli/internal/config"
)

// NewConfigViewCmd creates the config view command.
func NewConfigViewCmd() *cobra.Command {
	var sources bool

	c := &cobra.Command{
		Use:   "view",
		Short: "Show the effective configuration",
		Long: `Print the configuration after applying environment variables, the
config file and built-in defaults, as YAML.

With --sources every key is printed with the source its value came from.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigView(c, sources)
		},
	}

	c.Flags().BoolVar(&sources, "sources", false, "Show where each value came from")

	return c
}

// sourcedValue is one `config view --sources` entry.
type sourcedValue struct {
	Value  any                 `json:"value"`
	Source config.ConfigSource `json:"source"`
}

func runConfigView(c *cobra.Command, sources bool) error {
	var doc any = settings.Config()
	if sources {
		entries := make(map[string]sourcedValue, len(settings.Values))
		for _, v := range settings.Values {
			entries[v.Key] = sourcedValue{Value: v.Value, Source: v.Source}
		}
		doc = entries
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	_, err = c.OutOrStdout().Write(data)
	return err
}
