package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitestrap/cli/internal/config"
	oerrors "github.com/vitestrap/cli/internal/errors"
	"github.com/vitestrap/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the configuration file",
		Long: `Validate the configuration file against the built-in schema.

Unknown keys and invalid values are reported with their path.`,
		Args: cobra.NoArgs,
		RunE: runConfigVet,
	}
}

func runConfigVet(c *cobra.Command, _ []string) error {
	path, err := config.ExpandPath(configPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return &oerrors.ExitError{
			Code: oerrors.ExitGeneralError,
			Err: oerrors.NewNotFoundError("config file not found", path,
				"Create one with: vitestrap config init"),
		}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err, Printed: true}
		}
		return fmt.Errorf("validating config: %w", err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file is valid: "+path))
	return nil
}
