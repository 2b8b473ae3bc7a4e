package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/cmdutil"
	"github.com/opmodel/osinfo/internal/config"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the osinfo configuration file",
		Long: `Validate the osinfo configuration file against the internal schema.

The command validates the configuration file at ~/.osinfo/config.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	path := cfg.ConfigPath
	if path == "" {
		var err error
		if path, err = config.GetConfigFile(); err != nil {
			return fmt.Errorf("getting config file path: %w", err)
		}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			cmdutil.PrintValidationError(c.ErrOrStderr(), "config validation failed", path, err)
			return &oerrors.ExitError{Err: err, Code: cmdtypes.ExitValidationError, Printed: true}
		}
		return err
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file is valid: "+path))
	return nil
}
