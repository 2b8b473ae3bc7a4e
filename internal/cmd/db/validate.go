package db

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/catalog"
	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/cmdutil"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/output"
)

// NewValidateCmd creates the db validate command.
func NewValidateCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a catalog against the schema",
		Long: `Load the catalog and validate it against the embedded schema.

Checks identifiers, dates and booleans, and that every device link,
relationship and deployment references a declared entity.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runValidate(c, cfg)
		},
	}
}

func runValidate(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	db, err := cmdutil.LoadCatalog(c.Context(), cfg.DataDirs)
	if err != nil {
		return err
	}

	validator, err := catalog.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.Validate(catalog.Export(db)); err != nil {
		var validationErrs catalog.ValidationErrors
		if errors.As(err, &validationErrs) {
			cmdutil.PrintValidationError(c.ErrOrStderr(), "catalog validation failed", source(cfg), err)
			return &oerrors.ExitError{Err: err, Code: cmdtypes.ExitValidationError, Printed: true}
		}
		return err
	}

	stats := db.Stats()
	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf(
		"Catalog is valid: %d operating systems, %d platforms, %d devices, %d deployments",
		stats.OSes, stats.Platforms, stats.Devices, stats.Deployments)))
	return nil
}
