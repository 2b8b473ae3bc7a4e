package db

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/catalog"
	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/cmdutil"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/output"
)

// NewDiffCmd creates the db diff command.
func NewDiffCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var exitCode bool

	c := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Compare two catalogs",
		Long: `Compare two catalogs entity by entity.

Each side is a metadata directory or file, or a document written by
'osinfo db export'.

Examples:
  osinfo db diff /usr/share/osinfo ./osinfo-db
  osinfo db diff before.yaml after.yaml --exit-code`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c, cfg, args[0], args[1], exitCode)
		},
	}

	c.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with status 1 when the catalogs differ")
	return c
}

func runDiff(c *cobra.Command, cfg *cmdtypes.GlobalConfig, fromPath, toPath string, exitCode bool) error {
	from, err := cmdutil.LoadDocument(c.Context(), fromPath)
	if err != nil {
		return err
	}
	to, err := cmdutil.LoadDocument(c.Context(), toPath)
	if err != nil {
		return err
	}

	useColor := cfg.Output == output.FormatTable && output.IsTTY()
	result, err := catalog.Diff(from, to, useColor)
	if err != nil {
		return fmt.Errorf("comparing catalogs: %w", err)
	}

	w := c.OutOrStdout()
	if cfg.Output == output.FormatJSON || cfg.Output == output.FormatYAML {
		if err := cmdutil.WriteStructured(w, result, cfg.Output); err != nil {
			return err
		}
	} else {
		if result.Report != "" {
			fmt.Fprintln(w, result.Report)
		}
		fmt.Fprintln(w, output.StyleSummary.Render(result.Summary()))
	}

	if exitCode && !result.IsEmpty() {
		return &oerrors.ExitError{
			Err:     fmt.Errorf("catalogs differ: %s", result.Summary()),
			Code:    cmdtypes.ExitGeneralError,
			Printed: true,
		}
	}
	return nil
}
