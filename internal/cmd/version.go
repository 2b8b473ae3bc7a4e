package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/cmdutil"
	"github.com/opmodel/osinfo/internal/output"
	"github.com/opmodel/osinfo/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show osinfo version information.

Displays:
  - osinfo version, commit, and build date
  - CUE SDK version used for schema validation
  - Supported metadata document version`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			info := version.Get()
			if cfg.Output == output.FormatJSON || cfg.Output == output.FormatYAML {
				return cmdutil.WriteStructured(c.OutOrStdout(), info, cfg.Output)
			}
			fmt.Fprintln(c.OutOrStdout(), info.String())
			return nil
		},
	}
}
