package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/catalog"
	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/cmdutil"
	"github.com/opmodel/osinfo/internal/output"
)

// NewExportCmd creates the db export command.
func NewExportCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as YAML or JSON",
		Long: `Export every entity of the catalog as a sorted YAML or JSON document.

The format follows -o/--output; table output is written as YAML. Exported
documents can be compared with 'osinfo db diff'.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runExport(c, cfg, file)
		},
	}

	c.Flags().StringVar(&file, "file", "", "Write to a file instead of stdout")
	return c
}

func runExport(c *cobra.Command, cfg *cmdtypes.GlobalConfig, file string) error {
	db, err := cmdutil.LoadCatalog(c.Context(), cfg.DataDirs)
	if err != nil {
		return err
	}

	data, err := catalog.Marshal(catalog.Export(db), cfg.Output)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	if file == "" {
		_, err = c.OutOrStdout().Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	output.Info("catalog exported", "file", file, "bytes", len(data))
	return nil
}
