// Package db provides CLI command implementations for the db command group.
package db

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/cmdtypes"
)

// NewDBCmd creates the db command group.
func NewDBCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "db",
		Short: "Catalog maintenance",
		Long: `Validate, export, compare and watch metadata catalogs.

Commands read the data directories selected by --data-dir, the config file
or the defaults.`,
	}

	c.AddCommand(NewValidateCmd(cfg))
	c.AddCommand(NewExportCmd(cfg))
	c.AddCommand(NewDiffCmd(cfg))
	c.AddCommand(NewWatchCmd(cfg))
	c.AddCommand(NewStatsCmd(cfg))

	return c
}

// source names the catalog location for messages.
func source(cfg *cmdtypes.GlobalConfig) string {
	if len(cfg.DataDirs) == 0 {
		return "default data directories"
	}
	if len(cfg.DataDirs) == 1 {
		return cfg.DataDirs[0]
	}
	return cfg.DataDirs[0] + " (+more)"
}
