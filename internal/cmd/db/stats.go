package db

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/cmdutil"
	"github.com/opmodel/osinfo/internal/core"
	"github.com/opmodel/osinfo/internal/output"
)

// NewStatsCmd creates the db stats command.
func NewStatsCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count catalog entities",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			db, err := cmdutil.LoadCatalog(c.Context(), cfg.DataDirs)
			if err != nil {
				return err
			}
			stats := db.Stats()
			if cfg.Output == output.FormatJSON || cfg.Output == output.FormatYAML {
				return cmdutil.WriteStructured(c.OutOrStdout(), stats, cfg.Output)
			}
			fmt.Fprintln(c.OutOrStdout(), statsTable(stats).String())
			return nil
		},
	}
}

func statsTable(s core.Stats) *output.Table {
	tbl := output.NewTable("KIND", "COUNT")
	for _, row := range []struct {
		kind  string
		count int
	}{
		{"operating systems", s.OSes},
		{"platforms", s.Platforms},
		{"devices", s.Devices},
		{"deployments", s.Deployments},
		{"datamaps", s.Datamaps},
		{"media", s.Media},
		{"trees", s.Trees},
	} {
		tbl.Row(row.kind, strconv.Itoa(row.count))
	}
	return tbl
}
