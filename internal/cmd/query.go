package cmd

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/cmdutil"
	"github.com/opmodel/osinfo/internal/core"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/output"
)

// entityKind describes one queryable entity type.
type entityKind struct {
	// labels are the queryable properties; the first is the default sort key.
	labels []string
	// columns are the labels shown when no fields are selected.
	columns []string
	list    func(db *core.DB) []core.Entity
}

var entityKinds = map[string]entityKind{
	"os": {
		labels: []string{"short-id", "name", "version", "family", "distro", "vendor",
			"release-date", "eol-date", "codename", "id"},
		columns: []string{"short-id", "name", "version", "id"},
		list:    func(db *core.DB) []core.Entity { return entities(db.OSes()) },
	},
	"platform": {
		labels: []string{"short-id", "name", "version", "vendor",
			"release-date", "eol-date", "codename", "id"},
		columns: []string{"short-id", "name", "version", "id"},
		list:    func(db *core.DB) []core.Entity { return entities(db.Platforms()) },
	},
	"device": {
		labels: []string{"vendor", "vendor-id", "product", "product-id", "name",
			"class", "bus-type", "id"},
		columns: []string{"vendor", "product", "class", "bus-type", "id"},
		list:    func(db *core.DB) []core.Entity { return entities(db.Devices()) },
	},
	"deployment": {
		labels:  []string{"id", "os", "platform"},
		columns: []string{"id", "os", "platform"},
		list:    func(db *core.DB) []core.Entity { return entities(db.Deployments()) },
	},
}

func entities[T core.Entity](l *core.List[T]) []core.Entity {
	out := make([]core.Entity, 0, l.Len())
	for _, e := range l.Elements() {
		out = append(out, e)
	}
	return out
}

func kindNames() []string {
	names := make([]string, 0, len(entityKinds))
	for name := range entityKinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupKind(name string) (entityKind, error) {
	kind, ok := entityKinds[name]
	if !ok {
		return entityKind{}, oerrors.NewValidationError(
			fmt.Sprintf("unknown type %s", name), "", "type",
			fmt.Sprintf("Valid types: %s", strings.Join(kindNames(), ", ")))
	}
	return kind, nil
}

// NewQueryCmd creates the query command.
func NewQueryCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var qf cmdutil.QueryFlags

	c := &cobra.Command{
		Use:   "query <os|platform|device|deployment> [KEY=VALUE...]",
		Short: "List catalog entities matching conditions",
		Long: `List operating systems, platforms, devices or deployments.

Conditions narrow the result. Every condition must match, and repeating a
key requires all of its values.

Examples:
  # List every operating system
  osinfo query os

  # Network devices sorted by vendor id
  osinfo query device class=net --sort vendor-id

  # Choose the columns, including ones hidden by default
  osinfo query os family=linux --fields short-id,name,release-date`,
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: kindNames(),
		RunE: func(c *cobra.Command, args []string) error {
			return runQuery(c, cfg, &qf, args)
		},
	}

	qf.AddTo(c)
	return c
}

func runQuery(c *cobra.Command, cfg *cmdtypes.GlobalConfig, qf *cmdutil.QueryFlags, args []string) error {
	kind, err := lookupKind(args[0])
	if err != nil {
		return err
	}
	if err := qf.Validate(kind.labels); err != nil {
		return err
	}
	filter, err := cmdutil.ParseConditions(args[1:], kind.labels)
	if err != nil {
		return err
	}

	db, err := cmdutil.LoadCatalog(c.Context(), cfg.DataDirs)
	if err != nil {
		return err
	}

	var matched []core.Entity
	for _, e := range kind.list(db) {
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}

	sortKey := qf.SortKey(kind.labels)
	slices.SortStableFunc(matched, func(a, b core.Entity) int {
		return cmp.Compare(a.ParamValue(sortKey), b.ParamValue(sortKey))
	})
	output.Debug("query", "type", args[0], "conditions", len(args)-1, "matched", len(matched))

	columns := qf.Columns(kind.columns)
	if cfg.Output == output.FormatJSON || cfg.Output == output.FormatYAML {
		rows := make([]map[string]any, 0, len(matched))
		for _, e := range matched {
			rows = append(rows, structuredRow(e, columns))
		}
		return cmdutil.WriteStructured(c.OutOrStdout(), rows, cfg.Output)
	}

	tbl := output.NewTable(columns...)
	for _, e := range matched {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = strings.Join(e.ParamValues(col), ", ")
		}
		tbl.Row(cells...)
	}
	fmt.Fprintln(c.OutOrStdout(), tbl.String())
	return nil
}

// structuredRow keeps single values as strings and omits absent ones.
func structuredRow(e core.Entity, columns []string) map[string]any {
	row := make(map[string]any, len(columns))
	for _, col := range columns {
		switch values := e.ParamValues(col); len(values) {
		case 0:
		case 1:
			row[col] = values[0]
		default:
			row[col] = values
		}
	}
	return row
}
