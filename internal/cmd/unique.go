package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/cmdutil"
	"github.com/opmodel/osinfo/internal/core"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/output"
)

// NewUniqueCmd creates the unique command.
func NewUniqueCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var related string

	c := &cobra.Command{
		Use:   "unique <os|platform|device|deployment> [property]",
		Short: "List the distinct values of a property",
		Long: `List the distinct values a property takes across every entity of a type.

With --related, list the products that some product of the type names in a
relationship (derives-from, clones or upgrades) instead.

Examples:
  # Every OS family in the catalog
  osinfo unique os family

  # Operating systems that something upgrades
  osinfo unique os --related upgrades`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: kindNames(),
		RunE: func(c *cobra.Command, args []string) error {
			return runUnique(c, cfg, args, related)
		},
	}

	c.Flags().StringVar(&related, "related", "",
		"List related products for a relationship instead of property values")
	return c
}

func runUnique(c *cobra.Command, cfg *cmdtypes.GlobalConfig, args []string, related string) error {
	if _, err := lookupKind(args[0]); err != nil {
		return err
	}

	var rel core.Relationship
	switch {
	case related != "":
		if len(args) != 1 {
			return oerrors.NewValidationError("--related does not take a property", "", "related", "")
		}
		if args[0] != "os" && args[0] != "platform" {
			return oerrors.NewValidationError(
				fmt.Sprintf("type %s has no relationships", args[0]), "", "related",
				"Relationships exist between operating systems or between platforms")
		}
		var err error
		if rel, err = core.ParseRelationship(related); err != nil {
			return oerrors.NewValidationError(err.Error(), "", "related",
				"Valid relationships: derives-from, clones, upgrades")
		}
	case len(args) != 2:
		return oerrors.NewValidationError("missing property name", "", "property", "")
	}

	db, err := cmdutil.LoadCatalog(c.Context(), cfg.DataDirs)
	if err != nil {
		return err
	}

	var values []string
	switch {
	case rel != "" && args[0] == "os":
		values = db.UniqueValuesForOSRelationship(rel).IDs()
	case rel != "":
		values = db.UniqueValuesForPlatformRelationship(rel).IDs()
	default:
		values = uniqueValues(db, args[0], args[1])
	}

	if cfg.Output == output.FormatJSON || cfg.Output == output.FormatYAML {
		if values == nil {
			values = []string{}
		}
		return cmdutil.WriteStructured(c.OutOrStdout(), values, cfg.Output)
	}
	for _, v := range values {
		fmt.Fprintln(c.OutOrStdout(), v)
	}
	return nil
}

func uniqueValues(db *core.DB, kind, prop string) []string {
	switch kind {
	case "os":
		return db.UniqueValuesForPropertyInOS(prop)
	case "platform":
		return db.UniqueValuesForPropertyInPlatform(prop)
	case "device":
		return db.UniqueValuesForPropertyInDevice(prop)
	default:
		return db.UniqueValuesForPropertyInDeployment(prop)
	}
}
