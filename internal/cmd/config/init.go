package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/config"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new osinfo configuration file",
		Long: `Create a new osinfo configuration file with default values.

The configuration file is created at ~/.osinfo/config.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path := cfg.ConfigPath
	if path == "" {
		var err error
		if path, err = config.GetConfigFile(); err != nil {
			return fmt.Errorf("getting config file path: %w", err)
		}
	}

	if err := config.WriteDefault(path, force); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return oerrors.NewExitError(
				fmt.Errorf("config file already exists at %s (use --force to overwrite)", path),
				cmdtypes.ExitGeneralError,
			)
		}
		return err
	}

	output.Debug("wrote default config", "path", path, "force", force)
	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+path))
	return nil
}
