// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/cmd/config"
	"github.com/opmodel/osinfo/internal/cmd/db"
	"github.com/opmodel/osinfo/internal/cmdtypes"
	iconfig "github.com/opmodel/osinfo/internal/config"
	"github.com/opmodel/osinfo/internal/output"
	"github.com/opmodel/osinfo/internal/version"
)

// skipConfigFile marks commands that must run while the configuration
// file is broken.
const skipConfigFile = "osinfo/skip-config-file"

// NewRootCmd creates the root command for the osinfo CLI.
func NewRootCmd() *cobra.Command {
	var (
		dataDirFlags     []string
		configFlag       string
		outputFormatFlag string
		verboseFlag      bool
		timestampsFlag   bool
	)

	// Populated by PersistentPreRunE before any subcommand runs.
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "osinfo",
		Short: "Operating system and hypervisor metadata catalog",
		Long: `osinfo queries a catalog of operating systems, hypervisors and devices.

It provides commands to:
  - Query operating systems, platforms, devices and deployments
  - Resolve the preferred device and driver for an OS on a platform
  - Identify install media and trees
  - Validate, export, compare and watch catalogs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			opts := iconfig.ResolveOptions{
				ConfigFlag:   configFlag,
				DataDirFlags: dataDirFlags,
				OutputFlag:   outputFormatFlag,
				SkipFile:     skipsConfigFile(c),
			}
			if c.Flags().Changed("timestamps") {
				opts.TimestampsFlag = &timestampsFlag
			}
			return initializeGlobals(cfg, opts, verboseFlag)
		},
	}

	rootCmd.PersistentFlags().StringArrayVar(&dataDirFlags, "data-dir", nil,
		"Metadata directory or file, replaces the default directories (can be repeated, env: OSINFO_DATA_DIRS)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: OSINFO_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputFormatFlag, "output", "o", "",
		"Output format: table, json, yaml (default: table, env: OSINFO_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	configCmd := config.NewConfigCmd(cfg)
	configCmd.Annotations = map[string]string{skipConfigFile: "true"}

	rootCmd.AddCommand(NewQueryCmd(cfg))
	rootCmd.AddCommand(NewUniqueCmd(cfg))
	rootCmd.AddCommand(NewResolveCmd(cfg))
	rootCmd.AddCommand(NewDetectCmd(cfg))
	rootCmd.AddCommand(db.NewDBCmd(cfg))
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

func skipsConfigFile(c *cobra.Command) bool {
	for ; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigFile] == "true" {
			return true
		}
	}
	return false
}

// initializeGlobals resolves configuration, sets up logging and fills cfg.
func initializeGlobals(cfg *cmdtypes.GlobalConfig, opts iconfig.ResolveOptions, verbose bool) error {
	resolved, err := iconfig.Resolve(opts)
	if err != nil {
		return err
	}

	output.SetupLogging(output.LogConfig{
		Verbose:    verbose,
		Timestamps: output.BoolPtr(resolved.Timestamps),
	})

	*cfg = cmdtypes.GlobalConfig{
		Resolved:   resolved,
		ConfigPath: resolved.ConfigPath,
		DataDirs:   resolved.DataDirs,
		Output:     resolved.Output,
		Verbose:    verbose,
	}

	if verbose {
		info := version.Get()
		output.Debug("osinfo started", "version", info.Version, "cue_sdk", info.CUESDKVersion)
		iconfig.LogResolvedValues(resolved.Values)
	}

	return nil
}
