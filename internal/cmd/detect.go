package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/cmdtypes"
	"github.com/opmodel/osinfo/internal/cmdutil"
	"github.com/opmodel/osinfo/internal/core"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/output"
	"github.com/opmodel/osinfo/internal/probe"
)

// Detection describes the catalog entry an image or tree was matched to.
type Detection struct {
	Source       string `json:"source"`
	OS           string `json:"os"`
	OSName       string `json:"osName"`
	Architecture string `json:"architecture,omitempty"`
	URL          string `json:"url,omitempty"`
	Kernel       string `json:"kernel,omitempty"`
	Initrd       string `json:"initrd,omitempty"`
	Live         *bool  `json:"live,omitempty"`
	Installer    *bool  `json:"installer,omitempty"`
}

// NewDetectCmd creates the detect command.
func NewDetectCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var tree bool

	c := &cobra.Command{
		Use:   "detect <image|tree>",
		Short: "Identify the operating system of install media or a tree",
		Long: `Identify the operating system of an ISO9660 install image, or with --tree
of an installation tree publishing a .treeinfo file.

Examples:
  osinfo detect Fedora-11-x86_64-DVD.iso
  osinfo detect --tree /srv/mirror/fedora/11/x86_64/os`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDetect(c, cfg, args[0], tree)
		},
	}

	c.Flags().BoolVar(&tree, "tree", false, "Treat the argument as an installation tree directory")
	return c
}

func runDetect(c *cobra.Command, cfg *cmdtypes.GlobalConfig, path string, tree bool) error {
	db, err := cmdutil.LoadCatalog(c.Context(), cfg.DataDirs)
	if err != nil {
		return err
	}

	var det *Detection
	if tree {
		det, err = detectTree(db, path)
	} else {
		det, err = detectMedia(db, path)
	}
	if err != nil {
		return err
	}

	if cfg.Output == output.FormatJSON || cfg.Output == output.FormatYAML {
		return cmdutil.WriteStructured(c.OutOrStdout(), det, cfg.Output)
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("%s is %s", det.Source, output.StyleNoun.Render(det.OSName))))
	fmt.Fprintln(w, output.FormatKeyValue("OS", det.OS))
	for _, kv := range [][2]string{
		{"Architecture", det.Architecture},
		{"URL", det.URL},
		{"Kernel", det.Kernel},
		{"Initrd", det.Initrd},
	} {
		if kv[1] != "" {
			fmt.Fprintln(w, output.FormatKeyValue(kv[0], kv[1]))
		}
	}
	if det.Live != nil {
		fmt.Fprintln(w, output.FormatKeyValue("Live", fmt.Sprint(*det.Live)))
	}
	if det.Installer != nil {
		fmt.Fprintln(w, output.FormatKeyValue("Installer", fmt.Sprint(*det.Installer)))
	}
	return nil
}

func detectMedia(db *core.DB, path string) (*Detection, error) {
	probed, err := probe.ReadISOFile(path)
	if err != nil {
		return nil, err
	}
	output.Debug("probed image", "path", path, "volume-id", probed.VolumeID(), "system-id", probed.SystemID())

	os, media := db.IdentifyMedia(probed)
	if os == nil {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("no operating system matches volume id %q", probed.VolumeID()), path, "")
	}
	live, installer := media.Live(), media.Installer()
	return &Detection{
		Source:       path,
		OS:           os.ID(),
		OSName:       os.Name(),
		Architecture: media.Architecture(),
		URL:          media.URL(),
		Kernel:       media.Kernel(),
		Initrd:       media.Initrd(),
		Live:         &live,
		Installer:    &installer,
	}, nil
}

func detectTree(db *core.DB, dir string) (*Detection, error) {
	probed, err := probe.ReadTreeinfoDir(dir)
	if err != nil {
		return nil, err
	}
	output.Debug("probed tree", "path", dir,
		"family", probed.TreeinfoFamily(), "version", probed.TreeinfoVersion(), "arch", probed.TreeinfoArch())

	os, tree := db.IdentifyTree(probed)
	if os == nil {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("no operating system matches treeinfo %s %s",
				probed.TreeinfoFamily(), probed.TreeinfoVersion()), dir, "")
	}
	return &Detection{
		Source:       dir,
		OS:           os.ID(),
		OSName:       os.Name(),
		Architecture: tree.Architecture(),
		URL:          tree.URL(),
		Kernel:       tree.KernelPath(),
		Initrd:       tree.InitrdPath(),
	}, nil
}
