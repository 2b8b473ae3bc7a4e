package cmd

import (
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

// Resolution is the preferred device of a deployment.
type Resolution struct {
	OS           string              `json:"os"`
	OSName       string              `json:"osName"`
	Custom       map[string][]string `json:"custom,omitempty"`
	Platform     string              `json:"platform"`
	PlatformName string              `json:"platformName"`
	Deployment   string              `json:"deployment"`
	Device       string              `json:"device"`
	DeviceName   string              `json:"deviceName"`
	Driver       string              `json:"driver,omitempty"`
	Supported    bool                `json:"supported"`
}

// NewResolveCmd creates the resolve command.
func NewResolveCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var class string

	c := &cobra.Command{
		Use:   "resolve <os> <platform> [KEY=VALUE...]",
		Short: "Find the preferred device for an OS on a platform",
		Long: `Find the deployment of an operating system on a platform and print the
preferred device link matching the device conditions.

The OS and platform may be given by id or short id. The first matching link
in declaration order wins.

Examples:
  # Preferred network device for Fedora 11 on KVM
  osinfo resolve fedora11 kvm --class net

  # Constrain on any device property
  osinfo resolve fedora11 kvm class=audio vendor-id=1274`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runResolve(c, cfg, args, class)
		},
	}

	c.Flags().StringVar(&class, "class", "net", "Device class to resolve (empty for any)")
	return c
}

func runResolve(c *cobra.Command, cfg *cmdtypes.GlobalConfig, args []string, class string) error {
	filter, err := cmdutil.ParseConditions(args[2:], nil)
	if err != nil {
		return err
	}
	if class != "" {
		filter.AddConstraint(core.PropDeviceClass, class)
	}

	db, err := cmdutil.LoadCatalog(c.Context(), cfg.DataDirs)
	if err != nil {
		return err
	}

	res, err := resolveDevice(db, args[0], args[1], filter)
	if err != nil {
		return err
	}

	if cfg.Output == output.FormatJSON || cfg.Output == output.FormatYAML {
		return cmdutil.WriteStructured(c.OutOrStdout(), res, cfg.Output)
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatKeyValue("OS", output.StyleNoun.Render(res.OSName)))
	for _, key := range sortedKeys(res.Custom) {
		fmt.Fprintln(w, output.FormatKeyValue("  "+key, strings.Join(res.Custom[key], ", ")))
	}
	fmt.Fprintln(w, output.FormatKeyValue("Platform", output.StyleNoun.Render(res.PlatformName)))
	fmt.Fprintln(w, output.FormatKeyValue("Deployment", res.Deployment))
	fmt.Fprintln(w, output.FormatKeyValue("Device", output.StyleNoun.Render(res.DeviceName)))
	driver := res.Driver
	if driver == "" {
		driver = output.StyleDim.Render("(none)")
	}
	if !res.Supported {
		driver += " " + output.StyleWarning.Render("(unsupported)")
	}
	fmt.Fprintln(w, output.FormatKeyValue("Driver", driver))
	return nil
}

// resolveDevice finds the deployment of osRef on platformRef and its
// preferred device link matching filter.
func resolveDevice(db *core.DB, osRef, platformRef string, filter *core.Filter) (*Resolution, error) {
	os := findProduct(db.OSes(), osRef)
	if os == nil {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("no operating system with id or short id %q", osRef), "",
			"Run 'osinfo query os' to list operating systems")
	}
	platform := findProduct(db.Platforms(), platformRef)
	if platform == nil {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("no platform with id or short id %q", platformRef), "",
			"Run 'osinfo query platform' to list platforms")
	}

	dep := db.FindDeployment(os, platform)
	if dep == nil {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("no deployment of %s on %s", os.ID(), platform.ID()), "",
			"Run 'osinfo query deployment' to list deployments")
	}

	link := dep.PreferredDeviceLink(core.NewDeviceLinkFilter(filter))
	if link == nil {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("deployment %s has no device matching %s", dep.ID(), describeFilter(filter)), "", "")
	}
	output.Debug("resolved device", "deployment", dep.ID(), "device", link.ID(), "driver", link.Driver())

	res := &Resolution{
		OS:           os.ID(),
		OSName:       os.Name(),
		Platform:     platform.ID(),
		PlatformName: platform.Name(),
		Deployment:   dep.ID(),
		Device:       link.ID(),
		Driver:       link.Driver(),
		Supported:    link.Supported(),
	}
	if target := link.Target(); target != nil {
		res.DeviceName = target.Name()
	}
	for _, key := range os.ParamKeys() {
		if core.IsCustomParam(key) {
			if res.Custom == nil {
				res.Custom = make(map[string][]string)
			}
			res.Custom[key] = os.ParamValues(key)
		}
	}
	return res, nil
}

// findProduct looks ref up by id, then by short id.
func findProduct[T core.Producer](l *core.List[T], ref string) T {
	if p, ok := l.Find(ref); ok {
		return p
	}
	for _, p := range l.Elements() {
		if slices.Contains(p.AsProduct().ShortIDs(), ref) {
			return p
		}
	}
	var zero T
	return zero
}

func describeFilter(f *core.Filter) string {
	var parts []string
	for _, key := range f.ConstraintKeys() {
		for _, v := range f.ConstraintValues(key) {
			parts = append(parts, key+"="+v)
		}
	}
	if len(parts) == 0 {
		return "any condition"
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
