package core

import "strings"

// OS property names in addition to the product ones.
const (
	PropOSFamily         = "family"
	PropOSDistro         = "distro"
	PropOSKernelURLArg   = "kernel-url-argument"
	PropOSReleaseStatus  = "release-status"
	PropOSCloudImageUser = "cloud-image-username"

	customParamPrefix = "x-"
)

// IsCustomParam reports whether key names a free-form "x-" parameter.
func IsCustomParam(key string) bool {
	return len(key) > len(customParamPrefix) && strings.HasPrefix(key, customParamPrefix)
}

// OS is an operating system release.
type OS struct {
	Product
	deviceLinks

	media     *List[*Media]
	trees     *List[*Tree]
	variants  *List[*OSVariant]
	drivers   *List[*DeviceDriver]
	resources map[ResourcesKind]*List[*Resources]
}

// NewOS creates an operating system with the given id.
func NewOS(id string) *OS {
	return &OS{
		Product:     newProduct(id),
		deviceLinks: newDeviceLinks(),
		media:       NewList[*Media](),
		trees:       NewList[*Tree](),
		variants:    NewList[*OSVariant](),
		drivers:     NewList[*DeviceDriver](),
		resources:   make(map[ResourcesKind]*List[*Resources]),
	}
}

// Family returns the OS family, e.g. "linux" or "winnt".
func (o *OS) Family() string { return o.ParamValue(PropOSFamily) }

// Distro returns the distribution name, e.g. "fedora".
func (o *OS) Distro() string { return o.ParamValue(PropOSDistro) }

// KernelURLArgument returns the kernel argument used to pass an install URL.
func (o *OS) KernelURLArgument() string { return o.ParamValue(PropOSKernelURLArg) }

// ReleaseStatus returns the release status, "released" unless set.
func (o *OS) ReleaseStatus() string {
	if s := o.ParamValue(PropOSReleaseStatus); s != "" {
		return s
	}
	return "released"
}

// AllDevices returns the device links of o together with those inherited
// through derives-from and clones relationships. Links declared closer to
// o come first and shadow inherited links for the same device.
func (o *OS) AllDevices(m Matcher) *List[*DeviceLink] {
	out := NewList[*DeviceLink]()
	visited := make(map[string]bool)
	shadowed := make(map[string]bool)

	var walk func(cur *OS)
	walk = func(cur *OS) {
		if visited[cur.ID()] {
			return
		}
		visited[cur.ID()] = true

		for _, link := range cur.links.Elements() {
			if shadowed[link.ID()] {
				continue
			}
			shadowed[link.ID()] = true
			if m == nil || m.Matches(link) {
				out.Add(link)
			}
		}
		for _, rel := range []Relationship{RelDerivesFrom, RelClones} {
			for _, p := range cur.Related(rel) {
				if parent, ok := p.(*OS); ok {
					walk(parent)
				}
			}
		}
	}
	walk(o)
	return out
}

// AddMedia attaches installation media to o.
func (o *OS) AddMedia(m *Media) {
	m.os = o
	o.media.Add(m)
}

// Media returns the media of o.
func (o *OS) Media() *List[*Media] { return o.media }

// AddTree attaches an installation tree to o.
func (o *OS) AddTree(t *Tree) {
	t.os = o
	o.trees.Add(t)
}

// Trees returns the installation trees of o.
func (o *OS) Trees() *List[*Tree] { return o.trees }

// AddVariant records an edition of o.
func (o *OS) AddVariant(v *OSVariant) { o.variants.Add(v) }

// Variants returns the editions of o.
func (o *OS) Variants() *List[*OSVariant] { return o.variants }

// AddDeviceDriver records a driver bundle usable by o.
func (o *OS) AddDeviceDriver(d *DeviceDriver) { o.drivers.Add(d) }

// DeviceDrivers returns the driver bundles of o.
func (o *OS) DeviceDrivers() *List[*DeviceDriver] { return o.drivers }

// AddResources records a resources entry for the given tier.
func (o *OS) AddResources(kind ResourcesKind, r *Resources) {
	list, ok := o.resources[kind]
	if !ok {
		list = NewList[*Resources]()
		o.resources[kind] = list
	}
	list.Add(r)
}

// Resources returns the entries recorded for the given tier.
func (o *OS) Resources(kind ResourcesKind) *List[*Resources] {
	if list, ok := o.resources[kind]; ok {
		return list
	}
	return NewList[*Resources]()
}

// ResourcesFor returns the entry of the given tier for arch, falling back
// to the "all" architecture.
func (o *OS) ResourcesFor(kind ResourcesKind, arch string) *Resources {
	list := o.Resources(kind)
	var fallback *Resources
	for _, r := range list.Elements() {
		switch r.Architecture() {
		case arch:
			return r
		case ArchAll, "":
			if fallback == nil {
				fallback = r
			}
		}
	}
	return fallback
}
