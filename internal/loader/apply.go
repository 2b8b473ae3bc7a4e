package loader

import (
	"fmt"
	"strconv"

	"github.com/opmodel/osinfo/internal/core"
	oerrors "github.com/opmodel/osinfo/internal/errors"
	"github.com/opmodel/osinfo/internal/output"
)

var (
	deviceKeys = []string{
		core.PropDeviceVendor,
		core.PropDeviceVendorID,
		core.PropDeviceProduct,
		core.PropDeviceProductID,
		core.PropDeviceName,
		core.PropDeviceClass,
		core.PropDeviceBusType,
		core.PropDeviceSubsystem,
	}

	productKeys = []string{
		core.PropProductVendor,
		core.PropProductVersion,
		core.PropProductShortID,
		core.PropProductName,
		core.PropProductReleaseDate,
		core.PropProductEOLDate,
		core.PropProductCodename,
		core.PropProductLogo,
	}

	osKeys = append(append([]string(nil), productKeys...),
		core.PropOSFamily,
		core.PropOSDistro,
		core.PropOSKernelURLArg,
		core.PropOSReleaseStatus,
		core.PropOSCloudImageUser,
	)

	mediaKeys = []string{
		core.PropMediaURL,
		core.PropMediaKernel,
		core.PropMediaInitrd,
	}

	mediaISOKeys = []string{
		core.PropMediaVolumeID,
		core.PropMediaSystemID,
		core.PropMediaPublisherID,
		core.PropMediaApplicationID,
		core.PropMediaVolumeSize,
	}

	treeKeys = []string{
		core.PropTreeURL,
		core.PropTreeKernel,
		core.PropTreeInitrd,
		core.PropTreeBootISO,
	}

	resourcesKeys = []string{
		core.PropResourcesCPUs,
		core.PropResourcesCPU,
		core.PropResourcesRAM,
		core.PropResourcesStorage,
	}
)

// paramSetter is implemented by every catalog entity.
type paramSetter interface {
	ClearParam(key string)
	AddParam(key, value string)
}

// applier folds parsed documents into a database.
type applier struct {
	db  *core.DB
	doc *document
}

func (a *applier) apply() error {
	log := output.SourceLogger(a.doc.path)
	for i := range a.doc.elements {
		el := &a.doc.elements[i]
		var err error
		switch el.Name() {
		case "device":
			err = a.device(el)
		case "platform", "hypervisor":
			err = a.platform(el)
		case "os":
			err = a.os(el)
		case "deployment":
			err = a.deployment(el)
		case "datamap":
			err = a.datamap(el)
		default:
			log.Debug("ignoring unknown element", "element", el.Name(), "line", el.line)
			continue
		}
		if err != nil {
			return err
		}
	}
	log.Debug("applied metadata document", "elements", len(a.doc.elements))
	return nil
}

func (a *applier) missingID(el *element, what string) error {
	return oerrors.NewParseError(
		fmt.Sprintf("missing %s id property", what),
		a.doc.location(el.line), el.Name())
}

// setParams copies the listed child elements and every custom "x-" element
// into e. Keys present in the element replace earlier values.
func setParams(e paramSetter, n *node, keys []string) {
	for _, key := range keys {
		children := n.Children(key)
		if len(children) == 0 {
			continue
		}
		e.ClearParam(key)
		for _, c := range children {
			if v := c.Text(); v != "" {
				e.AddParam(key, v)
			}
		}
	}

	cleared := make(map[string]bool)
	for i := range n.Nodes {
		c := &n.Nodes[i]
		if !core.IsCustomParam(c.Name()) {
			continue
		}
		if !cleared[c.Name()] {
			e.ClearParam(c.Name())
			cleared[c.Name()] = true
		}
		e.AddParam(c.Name(), c.Text())
	}
}

func setAttrParam(e paramSetter, n *node, attr, key string) {
	if v := n.Attr(attr); v != "" {
		e.ClearParam(key)
		e.AddParam(key, v)
	}
}

func (a *applier) device(el *element) error {
	id := el.Attr("id")
	if id == "" {
		return a.missingID(el, "device")
	}
	setParams(a.db.EnsureDevice(id), &el.node, deviceKeys)
	return nil
}

// linker is implemented by OS, Platform and Deployment.
type linker interface {
	AddDeviceLink(dev *core.Device, driver string) *core.DeviceLink
}

func (a *applier) deviceLinks(owner linker, el *element, n *node) error {
	devices := n.Child("devices")
	if devices == nil {
		return nil
	}
	for _, d := range devices.Children("device") {
		id := d.Attr("id")
		if id == "" {
			return oerrors.NewParseError("missing device link id property",
				a.doc.location(el.line), "devices")
		}
		driver := d.Attr("driver")
		if driver == "" {
			driver = d.ChildText("driver")
		}
		link := owner.AddDeviceLink(a.db.EnsureDevice(id), driver)
		s := d.Attr("supported")
		if s == "" {
			s = d.ChildText("supported")
		}
		if s != "" {
			supported, err := strconv.ParseBool(s)
			if err != nil {
				return oerrors.NewParseError(
					fmt.Sprintf("invalid supported value %q for device %s", s, id),
					a.doc.location(el.line), "supported")
			}
			link.SetSupported(supported)
		}
	}
	return nil
}

func (a *applier) relationships(p *core.Product, el *element, ensure func(id string) core.Producer) error {
	for _, rel := range core.Relationships {
		for _, r := range el.Children(string(rel)) {
			id := r.Attr("id")
			if id == "" {
				return oerrors.NewParseError(
					fmt.Sprintf("missing %s id property", rel),
					a.doc.location(el.line), string(rel))
			}
			p.AddRelated(rel, ensure(id))
		}
	}
	return nil
}

func (a *applier) platform(el *element) error {
	id := el.Attr("id")
	if id == "" {
		return a.missingID(el, "platform")
	}
	p := a.db.EnsurePlatform(id)
	setParams(p, &el.node, productKeys)

	err := a.relationships(&p.Product, el, func(id string) core.Producer {
		return a.db.EnsurePlatform(id)
	})
	if err != nil {
		return err
	}
	return a.deviceLinks(p, el, &el.node)
}

func (a *applier) os(el *element) error {
	id := el.Attr("id")
	if id == "" {
		return a.missingID(el, "os")
	}
	o := a.db.EnsureOS(id)
	setParams(o, &el.node, osKeys)

	err := a.relationships(&o.Product, el, func(id string) core.Producer {
		return a.db.EnsureOS(id)
	})
	if err != nil {
		return err
	}
	if err := a.deviceLinks(o, el, &el.node); err != nil {
		return err
	}

	// Older documents nest per-hypervisor device lists inside the OS.
	for _, hv := range el.Children("hypervisor") {
		hvID := hv.Attr("id")
		if hvID == "" {
			return oerrors.NewParseError("missing os hypervisor id property",
				a.doc.location(el.line), "hypervisor")
		}
		p := a.db.EnsurePlatform(hvID)
		dep := a.db.EnsureDeployment(id+"|"+hvID, o, p)
		if err := a.deviceLinks(dep, el, hv); err != nil {
			return err
		}
	}

	for _, v := range el.Children("variant") {
		vid := v.Attr("id")
		if vid == "" {
			return oerrors.NewParseError("missing variant id property",
				a.doc.location(el.line), "variant")
		}
		variant := core.NewOSVariant(vid)
		setParams(variant, v, []string{core.PropVariantName})
		o.AddVariant(variant)
	}

	for _, m := range el.Children("media") {
		o.AddMedia(a.media(o, m))
	}
	for _, t := range el.Children("tree") {
		o.AddTree(a.tree(o, t))
	}
	for _, r := range el.Children("resources") {
		a.resources(o, r)
	}
	for _, d := range el.Children("driver") {
		o.AddDeviceDriver(a.driver(o, d))
	}
	return nil
}

// media builds an installation medium of o. Media, trees and drivers
// without an id are numbered after the entries o already has, so
// redeclaring an OS in another file appends to them.
func (a *applier) media(o *core.OS, n *node) *core.Media {
	id := n.Attr("id")
	if id == "" {
		id = fmt.Sprintf("%s/media/%d", o.ID(), o.Media().Len()+1)
	}
	m := core.NewMedia(id, n.Attr("arch"))
	setParams(m, n, mediaKeys)
	if iso := n.Child("iso"); iso != nil {
		setParams(m, iso, mediaISOKeys)
	}
	setAttrParam(m, n, "live", core.PropMediaLive)
	setAttrParam(m, n, "installer", core.PropMediaInstaller)
	setAttrParam(m, n, "installer-reboots", core.PropMediaInstallerReboots)
	setAttrParam(m, n, "eject-after-install", core.PropMediaEjectAfter)
	for _, v := range n.Children("variant") {
		if vid := v.Attr("id"); vid != "" {
			m.AddParam(core.PropMediaVariant, vid)
		}
	}
	for _, l := range n.Children("l10n-language") {
		if lang := l.Text(); lang != "" {
			m.AddParam(core.PropMediaLang, lang)
		}
	}
	return m
}

func (a *applier) tree(o *core.OS, n *node) *core.Tree {
	id := n.Attr("id")
	if id == "" {
		id = fmt.Sprintf("%s/tree/%d", o.ID(), o.Trees().Len()+1)
	}
	t := core.NewTree(id, n.Attr("arch"))
	setParams(t, n, treeKeys)
	if info := n.Child("treeinfo"); info != nil {
		for _, key := range []string{"family", "variant", "version", "arch"} {
			if v := info.ChildText(key); v != "" {
				t.SetParam("treeinfo-"+key, v)
			}
		}
	}
	return t
}

func (a *applier) resources(o *core.OS, n *node) {
	arch := n.Attr("arch")
	if arch == "" {
		arch = core.ArchAll
	}
	for _, kind := range core.ResourcesKinds {
		tier := n.Child(string(kind))
		if tier == nil {
			continue
		}
		r := core.NewResources(fmt.Sprintf("%s/resources/%s", o.ID(), arch), arch)
		setParams(r, tier, resourcesKeys)
		o.AddResources(kind, r)
	}
}

func (a *applier) driver(o *core.OS, n *node) *core.DeviceDriver {
	d := core.NewDeviceDriver(fmt.Sprintf("%s/driver/%d", o.ID(), o.DeviceDrivers().Len()+1))
	setAttrParam(d, n, "arch", core.PropDriverArchitecture)
	setAttrParam(d, n, "location", core.PropDriverLocation)
	setAttrParam(d, n, "pre-installable", core.PropDriverPreInstall)
	setAttrParam(d, n, "signed", core.PropDriverSigned)
	setAttrParam(d, n, "priority", core.PropDriverPriority)
	for _, f := range n.Children("file") {
		if name := f.Text(); name != "" {
			d.AddParam(core.PropDriverFile, name)
		}
	}
	for _, dev := range n.Children("device") {
		if id := dev.Attr("id"); id != "" {
			d.AddDevice(a.db.EnsureDevice(id))
		}
	}
	return d
}

func (a *applier) deployment(el *element) error {
	id := el.Attr("id")
	if id == "" {
		return a.missingID(el, "deployment")
	}

	osNode := el.Child("os")
	if osNode == nil || osNode.Attr("id") == "" {
		return oerrors.NewParseError("missing deployment os id property",
			a.doc.location(el.line), "os")
	}
	platformNode := el.Child("platform")
	if platformNode == nil {
		platformNode = el.Child("hypervisor")
	}
	if platformNode == nil || platformNode.Attr("id") == "" {
		return oerrors.NewParseError("missing deployment platform id property",
			a.doc.location(el.line), "platform")
	}

	dep := a.db.EnsureDeployment(id,
		a.db.EnsureOS(osNode.Attr("id")),
		a.db.EnsurePlatform(platformNode.Attr("id")))
	setParams(dep, &el.node, nil)
	return a.deviceLinks(dep, el, &el.node)
}

func (a *applier) datamap(el *element) error {
	id := el.Attr("id")
	if id == "" {
		return a.missingID(el, "datamap")
	}
	m := a.db.EnsureDatamap(id)
	for _, e := range el.Children("entry") {
		in, out := e.Attr("inval"), e.Attr("outval")
		if in == "" || out == "" {
			return oerrors.NewParseError(
				"datamap entry needs both inval and outval",
				a.doc.location(el.line), "entry")
		}
		m.Insert(in, out)
	}
	return nil
}
