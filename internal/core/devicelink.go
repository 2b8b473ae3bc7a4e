package core

// DeviceLink property names.
const (
	PropDeviceLinkDriver    = "driver"
	PropDeviceLinkSupported = "supported"
)

// DeviceLink associates an OS, platform or deployment with a target device
// and the driver used for it. The link id is the target device id.
type DeviceLink struct {
	BaseEntity
	target *Device
}

// NewDeviceLink creates a link to target.
func NewDeviceLink(target *Device) *DeviceLink {
	return &DeviceLink{
		BaseEntity: newBaseEntity(target.ID()),
		target:     target,
	}
}

// Target returns the linked device.
func (l *DeviceLink) Target() *Device { return l.target }

// Driver returns the driver name, or "" when none is recorded.
func (l *DeviceLink) Driver() string { return l.ParamValue(PropDeviceLinkDriver) }

// SetDriver records the driver name.
func (l *DeviceLink) SetDriver(driver string) { l.SetParam(PropDeviceLinkDriver, driver) }

// Supported reports whether the device is supported. Links are supported
// unless marked otherwise.
func (l *DeviceLink) Supported() bool {
	return l.ParamValueBool(PropDeviceLinkSupported, true)
}

// SetSupported marks the link as supported or unsupported.
func (l *DeviceLink) SetSupported(supported bool) {
	l.SetParamBool(PropDeviceLinkSupported, supported)
}

// DeviceLinkFilter matches device links. The embedded Filter applies to the
// link's own parameters and the target filter to the linked device.
type DeviceLinkFilter struct {
	Filter
	target *Filter
}

// NewDeviceLinkFilter creates a link filter whose target filter is target.
// A nil target accepts every device.
func NewDeviceLinkFilter(target *Filter) *DeviceLinkFilter {
	return &DeviceLinkFilter{
		Filter: *NewFilter(),
		target: target,
	}
}

// TargetFilter returns the filter applied to linked devices.
func (f *DeviceLinkFilter) TargetFilter() *Filter { return f.target }

// Matches implements Matcher. Entities other than device links never match.
func (f *DeviceLinkFilter) Matches(e Entity) bool {
	if f == nil {
		return true
	}
	link, ok := e.(*DeviceLink)
	if !ok {
		return false
	}
	if !f.Filter.Matches(link) {
		return false
	}
	return f.target.Matches(link.target)
}

// deviceLinks is the device link store shared by OS, Platform and
// Deployment.
type deviceLinks struct {
	links *List[*DeviceLink]
}

func newDeviceLinks() deviceLinks {
	return deviceLinks{links: NewList[*DeviceLink]()}
}

// AddDeviceLink links dev with the given driver and returns the link.
// Re-adding a device replaces its previous link.
func (d *deviceLinks) AddDeviceLink(dev *Device, driver string) *DeviceLink {
	link := NewDeviceLink(dev)
	if driver != "" {
		link.SetDriver(driver)
	}
	d.links.Add(link)
	return link
}

// DeviceLinks returns the links accepted by m, in declaration order.
func (d *deviceLinks) DeviceLinks(m Matcher) *List[*DeviceLink] {
	return d.links.Filtered(m)
}

// Devices returns the linked devices accepted by f.
func (d *deviceLinks) Devices(f *Filter) *List[*Device] {
	out := NewList[*Device]()
	for _, link := range d.links.Elements() {
		if f.Matches(link.target) {
			out.Add(link.target)
		}
	}
	return out
}

// PreferredDeviceLink returns the first link accepted by f, or nil.
func (d *deviceLinks) PreferredDeviceLink(f *DeviceLinkFilter) *DeviceLink {
	for _, link := range d.links.Elements() {
		if f.Matches(link) {
			return link
		}
	}
	return nil
}

// PreferredDevice returns the target of the first link whose device is
// accepted by f, or nil.
func (d *deviceLinks) PreferredDevice(f *Filter) *Device {
	link := d.PreferredDeviceLink(NewDeviceLinkFilter(f))
	if link == nil {
		return nil
	}
	return link.target
}
