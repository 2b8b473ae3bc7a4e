package core

// DeviceDriver property names.
const (
	PropDriverArchitecture = "arch"
	PropDriverLocation     = "location"
	PropDriverPreInstall   = "pre-installable"
	PropDriverSigned       = "signed"
	PropDriverFile         = "file"
	PropDriverPriority     = "priority"

	defaultDriverPriority = 50
)

// DeviceDriver describes a driver bundle an OS can use during or after
// installation.
type DeviceDriver struct {
	BaseEntity
	devices *List[*Device]
}

// NewDeviceDriver creates a driver entry.
func NewDeviceDriver(id string) *DeviceDriver {
	return &DeviceDriver{
		BaseEntity: newBaseEntity(id),
		devices:    NewList[*Device](),
	}
}

// Architecture returns the architecture the driver is built for.
func (d *DeviceDriver) Architecture() string { return d.ParamValue(PropDriverArchitecture) }

// Location returns where the driver files can be fetched.
func (d *DeviceDriver) Location() string { return d.ParamValue(PropDriverLocation) }

// PreInstallable reports whether the driver can be used during installation.
func (d *DeviceDriver) PreInstallable() bool {
	return d.ParamValueBool(PropDriverPreInstall, false)
}

// Signed reports whether the driver is signed.
func (d *DeviceDriver) Signed() bool { return d.ParamValueBool(PropDriverSigned, true) }

// Files returns the driver file names.
func (d *DeviceDriver) Files() []string { return d.ParamValues(PropDriverFile) }

// Priority returns the driver priority. Higher wins.
func (d *DeviceDriver) Priority() int64 {
	return d.ParamValueInt64(PropDriverPriority, defaultDriverPriority)
}

// AddDevice records a device the driver supports.
func (d *DeviceDriver) AddDevice(dev *Device) { d.devices.Add(dev) }

// Devices returns the supported devices.
func (d *DeviceDriver) Devices() *List[*Device] { return d.devices }
