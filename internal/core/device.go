package core

// Device property names.
const (
	PropDeviceVendor    = "vendor"
	PropDeviceVendorID  = "vendor-id"
	PropDeviceProduct   = "product"
	PropDeviceProductID = "product-id"
	PropDeviceName      = "name"
	PropDeviceClass     = "class"
	PropDeviceBusType   = "bus-type"
	PropDeviceSubsystem = "subsystem"
)

// Device is a piece of (usually virtual) hardware.
type Device struct {
	BaseEntity
}

// NewDevice creates a device with the given id.
func NewDevice(id string) *Device {
	return &Device{BaseEntity: newBaseEntity(id)}
}

// Vendor returns the vendor name.
func (d *Device) Vendor() string { return d.ParamValue(PropDeviceVendor) }

// VendorID returns the bus specific vendor id.
func (d *Device) VendorID() string { return d.ParamValue(PropDeviceVendorID) }

// Product returns the product name.
func (d *Device) Product() string { return d.ParamValue(PropDeviceProduct) }

// ProductID returns the bus specific product id.
func (d *Device) ProductID() string { return d.ParamValue(PropDeviceProductID) }

// Name returns the short device name.
func (d *Device) Name() string { return d.ParamValue(PropDeviceName) }

// Class returns the device class, e.g. "net" or "audio".
func (d *Device) Class() string { return d.ParamValue(PropDeviceClass) }

// BusType returns the bus type, e.g. "pci" or "usb".
func (d *Device) BusType() string { return d.ParamValue(PropDeviceBusType) }

// Subsystem returns the subsystem name.
func (d *Device) Subsystem() string { return d.ParamValue(PropDeviceSubsystem) }
