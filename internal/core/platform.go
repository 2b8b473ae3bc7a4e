package core

// Platform is a virtualization platform such as a hypervisor release.
type Platform struct {
	Product
	deviceLinks
}

// NewPlatform creates a platform with the given id.
func NewPlatform(id string) *Platform {
	return &Platform{
		Product:     newProduct(id),
		deviceLinks: newDeviceLinks(),
	}
}
