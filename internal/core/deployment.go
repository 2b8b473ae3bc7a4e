package core

// Deployment property names. They mirror the linked entity ids so that
// deployments can be filtered and queried like other entities.
const (
	PropDeploymentOS       = "os"
	PropDeploymentPlatform = "platform"
)

// Deployment pairs an operating system with a platform and lists the
// devices the pairing should use.
type Deployment struct {
	BaseEntity
	deviceLinks

	os       *OS
	platform *Platform
}

// NewDeployment creates a deployment of os on platform.
func NewDeployment(id string, os *OS, platform *Platform) *Deployment {
	d := &Deployment{
		BaseEntity:  newBaseEntity(id),
		deviceLinks: newDeviceLinks(),
	}
	d.SetOS(os)
	d.SetPlatform(platform)
	return d
}

// OS returns the deployed operating system.
func (d *Deployment) OS() *OS { return d.os }

// Platform returns the platform the OS is deployed on.
func (d *Deployment) Platform() *Platform { return d.platform }

// SetOS replaces the deployed operating system.
func (d *Deployment) SetOS(os *OS) {
	d.os = os
	if os != nil {
		d.SetParam(PropDeploymentOS, os.ID())
	}
}

// SetPlatform replaces the platform.
func (d *Deployment) SetPlatform(p *Platform) {
	d.platform = p
	if p != nil {
		d.SetParam(PropDeploymentPlatform, p.ID())
	}
}
