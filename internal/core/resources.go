package core

// Resources property names.
const (
	PropResourcesArchitecture = "architecture"
	PropResourcesCPUs         = "n-cpus"
	PropResourcesCPU          = "cpu"
	PropResourcesRAM          = "ram"
	PropResourcesStorage      = "storage"
)

// ResourcesKind selects one of the resource tiers an OS declares.
type ResourcesKind string

const (
	ResourcesMinimum        ResourcesKind = "minimum"
	ResourcesRecommended    ResourcesKind = "recommended"
	ResourcesMaximum        ResourcesKind = "maximum"
	ResourcesNetworkInstall ResourcesKind = "network-install"
)

// ResourcesKinds lists the tiers in declaration order.
var ResourcesKinds = []ResourcesKind{
	ResourcesMinimum,
	ResourcesRecommended,
	ResourcesMaximum,
	ResourcesNetworkInstall,
}

// Resources captures hardware requirements for one architecture.
type Resources struct {
	BaseEntity
}

// NewResources creates a resources entry. The id is conventionally the
// OS id joined with the architecture.
func NewResources(id, arch string) *Resources {
	r := &Resources{BaseEntity: newBaseEntity(id)}
	if arch != "" {
		r.SetParam(PropResourcesArchitecture, arch)
	}
	return r
}

// Architecture returns the architecture the requirements apply to.
func (r *Resources) Architecture() string { return r.ParamValue(PropResourcesArchitecture) }

// CPUs returns the number of CPUs, or -1 when unknown.
func (r *Resources) CPUs() int64 { return r.ParamValueInt64(PropResourcesCPUs, -1) }

// CPU returns the CPU frequency in Hz, or -1 when unknown.
func (r *Resources) CPU() int64 { return r.ParamValueInt64(PropResourcesCPU, -1) }

// RAM returns the memory size in bytes, or -1 when unknown.
func (r *Resources) RAM() int64 { return r.ParamValueInt64(PropResourcesRAM, -1) }

// Storage returns the disk size in bytes, or -1 when unknown.
func (r *Resources) Storage() int64 { return r.ParamValueInt64(PropResourcesStorage, -1) }
