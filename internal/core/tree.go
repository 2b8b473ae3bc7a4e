package core

// Tree property names.
const (
	PropTreeArchitecture    = "architecture"
	PropTreeURL             = "url"
	PropTreeTreeinfoFamily  = "treeinfo-family"
	PropTreeTreeinfoVariant = "treeinfo-variant"
	PropTreeTreeinfoVersion = "treeinfo-version"
	PropTreeTreeinfoArch    = "treeinfo-arch"
	PropTreeKernel          = "kernel"
	PropTreeInitrd          = "initrd"
	PropTreeBootISO         = "boot-iso"
)

// Tree describes an installation tree served over the network.
type Tree struct {
	BaseEntity
	os       *OS
	patterns patternCache
}

// NewTree creates a tree with the given id and architecture.
func NewTree(id, arch string) *Tree {
	t := &Tree{BaseEntity: newBaseEntity(id)}
	if arch != "" {
		t.SetParam(PropTreeArchitecture, arch)
	}
	return t
}

// OS returns the operating system the tree belongs to, if any.
func (t *Tree) OS() *OS { return t.os }

// Architecture returns the hardware architecture.
func (t *Tree) Architecture() string { return t.ParamValue(PropTreeArchitecture) }

// URL returns the tree location.
func (t *Tree) URL() string { return t.ParamValue(PropTreeURL) }

// TreeinfoFamily returns the family recorded in .treeinfo.
func (t *Tree) TreeinfoFamily() string { return t.ParamValue(PropTreeTreeinfoFamily) }

// TreeinfoVariant returns the variant recorded in .treeinfo.
func (t *Tree) TreeinfoVariant() string { return t.ParamValue(PropTreeTreeinfoVariant) }

// TreeinfoVersion returns the version recorded in .treeinfo.
func (t *Tree) TreeinfoVersion() string { return t.ParamValue(PropTreeTreeinfoVersion) }

// TreeinfoArch returns the architecture recorded in .treeinfo.
func (t *Tree) TreeinfoArch() string { return t.ParamValue(PropTreeTreeinfoArch) }

// KernelPath returns the kernel path relative to the tree root.
func (t *Tree) KernelPath() string { return t.ParamValue(PropTreeKernel) }

// InitrdPath returns the initrd path relative to the tree root.
func (t *Tree) InitrdPath() string { return t.ParamValue(PropTreeInitrd) }

// BootISOPath returns the boot.iso path relative to the tree root.
func (t *Tree) BootISOPath() string { return t.ParamValue(PropTreeBootISO) }

var treePatternProps = []string{
	PropTreeTreeinfoFamily,
	PropTreeTreeinfoVariant,
	PropTreeTreeinfoVersion,
	PropTreeTreeinfoArch,
}

// Matches reports whether a probed tree is described by catalog tree t.
// Treeinfo values on t are regular expressions.
func (t *Tree) Matches(probed *Tree) bool {
	if !archMatches(t.Architecture(), probed.Architecture()) {
		return false
	}
	return patternsMatch(&t.patterns, &t.BaseEntity, &probed.BaseEntity, treePatternProps)
}
