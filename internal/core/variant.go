package core

// PropVariantName is the display name of an OS variant.
const PropVariantName = "name"

// OSVariant is an edition of an OS, such as "server" or "workstation".
type OSVariant struct {
	BaseEntity
}

// NewOSVariant creates a variant with the given id.
func NewOSVariant(id string) *OSVariant {
	return &OSVariant{BaseEntity: newBaseEntity(id)}
}

// Name returns the display name.
func (v *OSVariant) Name() string { return v.ParamValue(PropVariantName) }
