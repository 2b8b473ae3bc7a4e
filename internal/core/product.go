package core

import (
	"fmt"
	"time"
)

// Product property names shared by operating systems and platforms.
const (
	PropProductVendor      = "vendor"
	PropProductVersion     = "version"
	PropProductShortID     = "short-id"
	PropProductName        = "name"
	PropProductReleaseDate = "release-date"
	PropProductEOLDate     = "eol-date"
	PropProductCodename    = "codename"
	PropProductLogo        = "logo"
)

// Relationship names a directed link between two products.
type Relationship string

const (
	// RelDerivesFrom means the subject is built from the object.
	RelDerivesFrom Relationship = "derives-from"

	// RelClones means the subject is a rebuild of the object.
	RelClones Relationship = "clones"

	// RelUpgrades means the subject is a newer release of the object.
	RelUpgrades Relationship = "upgrades"
)

// Relationships lists every known relationship in a stable order.
var Relationships = []Relationship{RelDerivesFrom, RelClones, RelUpgrades}

// ParseRelationship maps a relationship name to its value.
func ParseRelationship(s string) (Relationship, error) {
	for _, r := range Relationships {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown relationship %q", s)
}

// Producer is implemented by every type that embeds Product.
type Producer interface {
	Entity
	AsProduct() *Product
}

type productRelation struct {
	rel    Relationship
	target Producer
}

// Product is the common base of OS and Platform.
type Product struct {
	BaseEntity
	related []productRelation
}

func newProduct(id string) Product {
	return Product{BaseEntity: newBaseEntity(id)}
}

// AsProduct implements Producer.
func (p *Product) AsProduct() *Product {
	return p
}

// AddRelated records that p has relationship rel with target. Duplicate
// links are ignored.
func (p *Product) AddRelated(rel Relationship, target Producer) {
	for _, r := range p.related {
		if r.rel == rel && r.target.ID() == target.ID() {
			return
		}
	}
	p.related = append(p.related, productRelation{rel: rel, target: target})
}

// Related returns the products p has relationship rel with, in the order
// they were added.
func (p *Product) Related(rel Relationship) []Producer {
	var out []Producer
	for _, r := range p.related {
		if r.rel == rel {
			out = append(out, r.target)
		}
	}
	return out
}

// IsRelatedTo reports whether p has relationship rel with the product id.
func (p *Product) IsRelatedTo(rel Relationship, id string) bool {
	for _, r := range p.related {
		if r.rel == rel && r.target.ID() == id {
			return true
		}
	}
	return false
}

// Vendor returns the vendor name.
func (p *Product) Vendor() string { return p.ParamValue(PropProductVendor) }

// Version returns the version string.
func (p *Product) Version() string { return p.ParamValue(PropProductVersion) }

// ShortID returns the first short identifier.
func (p *Product) ShortID() string { return p.ParamValue(PropProductShortID) }

// ShortIDs returns every short identifier.
func (p *Product) ShortIDs() []string { return p.ParamValues(PropProductShortID) }

// Name returns the human readable name.
func (p *Product) Name() string { return p.ParamValue(PropProductName) }

// Codename returns the release codename.
func (p *Product) Codename() string { return p.ParamValue(PropProductCodename) }

// Logo returns the logo URI.
func (p *Product) Logo() string { return p.ParamValue(PropProductLogo) }

// ReleaseDate returns the release date, if known.
func (p *Product) ReleaseDate() (time.Time, bool) {
	return p.ParamValueDate(PropProductReleaseDate)
}

// EOLDate returns the end-of-life date, if known.
func (p *Product) EOLDate() (time.Time, bool) {
	return p.ParamValueDate(PropProductEOLDate)
}

// IsSupportedAt reports whether the product was released and not yet end
// of life at t. Unknown dates do not restrict support.
func (p *Product) IsSupportedAt(t time.Time) bool {
	if release, ok := p.ReleaseDate(); ok && release.After(t) {
		return false
	}
	if eol, ok := p.EOLDate(); ok && eol.Before(t) {
		return false
	}
	return true
}
