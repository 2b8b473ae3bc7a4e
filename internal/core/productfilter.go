package core

import (
	"time"
)

// ProductFilter extends Filter with relationship and support date
// constraints. Entities that are not products never satisfy a relationship
// or date constraint.
type ProductFilter struct {
	Filter
	products    map[Relationship][]Producer
	supportDate *time.Time
}

// NewProductFilter creates an empty product filter.
func NewProductFilter() *ProductFilter {
	return &ProductFilter{
		Filter:   *NewFilter(),
		products: make(map[Relationship][]Producer),
	}
}

// AddProductConstraint requires a product to have relationship rel with
// target.
func (f *ProductFilter) AddProductConstraint(rel Relationship, target Producer) *ProductFilter {
	if f.products == nil {
		f.products = make(map[Relationship][]Producer)
	}
	f.products[rel] = append(f.products[rel], target)
	return f
}

// ClearProductConstraint removes the constraints for rel.
func (f *ProductFilter) ClearProductConstraint(rel Relationship) {
	delete(f.products, rel)
}

// ClearProductConstraints removes every relationship constraint.
func (f *ProductFilter) ClearProductConstraints() {
	clear(f.products)
}

// ProductConstraintValues returns the products constrained for rel.
func (f *ProductFilter) ProductConstraintValues(rel Relationship) []Producer {
	return append([]Producer(nil), f.products[rel]...)
}

// AddSupportDateConstraint requires a product to be supported at t.
func (f *ProductFilter) AddSupportDateConstraint(t time.Time) *ProductFilter {
	f.supportDate = &t
	return f
}

// Matches implements Matcher.
func (f *ProductFilter) Matches(e Entity) bool {
	if f == nil {
		return true
	}
	if !f.Filter.Matches(e) {
		return false
	}
	if len(f.products) == 0 && f.supportDate == nil {
		return true
	}

	p, ok := e.(Producer)
	if !ok {
		return false
	}
	product := p.AsProduct()

	for rel, targets := range f.products {
		for _, target := range targets {
			if !product.IsRelatedTo(rel, target.ID()) {
				return false
			}
		}
	}

	if f.supportDate != nil && !product.IsSupportedAt(*f.supportDate) {
		return false
	}
	return true
}
