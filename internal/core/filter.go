package core

import (
	"slices"
)

// Matcher selects entities.
type Matcher interface {
	Matches(e Entity) bool
}

// Filter is a set of property constraints. An entity matches when, for
// every constrained key, each constraint value is among the entity's values
// for that key.
type Filter struct {
	constraints map[string][]string
}

// NewFilter creates an empty filter. An empty filter matches everything.
func NewFilter() *Filter {
	return &Filter{constraints: make(map[string][]string)}
}

// AddConstraint requires value to be present for key. Multiple values for
// the same key must all be present.
func (f *Filter) AddConstraint(key, value string) *Filter {
	if f.constraints == nil {
		f.constraints = make(map[string][]string)
	}
	f.constraints[key] = append(f.constraints[key], value)
	return f
}

// ClearConstraint removes every constraint on key.
func (f *Filter) ClearConstraint(key string) {
	delete(f.constraints, key)
}

// ClearConstraints removes every property constraint.
func (f *Filter) ClearConstraints() {
	clear(f.constraints)
}

// ConstraintKeys returns the constrained keys in sorted order.
func (f *Filter) ConstraintKeys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, 0, len(f.constraints))
	for k := range f.constraints {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ConstraintValues returns the values required for key.
func (f *Filter) ConstraintValues(key string) []string {
	if f == nil {
		return nil
	}
	return slices.Clone(f.constraints[key])
}

// IsEmpty reports whether the filter has no property constraints.
func (f *Filter) IsEmpty() bool {
	return f == nil || len(f.constraints) == 0
}

// Matches implements Matcher. A nil filter matches everything.
func (f *Filter) Matches(e Entity) bool {
	if f == nil {
		return true
	}
	for key, wanted := range f.constraints {
		have := e.ParamValues(key)
		for _, w := range wanted {
			if !slices.Contains(have, w) {
				return false
			}
		}
	}
	return true
}
