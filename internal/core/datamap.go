package core

// Datamap translates values between the catalog's vocabulary and an
// external one, e.g. keyboard layouts for an installer.
type Datamap struct {
	BaseEntity
	entries []datamapEntry
	forward map[string]string
	reverse map[string]string
}

type datamapEntry struct {
	inval  string
	outval string
}

// NewDatamap creates an empty datamap.
func NewDatamap(id string) *Datamap {
	return &Datamap{
		BaseEntity: newBaseEntity(id),
		forward:    make(map[string]string),
		reverse:    make(map[string]string),
	}
}

// Insert adds a mapping. The first mapping for a given inval or outval
// wins lookups.
func (m *Datamap) Insert(inval, outval string) {
	m.entries = append(m.entries, datamapEntry{inval: inval, outval: outval})
	if _, ok := m.forward[inval]; !ok {
		m.forward[inval] = outval
	}
	if _, ok := m.reverse[outval]; !ok {
		m.reverse[outval] = inval
	}
}

// Lookup maps an input value to its output value.
func (m *Datamap) Lookup(inval string) (string, bool) {
	v, ok := m.forward[inval]
	return v, ok
}

// ReverseLookup maps an output value back to its input value.
func (m *Datamap) ReverseLookup(outval string) (string, bool) {
	v, ok := m.reverse[outval]
	return v, ok
}

// Len returns the number of mappings.
func (m *Datamap) Len() int { return len(m.entries) }

// Entries returns the mappings as inval/outval pairs in insertion order.
func (m *Datamap) Entries() [][2]string {
	out := make([][2]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = [2]string{e.inval, e.outval}
	}
	return out
}
