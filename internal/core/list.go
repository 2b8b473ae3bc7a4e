package core

// List is an ordered collection of entities with unique identifiers.
// Adding an entity whose id is already present replaces it in place.
type List[T Entity] struct {
	items []T
	index map[string]int
}

// NewList creates an empty list.
func NewList[T Entity]() *List[T] {
	return &List[T]{index: make(map[string]int)}
}

// Add appends item, or replaces the entry with the same id.
func (l *List[T]) Add(item T) {
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if i, ok := l.index[item.ID()]; ok {
		l.items[i] = item
		return
	}
	l.index[item.ID()] = len(l.items)
	l.items = append(l.items, item)
}

// Len returns the number of entries.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Nth returns the entry at position i. It panics when i is out of range.
func (l *List[T]) Nth(i int) T {
	return l.items[i]
}

// Find returns the entry with the given id.
func (l *List[T]) Find(id string) (T, bool) {
	var zero T
	if l == nil {
		return zero, false
	}
	i, ok := l.index[id]
	if !ok {
		return zero, false
	}
	return l.items[i], true
}

// Contains reports whether an entry with the given id exists.
func (l *List[T]) Contains(id string) bool {
	_, ok := l.Find(id)
	return ok
}

// Elements returns a copy of the entries in order.
func (l *List[T]) Elements() []T {
	if l == nil {
		return nil
	}
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// IDs returns the identifiers of the entries in order.
func (l *List[T]) IDs() []string {
	if l == nil {
		return nil
	}
	ids := make([]string, len(l.items))
	for i, item := range l.items {
		ids[i] = item.ID()
	}
	return ids
}

// AddAll adds every entry of src.
func (l *List[T]) AddAll(src *List[T]) {
	for _, item := range src.Elements() {
		l.Add(item)
	}
}

// AddFiltered adds the entries of src accepted by m. A nil matcher accepts
// everything.
func (l *List[T]) AddFiltered(src *List[T], m Matcher) {
	for _, item := range src.Elements() {
		if m == nil || m.Matches(item) {
			l.Add(item)
		}
	}
}

// AddIntersection adds the entries of a that are also present in b,
// preserving the order of a.
func (l *List[T]) AddIntersection(a, b *List[T]) {
	for _, item := range a.Elements() {
		if b.Contains(item.ID()) {
			l.Add(item)
		}
	}
}

// AddUnion adds every entry of b followed by the entries of a that b
// does not contain.
func (l *List[T]) AddUnion(a, b *List[T]) {
	seen := make(map[string]struct{}, b.Len())
	for _, item := range b.Elements() {
		l.Add(item)
		seen[item.ID()] = struct{}{}
	}
	for _, item := range a.Elements() {
		if _, ok := seen[item.ID()]; ok {
			continue
		}
		l.Add(item)
		seen[item.ID()] = struct{}{}
	}
}

// Filtered returns a new list with the entries accepted by m.
func (l *List[T]) Filtered(m Matcher) *List[T] {
	out := NewList[T]()
	out.AddFiltered(l, m)
	return out
}
