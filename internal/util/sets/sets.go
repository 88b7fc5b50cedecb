package sets

// Set is a simple generic hash set for comparable keys.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Delete removes v if present.
func (s Set[T]) Delete(v T) { delete(s, v) }

// Ordered is a set that remembers insertion order. The first Add of a value
// fixes its position; later Adds of the same value are no-ops.
type Ordered[T comparable] struct {
	seen  Set[T]
	items []T
}

// NewOrdered creates an empty ordered set.
func NewOrdered[T comparable]() *Ordered[T] {
	return &Ordered[T]{seen: New[T]()}
}

// Add appends v if it has not been seen. It reports whether v was added.
func (o *Ordered[T]) Add(v T) bool {
	if o.seen.Has(v) {
		return false
	}
	o.seen.Add(v)
	o.items = append(o.items, v)
	return true
}

// Has returns true if v is present.
func (o *Ordered[T]) Has(v T) bool { return o.seen.Has(v) }

// Len returns the number of distinct values.
func (o *Ordered[T]) Len() int { return len(o.items) }

// Values returns a copy of the values in insertion order. Never nil.
func (o *Ordered[T]) Values() []T {
	out := make([]T, len(o.items))
	copy(out, o.items)
	return out
}
