package diff

import "sort"

// IndexSet is a set of stable file indices.
type IndexSet map[int]struct{}

// NewIndexSet returns a set holding the given indices.
func NewIndexSet(indices ...int) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Has reports membership. A nil set is empty.
func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Add inserts i.
func (s IndexSet) Add(i int) { s[i] = struct{}{} }

// Remove deletes i.
func (s IndexSet) Remove(i int) { delete(s, i) }

// Toggle flips membership of i and reports whether it is now present.
func (s IndexSet) Toggle(i int) bool {
	if s.Has(i) {
		delete(s, i)
		return false
	}
	s[i] = struct{}{}
	return true
}

// Sorted returns the members in ascending order.
func (s IndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
