// Package fragment models a query genome cut into fixed-size pieces, the
// unit the aligner maps and the similarity estimators score.
package fragment

import "sort"

// Fragment is one contiguous piece of the query genome.
type Fragment struct {
	ID     int
	Length int
}

// Table maps fragment id to Fragment. It is read-only once built, so a
// single table may back any number of concurrent comparisons.
type Table map[int]Fragment

// Add inserts f, replacing any fragment with the same id.
func (t Table) Add(f Fragment) { t[f.ID] = f }

// Lookup returns the fragment with the given id.
func (t Table) Lookup(id int) (Fragment, bool) {
	f, ok := t[id]
	return f, ok
}

// GenomeLength is the sum of all fragment lengths.
func (t Table) GenomeLength() int {
	n := 0
	for _, f := range t {
		n += f.Length
	}
	return n
}

// IDs returns the fragment ids in ascending order.
func (t Table) IDs() []int {
	ids := make([]int, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns an independent copy of t.
func (t Table) Clone() Table {
	c := make(Table, len(t))
	for id, f := range t {
		c[id] = f
	}
	return c
}
