package party

import "sort"

// IDSlice is a sorted slice of IDs.
type IDSlice []ID

// NewIDSlice returns a sorted copy of ids.
func NewIDSlice(ids []ID) IDSlice {
	out := make(IDSlice, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contains reports whether id is present.
func (s IDSlice) Contains(id ID) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	return i < len(s) && s[i] == id
}

// Valid reports whether the slice is sorted, duplicate-free and contains
// no zero ID.
func (s IDSlice) Valid() bool {
	for i, id := range s {
		if id == 0 {
			return false
		}
		if i > 0 && s[i-1] >= id {
			return false
		}
	}
	return true
}

// RangeIDs returns the IDs 1..n, the conventional domain for a fresh
// key ceremony.
func RangeIDs(n int) IDSlice {
	ids := make(IDSlice, n)
	for i := range ids {
		ids[i] = ID(i + 1)
	}
	return ids
}
