// Package peer provides the identity and priority primitives shared
// across the simulator core: PeerId and Priority.
package peer

import "sort"

// ID is an opaque, totally ordered, hashable peer identity, constructed
// from a short textual tag. Two IDs with the same underlying tag are
// equal. IDs are immutable and cheap to copy.
type ID string

// New constructs a peer ID from a textual tag.
func New(tag string) ID {
	return ID(tag)
}

// String returns the underlying tag.
func (p ID) String() string {
	return string(p)
}

// Less reports whether p sorts before other.
func (p ID) Less(other ID) bool {
	return p < other
}

// LessOrEqual reports whether p sorts before or equal to other.
func (p ID) LessOrEqual(other ID) bool {
	return p <= other
}

// RangeTo returns the sequence of single-character peer IDs from 'A'
// up to and including end, in order. end must be a single uppercase
// letter; RangeTo('D') yields [A, B, C, D].
func RangeTo(end byte) []ID {
	if end < 'A' || end > 'Z' {
		return nil
	}
	ids := make([]ID, 0, int(end-'A')+1)
	for c := byte('A'); c <= end; c++ {
		ids = append(ids, ID(string(c)))
	}
	return ids
}

// SortIDs returns a copy of ids sorted in PeerId order. Used throughout
// the routing core wherever a deterministic iteration or tie-break
// order over peers is required.
func SortIDs(ids []ID) []ID {
	out := make([]ID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
