package catalog

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// IDSet is an immutable set of role IDs. The zero value is the empty set.
type IDSet struct {
	bm *roaring64.Bitmap
}

// NewIDSet returns a set containing ids.
func NewIDSet(ids ...int64) IDSet {
	bm := roaring64.New()
	for _, id := range ids {
		bm.Add(uint64(id))
	}
	return IDSet{bm: bm}
}

// IDsOf returns the set of IDs of roles.
func IDsOf(roles []PartialRole) IDSet {
	bm := roaring64.New()
	for _, r := range roles {
		bm.Add(uint64(r.ID))
	}
	return IDSet{bm: bm}
}

// Contains reports membership.
func (s IDSet) Contains(id int64) bool {
	return s.bm != nil && s.bm.Contains(uint64(id))
}

// Len returns the number of IDs in the set.
func (s IDSet) Len() int {
	if s.bm == nil {
		return 0
	}
	return int(s.bm.GetCardinality())
}

// Empty reports whether the set has no members.
func (s IDSet) Empty() bool {
	return s.Len() == 0
}

// Union returns a new set holding the members of both sets.
func (s IDSet) Union(other IDSet) IDSet {
	switch {
	case s.bm == nil && other.bm == nil:
		return IDSet{}
	case s.bm == nil:
		return IDSet{bm: other.bm.Clone()}
	case other.bm == nil:
		return IDSet{bm: s.bm.Clone()}
	}
	return IDSet{bm: roaring64.Or(s.bm, other.bm)}
}

// IDs returns the members in ascending bitmap order.
func (s IDSet) IDs() []int64 {
	if s.bm == nil {
		return nil
	}
	raw := s.bm.ToArray()
	ids := make([]int64, len(raw))
	for i, v := range raw {
		ids[i] = int64(v)
	}
	return ids
}

// Equal reports whether both sets hold the same IDs.
func (s IDSet) Equal(other IDSet) bool {
	return slices.Equal(s.IDs(), other.IDs())
}

// Select keeps the roles whose IDs are in the set, preserving order.
func (s IDSet) Select(roles []PartialRole) []PartialRole {
	out := make([]PartialRole, 0, len(roles))
	for _, r := range roles {
		if s.Contains(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many of roles are members of the set.
func (s IDSet) Count(roles []PartialRole) int {
	n := 0
	for _, r := range roles {
		if s.Contains(r.ID) {
			n++
		}
	}
	return n
}
