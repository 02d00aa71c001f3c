package query

import "github.com/RoaringBitmap/roaring/v2/roaring64"

// IDSet is a read-only membership set of record identifiers.
//
// Identifiers are stored in a 64-bit roaring bitmap. The int64 -> uint64
// conversion is a bijection, so negative ids round-trip correctly.
type IDSet struct {
	bm *roaring64.Bitmap
}

// NewIDSet builds a set from ids. Duplicates collapse.
func NewIDSet(ids ...int64) IDSet {
	bm := roaring64.New()
	for _, id := range ids {
		bm.Add(uint64(id))
	}
	return IDSet{bm: bm}
}

// Contains reports whether id is a member. The zero IDSet is empty.
func (s IDSet) Contains(id int64) bool {
	if s.bm == nil {
		return false
	}
	return s.bm.Contains(uint64(id))
}

// Len returns the number of distinct ids in the set.
func (s IDSet) Len() int {
	if s.bm == nil {
		return 0
	}
	return int(s.bm.GetCardinality())
}
