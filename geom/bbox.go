package geom

import "math"

// BoundingBox is an axis-aligned box in the local frame.
// Use NewBoundingBox; until the first Add, Min is +Inf and Max is -Inf.
type BoundingBox struct {
	Min LocalVertex `json:"min"`
	Max LocalVertex `json:"max"`
}

// NewBoundingBox returns an empty box.
func NewBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: LocalVertex{inf, inf, inf},
		Max: LocalVertex{-inf, -inf, -inf},
	}
}

// Add grows the box to include point.
func (b *BoundingBox) Add(point *LocalVertex) *BoundingBox {
	for i, val := range point {
		if val < b.Min[i] {
			b.Min[i] = val
		}
		if val > b.Max[i] {
			b.Max[i] = val
		}
	}
	return b
}

// IsEmpty reports whether no point has been added yet.
func (b *BoundingBox) IsEmpty() bool {
	return b.Min[0] > b.Max[0]
}

// Contains reports whether point lies inside the box, borders included.
func (b *BoundingBox) Contains(point *LocalVertex) bool {
	for i, val := range point {
		if val < b.Min[i] || val > b.Max[i] {
			return false
		}
	}
	return true
}
