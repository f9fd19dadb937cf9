package grid

import "github.com/aukilabs/go-tooling/pkg/errors"

// CellIndex identifies one storage cell: the bucket origins on both axes and
// the power-of-two scale of the layer the cell belongs to. Two objects share
// a CellIndex iff they were assigned the same bucket at the same scale.
type CellIndex struct {
	X     int32
	Y     int32
	Scale int32
}

// ResolveCell finds the smallest non-overlapping cell that fully contains the
// rectangle [x, x+width) x [y, y+height). It starts at the scale returned by
// ScaleFor, clamped up to minScale, and doubles until the candidate cell
// contains the rectangle.
//
// Containment is inclusive on the far edges: an object whose right or top
// edge coincides exactly with the cell edge fits without a scale bump.
//
// The result is deterministic, it depends only on the arguments and never on
// insertion history.
func ResolveCell(x, y, width, height, minScale int32) (CellIndex, error) {
	scale, err := ScaleFor(width, height)
	if err != nil {
		return CellIndex{}, err
	}
	if scale < minScale {
		scale = minScale
	}

	right := int64(x) + int64(width)
	top := int64(y) + int64(height)

	for s := int64(scale); s <= int64(MaxCellScale); s *= 2 {
		bx := bucketOrigin(int64(x), s)
		by := bucketOrigin(int64(y), s)

		if right <= bx+s && top <= by+s &&
			representable32(bx) && representable32(by) {
			return CellIndex{X: int32(bx), Y: int32(by), Scale: int32(s)}, nil
		}
	}

	return CellIndex{}, errors.New("no representable cell contains the object").
		WithType(ErrTypeScaleOverflow).
		WithTag("x", x).
		WithTag("y", y).
		WithTag("width", width).
		WithTag("height", height)
}
