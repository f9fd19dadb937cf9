package grid

import (
	"iter"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// FindAtPoint returns the objects stored in a cell that contains the point
// (x, y). The sequence is lazy, finite and restartable; stopping early costs
// nothing for unvisited layers.
//
// Each stored object is yielded at most once: it lives in exactly one cell,
// and per layer the point resolves to exactly one bucket, so no deduplication
// is needed.
func (g *Grid[T]) FindAtPoint(x, y int32) iter.Seq[T] {
	return func(yield func(T) bool) {
		for scale := int32(1); scale > 0 && scale <= g.maxScale; scale *= 2 {
			s := int64(scale)
			bx := bucketOrigin(int64(x), s)
			by := bucketOrigin(int64(y), s)

			// An origin below the int32 range cannot hold data, no insert
			// could have created it.
			if !representable32(bx) || !representable32(by) {
				continue
			}

			cell := CellIndex{X: int32(bx), Y: int32(by), Scale: scale}
			for _, obj := range g.cells[cell] {
				if !yield(obj) {
					return
				}
			}
		}
	}
}

// FindInRadius returns the objects stored in cells whose bounds overlap the
// box [x-radius, x+radius] x [y-radius, y+radius]. The result is a
// conservative superset of the objects whose geometry intersects a circle of
// the given radius; callers needing exact circular containment must
// post-filter by true distance.
//
// The sequence is lazy, finite and restartable. Per layer the enumeration
// visits (2*radius/scale + 1)^2 candidate cells, so low scales dominate the
// cost for large radii.
//
// It fails with ErrTypeCoordinateOverflow when x±radius or y±radius leaves
// the representable coordinate range, and with ErrTypeInvalidDimension for a
// negative radius.
func (g *Grid[T]) FindInRadius(x, y, radius int32) (iter.Seq[T], error) {
	if radius < 0 {
		return nil, errors.New("radius is negative").
			WithType(ErrTypeInvalidDimension).
			WithTag("radius", radius)
	}

	minX, maxX := int64(x)-int64(radius), int64(x)+int64(radius)
	minY, maxY := int64(y)-int64(radius), int64(y)+int64(radius)

	if !representable32(minX) || !representable32(maxX) ||
		!representable32(minY) || !representable32(maxY) {
		return nil, errors.New("query box leaves the coordinate space").
			WithType(ErrTypeCoordinateOverflow).
			WithTag("x", x).
			WithTag("y", y).
			WithTag("radius", radius)
	}

	return func(yield func(T) bool) {
		for scale := int32(1); scale > 0 && scale <= g.maxScale; scale *= 2 {
			s := int64(scale)
			firstX := bucketOrigin(minX, s)
			lastX := bucketOrigin(maxX, s)
			firstY := bucketOrigin(minY, s)
			lastY := bucketOrigin(maxY, s)

			for by := firstY; by <= lastY; by += s {
				for bx := firstX; bx <= lastX; bx += s {
					if !representable32(bx) || !representable32(by) {
						continue
					}

					cell := CellIndex{X: int32(bx), Y: int32(by), Scale: scale}
					for _, obj := range g.cells[cell] {
						if !yield(obj) {
							return
						}
					}
				}
			}
		}
	}, nil
}
