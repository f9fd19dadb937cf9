package grid

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// BucketOrigin returns the origin of the unique interval of length scale that
// contains coord, on one axis. Interval origins are offset by scale/2
// relative to a naive floor(coord/scale)*scale grid, so cells are centered on
// the multiples of their scale instead of starting on them.
//
// For a fixed scale this partitions the integer line into disjoint half-open
// intervals [origin, origin+scale): two coordinates share an origin iff they
// lie in the same interval. scale must be a power of two >= 1.
//
// It fails with ErrTypeCoordinateOverflow when the origin falls below
// math.MinInt32, which happens for coordinates within scale/2 of the
// coordinate-space floor. Such intervals have no representable origin and the
// grid never materializes cells for them.
func BucketOrigin(coord, scale int32) (int32, error) {
	origin := bucketOrigin(int64(coord), int64(scale))
	if !representable32(origin) {
		return 0, errors.New("interval origin is below the coordinate space").
			WithType(ErrTypeCoordinateOverflow).
			WithTag("coord", coord).
			WithTag("scale", scale)
	}
	return int32(origin), nil
}

// bucketOrigin is BucketOrigin over int64. Intermediate sums can exceed the
// int32 range near its limits, and for coordinates within scale/2 of the
// minimum the origin itself is below math.MinInt32; callers that build a
// CellIndex must check representable32 first.
func bucketOrigin(coord, scale int64) int64 {
	half := scale / 2
	return floorDiv(coord+half, scale)*scale - half
}

// floorDiv divides a by b rounding toward negative infinity. Go's native
// integer division truncates toward zero, which disagrees with flooring for
// negative dividends. b must be > 0.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func representable32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
