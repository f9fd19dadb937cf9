package grid

import (
	"math/bits"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// MaxCellScale is the largest representable cell scale. The next doubling,
// 2^31, does not fit in an int32.
const MaxCellScale = int32(1) << 30

// ScaleFor returns the smallest power of two >= max(width, height), with a
// floor of 1 so that zero-sized objects still occupy a minimal cell.
func ScaleFor(width, height int32) (int32, error) {
	if width < 0 || height < 0 {
		return 0, errors.New("object dimensions are negative").
			WithType(ErrTypeInvalidDimension).
			WithTag("width", width).
			WithTag("height", height)
	}

	size := width
	if height > size {
		size = height
	}
	if size > MaxCellScale {
		return 0, errors.New("object is too large for the coordinate space").
			WithType(ErrTypeScaleOverflow).
			WithTag("width", width).
			WithTag("height", height)
	}
	return nextPowerOfTwo(size), nil
}

// nextPowerOfTwo returns the smallest power of two >= v, at least 1. v must
// not exceed MaxCellScale.
func nextPowerOfTwo(v int32) int32 {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len32(uint32(v-1))
}
