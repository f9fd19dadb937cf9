package grid

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestScaleFor(t *testing.T) {
	tests := []struct {
		width  int32
		height int32
		scale  int32
	}{
		{width: 0, height: 0, scale: 1},
		{width: 1, height: 0, scale: 1},
		{width: 1, height: 1, scale: 1},
		{width: 2, height: 1, scale: 2},
		{width: 3, height: 1, scale: 4},
		{width: 4, height: 1, scale: 4},
		{width: 1, height: 5, scale: 8},
		{width: 8, height: 8, scale: 8},
		{width: 9, height: 2, scale: 16},
		{width: MaxCellScale, height: 0, scale: MaxCellScale},
		{width: MaxCellScale - 1, height: 0, scale: MaxCellScale},
	}

	for _, test := range tests {
		scale, err := ScaleFor(test.width, test.height)
		require.NoError(t, err)
		require.Equal(t, test.scale, scale,
			"width=%d height=%d", test.width, test.height)
	}
}

func TestScaleForNegativeDimension(t *testing.T) {
	_, err := ScaleFor(-1, 3)
	require.Error(t, err)
	require.Equal(t, ErrTypeInvalidDimension, errors.Type(err))

	_, err = ScaleFor(3, -1)
	require.Error(t, err)
	require.Equal(t, ErrTypeInvalidDimension, errors.Type(err))
}

func TestScaleForOverflow(t *testing.T) {
	_, err := ScaleFor(MaxCellScale+1, 0)
	require.Error(t, err)
	require.Equal(t, ErrTypeScaleOverflow, errors.Type(err))
}

func TestNextPowerOfTwo(t *testing.T) {
	require.Equal(t, int32(1), nextPowerOfTwo(0))
	require.Equal(t, int32(1), nextPowerOfTwo(1))
	require.Equal(t, int32(2), nextPowerOfTwo(2))
	require.Equal(t, int32(4), nextPowerOfTwo(3))
	require.Equal(t, int32(8), nextPowerOfTwo(5))
	require.Equal(t, MaxCellScale, nextPowerOfTwo(MaxCellScale))
}
