package grid

import (
	"math"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestBucketOrigin(t *testing.T) {
	tests := []struct {
		coord  int32
		scale  int32
		bucket int32
	}{
		// scale 1 degenerates to the identity.
		{coord: -3, scale: 1, bucket: -3},
		{coord: 0, scale: 1, bucket: 0},
		{coord: 7, scale: 1, bucket: 7},

		// scale 2, origins are the odd integers.
		{coord: -3, scale: 2, bucket: -3},
		{coord: -2, scale: 2, bucket: -3},
		{coord: -1, scale: 2, bucket: -1},
		{coord: 0, scale: 2, bucket: -1},
		{coord: 1, scale: 2, bucket: 1},
		{coord: 2, scale: 2, bucket: 1},

		// scale 4, half-offset of 2. The negative cases are the ones a
		// truncating division gets wrong.
		{coord: -7, scale: 4, bucket: -10},
		{coord: -6, scale: 4, bucket: -6},
		{coord: -3, scale: 4, bucket: -6},
		{coord: -2, scale: 4, bucket: -2},
		{coord: -1, scale: 4, bucket: -2},
		{coord: 0, scale: 4, bucket: -2},
		{coord: 1, scale: 4, bucket: -2},
		{coord: 2, scale: 4, bucket: 2},
		{coord: 4, scale: 4, bucket: 2},
		{coord: 5, scale: 4, bucket: 2},
		{coord: 6, scale: 4, bucket: 6},

		// scale 8, half-offset of 4.
		{coord: 4, scale: 8, bucket: 4},
		{coord: 3, scale: 8, bucket: -4},
		{coord: -4, scale: 8, bucket: -4},
		{coord: -5, scale: 8, bucket: -12},
		{coord: 11, scale: 8, bucket: 4},
		{coord: 12, scale: 8, bucket: 12},
	}

	for _, test := range tests {
		bucket, err := BucketOrigin(test.coord, test.scale)
		require.NoError(t, err)
		require.Equal(t, test.bucket, bucket,
			"coord=%d scale=%d", test.coord, test.scale)
	}
}

func TestBucketOriginContainsCoord(t *testing.T) {
	for _, scale := range []int32{1, 2, 4, 8, 16, 32} {
		for coord := int32(-100); coord <= 100; coord++ {
			bucket, err := BucketOrigin(coord, scale)
			require.NoError(t, err)
			require.LessOrEqual(t, bucket, coord)
			require.Less(t, coord, bucket+scale)
		}
	}
}

func TestBucketOriginPartition(t *testing.T) {
	// Walking the integer line must step from one interval straight into the
	// next one: no gaps, no overlap.
	for _, scale := range []int32{1, 2, 4, 8, 16} {
		prev, err := BucketOrigin(-100, scale)
		require.NoError(t, err)
		for coord := int32(-99); coord <= 100; coord++ {
			bucket, err := BucketOrigin(coord, scale)
			require.NoError(t, err)
			if bucket != prev {
				require.Equal(t, prev+scale, bucket,
					"coord=%d scale=%d", coord, scale)
			}
			prev = bucket
		}
	}
}

func TestBucketOriginAtCoordinateLimits(t *testing.T) {
	t.Run("scale 1 degenerates to the identity at both limits", func(t *testing.T) {
		bucket, err := BucketOrigin(math.MinInt32, 1)
		require.NoError(t, err)
		require.Equal(t, int32(math.MinInt32), bucket)

		bucket, err = BucketOrigin(math.MaxInt32, 1)
		require.NoError(t, err)
		require.Equal(t, int32(math.MaxInt32), bucket)
	})

	t.Run("origin below the coordinate floor is rejected", func(t *testing.T) {
		// The interval containing the floor at scale 2 starts one below it.
		// A wrapping conversion would alias it onto the ceiling's origin.
		_, err := BucketOrigin(math.MinInt32, 2)
		require.Error(t, err)
		require.Equal(t, ErrTypeCoordinateOverflow, errors.Type(err))

		_, err = BucketOrigin(math.MinInt32, 8)
		require.Error(t, err)
		require.Equal(t, ErrTypeCoordinateOverflow, errors.Type(err))
	})

	t.Run("first representable origin above the floor", func(t *testing.T) {
		bucket, err := BucketOrigin(math.MinInt32+1, 2)
		require.NoError(t, err)
		require.Equal(t, int32(math.MinInt32+1), bucket)
	})

	t.Run("ceiling origins stay representable", func(t *testing.T) {
		bucket, err := BucketOrigin(math.MaxInt32, 2)
		require.NoError(t, err)
		require.Equal(t, int32(math.MaxInt32), bucket)
	})
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, q int64
	}{
		{a: 7, b: 2, q: 3},
		{a: 6, b: 2, q: 3},
		{a: 0, b: 2, q: 0},
		{a: -1, b: 2, q: -1},
		{a: -2, b: 2, q: -1},
		{a: -3, b: 2, q: -2},
		{a: -7, b: 4, q: -2},
	}

	for _, test := range tests {
		require.Equal(t, test.q, floorDiv(test.a, test.b),
			"a=%d b=%d", test.a, test.b)
	}
}
