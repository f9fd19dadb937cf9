package grid

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestGridWithMetrics(t *testing.T) {
	g := GridWithMetrics[rect](New[rect](), "test")

	require.NoError(t, g.Insert(rect{x: 0, y: 0, width: 4, height: 4}))
	require.Equal(t, int32(8), g.MaxScale())

	err := g.Insert(rect{x: 0, y: 0, width: -1, height: 0})
	require.Error(t, err)
	require.Equal(t, ErrTypeInvalidDimension, errors.Type(err))

	var found []rect
	for obj := range g.FindAtPoint(1, 1) {
		found = append(found, obj)
	}
	require.Len(t, found, 1)

	seq, err := g.FindInRadius(0, 0, 10)
	require.NoError(t, err)
	found = found[:0]
	for obj := range seq {
		found = append(found, obj)
	}
	require.Len(t, found, 1)

	_, err = g.FindInRadius(0, 0, -1)
	require.Error(t, err)
	require.Equal(t, ErrTypeInvalidDimension, errors.Type(err))

	stats := g.Stats()
	require.Equal(t, 1, stats.Objects)
}
