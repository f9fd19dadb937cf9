// Package grid implements an adaptive hash grid: a spatial index that stores
// axis-aligned 2D objects of arbitrary size across the full int32 coordinate
// space and answers point and radius proximity queries without tree
// rebalancing or multi-cell deduplication.
//
// Each object lives in exactly one cell, the smallest offset power-of-two
// cell that fully contains it. All conceptual layers share one flat table
// keyed by the full CellIndex; this flattening is deliberate, a layer is just
// the set of cells with the same scale.
package grid

// Bounded is the shape the grid indexes: anything exposing an axis-aligned
// rectangle with an integer origin and non-negative extent.
type Bounded interface {
	Bounds() (x, y, width, height int32)
}

// Grid stores objects of type T and answers proximity queries. The zero
// value is not usable, use New.
//
// A Grid is not safe for concurrent use. Callers sharing one across
// goroutines must impose a single-writer/many-readers discipline themselves.
type Grid[T Bounded] struct {
	minScale int32
	maxScale int32
	count    int
	cells    map[CellIndex][]T
}

// Option configures a Grid.
type Option func(*options)

type options struct {
	minScale int32
}

// WithMinScale clamps the scale assigned to inserted objects up to at least
// s, trading index granularity for fewer, denser cells. Values below 1 are
// ignored and values that are not a power of two are rounded up to the next
// one.
func WithMinScale(s int32) Option {
	return func(o *options) {
		o.minScale = s
	}
}

// New returns an empty grid over element type T.
func New[T Bounded](opts ...Option) *Grid[T] {
	o := options{minScale: 1}
	for _, opt := range opts {
		opt(&o)
	}

	minScale := o.minScale
	if minScale > MaxCellScale {
		minScale = MaxCellScale
	}

	return &Grid[T]{
		minScale: nextPowerOfTwo(minScale),
		cells:    make(map[CellIndex][]T),
	}
}

// Insert stores obj in the unique cell that fully contains it, creating the
// bucket on first use. It fails with ErrTypeInvalidDimension on a negative
// extent and with ErrTypeScaleOverflow when no representable cell can contain
// the object; on error the grid is left unchanged.
func (g *Grid[T]) Insert(obj T) error {
	x, y, width, height := obj.Bounds()

	cell, err := ResolveCell(x, y, width, height, g.minScale)
	if err != nil {
		return err
	}

	if cell.Scale > g.maxScale {
		g.maxScale = cell.Scale
	}
	g.cells[cell] = append(g.cells[cell], obj)
	g.count++
	return nil
}

// MaxScale returns the largest scale in use by any stored object, or 0 for an
// empty grid. It never decreases.
func (g *Grid[T]) MaxScale() int32 {
	return g.maxScale
}

// ObjectCount returns the number of stored objects.
func (g *Grid[T]) ObjectCount() int {
	return g.count
}

// BucketCount returns the number of materialized cells. It grows with the
// number of distinct occupied cells, not with the coordinate span between
// them.
func (g *Grid[T]) BucketCount() int {
	return len(g.cells)
}
