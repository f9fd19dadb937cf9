package grid

import "iter"

// Index is the insert/query surface of the grid. GridWithMetrics decorates
// any implementation with prometheus instrumentation.
type Index[T Bounded] interface {
	Insert(obj T) error
	FindAtPoint(x, y int32) iter.Seq[T]
	FindInRadius(x, y, radius int32) (iter.Seq[T], error)
	MaxScale() int32
	Stats() Stats
}

// Remover is the removal extension point. The core grid does not implement
// it: removing an object means scanning its owning bucket, which is O(bucket
// size).
type Remover[T Bounded] interface {
	Remove(obj T) bool
}

// Updater is the in-place update extension point, equivalent to a remove
// followed by a re-insert since changing an object's bounds may change its
// cell.
type Updater[T Bounded] interface {
	Update(obj T) error
}

// Stats is a point-in-time occupancy snapshot of a grid.
type Stats struct {
	Objects  int          `json:"objects"`
	Buckets  int          `json:"buckets"`
	MinScale int32        `json:"min_scale"`
	MaxScale int32        `json:"max_scale"`
	Layers   []LayerStats `json:"layers,omitempty"`
}

// LayerStats describes one layer, the set of materialized cells sharing a
// scale. Layers with no cells are omitted.
type LayerStats struct {
	Scale   int32 `json:"scale"`
	Buckets int   `json:"buckets"`
	Objects int   `json:"objects"`
}

// Stats walks every materialized cell, it is meant for debugging and
// reporting, not for per-operation use.
func (g *Grid[T]) Stats() Stats {
	byScale := make(map[int32]*LayerStats)
	for cell, objs := range g.cells {
		layer := byScale[cell.Scale]
		if layer == nil {
			layer = &LayerStats{Scale: cell.Scale}
			byScale[cell.Scale] = layer
		}
		layer.Buckets++
		layer.Objects += len(objs)
	}

	var layers []LayerStats
	for scale := int32(1); scale > 0 && scale <= g.maxScale; scale *= 2 {
		if layer, ok := byScale[scale]; ok {
			layers = append(layers, *layer)
		}
	}

	return Stats{
		Objects:  g.count,
		Buckets:  len(g.cells),
		MinScale: g.minScale,
		MaxScale: g.maxScale,
		Layers:   layers,
	}
}
