// Package simulation runs a synthetic, reproducible insert/query workload
// against a grid index. It is used by the gridload command to validate a
// build and to feed the grid metrics under load.
package simulation

import (
	"context"
	"math/rand"
	"time"

	"github.com/aukilabs/ahgrid/featureflag"
	"github.com/aukilabs/ahgrid/grid"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
)

// Entity is a synthetic indexed object, the kind of value a game loop would
// register with the grid.
type Entity struct {
	ID     string `json:"id"`
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
}

func (e Entity) Bounds() (x, y, width, height int32) {
	return e.X, e.Y, e.Width, e.Height
}

// Options configures a workload run. The zero value is usable, missing
// fields fall back to defaults.
type Options struct {
	// The number of objects inserted into the grid.
	ObjectCount int

	// Objects are placed with origins in [-WorldExtent, WorldExtent] on both
	// axes.
	WorldExtent int32

	// Object extents are drawn from [0, MaxObjectSize].
	MaxObjectSize int32

	// The number of point and radius queries to run.
	PointQueries  int
	RadiusQueries int

	// The radius used by radius queries.
	QueryRadius int32

	// Seed for the workload randomness. Two runs with equal options produce
	// identical counts.
	Seed int64

	FeatureFlags featureflag.FeatureFlag
}

func (o Options) normalize() Options {
	if o.ObjectCount <= 0 {
		o.ObjectCount = 10_000
	}
	if o.WorldExtent <= 0 {
		o.WorldExtent = 1_000_000
	}
	if o.MaxObjectSize <= 0 {
		o.MaxObjectSize = 256
	}
	if o.PointQueries < 0 {
		o.PointQueries = 0
	}
	if o.RadiusQueries < 0 {
		o.RadiusQueries = 0
	}
	if o.QueryRadius <= 0 {
		o.QueryRadius = 1000
	}
	return o
}

// Report summarizes one workload run.
type Report struct {
	Inserted       int           `json:"inserted"`
	InsertErrors   int           `json:"insert_errors"`
	InsertDuration time.Duration `json:"insert_duration_ns"`

	PointQueries  int           `json:"point_queries"`
	PointResults  int           `json:"point_results"`
	PointDuration time.Duration `json:"point_duration_ns"`

	RadiusQueries  int           `json:"radius_queries"`
	RadiusResults  int           `json:"radius_results"`
	InRadius       int           `json:"in_radius"`
	RadiusDuration time.Duration `json:"radius_duration_ns"`

	Grid grid.Stats `json:"grid"`
}

// Run executes the workload against index: an insert phase followed by a
// point query phase and a radius query phase. It stops between phases when
// ctx is canceled.
func Run(ctx context.Context, index grid.Index[Entity], opts Options) (Report, error) {
	opts = opts.normalize()
	rng := rand.New(rand.NewSource(opts.Seed))

	var report Report

	logs.WithTag("objects", opts.ObjectCount).
		WithTag("world_extent", opts.WorldExtent).
		WithTag("max_object_size", opts.MaxObjectSize).
		WithTag("seed", opts.Seed).
		Info("inserting objects")

	start := time.Now()
	for i := 0; i < opts.ObjectCount; i++ {
		entity := Entity{
			ID:     uuid.New().String(),
			X:      randomCoord(rng, opts.WorldExtent),
			Y:      randomCoord(rng, opts.WorldExtent),
			Width:  int32(rng.Int63n(int64(opts.MaxObjectSize) + 1)),
			Height: int32(rng.Int63n(int64(opts.MaxObjectSize) + 1)),
		}

		if err := index.Insert(entity); err != nil {
			report.InsertErrors++
			logs.WithTag("entity_id", entity.ID).
				Warn(errors.New("inserting entity failed").Wrap(err))
			continue
		}
		report.Inserted++
	}
	report.InsertDuration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return report, errors.New("workload canceled").Wrap(err)
	}

	opts.FeatureFlags.IfNotSet(featureflag.FlagDisablePointQueries, func() {
		logs.WithTag("queries", opts.PointQueries).Info("running point queries")

		start := time.Now()
		for i := 0; i < opts.PointQueries; i++ {
			x := randomCoord(rng, opts.WorldExtent)
			y := randomCoord(rng, opts.WorldExtent)

			report.PointQueries++
			for range index.FindAtPoint(x, y) {
				report.PointResults++
			}
		}
		report.PointDuration = time.Since(start)
	})

	if err := ctx.Err(); err != nil {
		return report, errors.New("workload canceled").Wrap(err)
	}

	opts.FeatureFlags.IfNotSet(featureflag.FlagDisableRadiusQueries, func() {
		logs.WithTag("queries", opts.RadiusQueries).
			WithTag("radius", opts.QueryRadius).
			Info("running radius queries")

		filter := true
		opts.FeatureFlags.IfSet(featureflag.FlagDisableDistanceFilter, func() {
			filter = false
		})

		start := time.Now()
		for i := 0; i < opts.RadiusQueries; i++ {
			x := randomCoord(rng, opts.WorldExtent)
			y := randomCoord(rng, opts.WorldExtent)

			seq, err := index.FindInRadius(x, y, opts.QueryRadius)
			if err != nil {
				logs.WithTag("x", x).
					WithTag("y", y).
					WithTag("radius", opts.QueryRadius).
					Warn(errors.New("radius query failed").Wrap(err))
				continue
			}

			report.RadiusQueries++
			for entity := range seq {
				report.RadiusResults++
				if filter && inRadius(entity, x, y, opts.QueryRadius) {
					report.InRadius++
				}
			}
		}
		report.RadiusDuration = time.Since(start)
	})

	report.Grid = index.Stats()

	logs.WithTag("inserted", report.Inserted).
		WithTag("buckets", report.Grid.Buckets).
		WithTag("max_scale", report.Grid.MaxScale).
		WithTag("point_results", report.PointResults).
		WithTag("radius_results", report.RadiusResults).
		Info("workload done")

	return report, nil
}

func randomCoord(rng *rand.Rand, extent int32) int32 {
	return int32(rng.Int63n(2*int64(extent)+1) - int64(extent))
}

// inRadius reports whether the entity's rectangle truly intersects the circle
// of the given radius around (x, y). Radius queries return a conservative
// superset, this is the exact post-filter.
func inRadius(e Entity, x, y, radius int32) bool {
	cx := clamp(int64(x), int64(e.X), int64(e.X)+int64(e.Width))
	cy := clamp(int64(y), int64(e.Y), int64(e.Y)+int64(e.Height))

	dx := int64(x) - cx
	dy := int64(y) - cy
	return dx*dx+dy*dy <= int64(radius)*int64(radius)
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
