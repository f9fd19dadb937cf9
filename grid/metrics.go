package grid

import (
	"iter"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	gridLabel      = "grid"
	errTypeLabel   = "error_type"
	queryTypeLabel = "query_type"

	queryTypePoint  = "point"
	queryTypeRadius = "radius"
)

var (
	gridInsertedObjects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ahgrid_inserted_objects",
		Help: "The number of objects inserted into the grid.",
	}, []string{
		gridLabel,
	})

	gridInsertErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ahgrid_insert_errors",
		Help: "The errors that occurred while inserting objects.",
	}, []string{
		gridLabel,
		errTypeLabel,
	})

	gridQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ahgrid_queries",
		Help: "The number of queries run against the grid.",
	}, []string{
		gridLabel,
		queryTypeLabel,
	})

	gridQueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ahgrid_query_errors",
		Help: "The errors that occurred while starting queries.",
	}, []string{
		gridLabel,
		queryTypeLabel,
		errTypeLabel,
	})

	gridQueryResults = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ahgrid_query_results",
		Help:    "The number of objects yielded per query.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{
		gridLabel,
		queryTypeLabel,
	})

	gridMaxScale = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ahgrid_max_scale",
		Help: "The largest cell scale in use by any stored object.",
	}, []string{
		gridLabel,
	})
)

// GridWithMetrics decorates index with prometheus instrumentation. The name
// label distinguishes multiple grids within one process.
func GridWithMetrics[T Bounded](index Index[T], name string) Index[T] {
	return &gridWithMetrics[T]{
		index: index,
		name:  name,
	}
}

type gridWithMetrics[T Bounded] struct {
	index Index[T]
	name  string
}

func (g *gridWithMetrics[T]) Insert(obj T) error {
	if err := g.index.Insert(obj); err != nil {
		gridInsertErrors.
			With(prometheus.Labels{
				gridLabel:    g.name,
				errTypeLabel: errors.Type(err),
			}).
			Inc()
		return err
	}

	gridInsertedObjects.
		With(prometheus.Labels{gridLabel: g.name}).
		Inc()
	gridMaxScale.
		With(prometheus.Labels{gridLabel: g.name}).
		Set(float64(g.index.MaxScale()))
	return nil
}

func (g *gridWithMetrics[T]) FindAtPoint(x, y int32) iter.Seq[T] {
	return g.measureResults(queryTypePoint, g.index.FindAtPoint(x, y))
}

func (g *gridWithMetrics[T]) FindInRadius(x, y, radius int32) (iter.Seq[T], error) {
	seq, err := g.index.FindInRadius(x, y, radius)
	if err != nil {
		gridQueryErrors.
			With(prometheus.Labels{
				gridLabel:      g.name,
				queryTypeLabel: queryTypeRadius,
				errTypeLabel:   errors.Type(err),
			}).
			Inc()
		return nil, err
	}
	return g.measureResults(queryTypeRadius, seq), nil
}

func (g *gridWithMetrics[T]) MaxScale() int32 {
	return g.index.MaxScale()
}

func (g *gridWithMetrics[T]) Stats() Stats {
	return g.index.Stats()
}

// measureResults counts each run of the sequence as one query and observes
// the number of objects it yielded, restarts included.
func (g *gridWithMetrics[T]) measureResults(queryType string, seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		gridQueries.
			With(prometheus.Labels{
				gridLabel:      g.name,
				queryTypeLabel: queryType,
			}).
			Inc()

		var results int
		defer func() {
			gridQueryResults.
				With(prometheus.Labels{
					gridLabel:      g.name,
					queryTypeLabel: queryType,
				}).
				Observe(float64(results))
		}()

		for obj := range seq {
			results++
			if !yield(obj) {
				return
			}
		}
	}
}
