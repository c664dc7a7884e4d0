// Package metrics exposes Prometheus instrumentation for the tile build
// pipeline: stage durations and output sizes, so a batch build job can be
// watched the same way a long-running service would be.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "navgen_build_stage_duration_seconds",
			Help:    "Duration of each tile build stage",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	TilesBuiltTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navgen_tiles_built_total",
			Help: "Total number of tile builds, by result",
		},
		[]string{"result"}, // result: ok, error
	)

	ContoursPerTile = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "navgen_contours_per_tile",
			Help:    "Number of region contours traced per tile",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	PolysPerTile = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "navgen_polys_per_tile",
			Help:    "Number of polygons in the assembled mesh per tile",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		},
	)

	TileDataBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "navgen_tile_data_bytes",
			Help:    "Size in bytes of the serialized tile payload",
			Buckets: prometheus.ExponentialBuckets(256, 2, 12),
		},
	)
)
