// Package metrics exposes Prometheus instrumentation for the movie
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JobsCreated counts movie jobs accepted for production.
	JobsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "director_jobs_created_total",
		Help: "Number of movie jobs created.",
	})

	// JobsCompleted counts jobs by terminal status.
	JobsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "director_jobs_completed_total",
		Help: "Number of movie jobs reaching a terminal status.",
	}, []string{"status"})

	// ScenesRendered counts scenes that finished rendering.
	ScenesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "director_scenes_rendered_total",
		Help: "Number of scenes rendered successfully.",
	})

	// ScenesFailed counts scenes that exhausted their attempts.
	ScenesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "director_scenes_failed_total",
		Help: "Number of scenes that failed to render.",
	})

	// RenderDuration observes wall-clock time per scene render,
	// submission through local materialization.
	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "director_scene_render_duration_seconds",
		Help:    "Time to render a single scene.",
		Buckets: prometheus.ExponentialBuckets(5, 2, 10),
	})

	// StitchDuration observes wall-clock time for final assembly.
	StitchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "director_stitch_duration_seconds",
		Help:    "Time to stitch the final movie.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})
)
