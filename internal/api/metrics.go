package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scoresComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vitality_scores_computed_total",
		Help: "Number of vitality index scores computed.",
	})
	scoreDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vitality_score_duration_seconds",
		Help:    "Time spent computing one vitality index score.",
		Buckets: prometheus.DefBuckets,
	})
)
