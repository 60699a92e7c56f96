package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	votesToggledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "votes_toggled_total",
			Help: "Vote toggles by subject kind and resulting status",
		},
		[]string{"subject", "status"},
	)

	contentCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_created_total",
			Help: "Posts and comments created",
		},
		[]string{"kind"},
	)

	leaderboardComputeSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leaderboard_compute_duration_seconds",
			Help:    "Time spent recomputing the leaderboard",
			Buckets: prometheus.DefBuckets,
		},
	)

	commentTreeDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comment_tree_dropped_total",
			Help: "Comments left out of an assembled tree because they were orphaned or on a cycle",
		},
	)
)
