// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FilesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jifmatch_files_processed_total",
		Help: "Uploaded files processed, including ones that failed to parse.",
	})

	FileErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jifmatch_file_errors_total",
		Help: "Uploaded files that could not be parsed.",
	})

	RowsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jifmatch_rows_processed_total",
		Help: "Input rows run through the matching pipeline.",
	})

	MatchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jifmatch_match_outcomes_total",
		Help: "Match results by method.",
	}, []string{"method"})

	MatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jifmatch_file_match_duration_seconds",
		Help:    "Wall time to match one uploaded file.",
		Buckets: prometheus.DefBuckets,
	})
)
