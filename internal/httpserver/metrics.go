package httpserver

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

var (
	// feedbackTotal counts guesses scored against a target.
	feedbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solver_feedback_total",
		Help: "Total guesses scored against a target",
	})

	// mergeTotal counts constraint merges by result (ok, conflict, invalid).
	mergeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_merge_total",
		Help: "Total constraint merges by result",
	}, []string{"result"})

	// conflictTotal counts merge conflicts by kind.
	conflictTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_conflict_total",
		Help: "Total constraint conflicts by kind",
	}, []string{"kind"})

	// remainingCandidates tracks how many candidates survive a filter.
	remainingCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_remaining_candidates",
		Help:    "Candidates remaining after filtering",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14), // 1 to 8192
	})

	// sessionsCreated counts new sessions by mode.
	sessionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_sessions_created_total",
		Help: "Total sessions created by mode",
	}, []string{"mode"})
)

// observeMergeError records a failed merge.
func observeMergeError(err error) {
	var ce *game.ConflictError
	if errors.As(err, &ce) {
		mergeTotal.WithLabelValues("conflict").Inc()
		conflictTotal.WithLabelValues(string(ce.Kind)).Inc()
		return
	}
	mergeTotal.WithLabelValues("invalid").Inc()
}
