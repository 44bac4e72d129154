// Package usecase contains the business logic of the application: the pure
// metric computations over a repository snapshot and the analyzer that
// composes them into a full report.
package usecase

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/saveenstha/repopulse/internal/domain"
)

const week = 7 * 24 * time.Hour

// ComputeVelocity derives the weekly activity summary from the snapshot's
// commits and pull requests, relative to the current wall-clock instant.
// It is a pure function of its inputs and the time of the call: records
// with a missing timestamp are excluded from the weekly counts and tallied
// in SkippedRecords, and an empty input yields an all-zero result.
func ComputeVelocity(commits []domain.CommitRecord, prs []domain.PullRequestRecord) domain.VelocityMetrics {
	return velocityAt(time.Now(), commits, prs)
}

func velocityAt(now time.Time, commits []domain.CommitRecord, prs []domain.PullRequestRecord) domain.VelocityMetrics {
	cutoff := now.Add(-week)

	var m domain.VelocityMetrics
	for _, c := range commits {
		if c.AuthorDate.IsZero() {
			m.SkippedRecords++
			continue
		}
		// Strictly newer than the cutoff: a commit exactly at the
		// boundary does not count as last-week activity.
		if c.AuthorDate.After(cutoff) {
			m.CommitsLastWeek++
		}
	}

	for _, pr := range prs {
		m.TotalPullRequests++
		if pr.Merged() {
			m.MergedPullRequests++
		}
		if pr.CreatedAt.IsZero() {
			m.SkippedRecords++
			continue
		}
		if pr.CreatedAt.After(cutoff) {
			m.PullRequestsLastWeek++
		}
	}

	if m.TotalPullRequests > 0 {
		m.MergeRatePercent = float64(m.MergedPullRequests) / float64(m.TotalPullRequests) * 100
	}
	return m
}

// Forecast extrapolates an ordered series of equally spaced observations
// for the given number of future periods using ordinary least squares:
// value = a + b*index with b = cov(index, value)/var(index) and
// a = mean(value) - b*mean(index), evaluated at the indices following the
// history. Fewer than two observations cannot determine a slope, so the
// input values are returned unchanged. The output is whatever the fitted
// line says, negative values included; callers clamp for display if their
// domain requires it. Identical input always yields identical output.
func Forecast(history []float64, periods int) []float64 {
	if len(history) < 2 {
		out := make([]float64, len(history))
		copy(out, history)
		return out
	}
	if periods <= 0 {
		return []float64{}
	}

	xs := make(stats.Float64Data, len(history))
	for i := range xs {
		xs[i] = float64(i)
	}
	ys := stats.Float64Data(history)

	// The series is non-empty and the indices are distinct, so none of
	// these can fail and the variance is non-zero.
	cov, _ := stats.CovariancePopulation(xs, ys)
	varx, _ := stats.PopulationVariance(xs)
	meanX, _ := stats.Mean(xs)
	meanY, _ := stats.Mean(ys)

	b := cov / varx
	a := meanY - b*meanX

	out := make([]float64, periods)
	k := len(history)
	for i := range out {
		out[i] = a + b*float64(k+i)
	}
	return out
}

// TopContributors returns the k most active contributors, ordered by
// contribution count descending. The sort is stable, so contributors with
// equal counts keep their original relative order. The input slice is not
// modified, and the result is min(k, len(contributors)) long.
func TopContributors(contributors []domain.ContributorRecord, k int) []domain.ContributorRecord {
	if k < 0 {
		k = 0
	}
	ranked := make([]domain.ContributorRecord, len(contributors))
	copy(ranked, contributors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Contributions > ranked[j].Contributions
	})
	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
