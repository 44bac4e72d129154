package usecase

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saveenstha/repopulse/internal/domain"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestComputeVelocity(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-week)

	testCases := []struct {
		name    string
		commits []domain.CommitRecord
		prs     []domain.PullRequestRecord
		want    domain.VelocityMetrics
	}{
		{
			name: "no activity yields exact zeroes",
			want: domain.VelocityMetrics{},
		},
		{
			name: "commits inside and outside the window",
			commits: []domain.CommitRecord{
				{SHA: "a", AuthorDate: now.Add(-1 * time.Hour)},
				{SHA: "b", AuthorDate: now.Add(-6 * 24 * time.Hour)},
				{SHA: "c", AuthorDate: now.Add(-8 * 24 * time.Hour)},
			},
			want: domain.VelocityMetrics{CommitsLastWeek: 2},
		},
		{
			name: "commit exactly at the cutoff is excluded",
			commits: []domain.CommitRecord{
				{SHA: "a", AuthorDate: cutoff},
				{SHA: "b", AuthorDate: cutoff.Add(time.Nanosecond)},
			},
			want: domain.VelocityMetrics{CommitsLastWeek: 1},
		},
		{
			name: "missing commit timestamps are tallied, not counted",
			commits: []domain.CommitRecord{
				{SHA: "a"},
				{SHA: "b", AuthorDate: now.Add(-2 * time.Hour)},
			},
			want: domain.VelocityMetrics{CommitsLastWeek: 1, SkippedRecords: 1},
		},
		{
			name: "pull requests split into totals, merges and recent",
			prs: []domain.PullRequestRecord{
				{Number: 1, CreatedAt: now.Add(-10 * 24 * time.Hour), MergedAt: timePtr(now.Add(-9 * 24 * time.Hour))},
				{Number: 2, CreatedAt: now.Add(-2 * 24 * time.Hour)},
				{Number: 3, CreatedAt: now.Add(-1 * 24 * time.Hour)},
				{Number: 4, CreatedAt: now.Add(-20 * 24 * time.Hour)},
			},
			want: domain.VelocityMetrics{
				PullRequestsLastWeek: 2,
				TotalPullRequests:    4,
				MergedPullRequests:   1,
				MergeRatePercent:     25,
			},
		},
		{
			name: "merged count ignores the weekly window",
			prs: []domain.PullRequestRecord{
				{Number: 1, CreatedAt: now.Add(-60 * 24 * time.Hour), MergedAt: timePtr(now.Add(-50 * 24 * time.Hour))},
			},
			want: domain.VelocityMetrics{
				TotalPullRequests:  1,
				MergedPullRequests: 1,
				MergeRatePercent:   100,
			},
		},
		{
			name: "pull request without a creation date still counts toward the merge rate",
			prs: []domain.PullRequestRecord{
				{Number: 1, MergedAt: timePtr(now.Add(-time.Hour))},
				{Number: 2, CreatedAt: now.Add(-time.Hour)},
			},
			want: domain.VelocityMetrics{
				PullRequestsLastWeek: 1,
				TotalPullRequests:    2,
				MergedPullRequests:   1,
				MergeRatePercent:     50,
				SkippedRecords:       1,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := velocityAt(now, tc.commits, tc.prs)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputeVelocityAgainstWallClock(t *testing.T) {
	// Wide margins keep this independent of the test's own runtime.
	got := ComputeVelocity(
		[]domain.CommitRecord{
			{SHA: "recent", AuthorDate: time.Now().Add(-1 * time.Hour)},
			{SHA: "old", AuthorDate: time.Now().Add(-30 * 24 * time.Hour)},
		},
		nil,
	)

	assert.Equal(t, 1, got.CommitsLastWeek)
	assert.Zero(t, got.SkippedRecords)
}

func TestForecast(t *testing.T) {
	testCases := []struct {
		name    string
		history []float64
		periods int
		want    []float64
	}{
		{
			name:    "empty history returned unchanged",
			history: []float64{},
			periods: 10,
			want:    []float64{},
		},
		{
			name:    "single observation returned unchanged",
			history: []float64{5},
			periods: 10,
			want:    []float64{5},
		},
		{
			name:    "zero periods",
			history: []float64{1, 2},
			periods: 0,
			want:    []float64{},
		},
		{
			name:    "perfect linear growth continues the line",
			history: []float64{1, 2, 3, 4, 5},
			periods: 5,
			want:    []float64{6, 7, 8, 9, 10},
		},
		{
			name:    "flat history stays flat",
			history: []float64{3, 3, 3},
			periods: 2,
			want:    []float64{3, 3},
		},
		{
			name:    "declining history may go below zero",
			history: []float64{10, 5, 0},
			periods: 2,
			want:    []float64{-5, -10},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Forecast(tc.history, tc.periods)
			require.Len(t, got, len(tc.want))
			for i := range tc.want {
				assert.InDelta(t, tc.want[i], got[i], 1e-9, "index %d", i)
			}
		})
	}
}

func TestForecastDeterminism(t *testing.T) {
	history := []float64{2.5, 3.7, 9.1, 4.2, 8.8}

	first := Forecast(history, 7)
	second := Forecast(history, 7)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, math.Float64bits(first[i]), math.Float64bits(second[i]),
			"forecast must be bit-for-bit reproducible at index %d", i)
	}
}

func TestForecastDoesNotModifyInput(t *testing.T) {
	history := []float64{4, 2, 9}
	original := []float64{4, 2, 9}

	Forecast(history, 3)

	assert.Equal(t, original, history)
}

func TestTopContributors(t *testing.T) {
	contributors := []domain.ContributorRecord{
		{Login: "alice", Contributions: 5},
		{Login: "bob", Contributions: 9},
		{Login: "carol", Contributions: 1},
		{Login: "dave", Contributions: 7},
	}

	testCases := []struct {
		name  string
		input []domain.ContributorRecord
		k     int
		want  []string
	}{
		{
			name:  "ranks by contributions and truncates",
			input: contributors,
			k:     2,
			want:  []string{"bob", "dave"},
		},
		{
			name:  "k larger than the list returns everyone ranked",
			input: contributors,
			k:     10,
			want:  []string{"bob", "dave", "alice", "carol"},
		},
		{
			name:  "zero k returns nothing",
			input: contributors,
			k:     0,
			want:  []string{},
		},
		{
			name:  "negative k returns nothing",
			input: contributors,
			k:     -3,
			want:  []string{},
		},
		{
			name: "ties keep their original order",
			input: []domain.ContributorRecord{
				{Login: "first", Contributions: 5},
				{Login: "second", Contributions: 5},
				{Login: "third", Contributions: 1},
			},
			k:    2,
			want: []string{"first", "second"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TopContributors(tc.input, tc.k)
			logins := make([]string, 0, len(got))
			for _, c := range got {
				logins = append(logins, c.Login)
			}
			assert.Equal(t, tc.want, logins)
		})
	}
}

func TestTopContributorsDoesNotModifyInput(t *testing.T) {
	input := []domain.ContributorRecord{
		{Login: "alice", Contributions: 1},
		{Login: "bob", Contributions: 9},
	}

	TopContributors(input, 1)

	assert.Equal(t, "alice", input[0].Login, "input order must be preserved")
	assert.Equal(t, "bob", input[1].Login)
}
