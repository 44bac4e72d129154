package domain

import "time"

// VelocityMetrics summarizes short-window development activity. It is
// recomputed on every request relative to the instant the computation runs
// and is never persisted.
type VelocityMetrics struct {
	CommitsLastWeek      int     `json:"commits_last_week"`
	PullRequestsLastWeek int     `json:"prs_last_week"`
	TotalPullRequests    int     `json:"total_prs"`
	MergedPullRequests   int     `json:"merged_prs"`
	MergeRatePercent     float64 `json:"pr_merge_rate"`

	// SkippedRecords counts commits or pull requests whose timestamp was
	// missing and which were therefore excluded from the weekly counts.
	SkippedRecords int `json:"skipped_records,omitempty"`
}

// TrendPoint is one daily sample of the star trend.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Stars float64   `json:"stars"`
}

// StarTrend is the historical star series plus its linear extrapolation.
// Forecast values come straight from the model and may dip below zero;
// PredictedStars is the display value, clamped to the domain.
type StarTrend struct {
	History        []TrendPoint `json:"history"`
	Forecast       []TrendPoint `json:"forecast"`
	PredictedStars int          `json:"predicted_stars"`

	// Synthetic marks a history backfilled from the current star total
	// because no real star events were available. Illustrative only.
	Synthetic bool `json:"synthetic"`
}

// IssueSummary is the open/closed split of the fetched issues.
type IssueSummary struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
	Total  int `json:"total"`
}

// ContributorSummary carries the ranked top contributors along with the
// total number of contributors seen in the snapshot.
type ContributorSummary struct {
	Total int                 `json:"total"`
	Top   []ContributorRecord `json:"top"`
}

// Engagement groups the community reach counters. OpenIssues is the
// repository-wide count from the metadata, not the recent-window count.
type Engagement struct {
	Stars      int `json:"stars"`
	Forks      int `json:"forks"`
	Watchers   int `json:"watchers"`
	OpenIssues int `json:"open_issues"`
}

// ResolutionBucket is one slice of the issue-resolution distribution.
type ResolutionBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// IssueResolution describes how quickly closed issues were resolved.
// MedianHours is zero when no issue has been resolved.
type IssueResolution struct {
	Buckets     []ResolutionBucket `json:"buckets"`
	Resolved    int                `json:"resolved"`
	MedianHours float64            `json:"median_hours"`
}

// WeekdayActivity is one heatmap row: commit counts per 3-hour slot (UTC)
// for a single weekday.
type WeekdayActivity struct {
	Day   string `json:"day"`
	Slots []int  `json:"slots"`
}

// RepositorySummary is the identity part of a report.
type RepositorySummary struct {
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	HTMLURL     string    `json:"html_url"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Report is the full derived output handed to the presentation layer:
// everything the dashboard, the CLI and the export render, computed from a
// single snapshot. Every field is well-defined for any input, including an
// all-empty snapshot.
type Report struct {
	Repository   RepositorySummary  `json:"repository"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Velocity     VelocityMetrics    `json:"velocity"`
	Issues       IssueSummary       `json:"issues"`
	Contributors ContributorSummary `json:"contributors"`
	Engagement   Engagement         `json:"engagement"`
	StarTrend    StarTrend          `json:"star_trend"`
	Resolution   IssueResolution    `json:"issue_resolution"`
	Activity     []WeekdayActivity  `json:"commit_activity"`
	Warnings     []string           `json:"warnings,omitempty"`
}

// Found mirrors RepoSnapshot.Found for consumers that only see the report.
func (r *Report) Found() bool {
	return r.Repository.FullName != ""
}
