// Package domain contains the core data structures for the application:
// the raw repository snapshot records produced by the gateway and the
// derived metric types computed from them.
package domain

import "time"

// RepoSnapshot is an immutable, time-stamped bundle of repository-related
// records as of fetch time. The gateway produces it; everything downstream
// only reads it and derives new values.
type RepoSnapshot struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	HTMLURL     string `json:"html_url"`

	Stars      int `json:"stars"`
	Forks      int `json:"forks"`
	Watchers   int `json:"watchers"`
	OpenIssues int `json:"open_issues"`

	FetchedAt time.Time `json:"fetched_at"`

	Contributors []ContributorRecord `json:"contributors"`
	Issues       []IssueRecord       `json:"issues"`
	PullRequests []PullRequestRecord `json:"pull_requests"`
	Commits      []CommitRecord      `json:"commits"`

	// StarEvents holds the instants at which the most recent stargazers
	// starred the repository, oldest first. Empty when the history could
	// not be fetched (no token, API failure); never required for the
	// snapshot to be usable.
	StarEvents []time.Time `json:"star_events,omitempty"`

	// HasStarHistory distinguishes an empty StarEvents that means "no
	// stars in the window" from one that means "history unavailable".
	HasStarHistory bool `json:"has_star_history"`

	// Warnings accumulates per-resource fetch problems. A non-empty list
	// means the snapshot is partial, not that it is unusable.
	Warnings []string `json:"warnings,omitempty"`
}

// Found reports whether the repository metadata was actually retrieved.
// A snapshot with no metadata (unknown repository, all sub-fetches
// degraded) still carries well-defined zero values everywhere.
func (s *RepoSnapshot) Found() bool {
	return s.FullName != ""
}

// ContributorRecord is a single contributor as reported by the API.
// Collection order is the API's order; ranking is computed, not assumed.
type ContributorRecord struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// IssueRecord is a single issue. ClosedAt is nil while the issue is open.
type IssueRecord struct {
	Number    int        `json:"number"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// PullRequestRecord is a single pull request. A non-nil MergedAt means the
// pull request was merged; nil means unmerged or still open.
type PullRequestRecord struct {
	Number    int        `json:"number"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
}

// Merged reports whether the pull request reached a merged state.
func (p PullRequestRecord) Merged() bool {
	return p.MergedAt != nil
}

// CommitRecord is a single commit, kept only for recency counting and the
// activity heatmap. AuthorDate is the zero time when the API omitted it;
// such records are skipped by time-window computations, never fatal.
type CommitRecord struct {
	SHA        string    `json:"sha"`
	Author     string    `json:"author"`
	AuthorDate time.Time `json:"author_date"`
}

// Issue and pull request states as reported by the API.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)
