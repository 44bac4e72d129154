// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/saveenstha/repopulse/internal/domain"
)

const (
	// perPage keeps each REST fetch to a single page of the most
	// recent records, which is the window every metric is scoped to.
	perPage = 100

	// starEventWindow bounds how far back stargazer events are pulled.
	starEventWindow = 30 * 24 * time.Hour

	// maxStarPages caps stargazer pagination for very active repos.
	maxStarPages = 4
)

// ErrUnavailable marks transport-level failures: the GitHub API could
// not be reached at all, as opposed to answering with an error status.
var ErrUnavailable = errors.New("github api unavailable")

// Fetcher defines the behavior of a gateway that assembles a repository
// snapshot from GitHub.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, owner, repo string) (*domain.RepoSnapshot, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        logrus.FieldLogger
}

// NewGitHubGateway builds a gateway whose HTTP transport waits out
// secondary rate limits. With an empty token the REST client runs
// unauthenticated and the GraphQL client is disabled, since the
// stargazer API rejects anonymous calls.
func NewGitHubGateway(token string, logger logrus.FieldLogger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	g := &GitHubGateway{logger: logger}
	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Base:   rateLimitWaiter,
				Source: ts,
			},
		}
		g.graphqlClient = githubv4.NewClient(httpClient)
	}
	g.restClient = github.NewClient(httpClient)
	return g, nil
}

// stargazersQuery pages through star events, newest first, so the fetch
// can stop as soon as it leaves the trend window.
type stargazersQuery struct {
	Repository struct {
		Stargazers struct {
			PageInfo struct {
				HasNextPage bool
				EndCursor   githubv4.String
			}
			Edges []struct {
				StarredAt githubv4.DateTime
			}
		} `graphql:"stargazers(first: 100, orderBy: {field: STARRED_AT, direction: DESC}, after: $cursor)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// FetchSnapshot assembles one repository snapshot. A repository that
// does not exist yields an empty snapshot rather than an error; a
// resource the API refuses to serve yields an empty collection plus a
// warning. Only failures to reach the API at all are returned as errors,
// wrapped with ErrUnavailable.
func (g *GitHubGateway) FetchSnapshot(ctx context.Context, owner, repo string) (*domain.RepoSnapshot, error) {
	snap := &domain.RepoSnapshot{
		Owner:     owner,
		Name:      repo,
		FetchedAt: time.Now().UTC(),
	}
	logger := g.logger.WithField("repo", owner+"/"+repo)
	logger.Info("fetching repository snapshot")

	meta, _, err := g.restClient.Repositories.Get(ctx, owner, repo)
	if err != nil {
		if isNotFound(err) {
			logger.Warn("repository not found")
			return snap, nil
		}
		warning, ferr := classify("repository metadata", err)
		if ferr != nil {
			return nil, ferr
		}
		snap.Warnings = append(snap.Warnings, warning)
	} else {
		snap.FullName = meta.GetFullName()
		snap.Description = meta.GetDescription()
		snap.Language = meta.GetLanguage()
		snap.HTMLURL = meta.GetHTMLURL()
		snap.Stars = meta.GetStargazersCount()
		snap.Forks = meta.GetForksCount()
		snap.Watchers = meta.GetSubscribersCount()
		snap.OpenIssues = meta.GetOpenIssuesCount()
	}

	var (
		contributors []domain.ContributorRecord
		contribWarn  string
		issues       []domain.IssueRecord
		issueWarn    string
		pulls        []domain.PullRequestRecord
		pullWarn     string
		commits      []domain.CommitRecord
		commitWarn   string
		starEvents   []time.Time
		starsOK      bool
		starWarn     string
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		contributors, contribWarn, err = g.fetchContributors(gctx, owner, repo)
		return err
	})
	eg.Go(func() (err error) {
		issues, issueWarn, err = g.fetchIssues(gctx, owner, repo)
		return err
	})
	eg.Go(func() (err error) {
		pulls, pullWarn, err = g.fetchPullRequests(gctx, owner, repo)
		return err
	})
	eg.Go(func() (err error) {
		commits, commitWarn, err = g.fetchCommits(gctx, owner, repo)
		return err
	})
	eg.Go(func() error {
		starEvents, starsOK, starWarn = g.fetchStarEvents(gctx, owner, repo)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	snap.Contributors = contributors
	snap.Issues = issues
	snap.PullRequests = pulls
	snap.Commits = commits
	snap.StarEvents = starEvents
	snap.HasStarHistory = starsOK
	for _, w := range []string{contribWarn, issueWarn, pullWarn, commitWarn, starWarn} {
		if w != "" {
			snap.Warnings = append(snap.Warnings, w)
		}
	}

	logger.WithFields(logrus.Fields{
		"contributors": len(snap.Contributors),
		"issues":       len(snap.Issues),
		"pulls":        len(snap.PullRequests),
		"commits":      len(snap.Commits),
		"star_events":  len(snap.StarEvents),
		"warnings":     len(snap.Warnings),
	}).Info("snapshot assembled")
	return snap, nil
}

func (g *GitHubGateway) fetchContributors(ctx context.Context, owner, repo string) ([]domain.ContributorRecord, string, error) {
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	users, _, err := g.restClient.Repositories.ListContributors(ctx, owner, repo, opts)
	if err != nil {
		warning, ferr := classify("contributors", err)
		return nil, warning, ferr
	}
	records := make([]domain.ContributorRecord, 0, len(users))
	for _, u := range users {
		records = append(records, domain.ContributorRecord{
			Login:         u.GetLogin(),
			Contributions: u.GetContributions(),
		})
	}
	return records, "", nil
}

// fetchIssues lists the most recent issues of both states. The issues
// endpoint also returns pull requests, which are dropped here so that
// issue metrics never double-count PRs.
func (g *GitHubGateway) fetchIssues(ctx context.Context, owner, repo string) ([]domain.IssueRecord, string, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	issues, _, err := g.restClient.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		warning, ferr := classify("issues", err)
		return nil, warning, ferr
	}
	records := make([]domain.IssueRecord, 0, len(issues))
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		rec := domain.IssueRecord{
			Number:    issue.GetNumber(),
			State:     issue.GetState(),
			CreatedAt: issue.GetCreatedAt().Time,
		}
		if issue.ClosedAt != nil {
			t := issue.ClosedAt.Time
			rec.ClosedAt = &t
		}
		records = append(records, rec)
	}
	return records, "", nil
}

func (g *GitHubGateway) fetchPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequestRecord, string, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	pulls, _, err := g.restClient.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		warning, ferr := classify("pull requests", err)
		return nil, warning, ferr
	}
	records := make([]domain.PullRequestRecord, 0, len(pulls))
	for _, pr := range pulls {
		rec := domain.PullRequestRecord{
			Number:    pr.GetNumber(),
			State:     pr.GetState(),
			CreatedAt: pr.GetCreatedAt().Time,
		}
		if pr.MergedAt != nil {
			t := pr.MergedAt.Time
			rec.MergedAt = &t
		}
		records = append(records, rec)
	}
	return records, "", nil
}

func (g *GitHubGateway) fetchCommits(ctx context.Context, owner, repo string) ([]domain.CommitRecord, string, error) {
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	commits, _, err := g.restClient.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		warning, ferr := classify("commits", err)
		return nil, warning, ferr
	}
	records := make([]domain.CommitRecord, 0, len(commits))
	for _, c := range commits {
		author := c.GetAuthor().GetLogin()
		if author == "" {
			author = c.GetCommit().GetAuthor().GetName()
		}
		records = append(records, domain.CommitRecord{
			SHA:        c.GetSHA(),
			Author:     author,
			AuthorDate: c.GetCommit().GetAuthor().GetDate().Time,
		})
	}
	return records, "", nil
}

// fetchStarEvents pulls star timestamps inside the trend window via
// GraphQL. Star history is an enrichment: any failure here degrades to
// a warning, never to a snapshot error.
func (g *GitHubGateway) fetchStarEvents(ctx context.Context, owner, repo string) ([]time.Time, bool, string) {
	if g.graphqlClient == nil {
		return nil, false, "star history requires an API token; the star trend is estimated"
	}

	windowStart := time.Now().UTC().Add(-starEventWindow)
	variables := map[string]interface{}{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"cursor": (*githubv4.String)(nil),
	}

	var events []time.Time
	warning := ""
	for page := 0; ; page++ {
		if page == maxStarPages {
			warning = "star history truncated to the most recent events; the star trend may undercount older days"
			break
		}
		var q stargazersQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			g.logger.WithError(err).Warn("stargazer query failed")
			return nil, false, "star history unavailable; the star trend is estimated"
		}
		leftWindow := false
		for _, edge := range q.Repository.Stargazers.Edges {
			if edge.StarredAt.Time.Before(windowStart) {
				leftWindow = true
				break
			}
			events = append(events, edge.StarredAt.Time)
		}
		if leftWindow || !q.Repository.Stargazers.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Repository.Stargazers.PageInfo.EndCursor)
	}

	// Newest-first from the API; callers expect chronological order.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, true, warning
}

// classify splits fetch failures along the error taxonomy: an answer
// from the API (error status, rate limiting) becomes a warning string,
// anything else is a transport failure wrapped with ErrUnavailable.
func classify(resource string, err error) (string, error) {
	var (
		apiErr   *github.ErrorResponse
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
	)
	switch {
	case errors.As(err, &rateErr):
		return fmt.Sprintf("%s: GitHub rate limit exceeded", resource), nil
	case errors.As(err, &abuseErr):
		return fmt.Sprintf("%s: GitHub secondary rate limit hit", resource), nil
	case errors.As(err, &apiErr):
		return fmt.Sprintf("%s: GitHub API returned %d", resource, apiErr.Response.StatusCode), nil
	default:
		return "", fmt.Errorf("fetch %s: %w: %w", resource, ErrUnavailable, err)
	}
}

func isNotFound(err error) bool {
	var apiErr *github.ErrorResponse
	return errors.As(err, &apiErr) && apiErr.Response.StatusCode == http.StatusNotFound
}
