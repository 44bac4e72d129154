package usecase

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"github.com/saveenstha/repopulse/internal/domain"
)

const (
	defaultTopContributors = 10
	defaultForecastPeriods = 30
	defaultTrendDays       = 30

	// syntheticStarStep is the assumed stars-per-day slope used to
	// backfill a trend when no real star events are available.
	syntheticStarStep = 10
)

// weekdayNames indexes heatmap rows, Monday first.
var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// resolutionLabels are the fixed issue-resolution buckets, fastest first.
var resolutionLabels = [4]string{"< 1 day", "1-3 days", "3-7 days", "> 7 days"}

// Analyzer turns a repository snapshot into a full report. It owns the
// display-oriented parameters (how many contributors to rank, how far to
// forecast) so that every presentation surface renders the same numbers.
type Analyzer struct {
	logger    logrus.FieldLogger
	topK      int
	periods   int
	trendDays int
	now       func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTopContributors sets how many contributors the report ranks.
// Default is 10.
func WithTopContributors(k int) Option {
	return func(a *Analyzer) {
		if k > 0 {
			a.topK = k
		}
	}
}

// WithForecastPeriods sets the forecast horizon in days. Default is 30.
func WithForecastPeriods(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.periods = n
		}
	}
}

// NewAnalyzer creates an Analyzer with the given logger and options.
func NewAnalyzer(logger logrus.FieldLogger, opts ...Option) *Analyzer {
	a := &Analyzer{
		logger:    logger,
		topK:      defaultTopContributors,
		periods:   defaultForecastPeriods,
		trendDays: defaultTrendDays,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildReport composes the derived metrics for one snapshot. It cannot
// fail: every degenerate input (empty collections, unknown repository)
// produces zero-valued, fully-defined report fields.
func (a *Analyzer) BuildReport(snap *domain.RepoSnapshot) *domain.Report {
	now := a.now()
	a.logger.WithFields(logrus.Fields{
		"repo":     snap.FullName,
		"commits":  len(snap.Commits),
		"prs":      len(snap.PullRequests),
		"issues":   len(snap.Issues),
		"warnings": len(snap.Warnings),
	}).Debug("building report")

	report := &domain.Report{
		Repository: domain.RepositorySummary{
			Owner:       snap.Owner,
			Name:        snap.Name,
			FullName:    snap.FullName,
			Description: snap.Description,
			Language:    snap.Language,
			HTMLURL:     snap.HTMLURL,
			FetchedAt:   snap.FetchedAt,
		},
		GeneratedAt: now,
		Velocity:    velocityAt(now, snap.Commits, snap.PullRequests),
		Issues:      issueSplit(snap.Issues),
		Contributors: domain.ContributorSummary{
			Total: len(snap.Contributors),
			Top:   TopContributors(snap.Contributors, a.topK),
		},
		Engagement: domain.Engagement{
			Stars:      snap.Stars,
			Forks:      snap.Forks,
			Watchers:   snap.Watchers,
			OpenIssues: snap.OpenIssues,
		},
		StarTrend:  a.starTrendAt(now, snap),
		Resolution: resolutionStats(snap.Issues),
		Activity:   commitActivity(snap.Commits),
	}
	if len(snap.Warnings) > 0 {
		report.Warnings = append([]string(nil), snap.Warnings...)
	}
	return report
}

func issueSplit(issues []domain.IssueRecord) domain.IssueSummary {
	var s domain.IssueSummary
	for _, issue := range issues {
		s.Total++
		if issue.State == domain.StateOpen {
			s.Open++
		} else {
			s.Closed++
		}
	}
	return s
}

// starTrendAt builds the trailing daily cumulative star series and its
// forecast. With real star events the series is reconstructed backwards
// from the current total; otherwise it is backfilled with a constant
// slope and flagged as synthetic.
func (a *Analyzer) starTrendAt(now time.Time, snap *domain.RepoSnapshot) domain.StarTrend {
	today := dayStart(now)
	history := make([]domain.TrendPoint, a.trendDays)
	for i := range history {
		history[i].Date = today.AddDate(0, 0, i-(a.trendDays-1))
	}

	synthetic := !snap.HasStarHistory
	if synthetic {
		for i := range history {
			v := snap.Stars - (a.trendDays-1-i)*syntheticStarStep
			if v < 0 {
				v = 0
			}
			history[i].Stars = float64(v)
		}
	} else {
		// Count events per window day, then walk backwards from the
		// current total so the series ends at today's star count.
		added := make([]int, a.trendDays)
		for _, t := range snap.StarEvents {
			offset := int(today.Sub(dayStart(t)) / (24 * time.Hour))
			if offset < 0 || offset >= a.trendDays {
				continue
			}
			added[a.trendDays-1-offset]++
		}
		running := float64(snap.Stars)
		for i := a.trendDays - 1; i >= 0; i-- {
			if running < 0 {
				running = 0
			}
			history[i].Stars = running
			running -= float64(added[i])
		}
	}

	values := make([]float64, len(history))
	for i, p := range history {
		values[i] = p.Stars
	}
	predicted := Forecast(values, a.periods)

	trend := domain.StarTrend{
		History:   history,
		Forecast:  make([]domain.TrendPoint, len(predicted)),
		Synthetic: synthetic,
	}
	for i, v := range predicted {
		trend.Forecast[i] = domain.TrendPoint{
			Date:  today.AddDate(0, 0, i+1),
			Stars: v,
		}
	}
	if n := len(predicted); n > 0 {
		trend.PredictedStars = int(math.Round(predicted[n-1]))
		if trend.PredictedStars < 0 {
			trend.PredictedStars = 0
		}
	}
	return trend
}

// resolutionStats buckets closed issues by time-to-close and computes the
// median resolution in hours. Issues with missing or inconsistent
// timestamps are skipped; an input with no resolved issues yields zero
// counts and a zero median.
func resolutionStats(issues []domain.IssueRecord) domain.IssueResolution {
	res := domain.IssueResolution{
		Buckets: make([]domain.ResolutionBucket, len(resolutionLabels)),
	}
	for i, label := range resolutionLabels {
		res.Buckets[i].Label = label
	}

	var hours stats.Float64Data
	for _, issue := range issues {
		if issue.ClosedAt == nil || issue.CreatedAt.IsZero() {
			continue
		}
		d := issue.ClosedAt.Sub(issue.CreatedAt)
		if d < 0 {
			continue
		}
		switch {
		case d < 24*time.Hour:
			res.Buckets[0].Count++
		case d < 72*time.Hour:
			res.Buckets[1].Count++
		case d < 7*24*time.Hour:
			res.Buckets[2].Count++
		default:
			res.Buckets[3].Count++
		}
		res.Resolved++
		hours = append(hours, d.Hours())
	}

	if median, err := stats.Median(hours); err == nil {
		res.MedianHours = median
	}
	return res
}

// commitActivity buckets commit author dates into a weekday x 3-hour-slot
// heatmap, UTC, Monday first.
func commitActivity(commits []domain.CommitRecord) []domain.WeekdayActivity {
	activity := make([]domain.WeekdayActivity, len(weekdayNames))
	for i, day := range weekdayNames {
		activity[i] = domain.WeekdayActivity{Day: day, Slots: make([]int, 8)}
	}
	for _, c := range commits {
		if c.AuthorDate.IsZero() {
			continue
		}
		t := c.AuthorDate.UTC()
		row := (int(t.Weekday()) + 6) % 7 // Monday first
		activity[row].Slots[t.Hour()/3]++
	}
	return activity
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
