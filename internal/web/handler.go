// Package web serves the analytics dashboard and its JSON API.
package web

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/saveenstha/repopulse/internal/domain"
	"github.com/saveenstha/repopulse/internal/gateway"
	"github.com/saveenstha/repopulse/internal/usecase"
)

// Handler wires the fetcher and analyzer to the HTTP surface.
type Handler struct {
	fetcher  gateway.Fetcher
	analyzer *usecase.Analyzer
	logger   logrus.FieldLogger
}

// NewHandler creates a Handler.
func NewHandler(fetcher gateway.Fetcher, analyzer *usecase.Analyzer, logger logrus.FieldLogger) *Handler {
	return &Handler{fetcher: fetcher, analyzer: analyzer, logger: logger}
}

// Register installs the routes and templates on the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.SetHTMLTemplate(pageTemplates())
	r.GET("/", h.index)
	r.GET("/dashboard", h.dashboard)
	r.GET("/api/report", h.reportJSON)
	r.GET("/health", h.health)
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{})
}

func (h *Handler) dashboard(c *gin.Context) {
	owner := strings.TrimSpace(c.Query("owner"))
	repo := strings.TrimSpace(c.Query("repo"))
	if owner == "" || repo == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	report, err := h.buildReport(c.Request.Context(), owner, repo)
	if err != nil {
		h.logger.WithError(err).WithField("repo", owner+"/"+repo).Error("report build failed")
		c.HTML(http.StatusBadGateway, "error", gin.H{
			"Message": "GitHub could not be reached. Try again in a moment.",
		})
		return
	}
	if !report.Found() {
		c.HTML(http.StatusNotFound, "error", gin.H{
			"Message": fmt.Sprintf("Repository %s/%s was not found.", owner, repo),
		})
		return
	}
	c.HTML(http.StatusOK, "dashboard", newDashboardView(report))
}

func (h *Handler) reportJSON(c *gin.Context) {
	owner := strings.TrimSpace(c.Query("owner"))
	repo := strings.TrimSpace(c.Query("repo"))
	if owner == "" || repo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner and repo query parameters are required"})
		return
	}

	report, err := h.buildReport(c.Request.Context(), owner, repo)
	if err != nil {
		h.logger.WithError(err).WithField("repo", owner+"/"+repo).Error("report build failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "github api unavailable"})
		return
	}
	if !report.Found() {
		c.JSON(http.StatusNotFound, gin.H{"error": "repository not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) buildReport(ctx context.Context, owner, repo string) (*domain.Report, error) {
	snap, err := h.fetcher.FetchSnapshot(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return h.analyzer.BuildReport(snap), nil
}

// View models below precompute everything the templates need, keeping
// the templates free of arithmetic.

type contributorBar struct {
	Login         string
	Contributions int
	Percent       int
}

type trendRow struct {
	Date     string
	Stars    int
	Forecast bool
}

type heatCell struct {
	Count int
	Level int
}

type heatmapRow struct {
	Day   string
	Cells []heatCell
}

type resolutionRow struct {
	Label   string
	Count   int
	Percent int
}

type dashboardView struct {
	Report      *domain.Report
	Generated   string
	MedianLabel string
	Bars        []contributorBar
	Trend       []trendRow
	Heatmap     []heatmapRow
	SlotLabels  []string
	Resolution  []resolutionRow
}

var slotLabels = []string{"00-03", "03-06", "06-09", "09-12", "12-15", "15-18", "18-21", "21-24"}

func newDashboardView(report *domain.Report) dashboardView {
	return dashboardView{
		Report:      report,
		Generated:   report.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"),
		MedianLabel: medianLabel(report.Resolution),
		Bars:        contributorBars(report.Contributors.Top),
		Trend:       trendRows(report.StarTrend),
		Heatmap:     heatmapRows(report.Activity),
		SlotLabels:  slotLabels,
		Resolution:  resolutionRows(report.Resolution),
	}
}

func contributorBars(top []domain.ContributorRecord) []contributorBar {
	bars := make([]contributorBar, 0, len(top))
	max := 0
	for _, c := range top {
		if c.Contributions > max {
			max = c.Contributions
		}
	}
	for _, c := range top {
		percent := 0
		if max > 0 {
			percent = c.Contributions * 100 / max
		}
		bars = append(bars, contributorBar{
			Login:         c.Login,
			Contributions: c.Contributions,
			Percent:       percent,
		})
	}
	return bars
}

// trendRows samples the daily series weekly so the table stays short,
// always keeping the last point of each segment.
func trendRows(trend domain.StarTrend) []trendRow {
	rows := make([]trendRow, 0, len(trend.History)/7+len(trend.Forecast)/7+2)
	rows = appendSampled(rows, trend.History, false)
	rows = appendSampled(rows, trend.Forecast, true)
	return rows
}

func appendSampled(rows []trendRow, points []domain.TrendPoint, forecast bool) []trendRow {
	n := len(points)
	for i := 0; i < n; i += 7 {
		rows = append(rows, newTrendRow(points[i], forecast))
	}
	if n > 0 && (n-1)%7 != 0 {
		rows = append(rows, newTrendRow(points[n-1], forecast))
	}
	return rows
}

func newTrendRow(p domain.TrendPoint, forecast bool) trendRow {
	stars := int(math.Round(p.Stars))
	if stars < 0 {
		stars = 0
	}
	return trendRow{Date: p.Date.Format("Jan 02"), Stars: stars, Forecast: forecast}
}

func heatmapRows(activity []domain.WeekdayActivity) []heatmapRow {
	max := 0
	for _, day := range activity {
		for _, n := range day.Slots {
			if n > max {
				max = n
			}
		}
	}
	rows := make([]heatmapRow, 0, len(activity))
	for _, day := range activity {
		row := heatmapRow{Day: day.Day, Cells: make([]heatCell, 0, len(day.Slots))}
		for _, n := range day.Slots {
			level := 0
			if n > 0 {
				level = 1 + n*3/max
			}
			row.Cells = append(row.Cells, heatCell{Count: n, Level: level})
		}
		rows = append(rows, row)
	}
	return rows
}

func resolutionRows(res domain.IssueResolution) []resolutionRow {
	rows := make([]resolutionRow, 0, len(res.Buckets))
	for _, b := range res.Buckets {
		percent := 0
		if res.Resolved > 0 {
			percent = b.Count * 100 / res.Resolved
		}
		rows = append(rows, resolutionRow{Label: b.Label, Count: b.Count, Percent: percent})
	}
	return rows
}

func medianLabel(res domain.IssueResolution) string {
	if res.Resolved == 0 {
		return "n/a"
	}
	if res.MedianHours < 48 {
		return fmt.Sprintf("%.1f hours", res.MedianHours)
	}
	return fmt.Sprintf("%.1f days", res.MedianHours/24)
}
