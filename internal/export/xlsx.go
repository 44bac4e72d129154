// Package export renders reports as Excel workbooks.
package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/saveenstha/repopulse/internal/domain"
)

const (
	sheetSummary      = "Summary"
	sheetContributors = "Contributors"
	sheetStars        = "Star Forecast"
	sheetIssues       = "Issues"
	sheetActivity     = "Commit Activity"
)

// SaveReport writes the report workbook to path.
func SaveReport(report *domain.Report, path string) error {
	f, err := WriteWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteWorkbook builds a workbook with one sheet per dashboard section.
// The caller owns the returned file and must Close it.
func WriteWorkbook(report *domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := writeSummary(f, report, bold); err != nil {
		return nil, err
	}
	if err := writeContributors(f, report, bold); err != nil {
		return nil, err
	}
	if err := writeStarTrend(f, report, bold); err != nil {
		return nil, err
	}
	if err := writeIssues(f, report, bold); err != nil {
		return nil, err
	}
	if err := writeActivity(f, report, bold); err != nil {
		return nil, err
	}

	if idx, err := f.GetSheetIndex(sheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeSummary(f *excelize.File, report *domain.Report, bold int) error {
	rows := [][]interface{}{
		{"Repository", report.Repository.FullName},
		{"Description", report.Repository.Description},
		{"Language", report.Repository.Language},
		{"URL", report.Repository.HTMLURL},
		{"Fetched at", report.Repository.FetchedAt.Format("2006-01-02 15:04 UTC")},
		{"Generated at", report.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC")},
		nil,
		{"Stars", report.Engagement.Stars},
		{"Forks", report.Engagement.Forks},
		{"Watchers", report.Engagement.Watchers},
		{"Open issues", report.Engagement.OpenIssues},
		{"Contributors", report.Contributors.Total},
		nil,
		{"Commits last 7 days", report.Velocity.CommitsLastWeek},
		{"PRs opened last 7 days", report.Velocity.PullRequestsLastWeek},
		{"Recent PRs", report.Velocity.TotalPullRequests},
		{"Merged PRs", report.Velocity.MergedPullRequests},
		{"Merge rate", fmt.Sprintf("%.1f%%", report.Velocity.MergeRatePercent)},
		{"Records with missing timestamps", report.Velocity.SkippedRecords},
		nil,
		{"Projected stars", report.StarTrend.PredictedStars},
	}
	if report.StarTrend.Synthetic {
		rows = append(rows, []interface{}{"Star trend", "estimated (no star history available)"})
	}
	if len(report.Warnings) > 0 {
		rows = append(rows, nil, []interface{}{"Warnings"})
		for _, w := range report.Warnings {
			rows = append(rows, []interface{}{"", w})
		}
	}
	if err := writeRows(f, sheetSummary, rows); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(1, len(rows))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", last, bold); err != nil {
		return err
	}
	return f.SetColWidth(sheetSummary, "A", "A", 28)
}

func writeContributors(f *excelize.File, report *domain.Report, bold int) error {
	if _, err := f.NewSheet(sheetContributors); err != nil {
		return err
	}
	rows := [][]interface{}{{"Login", "Contributions"}}
	for _, c := range report.Contributors.Top {
		rows = append(rows, []interface{}{c.Login, c.Contributions})
	}
	if err := writeRows(f, sheetContributors, rows); err != nil {
		return err
	}
	return f.SetCellStyle(sheetContributors, "A1", "B1", bold)
}

func writeStarTrend(f *excelize.File, report *domain.Report, bold int) error {
	if _, err := f.NewSheet(sheetStars); err != nil {
		return err
	}
	rows := [][]interface{}{{"Date", "Stars", "Kind"}}
	for _, p := range report.StarTrend.History {
		rows = append(rows, []interface{}{p.Date.Format("2006-01-02"), int(math.Round(p.Stars)), "observed"})
	}
	for _, p := range report.StarTrend.Forecast {
		rows = append(rows, []interface{}{p.Date.Format("2006-01-02"), int(math.Round(p.Stars)), "forecast"})
	}
	if err := writeRows(f, sheetStars, rows); err != nil {
		return err
	}
	return f.SetCellStyle(sheetStars, "A1", "C1", bold)
}

func writeIssues(f *excelize.File, report *domain.Report, bold int) error {
	if _, err := f.NewSheet(sheetIssues); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Open (recent window)", report.Issues.Open},
		{"Closed (recent window)", report.Issues.Closed},
		{"Resolved with timestamps", report.Resolution.Resolved},
		{"Median hours to close", report.Resolution.MedianHours},
		nil,
		{"Time to close", "Issues"},
	}
	headerRow := len(rows)
	for _, b := range report.Resolution.Buckets {
		rows = append(rows, []interface{}{b.Label, b.Count})
	}
	if err := writeRows(f, sheetIssues, rows); err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(1, headerRow)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(2, headerRow)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetIssues, start, end, bold); err != nil {
		return err
	}
	return f.SetColWidth(sheetIssues, "A", "A", 28)
}

func writeActivity(f *excelize.File, report *domain.Report, bold int) error {
	if _, err := f.NewSheet(sheetActivity); err != nil {
		return err
	}
	header := []interface{}{"Day", "00-03", "03-06", "06-09", "09-12", "12-15", "15-18", "18-21", "21-24"}
	rows := [][]interface{}{header}
	for _, day := range report.Activity {
		row := []interface{}{day.Day}
		for _, n := range day.Slots {
			row = append(row, n)
		}
		rows = append(rows, row)
	}
	if err := writeRows(f, sheetActivity, rows); err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetActivity, "A1", end, bold)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
