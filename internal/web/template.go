package web

import "html/template"

func pageTemplates() *template.Template {
	return template.Must(template.New("repopulse").Parse(pagesHTML))
}

const pagesHTML = `
{{define "index"}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>RepoPulse</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #f6f8fa; color: #24292f; margin: 0; }
  .wrap { max-width: 640px; margin: 80px auto; padding: 0 16px; }
  .card { background: #fff; border: 1px solid #d0d7de; border-radius: 6px; padding: 32px; }
  h1 { margin-top: 0; }
  label { display: block; margin: 16px 0 4px; font-weight: 600; }
  input { width: 100%; box-sizing: border-box; padding: 8px; border: 1px solid #d0d7de; border-radius: 6px; font-size: 14px; }
  button { margin-top: 20px; background: #1f883d; color: #fff; border: 0; border-radius: 6px; padding: 10px 20px; font-size: 14px; cursor: pointer; }
  .hint { color: #57606a; font-size: 13px; margin-top: 16px; }
</style>
</head>
<body>
<div class="wrap">
  <div class="card">
    <h1>RepoPulse</h1>
    <p>Analytics for a single GitHub repository: velocity, growth forecast and contributor activity.</p>
    <form action="/dashboard" method="get">
      <label for="owner">Owner</label>
      <input id="owner" name="owner" placeholder="golang" required>
      <label for="repo">Repository</label>
      <input id="repo" name="repo" placeholder="go" required>
      <button type="submit">Analyze</button>
    </form>
    <p class="hint">Set GITHUB_TOKEN to raise the API rate limit and unlock real star history.</p>
  </div>
</div>
</body>
</html>
{{end}}

{{define "error"}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>RepoPulse</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #f6f8fa; color: #24292f; margin: 0; }
  .wrap { max-width: 640px; margin: 80px auto; padding: 0 16px; }
  .card { background: #fff; border: 1px solid #d0d7de; border-radius: 6px; padding: 32px; }
  a { color: #0969da; }
</style>
</head>
<body>
<div class="wrap">
  <div class="card">
    <h1>Something went wrong</h1>
    <p>{{.Message}}</p>
    <p><a href="/">Back to search</a></p>
  </div>
</div>
</body>
</html>
{{end}}

{{define "dashboard"}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Report.Repository.FullName}} - RepoPulse</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #f6f8fa; color: #24292f; margin: 0; }
  .wrap { max-width: 1000px; margin: 24px auto; padding: 0 16px; }
  header a { color: #0969da; text-decoration: none; font-size: 24px; font-weight: 600; }
  .desc { color: #57606a; margin: 4px 0 0; }
  .lang { display: inline-block; background: #ddf4ff; color: #0969da; border-radius: 12px; padding: 2px 10px; font-size: 12px; margin-top: 8px; }
  .warnings { background: #fff8c5; border: 1px solid #d4a72c; border-radius: 6px; padding: 8px 16px; margin: 16px 0; font-size: 13px; }
  .warnings li { margin: 4px 0; }
  .cards { display: flex; gap: 12px; flex-wrap: wrap; margin: 16px 0; }
  .metric { flex: 1 1 120px; background: #fff; border: 1px solid #d0d7de; border-radius: 6px; padding: 16px; text-align: center; }
  .metric .num { font-size: 28px; font-weight: 600; }
  .metric .label { color: #57606a; font-size: 13px; }
  section { background: #fff; border: 1px solid #d0d7de; border-radius: 6px; padding: 20px; margin: 16px 0; }
  section h2 { margin: 0 0 12px; font-size: 16px; border-bottom: 1px solid #d8dee4; padding-bottom: 8px; }
  table { border-collapse: collapse; width: 100%; font-size: 13px; }
  th, td { padding: 6px 10px; text-align: left; border-bottom: 1px solid #eaeef2; }
  .forecast td { color: #8250df; font-style: italic; }
  .bar-track { background: #eaeef2; border-radius: 4px; height: 10px; width: 100%; }
  .bar-fill { background: #1f883d; border-radius: 4px; height: 10px; }
  .heat td { width: 40px; text-align: center; border: 1px solid #fff; font-size: 11px; }
  .lvl-0 { background: #ebedf0; color: #ebedf0; }
  .lvl-1 { background: #9be9a8; }
  .lvl-2 { background: #40c463; }
  .lvl-3 { background: #30a14e; color: #fff; }
  .lvl-4 { background: #216e39; color: #fff; }
  .note { color: #57606a; font-size: 12px; }
  footer { color: #57606a; font-size: 12px; margin: 24px 0; text-align: center; }
</style>
</head>
<body>
<div class="wrap">
  <header>
    <a href="{{.Report.Repository.HTMLURL}}">{{.Report.Repository.FullName}}</a>
    {{with .Report.Repository.Description}}<p class="desc">{{.}}</p>{{end}}
    {{with .Report.Repository.Language}}<span class="lang">{{.}}</span>{{end}}
  </header>

  {{if .Report.Warnings}}
  <div class="warnings">
    <ul>
    {{range .Report.Warnings}}<li>{{.}}</li>{{end}}
    </ul>
  </div>
  {{end}}

  <div class="cards">
    <div class="metric"><div class="num">{{.Report.Engagement.Stars}}</div><div class="label">Stars</div></div>
    <div class="metric"><div class="num">{{.Report.Engagement.Forks}}</div><div class="label">Forks</div></div>
    <div class="metric"><div class="num">{{.Report.Engagement.Watchers}}</div><div class="label">Watchers</div></div>
    <div class="metric"><div class="num">{{.Report.Engagement.OpenIssues}}</div><div class="label">Open issues</div></div>
    <div class="metric"><div class="num">{{.Report.Contributors.Total}}</div><div class="label">Contributors</div></div>
  </div>

  <section>
    <h2>Development velocity</h2>
    <div class="cards">
      <div class="metric"><div class="num">{{.Report.Velocity.CommitsLastWeek}}</div><div class="label">Commits last 7 days</div></div>
      <div class="metric"><div class="num">{{.Report.Velocity.PullRequestsLastWeek}}</div><div class="label">PRs opened last 7 days</div></div>
      <div class="metric"><div class="num">{{printf "%.1f" .Report.Velocity.MergeRatePercent}}%</div><div class="label">Merge rate ({{.Report.Velocity.MergedPullRequests}}/{{.Report.Velocity.TotalPullRequests}} recent PRs)</div></div>
    </div>
    {{if .Report.Velocity.SkippedRecords}}<p class="note">{{.Report.Velocity.SkippedRecords}} records had missing timestamps and were not counted.</p>{{end}}
  </section>

  <section>
    <h2>Star trend and forecast</h2>
    <p>Projected stars in {{len .Report.StarTrend.Forecast}} days: <strong>{{.Report.StarTrend.PredictedStars}}</strong>
    {{if .Report.StarTrend.Synthetic}}<span class="note">(estimated trend; real star history needs an API token)</span>{{end}}</p>
    <table>
      <tr><th>Date</th><th>Stars</th><th></th></tr>
      {{range .Trend}}
      <tr{{if .Forecast}} class="forecast"{{end}}><td>{{.Date}}</td><td>{{.Stars}}</td><td>{{if .Forecast}}forecast{{end}}</td></tr>
      {{end}}
    </table>
  </section>

  <section>
    <h2>Top contributors</h2>
    {{if .Bars}}
    <table>
      {{range .Bars}}
      <tr>
        <td style="width:180px">{{.Login}}</td>
        <td><div class="bar-track"><div class="bar-fill" style="width:{{.Percent}}%"></div></div></td>
        <td style="width:80px;text-align:right">{{.Contributions}}</td>
      </tr>
      {{end}}
    </table>
    {{else}}
    <p class="note">No contributor data available.</p>
    {{end}}
  </section>

  <section>
    <h2>Issue resolution</h2>
    <p>{{.Report.Issues.Open}} open / {{.Report.Issues.Closed}} closed among the {{.Report.Issues.Total}} most recent issues. Median time to close: <strong>{{.MedianLabel}}</strong></p>
    <table>
      <tr><th>Time to close</th><th>Issues</th><th>Share</th></tr>
      {{range .Resolution}}
      <tr><td>{{.Label}}</td><td>{{.Count}}</td><td>{{.Percent}}%</td></tr>
      {{end}}
    </table>
  </section>

  <section>
    <h2>Commit activity (UTC)</h2>
    <table class="heat">
      <tr><th></th>{{range .SlotLabels}}<th>{{.}}</th>{{end}}</tr>
      {{range .Heatmap}}
      <tr><th>{{.Day}}</th>{{range .Cells}}<td class="lvl-{{.Level}}" title="{{.Count}} commits">{{.Count}}</td>{{end}}</tr>
      {{end}}
    </table>
    <p class="note">Each cell counts the most recent commits authored in that three-hour window.</p>
  </section>

  <footer>Generated {{.Generated}} from data fetched {{.Report.Repository.FetchedAt.Format "2006-01-02 15:04 UTC"}}</footer>
</div>
</body>
</html>
{{end}}
`
