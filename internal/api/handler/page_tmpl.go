package handler

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Cohort ROAS Dashboard</title>
<style>
:root { --bg: #0f172a; --fg: #e2e8f0; --card-bg: #1e293b; --border: #334155; --muted: #94a3b8; --up: #10b981; --down: #ef4444; }
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1.5rem; max-width: 1400px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; }
header p { color: var(--muted); font-size: .875rem; }
form.filters { display: flex; flex-wrap: wrap; gap: .75rem; margin-bottom: 1.5rem; }
form.filters label { display: flex; flex-direction: column; font-size: .75rem; color: var(--muted); }
form.filters select { padding: .375rem .5rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-left-width: 4px; border-radius: 8px; padding: .75rem 1rem; }
.card.selected { outline: 2px solid var(--fg); }
.card .name { font-size: .8125rem; color: var(--muted); }
.card .value { font-size: 1.5rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); }
.up { color: var(--up); }
.down { color: var(--down); }
.charts { display: grid; grid-template-columns: 2fr 1fr; gap: 1rem; margin-bottom: 1.5rem; }
@media (max-width: 900px) { .charts { grid-template-columns: 1fr; } }
.box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; margin-bottom: 1.5rem; }
.box h3 { font-size: .9375rem; margin-bottom: .75rem; }
svg { width: 100%; height: 260px; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); }
td.cell { text-align: center; }
.dot { display: inline-block; width: .625rem; height: .625rem; border-radius: 50%; margin-right: .375rem; }
</style>
</head>
<body>
<header>
  <h1>Cohort ROAS Dashboard</h1>
  <p>Session {{.SessionID}} &middot; {{.Filters.Period}}</p>
</header>

<form class="filters" method="get" action="/dashboard">
  <input type="hidden" name="session" value="{{.SessionID}}">
  <label>Channel
    <select name="channel" onchange="this.form.submit()">
      {{range .Filters.Options.Channels}}<option value="{{.}}"{{if eq . $.Filters.Channel}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <label>Country
    <select name="country" onchange="this.form.submit()">
      {{range .Filters.Options.Countries}}<option value="{{.}}"{{if eq . $.Filters.Country}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <label>Device
    <select name="device" onchange="this.form.submit()">
      {{range .Filters.Options.Devices}}<option value="{{.}}"{{if eq . $.Filters.Device}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <label>Period
    <select name="period" onchange="this.form.submit()">
      {{range .Filters.Options.Periods}}<option value="{{.}}"{{if eq . $.Filters.Period}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
</form>

<section class="cards">
{{range .StatCards}}
  <div class="card{{if .Selected}} selected{{end}}" style="border-left-color: {{css .Color}}">
    <div class="name">{{.Channel}}</div>
    <div class="value">{{.Value}}</div>
    <div class="label">{{.Label}} &middot; <span class="{{if .TrendUp}}up{{else}}down{{end}}">{{.Trend}}</span></div>
  </div>
{{end}}
</section>

<section class="charts">
  <div class="box"><h3>{{.TrendChart.Title}} ({{.TrendChart.Period}})</h3><svg id="chart-trend" viewBox="0 0 600 260" preserveAspectRatio="none"></svg></div>
  <div class="box"><h3>{{.LatestWeekChart.Title}}</h3><svg id="chart-latest" viewBox="0 0 300 260" preserveAspectRatio="none"></svg></div>
</section>

<section class="box">
  <h3>Channel Comparison</h3>
  <table>
    <thead><tr><th>Channel</th><th>Day 7</th><th>Day 30</th><th>Day 90</th><th>Day 180</th><th>D7 Trend</th></tr></thead>
    <tbody>
    {{range .ComparisonTable}}
      <tr>
        <td><span class="dot" style="background: {{css .Color}}"></span>{{.Channel}}</td>
        <td>{{.D7}}</td><td>{{.D30}}</td><td>{{.D90}}</td><td>{{.D180}}</td>
        <td class="{{if .TrendUp}}up{{else}}down{{end}}">{{.Trend}}</td>
      </tr>
    {{end}}
    </tbody>
  </table>
</section>

<section class="box">
  <h3>{{.Heatmap.Title}}</h3>
  <table>
    <thead><tr><th>Cohort</th>{{range .Heatmap.Channels}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{range .Heatmap.Rows}}
      <tr>
        <td>{{.Week}} <span class="label">({{.Date}})</span></td>
        {{range .Cells}}<td class="cell" style="background: {{css .Background}}">{{.Display}}</td>{{end}}
      </tr>
    {{end}}
    </tbody>
  </table>
</section>

<script>
var trendChart = {{json .TrendChart}};
var latestChart = {{json .LatestWeekChart}};

function svgEl(name, attrs) {
  var el = document.createElementNS("http://www.w3.org/2000/svg", name);
  for (var k in attrs) { el.setAttribute(k, attrs[k]); }
  return el;
}

function maxOf(values) {
  var m = 0;
  values.forEach(function (v) { if (v > m) { m = v; } });
  return m || 1;
}

(function drawTrend() {
  var svg = document.getElementById("chart-trend");
  var all = [];
  trendChart.series.forEach(function (s) { all = all.concat(s.points); });
  var max = maxOf(all), n = trendChart.labels.length, w = 600, h = 240;
  trendChart.series.forEach(function (s) {
    var pts = s.points.map(function (v, i) {
      var x = n > 1 ? (i * w) / (n - 1) : 0;
      return x + "," + (h - (v / max) * h + 10);
    });
    var line = svgEl("polyline", { points: pts.join(" "), fill: "none", stroke: s.color, "stroke-width": 2 });
    var title = svgEl("title", {});
    title.textContent = s.key;
    line.appendChild(title);
    svg.appendChild(line);
  });
})();

(function drawLatest() {
  var svg = document.getElementById("chart-latest");
  var bars = latestChart.bars, max = maxOf(bars.map(function (b) { return b.value; }));
  var slot = 300 / bars.length;
  bars.forEach(function (b, i) {
    var bh = (b.value / max) * 220;
    var rect = svgEl("rect", { x: i * slot + slot * 0.15, y: 230 - bh, width: slot * 0.7, height: bh, fill: b.color });
    var title = svgEl("title", {});
    title.textContent = b.full_name + ": " + b.display;
    rect.appendChild(title);
    svg.appendChild(rect);
    var label = svgEl("text", { x: i * slot + slot / 2, y: 255, "text-anchor": "middle", fill: "#94a3b8", "font-size": 11 });
    label.textContent = b.label;
    svg.appendChild(label);
  });
})();
</script>
</body>
</html>
`
