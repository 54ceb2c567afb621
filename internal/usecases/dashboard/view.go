package dashboard

import (
	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

// View é o modelo consumido pelas camadas de apresentação (JSON, HTML e CLI)
type View struct {
	SessionID       string          `json:"session_id,omitempty"`
	Filters         Filters         `json:"filters"`
	StatCards       []StatCard      `json:"stat_cards"`
	ComparisonTable []ComparisonRow `json:"comparison_table"`
	TrendChart      TrendChart      `json:"trend_chart"`
	LatestWeekChart LatestWeekChart `json:"latest_week_chart"`
	Heatmap         Heatmap         `json:"heatmap"`
}

// Filters ecoa a seleção atual e as opções de cada seletor
type Filters struct {
	Channel string        `json:"channel"`
	Country string        `json:"country"`
	Device  string        `json:"device"`
	Period  string        `json:"period"`
	Options FilterOptions `json:"options"`
}

type FilterOptions struct {
	Channels  []string `json:"channels"`
	Countries []string `json:"countries"`
	Devices   []string `json:"devices"`
	Periods   []string `json:"periods"`
}

type StatCard struct {
	Channel  domain.Channel `json:"channel"`
	Color    string         `json:"color"`
	Value    string         `json:"value"`
	Label    string         `json:"label"`
	Trend    string         `json:"trend"`
	TrendUp  bool           `json:"trend_up"`
	Selected bool           `json:"selected"`
}

type ComparisonRow struct {
	Channel domain.Channel `json:"channel"`
	Color   string         `json:"color"`
	D7      string         `json:"d7"`
	D30     string         `json:"d30"`
	D90     string         `json:"d90"`
	D180    string         `json:"d180"`
	Trend   string         `json:"trend"`
	TrendUp bool           `json:"trend_up"`
}

// TrendChart tem uma linha por canal visível sobre as datas das cohorts
type TrendChart struct {
	Title  string        `json:"title"`
	Period string        `json:"period"`
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

type ChartSeries struct {
	Channel domain.Channel `json:"channel"`
	Key     string         `json:"key"`
	Color   string         `json:"color"`
	Points  []float64      `json:"points"`
}

type LatestWeekChart struct {
	Title string     `json:"title"`
	Bars  []ChartBar `json:"bars"`
}

type ChartBar struct {
	Label    string  `json:"label"`
	FullName string  `json:"full_name"`
	Color    string  `json:"color"`
	Value    float64 `json:"value"`
	Display  string  `json:"display"`
}

// Heatmap lista as cohorts mais recentes primeiro
type Heatmap struct {
	Title    string           `json:"title"`
	Channels []domain.Channel `json:"channels"`
	Rows     []HeatmapRow     `json:"rows"`
}

type HeatmapRow struct {
	Week  string        `json:"week"`
	Date  string        `json:"date"`
	Cells []HeatmapCell `json:"cells"`
}

type HeatmapCell struct {
	Channel    domain.Channel `json:"channel"`
	Value      *float64       `json:"value"`
	Display    string         `json:"display"`
	Intensity  float64        `json:"intensity"`
	Background string         `json:"background"`
}
