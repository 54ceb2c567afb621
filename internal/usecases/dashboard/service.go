// Package dashboard monta o modelo de visualização a partir da sessão e dos filtros
package dashboard

import (
	"fmt"

	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/pkg/apiErrors"
	"github.com/vfg2006/cohort-roas-api/pkg/utils"
)

// HeatmapWeeks é o número de cohorts exibidas na matriz
const HeatmapWeeks = 8

// Builder define a interface de montagem do dashboard
type Builder interface {
	// Build projeta a sessão segundo os filtros. Os filtros nunca alteram os valores.
	Build(session *domain.Session, filter domain.FilterState) (*View, error)
}

type Service struct {
	channels []domain.Channel
}

func NewService() Builder {
	return &Service{channels: domain.Channels()}
}

func (s *Service) Build(session *domain.Session, filter domain.FilterState) (*View, error) {
	if session == nil {
		return nil, NewViewError(ErrEmptySession, apiErrors.ErrInternalServer, "")
	}

	if !filter.Horizon.IsValid() {
		return nil, NewViewError(domain.ErrUnknownHorizon, apiErrors.ErrInvalidFormat, filter.Horizon.Label())
	}

	if channel, ok := filter.Channel.Channel(); ok && !channel.IsValid() {
		return nil, NewViewError(domain.ErrUnknownChannel, apiErrors.ErrInvalidFormat, string(channel))
	}

	for _, channel := range s.channels {
		if _, ok := session.Metrics.Lookup(channel); !ok {
			return nil, NewViewError(ErrMissingMetrics, apiErrors.ErrInternalServer, string(channel))
		}
	}

	view := &View{
		SessionID:       session.ID,
		Filters:         s.buildFilters(filter),
		StatCards:       s.buildStatCards(session.Metrics, filter),
		ComparisonTable: s.buildComparisonTable(session.Metrics),
		TrendChart:      s.buildTrendChart(session.Series, filter),
		LatestWeekChart: s.buildLatestWeekChart(session.Metrics, filter),
		Heatmap:         s.buildHeatmap(session.Series, filter),
	}

	return view, nil
}

// Options retorna as opções dos seletores sem depender de uma sessão
func Options() FilterOptions {
	channels := []string{domain.AllChannelsLabel}
	for _, c := range domain.Channels() {
		channels = append(channels, string(c))
	}

	countries := make([]string, 0, len(domain.Countries()))
	for _, c := range domain.Countries() {
		countries = append(countries, string(c))
	}

	devices := make([]string, 0, len(domain.Devices()))
	for _, d := range domain.Devices() {
		devices = append(devices, string(d))
	}

	return FilterOptions{
		Channels:  channels,
		Countries: countries,
		Devices:   devices,
		Periods:   domain.HorizonLabels(),
	}
}

func (s *Service) buildFilters(filter domain.FilterState) Filters {
	return Filters{
		Channel: filter.Channel.Label(),
		Country: string(filter.Country),
		Device:  string(filter.Device),
		Period:  filter.Horizon.Label(),
		Options: Options(),
	}
}

func (s *Service) buildStatCards(metrics domain.MetricsByChannel, filter domain.FilterState) []StatCard {
	selected, hasSelection := filter.Channel.Channel()

	cards := make([]StatCard, 0, len(s.channels))
	for _, channel := range s.channels {
		m := metrics[channel]
		cards = append(cards, StatCard{
			Channel:  channel,
			Color:    channel.Color(),
			Value:    utils.FormatRatio(m.Value(domain.Day7)),
			Label:    domain.Day7.Label() + " ROAS",
			Trend:    utils.FormatTrend(m.D7Trend),
			TrendUp:  m.D7Trend.IsUp(),
			Selected: hasSelection && selected == channel,
		})
	}
	return cards
}

func (s *Service) buildComparisonTable(metrics domain.MetricsByChannel) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(s.channels))
	for _, channel := range s.channels {
		m := metrics[channel]
		rows = append(rows, ComparisonRow{
			Channel: channel,
			Color:   channel.Color(),
			D7:      utils.FormatRatio(m.Value(domain.Day7)),
			D30:     utils.FormatRatio(m.Value(domain.Day30)),
			D90:     utils.FormatRatio(m.Value(domain.Day90)),
			D180:    utils.FormatRatio(m.Value(domain.Day180)),
			Trend:   utils.FormatTrend(m.D7Trend),
			TrendUp: m.D7Trend.IsUp(),
		})
	}
	return rows
}

// buildTrendChart usa 0 para valores ausentes, como o restante do dashboard
func (s *Service) buildTrendChart(series domain.CohortSeries, filter domain.FilterState) TrendChart {
	visible := filter.Channel.Visible(s.channels)

	chart := TrendChart{
		Title:  "ROAS Trend by Cohort Week",
		Period: filter.Horizon.Label(),
		Labels: series.DateLabels(),
		Series: make([]ChartSeries, 0, len(visible)),
	}

	for _, channel := range visible {
		key, _ := domain.MetricKey(channel, filter.Horizon.Label())

		points := make([]float64, 0, len(series))
		for _, week := range series {
			v, _ := week.Value(channel, filter.Horizon)
			points = append(points, v)
		}

		chart.Series = append(chart.Series, ChartSeries{
			Channel: channel,
			Key:     key,
			Color:   channel.Color(),
			Points:  points,
		})
	}

	return chart
}

func (s *Service) buildLatestWeekChart(metrics domain.MetricsByChannel, filter domain.FilterState) LatestWeekChart {
	chart := LatestWeekChart{
		Title: fmt.Sprintf("Latest Week Performance (%s)", filter.Horizon.Label()),
		Bars:  make([]ChartBar, 0, len(s.channels)),
	}

	for _, channel := range s.channels {
		value := metrics[channel].Value(filter.Horizon)

		bar := ChartBar{
			Label:    channel.ShortLabel(),
			FullName: string(channel),
			Color:    channel.Color(),
			Display:  utils.FormatRatio(value),
		}
		if value != nil {
			bar.Value = *value
		}
		chart.Bars = append(chart.Bars, bar)
	}

	return chart
}

func (s *Service) buildHeatmap(series domain.CohortSeries, filter domain.FilterState) Heatmap {
	recent := series.Recent(HeatmapWeeks)

	heatmap := Heatmap{
		Title:    fmt.Sprintf("Cohort Performance Matrix - %s", filter.Horizon.Label()),
		Channels: s.channels,
		Rows:     make([]HeatmapRow, 0, len(recent)),
	}

	for _, week := range recent {
		row := HeatmapRow{
			Week:  week.Week,
			Date:  week.DateLabel,
			Cells: make([]HeatmapCell, 0, len(s.channels)),
		}

		for _, channel := range s.channels {
			cell := HeatmapCell{Channel: channel}
			if v, ok := week.Value(channel, filter.Horizon); ok {
				cell.Value = &v
				cell.Intensity = utils.HeatmapIntensity(v)
			}
			cell.Display = utils.FormatRatio(cell.Value)
			cell.Background = utils.HeatmapColor(cell.Intensity)
			row.Cells = append(row.Cells, cell)
		}

		heatmap.Rows = append(heatmap.Rows, row)
	}

	return heatmap
}
