package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/cohorting"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/insighting"
	"github.com/vfg2006/cohort-roas-api/pkg/apiErrors"
)

func newTestSession(t *testing.T) *domain.Session {
	t.Helper()

	series := cohorting.NewSeededGenerator(42).Generate()
	metrics, err := insighting.ComputeChannelMetrics(series, domain.Channels())
	require.NoError(t, err)

	return &domain.Session{ID: "abc123", Series: series, Metrics: metrics}
}

func TestService_Build(t *testing.T) {
	session := newTestSession(t)
	builder := NewService()

	tests := []struct {
		name     string
		filter   func() domain.FilterState
		validate func(t *testing.T, view *View, err error)
	}{
		{
			name:   "Filtro padrão - todos os canais",
			filter: domain.DefaultFilterState,
			validate: func(t *testing.T, view *View, err error) {
				require.NoError(t, err)
				assert.Equal(t, "abc123", view.SessionID)
				assert.Equal(t, domain.AllChannelsLabel, view.Filters.Channel)
				assert.Equal(t, "Day 7", view.Filters.Period)
				assert.Len(t, view.StatCards, 5)
				assert.Len(t, view.ComparisonTable, 5)
				assert.Len(t, view.TrendChart.Series, 5)
				assert.Len(t, view.TrendChart.Labels, cohorting.WeekCount)
				assert.Equal(t, "ROAS Trend by Cohort Week", view.TrendChart.Title)
				assert.Equal(t, "Latest Week Performance (Day 7)", view.LatestWeekChart.Title)
				assert.Equal(t, "Cohort Performance Matrix - Day 7", view.Heatmap.Title)
				for _, card := range view.StatCards {
					assert.False(t, card.Selected)
					assert.Equal(t, "Day 7 ROAS", card.Label)
				}
			},
		},
		{
			name: "Canal específico restringe apenas o gráfico de tendência",
			filter: func() domain.FilterState {
				state := domain.DefaultFilterState()
				state.SetChannel(domain.SpecificChannel(domain.ChannelSportsCappers))
				state.SetHorizon(domain.Day30)
				return state
			},
			validate: func(t *testing.T, view *View, err error) {
				require.NoError(t, err)
				require.Len(t, view.TrendChart.Series, 1)
				assert.Equal(t, domain.ChannelSportsCappers, view.TrendChart.Series[0].Channel)
				assert.Equal(t, "Sports Cappers_d30", view.TrendChart.Series[0].Key)
				assert.Len(t, view.LatestWeekChart.Bars, 5)
				assert.Len(t, view.ComparisonTable, 5)

				selected := 0
				for _, card := range view.StatCards {
					if card.Selected {
						selected++
						assert.Equal(t, domain.ChannelSportsCappers, card.Channel)
					}
				}
				assert.Equal(t, 1, selected)
			},
		},
		{
			name: "País e dispositivo não alteram os valores",
			filter: func() domain.FilterState {
				state := domain.DefaultFilterState()
				state.SetCountry(domain.CountryBrazil)
				state.SetDevice(domain.DeviceMobile)
				return state
			},
			validate: func(t *testing.T, view *View, err error) {
				require.NoError(t, err)
				baseline, err := builder.Build(session, domain.DefaultFilterState())
				require.NoError(t, err)
				assert.Equal(t, "Brazil", view.Filters.Country)
				assert.Equal(t, "Mobile", view.Filters.Device)
				assert.Equal(t, baseline.StatCards, view.StatCards)
				assert.Equal(t, baseline.TrendChart, view.TrendChart)
				assert.Equal(t, baseline.Heatmap, view.Heatmap)
			},
		},
		{
			name: "Horizonte inválido",
			filter: func() domain.FilterState {
				return domain.FilterState{Horizon: domain.Horizon(14)}
			},
			validate: func(t *testing.T, view *View, err error) {
				assert.Nil(t, view)
				assert.ErrorIs(t, err, domain.ErrUnknownHorizon)

				var viewErr *ViewError
				require.ErrorAs(t, err, &viewErr)
				assert.Equal(t, apiErrors.ErrInvalidFormat, viewErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := builder.Build(session, tt.filter())
			tt.validate(t, view, err)
		})
	}
}

func TestService_Build_Heatmap(t *testing.T) {
	session := newTestSession(t)

	state := domain.DefaultFilterState()
	state.SetHorizon(domain.Day90)

	view, err := NewService().Build(session, state)
	require.NoError(t, err)

	require.Len(t, view.Heatmap.Rows, HeatmapWeeks)
	assert.Equal(t, "Week 12", view.Heatmap.Rows[0].Week)
	assert.Equal(t, "Dec 17", view.Heatmap.Rows[0].Date)
	assert.Equal(t, "Week 5", view.Heatmap.Rows[HeatmapWeeks-1].Week)

	for _, row := range view.Heatmap.Rows {
		require.Len(t, row.Cells, 5)
		for _, cell := range row.Cells {
			require.NotNil(t, cell.Value)
			assert.GreaterOrEqual(t, cell.Intensity, 0.0)
			assert.LessOrEqual(t, cell.Intensity, 1.0)
			assert.Contains(t, cell.Background, "rgba(139, 92, 246, ")
		}
	}
}

func TestService_Build_LatestWeek(t *testing.T) {
	session := newTestSession(t)

	view, err := NewService().Build(session, domain.DefaultFilterState())
	require.NoError(t, err)

	latest, ok := session.Series.Latest()
	require.True(t, ok)

	for i, channel := range domain.Channels() {
		bar := view.LatestWeekChart.Bars[i]
		expected, _ := latest.Value(channel, domain.Day7)
		assert.Equal(t, expected, bar.Value)
		assert.Equal(t, string(channel), bar.FullName)
		assert.Equal(t, channel.ShortLabel(), bar.Label)
		assert.Equal(t, channel.Color(), bar.Color)
	}
}

func TestService_Build_Errors(t *testing.T) {
	builder := NewService()

	_, err := builder.Build(nil, domain.DefaultFilterState())
	assert.ErrorIs(t, err, ErrEmptySession)

	session := newTestSession(t)
	delete(session.Metrics, domain.ChannelPaidMedia)

	_, err = builder.Build(session, domain.DefaultFilterState())
	assert.ErrorIs(t, err, ErrMissingMetrics)
	assert.Contains(t, err.Error(), "Paid Media")
}

func TestOptions(t *testing.T) {
	options := Options()
	assert.Equal(t, domain.AllChannelsLabel, options.Channels[0])
	assert.Len(t, options.Channels, 6)
	assert.Equal(t, []string{"Day 7", "Day 30", "Day 90", "Day 180"}, options.Periods)
	assert.Contains(t, options.Countries, "All Countries")
	assert.Contains(t, options.Devices, "All Devices")
}
