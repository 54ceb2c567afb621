package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/cohorting"
	"github.com/vfg2006/cohort-roas-api/pkg/utils"
)

func paidMediaWeek(index int, d7, d30 float64) domain.CohortWeek {
	return domain.CohortWeek{
		Index: index,
		Values: map[domain.Channel]domain.HorizonValues{
			domain.ChannelPaidMedia: {
				domain.Day7:   d7,
				domain.Day30:  d30,
				domain.Day90:  2.0,
				domain.Day180: 3.0,
			},
		},
	}
}

func TestComputeChannelMetrics(t *testing.T) {
	paidMedia := []domain.Channel{domain.ChannelPaidMedia}

	tests := []struct {
		name     string
		series   domain.CohortSeries
		channels []domain.Channel
		validate func(t *testing.T, result domain.MetricsByChannel, err error)
	}{
		{
			name:     "Duas semanas - tendência de 7 dias de 50%",
			series:   domain.CohortSeries{paidMediaWeek(0, 1.0, 2.0), paidMediaWeek(1, 1.5, 1.0)},
			channels: paidMedia,
			validate: func(t *testing.T, result domain.MetricsByChannel, err error) {
				require.NoError(t, err)
				metrics := result[domain.ChannelPaidMedia]

				assert.Equal(t, 1.5, metrics.D7)
				assert.Equal(t, 1.0, metrics.D30)
				assert.Equal(t, 2.0, metrics.D90)
				assert.Equal(t, 3.0, metrics.D180)

				assert.True(t, metrics.D7Trend.Available)
				assert.Equal(t, 50.0, metrics.D7Trend.Value)
				assert.Equal(t, "+50.0%", utils.FormatTrendPercent(metrics.D7Trend.Value))

				assert.True(t, metrics.D30Trend.Available)
				assert.Equal(t, -50.0, metrics.D30Trend.Value)
			},
		},
		{
			name:     "Semana anterior zerada - tendência indisponível",
			series:   domain.CohortSeries{paidMediaWeek(0, 0, 1.0), paidMediaWeek(1, 2.0, 1.0)},
			channels: paidMedia,
			validate: func(t *testing.T, result domain.MetricsByChannel, err error) {
				require.NoError(t, err)
				trend := result[domain.ChannelPaidMedia].D7Trend

				assert.False(t, trend.Available)
				assert.Equal(t, 0.0, trend.Value)
				assert.Equal(t, utils.NoTrend, utils.FormatTrend(trend))

				assert.True(t, result[domain.ChannelPaidMedia].D30Trend.Available)
				assert.Equal(t, 0.0, result[domain.ChannelPaidMedia].D30Trend.Value)
			},
		},
		{
			name:     "Série com uma semana - dados insuficientes",
			series:   domain.CohortSeries{paidMediaWeek(0, 1.0, 1.0)},
			channels: paidMedia,
			validate: func(t *testing.T, result domain.MetricsByChannel, err error) {
				assert.ErrorIs(t, err, ErrInsufficientData)
				assert.Nil(t, result)
			},
		},
		{
			name:     "Série vazia - dados insuficientes",
			series:   domain.CohortSeries{},
			channels: paidMedia,
			validate: func(t *testing.T, result domain.MetricsByChannel, err error) {
				assert.ErrorIs(t, err, ErrInsufficientData)
			},
		},
		{
			name:     "Canal ausente na semana - erro de valor ausente",
			series:   domain.CohortSeries{paidMediaWeek(0, 1.0, 1.0), paidMediaWeek(1, 1.0, 1.0)},
			channels: []domain.Channel{domain.ChannelSportsCappers},
			validate: func(t *testing.T, result domain.MetricsByChannel, err error) {
				assert.ErrorIs(t, err, ErrMissingValue)
				assert.Contains(t, err.Error(), "Sports Cappers")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeChannelMetrics(tt.series, tt.channels)
			tt.validate(t, result, err)
		})
	}
}

func TestComputeChannelMetrics_RoundTripFromGenerator(t *testing.T) {
	series := cohorting.NewSeededGenerator(2024).Generate()

	result, err := NewService().ComputeChannelMetrics(series, domain.Channels())
	require.NoError(t, err)
	require.Len(t, result, len(domain.Channels()))

	latest, _ := series.Latest()
	previous, _ := series.Previous()
	for _, channel := range domain.Channels() {
		metrics := result[channel]
		for _, h := range domain.Horizons() {
			expected, _ := latest.Value(channel, h)
			assert.Equal(t, expected, *metrics.Value(h), "%s %s", channel, h)
		}

		latestD7, _ := latest.Value(channel, domain.Day7)
		previousD7, _ := previous.Value(channel, domain.Day7)
		assert.InDelta(t, (latestD7-previousD7)/previousD7*100, metrics.D7Trend.Value, 1e-9)
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name      string
		latest    float64
		previous  float64
		expected  float64
		available bool
	}{
		{name: "Crescimento", latest: 1.5, previous: 1.0, expected: 50, available: true},
		{name: "Queda", latest: 0.5, previous: 1.0, expected: -50, available: true},
		{name: "Estável", latest: 1.0, previous: 1.0, expected: 0, available: true},
		{name: "Anterior zero", latest: 2, previous: 0, available: false},
		{name: "Ambos zero", latest: 0, previous: 0, available: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := PercentChange(tt.latest, tt.previous)
			assert.Equal(t, tt.available, trend.Available)
			assert.Equal(t, tt.expected, trend.Value)
		})
	}
}
