package insighting

import (
	"fmt"
	"math"

	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

// minSeriesLength é o mínimo para comparar a semana mais recente com a anterior
const minSeriesLength = 2

// Service implementa MetricsAggregator
type Service struct{}

// NewService cria uma nova instância do agregador
func NewService() MetricsAggregator {
	return &Service{}
}

func (s *Service) ComputeChannelMetrics(series domain.CohortSeries, channels []domain.Channel) (domain.MetricsByChannel, error) {
	return ComputeChannelMetrics(series, channels)
}

// ComputeChannelMetrics lê os quatro horizontes da última semana e calcula as
// tendências de 7 e 30 dias contra a penúltima.
func ComputeChannelMetrics(series domain.CohortSeries, channels []domain.Channel) (domain.MetricsByChannel, error) {
	if len(series) < minSeriesLength {
		return nil, fmt.Errorf("%w (got %d)", ErrInsufficientData, len(series))
	}

	latest, _ := series.Latest()
	previous, _ := series.Previous()

	metrics := make(domain.MetricsByChannel, len(channels))
	for _, channel := range channels {
		current, err := horizonValues(latest, channel)
		if err != nil {
			return nil, err
		}

		prior, err := horizonValues(previous, channel)
		if err != nil {
			return nil, err
		}

		metrics[channel] = domain.ChannelMetrics{
			Channel:  channel,
			D7:       current[domain.Day7],
			D30:      current[domain.Day30],
			D90:      current[domain.Day90],
			D180:     current[domain.Day180],
			D7Trend:  PercentChange(current[domain.Day7], prior[domain.Day7]),
			D30Trend: PercentChange(current[domain.Day30], prior[domain.Day30]),
		}
	}

	return metrics, nil
}

// PercentChange calcula (latest - previous) / previous * 100.
// Valor anterior zero ou resultado não finito retornam tendência indisponível.
func PercentChange(latest, previous float64) domain.Trend {
	if previous == 0 {
		return domain.UnavailableTrend()
	}

	change := (latest - previous) / previous * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return domain.UnavailableTrend()
	}

	return domain.NewTrend(change)
}

func horizonValues(week domain.CohortWeek, channel domain.Channel) (domain.HorizonValues, error) {
	values := make(domain.HorizonValues, 4)
	for _, h := range domain.Horizons() {
		v, ok := week.Value(channel, h)
		if !ok {
			return nil, fmt.Errorf("%w: %s %s in %s", ErrMissingValue, channel, h.Field(), week.Week)
		}
		values[h] = v
	}
	return values, nil
}
