package insighting

import (
	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

// MetricsAggregator define a interface para derivar métricas por canal a partir de uma série
type MetricsAggregator interface {
	// ComputeChannelMetrics lê a semana mais recente e calcula as tendências contra a anterior
	ComputeChannelMetrics(series domain.CohortSeries, channels []domain.Channel) (domain.MetricsByChannel, error)
}
