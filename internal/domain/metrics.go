package domain

// Trend é a variação percentual contra a semana anterior.
// Available é falso quando a semana anterior tem valor zero.
type Trend struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

func NewTrend(value float64) Trend {
	return Trend{Value: value, Available: true}
}

func UnavailableTrend() Trend {
	return Trend{}
}

// IsUp trata tendência indisponível como neutra (sem queda)
func (t Trend) IsUp() bool {
	return !t.Available || t.Value >= 0
}

// ChannelMetrics é o snapshot de um canal na semana mais recente.
// Tendências de 90 e 180 dias não são calculadas.
type ChannelMetrics struct {
	Channel  Channel `json:"channel"`
	D7       float64 `json:"d7"`
	D30      float64 `json:"d30"`
	D90      float64 `json:"d90"`
	D180     float64 `json:"d180"`
	D7Trend  Trend   `json:"d7_trend"`
	D30Trend Trend   `json:"d30_trend"`
}

// Value retorna o ROAS do horizonte, ou nil para um horizonte desconhecido
func (m ChannelMetrics) Value(h Horizon) *float64 {
	var v float64
	switch h {
	case Day7:
		v = m.D7
	case Day30:
		v = m.D30
	case Day90:
		v = m.D90
	case Day180:
		v = m.D180
	default:
		return nil
	}
	return &v
}

// MetricsByChannel é o resultado do agregador
type MetricsByChannel map[Channel]ChannelMetrics

// Lookup retorna as métricas do canal, se existirem
func (m MetricsByChannel) Lookup(c Channel) (ChannelMetrics, bool) {
	metrics, ok := m[c]
	return metrics, ok
}
