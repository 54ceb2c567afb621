package domain

import "time"

// HorizonValues guarda o ROAS de um canal por horizonte
type HorizonValues map[Horizon]float64

// CohortWeek representa uma semana de cohort gerada
type CohortWeek struct {
	Index     int                       `json:"index"`
	Week      string                    `json:"week"`       // Formato "Week N", começando em 1
	Date      time.Time                 `json:"date"`       // Data de início da cohort
	DateLabel string                    `json:"date_label"` // Formato "Oct 1"
	Values    map[Channel]HorizonValues `json:"values"`
}

// Value retorna o ROAS do canal no horizonte, se existir
func (w CohortWeek) Value(channel Channel, h Horizon) (float64, bool) {
	values, ok := w.Values[channel]
	if !ok {
		return 0, false
	}
	v, ok := values[h]
	return v, ok
}

// ValueByKey resolve uma chave "<canal>_dN" como a usada pelos gráficos
func (w CohortWeek) ValueByKey(key string) (float64, bool) {
	for channel := range w.Values {
		for _, h := range Horizons() {
			if metricKey(channel, h) == key {
				return w.Value(channel, h)
			}
		}
	}
	return 0, false
}

// CohortSeries é a sequência de semanas em ordem cronológica crescente
type CohortSeries []CohortWeek

// Latest retorna a última semana da série
func (s CohortSeries) Latest() (CohortWeek, bool) {
	if len(s) == 0 {
		return CohortWeek{}, false
	}
	return s[len(s)-1], true
}

// Previous retorna a penúltima semana da série
func (s CohortSeries) Previous() (CohortWeek, bool) {
	if len(s) < 2 {
		return CohortWeek{}, false
	}
	return s[len(s)-2], true
}

// Recent retorna até n semanas, da mais recente para a mais antiga
func (s CohortSeries) Recent(n int) []CohortWeek {
	if n > len(s) {
		n = len(s)
	}
	if n <= 0 {
		return []CohortWeek{}
	}

	recent := make([]CohortWeek, 0, n)
	for i := len(s) - 1; i >= len(s)-n; i-- {
		recent = append(recent, s[i])
	}
	return recent
}

// DateLabels retorna os rótulos de data na ordem da série (eixo X do gráfico de tendência)
func (s CohortSeries) DateLabels() []string {
	labels := make([]string, 0, len(s))
	for _, w := range s {
		labels = append(labels, w.DateLabel)
	}
	return labels
}
