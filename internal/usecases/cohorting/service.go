// Package cohorting gera as séries sintéticas de cohorts semanais
package cohorting

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

const (
	// WeekCount é o número fixo de semanas geradas
	WeekCount = 12
	// DateLabelLayout é o formato curto mês/dia (en-US)
	DateLabelLayout = "Jan 2"

	daysPerWeek = 7
)

// StartDate é a data fixa da primeira cohort
var StartDate = time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)

// RandSource retorna um valor uniforme em [0, 1)
type RandSource func() float64

// Range define o intervalo [Base, Base+Spread] de um canal em um horizonte
type Range struct {
	Base   float64
	Spread float64
}

// Max retorna o limite superior do intervalo
func (r Range) Max() float64 {
	return r.Base + r.Spread
}

// Canais de maior engajamento têm base e amplitude maiores; horizontes maiores crescem
// de forma cumulativa para o mesmo canal.
var ranges = map[domain.Channel]map[domain.Horizon]Range{
	domain.ChannelPaidMedia: {
		domain.Day7: {0.8, 0.6}, domain.Day30: {1.2, 0.8}, domain.Day90: {1.8, 1.2}, domain.Day180: {2.5, 1.5},
	},
	domain.ChannelGamblingStreamers: {
		domain.Day7: {1.2, 0.8}, domain.Day30: {2.0, 1.0}, domain.Day90: {3.2, 1.5}, domain.Day180: {4.5, 2.0},
	},
	domain.ChannelSportsCappers: {
		domain.Day7: {0.9, 0.5}, domain.Day30: {1.5, 0.7}, domain.Day90: {2.3, 1.0}, domain.Day180: {3.2, 1.3},
	},
	domain.ChannelInfluencerAffiliates: {
		domain.Day7: {1.0, 0.7}, domain.Day30: {1.8, 0.9}, domain.Day90: {2.8, 1.3}, domain.Day180: {3.8, 1.8},
	},
	domain.ChannelTrafficAffiliates: {
		domain.Day7: {0.6, 0.4}, domain.Day30: {1.0, 0.6}, domain.Day90: {1.5, 0.8}, domain.Day180: {2.0, 1.0},
	},
}

// RangeFor retorna o intervalo configurado para o canal e horizonte
func RangeFor(channel domain.Channel, h domain.Horizon) (Range, bool) {
	byHorizon, ok := ranges[channel]
	if !ok {
		return Range{}, false
	}
	r, ok := byHorizon[h]
	return r, ok
}

// Generator produz séries de cohort. Não é idempotente: cada chamada sorteia novos valores.
type Generator struct {
	random RandSource
}

// NewGenerator cria um gerador com a fonte aleatória informada.
// Com fonte nil usa um gerador com semente baseada no relógio.
func NewGenerator(random RandSource) *Generator {
	if random == nil {
		random = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)).Float64
	}
	return &Generator{random: random}
}

// NewSeededGenerator cria um gerador reprodutível a partir de uma semente
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed)).Float64)
}

// Generate produz WeekCount semanas a partir de StartDate, em ordem crescente.
// Ordem dos sorteios: semanas, canais na ordem de exibição, horizontes crescentes.
func (g *Generator) Generate() domain.CohortSeries {
	series := make(domain.CohortSeries, 0, WeekCount)

	for i := 0; i < WeekCount; i++ {
		date := StartDate.AddDate(0, 0, i*daysPerWeek)

		week := domain.CohortWeek{
			Index:     i,
			Week:      weekLabel(i),
			Date:      date,
			DateLabel: date.Format(DateLabelLayout),
			Values:    make(map[domain.Channel]domain.HorizonValues, len(ranges)),
		}

		for _, channel := range domain.Channels() {
			values := make(domain.HorizonValues, 4)
			for _, h := range domain.Horizons() {
				r := ranges[channel][h]
				values[h] = r.Base + g.random()*r.Spread
			}
			week.Values[channel] = values
		}

		series = append(series, week)
	}

	return series
}

func weekLabel(index int) string {
	return fmt.Sprintf("Week %d", index+1)
}
