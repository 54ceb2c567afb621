package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Horizon é a janela de retorno em dias de uma cohort
type Horizon int

const (
	Day7   Horizon = 7
	Day30  Horizon = 30
	Day90  Horizon = 90
	Day180 Horizon = 180
)

const horizonLabelPrefix = "Day "

// Horizons retorna os horizontes em ordem crescente
func Horizons() []Horizon {
	return []Horizon{Day7, Day30, Day90, Day180}
}

func (h Horizon) IsValid() bool {
	switch h {
	case Day7, Day30, Day90, Day180:
		return true
	}
	return false
}

// Label retorna o rótulo exibido no filtro (ex: "Day 7")
func (h Horizon) Label() string {
	return horizonLabelPrefix + strconv.Itoa(int(h))
}

// Field retorna o sufixo do campo interno (ex: "d7")
func (h Horizon) Field() string {
	return "d" + strconv.Itoa(int(h))
}

func (h Horizon) String() string {
	return h.Label()
}

// HorizonLabels retorna os rótulos na ordem do seletor de período
func HorizonLabels() []string {
	labels := make([]string, 0, 4)
	for _, h := range Horizons() {
		labels = append(labels, h.Label())
	}
	return labels
}

// ParseHorizon converte um rótulo "Day N" para o horizonte correspondente
func ParseHorizon(label string) (Horizon, error) {
	trimmed := strings.TrimSpace(label)
	if !strings.HasPrefix(trimmed, horizonLabelPrefix) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownHorizon, label)
	}

	days, err := strconv.Atoi(strings.TrimPrefix(trimmed, horizonLabelPrefix))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownHorizon, label)
	}

	h := Horizon(days)
	if !h.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownHorizon, label)
	}
	return h, nil
}

// MetricKey monta a chave de lookup por canal e horizonte (ex: "Paid Media_d7")
func MetricKey(channel Channel, horizonLabel string) (string, error) {
	h, err := ParseHorizon(horizonLabel)
	if err != nil {
		return "", err
	}
	return metricKey(channel, h), nil
}

func metricKey(channel Channel, h Horizon) string {
	return string(channel) + "_" + h.Field()
}
