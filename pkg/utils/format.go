package utils

import (
	"fmt"
	"math"

	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

const (
	// ZeroRatio é exibido quando o valor está ausente, para não deixar células em branco
	ZeroRatio = "0.00x"
	// NoTrend é exibido quando a tendência não pode ser calculada
	NoTrend = "—"

	heatmapCeiling = 5.0
)

// FormatRatio formata um ROAS com duas casas e sufixo "x".
// Valor ausente ou não finito vira "0.00x".
func FormatRatio(value *float64) string {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return ZeroRatio
	}
	return fmt.Sprintf("%.2fx", RoundWithTwoDecimalPlace(*value))
}

// FormatTrendPercent formata um percentual com uma casa, sempre com sinal para não negativos.
// O arredondamento é para longe do zero (-3.25 vira -3.3%).
func FormatTrendPercent(value float64) string {
	rounded := RoundWithOneDecimalPlace(value)
	if rounded >= 0 {
		return fmt.Sprintf("+%.1f%%", rounded)
	}
	return fmt.Sprintf("%.1f%%", rounded)
}

// FormatTrend formata uma tendência, usando NoTrend quando indisponível
func FormatTrend(trend domain.Trend) string {
	if !trend.Available {
		return NoTrend
	}
	return FormatTrendPercent(trend.Value)
}

// HeatmapIntensity normaliza o ROAS para [0, 1], saturando em 5x
func HeatmapIntensity(value float64) float64 {
	if math.IsNaN(value) || value <= 0 {
		return 0
	}
	return math.Min(value/heatmapCeiling, 1)
}

// HeatmapColor retorna a cor de fundo da célula do heatmap
func HeatmapColor(intensity float64) string {
	return fmt.Sprintf("rgba(139, 92, 246, %.3f)", intensity*0.5)
}
