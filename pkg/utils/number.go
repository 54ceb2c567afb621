package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// RoundWithOneDecimalPlace normaliza -0 para 0
func RoundWithOneDecimalPlace(f float64) float64 {
	rounded := math.Round(f*10) / 10
	if rounded == 0 {
		return 0
	}

	return rounded
}
