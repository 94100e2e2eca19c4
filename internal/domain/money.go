package domain

import "math"

// RoundMoney rounds an amount to cents. Used only when presenting prices.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
