package domain

import "time"

// PriceBar is one OHLCV observation for a single trading period.
// Bars are always handled as chronologically ordered slices; the
// core treats them as read-only.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

func Closes(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	return closes
}
