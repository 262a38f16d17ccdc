package domain

import "time"

type SignalType string

const (
	Buy  SignalType = "BUY"
	Sell SignalType = "SELL"
	Hold SignalType = "HOLD"
)

// Signal is one strategy decision for one evaluated bar. Indicators
// holds the strategy-specific diagnostic values that produced the
// decision (e.g. fastMA/slowMA for a crossover strategy).
type Signal struct {
	Date       time.Time          `json:"date"`
	Signal     SignalType         `json:"signal"`
	Price      float64            `json:"price"`
	Indicators map[string]float64 `json:"indicators,omitempty"`
}
