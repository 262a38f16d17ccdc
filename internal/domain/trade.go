package domain

import "time"

type TradeType string

const (
	TradeBuy  TradeType = "BUY"
	TradeSell TradeType = "SELL"
)

// Trade is one simulated fill. Cost is set on BUY trades, Proceeds on
// SELL trades; Capital is the mark-to-market account value after the
// fill.
type Trade struct {
	Date     time.Time `json:"date"`
	Type     TradeType `json:"type"`
	Shares   int64     `json:"shares"`
	Price    float64   `json:"price"`
	Cost     float64   `json:"cost,omitempty"`
	Proceeds float64   `json:"proceeds,omitempty"`
	Capital  float64   `json:"capital"`
}

// Position is the account snapshot taken after each signal is
// processed, whether or not it produced a trade.
type Position struct {
	Date        time.Time `json:"date"`
	Shares      int64     `json:"shares"`
	Price       float64   `json:"price"`
	Equity      float64   `json:"equity"`
	Capital     float64   `json:"capital"`
	MarketValue float64   `json:"marketValue"`
}
