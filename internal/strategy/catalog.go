package strategy

// ParamSpec describes one tunable parameter so the caller can render
// a configuration form and validate ranges client-side.
type ParamSpec struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Default     float64 `json:"default"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Description string  `json:"description"`
}

type Info struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Parameters  []ParamSpec `json:"parameters"`
}

// Catalog lists every supported strategy with its parameter metadata,
// in a stable order.
func Catalog() []Info {
	return []Info{
		{
			ID:          MovingAverageCrossover,
			Name:        "Moving Average Crossover",
			Description: "Trend-following strategy trading golden and death crosses of a fast and slow SMA",
			Category:    "trend-following",
			Parameters: []ParamSpec{
				{Name: "fastPeriod", Type: "int", Default: 10, Min: 5, Max: 50, Description: "Fast SMA period"},
				{Name: "slowPeriod", Type: "int", Default: 20, Min: 10, Max: 100, Description: "Slow SMA period"},
			},
		},
		{
			ID:          MeanReversion,
			Name:        "Mean Reversion",
			Description: "Fades extremes using Bollinger Bands confirmed by RSI",
			Category:    "mean-reversion",
			Parameters: []ParamSpec{
				{Name: "bbPeriod", Type: "int", Default: 20, Min: 10, Max: 50, Description: "Bollinger Band period"},
				{Name: "stdDev", Type: "float", Default: 2, Min: 1, Max: 3, Description: "Standard deviation multiplier"},
				{Name: "rsiPeriod", Type: "int", Default: 14, Min: 10, Max: 30, Description: "RSI period"},
				{Name: "overbought", Type: "int", Default: 70, Min: 60, Max: 80, Description: "RSI overbought threshold"},
				{Name: "oversold", Type: "int", Default: 30, Min: 20, Max: 40, Description: "RSI oversold threshold"},
			},
		},
		{
			ID:          Momentum,
			Name:        "Momentum",
			Description: "Trend-following strategy trading the trailing lookback return against a threshold",
			Category:    "momentum",
			Parameters: []ParamSpec{
				{Name: "lookback", Type: "int", Default: 20, Min: 10, Max: 60, Description: "Lookback period"},
				{Name: "threshold", Type: "float", Default: 0.05, Min: 0.01, Max: 0.20, Description: "Momentum threshold"},
			},
		},
		{
			ID:          BollingerBands,
			Name:        "Bollinger Bands",
			Description: "Mean-reversion strategy trading touches of the outer bands",
			Category:    "mean-reversion",
			Parameters: []ParamSpec{
				{Name: "period", Type: "int", Default: 20, Min: 10, Max: 50, Description: "Bollinger Band period"},
				{Name: "stdDev", Type: "float", Default: 2, Min: 1, Max: 3, Description: "Standard deviation multiplier"},
			},
		},
		{
			ID:          RSIDivergence,
			Name:        "RSI Divergence",
			Description: "Reversal strategy trading price/RSI divergences",
			Category:    "oscillator",
			Parameters: []ParamSpec{
				{Name: "rsiPeriod", Type: "int", Default: 14, Min: 10, Max: 30, Description: "RSI period"},
				{Name: "divergencePeriod", Type: "int", Default: 20, Min: 10, Max: 50, Description: "Divergence detection window"},
			},
		},
		{
			ID:          MACDCrossover,
			Name:        "MACD Crossover",
			Description: "Trend-following strategy trading MACD line crosses of its signal line",
			Category:    "trend-following",
			Parameters: []ParamSpec{
				{Name: "fast", Type: "int", Default: 12, Min: 8, Max: 20, Description: "Fast EMA period"},
				{Name: "slow", Type: "int", Default: 26, Min: 20, Max: 40, Description: "Slow EMA period"},
				{Name: "signalPeriod", Type: "int", Default: 9, Min: 5, Max: 15, Description: "Signal line EMA period"},
			},
		},
	}
}
