package domain

// PerformanceSummary holds the headline statistics for one backtest
// run. TotalReturn, MaxDrawdown, Volatility and WinRate are expressed
// as percentages; the ratios are unitless and annualized assuming 252
// trading days.
type PerformanceSummary struct {
	InitialCapital float64 `json:"initialCapital"`
	FinalCapital   float64 `json:"finalCapital"`
	TotalReturn    float64 `json:"totalReturn"`
	AbsoluteReturn float64 `json:"absoluteReturn"`
	SharpeRatio    float64 `json:"sharpeRatio"`
	SortinoRatio   float64 `json:"sortinoRatio"`
	CalmarRatio    float64 `json:"calmarRatio"`
	MaxDrawdown    float64 `json:"maxDrawdown"`
	Volatility     float64 `json:"volatility"`
	WinRate        float64 `json:"winRate"`
	TotalTrades    int     `json:"totalTrades"`
}
