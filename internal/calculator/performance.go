// Package calculator derives performance and risk statistics from a
// backtest's equity curve and trade list.
package calculator

import (
	"math"

	"github.com/montanaflynn/stats"

	"quantbacktest/internal/domain"
)

// trading days per year, used for every annualization in this package
const annualizationFactor = 252

// Analyze computes the summary statistics for one backtest run.
// Degenerate inputs (flat equity, zero volatility, no trades) yield 0
// for the affected ratio rather than an error; a backtest with no
// signal activity is a normal boundary condition, not a failure.
func Analyze(equity []float64, trades []domain.Trade, initialCapital float64) domain.PerformanceSummary {
	summary := domain.PerformanceSummary{
		InitialCapital: initialCapital,
		FinalCapital:   initialCapital,
	}

	if len(equity) > 0 {
		summary.FinalCapital = equity[len(equity)-1]
	}
	summary.AbsoluteReturn = summary.FinalCapital - summary.InitialCapital

	totalReturn := 0.0
	if initialCapital != 0 {
		totalReturn = summary.AbsoluteReturn / initialCapital
	}
	summary.TotalReturn = totalReturn * 100

	returns := DailyReturns(equity)
	meanReturn, _ := stats.Mean(returns)
	if len(returns) == 0 {
		meanReturn = 0
	}

	variance, _ := stats.PopulationVariance(returns)
	volatility := math.Sqrt(variance * annualizationFactor)
	summary.Volatility = volatility * 100

	if volatility > 0 {
		summary.SharpeRatio = meanReturn * annualizationFactor / volatility
	}

	if downside := downsideDeviation(returns, meanReturn); downside > 0 {
		summary.SortinoRatio = meanReturn * annualizationFactor / downside
	}

	maxDrawdown := MaxDrawdown(equity)
	summary.MaxDrawdown = maxDrawdown * 100
	if maxDrawdown > 0 {
		summary.CalmarRatio = totalReturn * annualizationFactor / 365 / maxDrawdown
	}

	sells, wins := 0, 0
	for _, trade := range trades {
		if trade.Type == domain.TradeSell {
			sells++
			if trade.Proceeds > 0 {
				wins++
			}
		}
	}
	summary.TotalTrades = sells
	if sells > 0 {
		summary.WinRate = float64(wins) / float64(sells) * 100
	}

	return summary
}

// DailyReturns converts an equity curve into simple period returns.
// A zero equity point cannot produce a meaningful return, so the step
// off it contributes 0 instead of dividing by zero.
func DailyReturns(equity []float64) []float64 {
	if len(equity) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(equity)-1)
	for i := 0; i < len(equity)-1; i++ {
		if equity[i] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (equity[i+1]-equity[i])/equity[i])
	}
	return returns
}

// MaxDrawdown returns the largest peak-to-trough decline as a
// positive fraction of the peak.
func MaxDrawdown(equity []float64) float64 {
	maxDrawdown := 0.0
	peak := math.Inf(-1)
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}
	return maxDrawdown
}

// downsideDeviation measures dispersion below the mean using only the
// negative returns: sqrt of the average squared deviation of each
// negative return from meanReturn.
func downsideDeviation(returns []float64, meanReturn float64) float64 {
	sum, n := 0.0, 0
	for _, r := range returns {
		if r < 0 {
			dev := r - meanReturn
			sum += dev * dev
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(n))
}
