package portfolio

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	returns := sampleReturns()
	weights := []float64{0.5, 0.2, 0.3}

	report, err := Analyze(weights, returns)
	require.NoError(t, err)

	t.Run("expected return is the weighted mean", func(t *testing.T) {
		expected := 0.0
		for i, series := range returns {
			mean := 0.0
			for _, r := range series {
				mean += r
			}
			mean /= float64(len(series))
			expected += weights[i] * mean
		}
		require.InDelta(t, expected, report.ExpectedReturn, 1e-12)
	})

	t.Run("euler decomposition sums to portfolio risk", func(t *testing.T) {
		sum := 0.0
		for _, rc := range report.RiskContributions {
			sum += rc
		}
		require.InEpsilon(t, report.Risk, sum, 1e-6)
	})

	t.Run("diversification benefit shows up", func(t *testing.T) {
		require.Greater(t, report.DiversificationRatio, 1.0)
	})

	t.Run("var99 is at least as severe as var95", func(t *testing.T) {
		require.LessOrEqual(t, report.VaR99, report.VaR95)
	})

	t.Run("weight count must match assets", func(t *testing.T) {
		_, err := Analyze([]float64{1}, returns)
		require.Error(t, err)
	})
}

func TestSimulate(t *testing.T) {
	returns := sampleReturns()
	weights := []float64{0.5, 0.2, 0.3}

	t.Run("returns exactly N draws", func(t *testing.T) {
		result, err := Simulate(weights, returns, 500, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		require.Len(t, result.SimulatedReturns, 500)
		require.Len(t, result.CumulativeReturns, 500)
	})

	t.Run("deterministic under a fixed seed", func(t *testing.T) {
		first, err := Simulate(weights, returns, 200, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		second, err := Simulate(weights, returns, 200, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(first, second))
	})

	t.Run("percentiles are ordered", func(t *testing.T) {
		result, err := Simulate(weights, returns, 1000, rand.New(rand.NewSource(7)))
		require.NoError(t, err)

		keys := []string{"p1", "p5", "p10", "p25", "p50", "p75", "p90", "p95", "p99"}
		for i := 1; i < len(keys); i++ {
			require.LessOrEqual(t, result.Percentiles[keys[i-1]], result.Percentiles[keys[i]])
		}
		require.Equal(t, result.Percentiles["p5"], result.VaR95)
		require.Equal(t, result.Percentiles["p1"], result.VaR99)
	})

	t.Run("single constant asset collapses the distribution", func(t *testing.T) {
		constant := [][]float64{{0.01, 0.01, 0.01, 0.01}}
		result, err := Simulate([]float64{1}, constant, 50, rand.New(rand.NewSource(3)))
		require.NoError(t, err)
		for _, r := range result.SimulatedReturns {
			require.InDelta(t, 0.01, r, 1e-12)
		}
		require.Equal(t, 0.0, result.MaxDrawdown)
	})

	t.Run("rejects non-positive trial counts", func(t *testing.T) {
		_, err := Simulate(weights, returns, 0, rand.New(rand.NewSource(1)))
		require.Error(t, err)
	})
}
