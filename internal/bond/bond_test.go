package bond

import (
	"testing"

	"quantbacktest/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	t.Run("prices at par when yield equals coupon", func(t *testing.T) {
		analysis, err := Analyze(Bond{
			ParValue:         1000,
			AnnualCouponRate: 0.05,
			YearsToMaturity:  10,
			PaymentsPerYear:  2,
		}, 0.05)
		require.NoError(t, err)
		require.InDelta(t, 1000, analysis.Price, 1e-6)
	})

	t.Run("zero coupon duration equals maturity", func(t *testing.T) {
		analysis, err := Analyze(Bond{
			ParValue:         1000,
			AnnualCouponRate: 0,
			YearsToMaturity:  5,
			PaymentsPerYear:  1,
		}, 0.04)
		require.NoError(t, err)
		require.InDelta(t, 5.0, analysis.MacaulayDuration, 1e-9)
		require.Less(t, analysis.ModifiedDuration, analysis.MacaulayDuration)
	})

	t.Run("higher yield lowers price", func(t *testing.T) {
		b := Bond{ParValue: 1000, AnnualCouponRate: 0.05, YearsToMaturity: 10, PaymentsPerYear: 2}
		cheap, err := Analyze(b, 0.08)
		require.NoError(t, err)
		rich, err := Analyze(b, 0.03)
		require.NoError(t, err)
		require.Less(t, cheap.Price, rich.Price)
	})

	t.Run("duration and convexity shape the shift estimate", func(t *testing.T) {
		analysis, err := Analyze(Bond{
			ParValue:         1000,
			AnnualCouponRate: 0.05,
			YearsToMaturity:  10,
			PaymentsPerYear:  2,
		}, 0.05)
		require.NoError(t, err)
		require.Greater(t, analysis.Convexity, 0.0)
		// a rate rise hurts, but convexity softens the duration-only estimate
		require.Less(t, analysis.PriceChangeFor1Pct, 0.0)
		require.Greater(t, analysis.PriceChangeFor1Pct, -analysis.ModifiedDuration*0.01)
	})

	t.Run("rejects invalid bonds", func(t *testing.T) {
		_, err := Analyze(Bond{ParValue: 0, YearsToMaturity: 5, PaymentsPerYear: 2}, 0.05)
		require.Error(t, err)
	})
}

func TestAnalyzeOnCurve(t *testing.T) {
	curve := domain.YieldCurve{Rates: map[int]float64{
		12:  0.03,
		60:  0.04,
		120: 0.05,
	}}

	analysis, err := AnalyzeOnCurve(Bond{
		ParValue:         1000,
		AnnualCouponRate: 0.04,
		YearsToMaturity:  5,
		PaymentsPerYear:  2,
	}, curve)
	require.NoError(t, err)
	// five years maps straight onto the 60 month tenor, where the
	// coupon matches the curve
	require.InDelta(t, 1000, analysis.Price, 1e-6)
	require.InDelta(t, 0.04, analysis.Yield, 1e-12)
}

func TestYieldCurveInterpolation(t *testing.T) {
	curve := domain.YieldCurve{Rates: map[int]float64{
		12: 0.02,
		36: 0.04,
	}}

	rate, err := curve.GetRate(24)
	require.NoError(t, err)
	require.InDelta(t, 0.03, rate, 1e-12)

	rate, err = curve.GetRate(6)
	require.NoError(t, err)
	require.Equal(t, 0.02, rate)

	rate, err = curve.GetRate(120)
	require.NoError(t, err)
	require.Equal(t, 0.04, rate)

	_, err = domain.YieldCurve{}.GetRate(12)
	require.Error(t, err)
}
