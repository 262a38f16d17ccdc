// Package bond implements closed-form price, duration and convexity
// analytics for plain fixed-coupon bonds. These are first-order
// teaching calculators, not a term-structure pricer.
package bond

import (
	"fmt"
	"math"

	"quantbacktest/internal/domain"
)

type Bond struct {
	ParValue         float64 `json:"parValue"`
	AnnualCouponRate float64 `json:"annualCouponRate"`
	YearsToMaturity  float64 `json:"yearsToMaturity"`
	PaymentsPerYear  int     `json:"paymentsPerYear"`
}

func (b Bond) validate() error {
	if b.ParValue <= 0 {
		return fmt.Errorf("par value must be positive, got %f", b.ParValue)
	}
	if b.YearsToMaturity <= 0 {
		return fmt.Errorf("years to maturity must be positive, got %f", b.YearsToMaturity)
	}
	if b.PaymentsPerYear <= 0 {
		return fmt.Errorf("payments per year must be positive, got %d", b.PaymentsPerYear)
	}
	return nil
}

// Analysis describes a bond at a given market yield. Durations are in
// years; PriceChangeFor1Pct estimates the relative price move for a
// +100bp yield shift using the duration/convexity expansion.
type Analysis struct {
	Price              float64 `json:"price"`
	Yield              float64 `json:"yield"`
	MacaulayDuration   float64 `json:"macaulayDuration"`
	ModifiedDuration   float64 `json:"modifiedDuration"`
	Convexity          float64 `json:"convexity"`
	PriceChangeFor1Pct float64 `json:"priceChangeFor1Pct"`
}

// Analyze prices the bond by discounting its cash flows at the given
// annual yield and derives the duration and convexity measures.
func Analyze(b Bond, yield float64) (*Analysis, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	m := float64(b.PaymentsPerYear)
	if yield <= -m {
		return nil, fmt.Errorf("yield %f leaves a non-positive discount factor", yield)
	}

	periods := int(math.Round(b.YearsToMaturity * m))
	if periods == 0 {
		periods = 1
	}
	coupon := b.ParValue * b.AnnualCouponRate / m
	periodYield := yield / m

	price := 0.0
	weightedTime := 0.0
	convexitySum := 0.0
	for t := 1; t <= periods; t++ {
		cashFlow := coupon
		if t == periods {
			cashFlow += b.ParValue
		}
		pv := cashFlow / math.Pow(1+periodYield, float64(t))
		price += pv
		weightedTime += pv * float64(t) / m
		convexitySum += pv * float64(t) * float64(t+1)
	}

	analysis := &Analysis{
		Price: price,
		Yield: yield,
	}
	if price > 0 {
		analysis.MacaulayDuration = weightedTime / price
		analysis.ModifiedDuration = analysis.MacaulayDuration / (1 + periodYield)
		analysis.Convexity = convexitySum / (price * m * m * (1 + periodYield) * (1 + periodYield))
	}

	const shift = 0.01
	analysis.PriceChangeFor1Pct = -analysis.ModifiedDuration*shift + 0.5*analysis.Convexity*shift*shift

	return analysis, nil
}

// AnalyzeOnCurve reads the bond's discount yield off a yield curve at
// the tenor matching its maturity.
func AnalyzeOnCurve(b Bond, curve domain.YieldCurve) (*Analysis, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	rate, err := curve.GetRate(int(math.Round(b.YearsToMaturity * 12)))
	if err != nil {
		return nil, fmt.Errorf("failed to read yield curve: %w", err)
	}
	return Analyze(b, rate)
}
