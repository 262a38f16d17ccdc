package portfolio

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/montanaflynn/stats"
)

// RiskReport describes a weighted portfolio against its historical
// return series. VaR values are the loss-side return thresholds at
// 95%/99% confidence; RiskContributions is the Euler decomposition,
// so the contributions sum to Risk.
type RiskReport struct {
	ExpectedReturn       float64   `json:"expectedReturn"`
	Risk                 float64   `json:"risk"`
	SharpeRatio          float64   `json:"sharpeRatio"`
	VaR95                float64   `json:"var95"`
	VaR99                float64   `json:"var99"`
	MaxDrawdown          float64   `json:"maxDrawdown"`
	DiversificationRatio float64   `json:"diversificationRatio"`
	RiskContributions    []float64 `json:"riskContributions"`
}

// Analyze computes the risk profile of the weighted portfolio over
// its historical joint return series.
func Analyze(weights []float64, returns [][]float64) (*RiskReport, error) {
	if err := validateWeights(weights, returns); err != nil {
		return nil, err
	}

	cov := Covariance(returns)
	means := assetMeans(returns)
	cw := matVec(cov, weights)

	report := &RiskReport{
		ExpectedReturn: dot(weights, means),
		Risk:           math.Sqrt(dot(weights, cw)),
	}
	if report.Risk > 0 {
		report.SharpeRatio = report.ExpectedReturn / report.Risk
	}

	report.RiskContributions = make([]float64, len(weights))
	if report.Risk > 0 {
		for i := range weights {
			report.RiskContributions[i] = weights[i] * cw[i] / report.Risk
		}
	}

	weightedStdev := 0.0
	for i, series := range returns {
		sd, err := stats.StandardDeviationPopulation(series)
		if err != nil {
			return nil, fmt.Errorf("failed to compute stdev for asset %d: %w", i, err)
		}
		weightedStdev += weights[i] * sd
	}
	if report.Risk > 0 {
		report.DiversificationRatio = weightedStdev / report.Risk
	}

	// historical portfolio path for the drawdown and VaR figures
	portReturns := portfolioReturns(weights, returns)
	report.MaxDrawdown = drawdownOfReturns(portReturns)

	sorted := append([]float64{}, portReturns...)
	sort.Float64s(sorted)
	report.VaR95 = percentile(sorted, 5)
	report.VaR99 = percentile(sorted, 1)

	return report, nil
}

// SimulationResult is the output of one Monte Carlo run. Percentiles
// is keyed p1..p99 over the ascending simulated distribution;
// CumulativeReturns compounds the draws in draw order and MaxDrawdown
// is measured on that compounded path.
type SimulationResult struct {
	SimulatedReturns  []float64          `json:"simulatedReturns"`
	Percentiles       map[string]float64 `json:"percentiles"`
	CumulativeReturns []float64          `json:"cumulativeReturns"`
	MaxDrawdown       float64            `json:"maxDrawdown"`
	VaR95             float64            `json:"var95"`
	VaR99             float64            `json:"var99"`
}

// Simulate bootstrap-resamples the historical returns numSimulations
// times. Each trial draws one observation index independently and
// uniformly per asset, so cross-asset correlation enters only through
// the weighting, not through joint resampling. The caller supplies the
// random source so runs are reproducible under a fixed seed.
func Simulate(weights []float64, returns [][]float64, numSimulations int, rng *rand.Rand) (*SimulationResult, error) {
	if err := validateWeights(weights, returns); err != nil {
		return nil, err
	}
	if numSimulations <= 0 {
		return nil, fmt.Errorf("numSimulations must be positive, got %d", numSimulations)
	}

	obs := len(returns[0])
	simulated := make([]float64, numSimulations)
	for trial := 0; trial < numSimulations; trial++ {
		total := 0.0
		for i, series := range returns {
			total += weights[i] * series[rng.Intn(obs)]
		}
		simulated[trial] = total
	}

	sorted := append([]float64{}, simulated...)
	sort.Float64s(sorted)

	percentiles := map[string]float64{}
	for _, p := range []int{1, 5, 10, 25, 50, 75, 90, 95, 99} {
		percentiles[fmt.Sprintf("p%d", p)] = percentile(sorted, p)
	}

	cumulative := make([]float64, numSimulations)
	growth := 1.0
	for i, r := range simulated {
		growth *= 1 + r
		cumulative[i] = growth - 1
	}

	return &SimulationResult{
		SimulatedReturns:  simulated,
		Percentiles:       percentiles,
		CumulativeReturns: cumulative,
		MaxDrawdown:       drawdownOfReturns(simulated),
		VaR95:             percentiles["p5"],
		VaR99:             percentiles["p1"],
	}, nil
}

func validateWeights(weights []float64, returns [][]float64) error {
	if err := validateReturns(returns); err != nil {
		return err
	}
	if len(weights) != len(returns) {
		return fmt.Errorf("got %d weights for %d assets", len(weights), len(returns))
	}
	return nil
}

func portfolioReturns(weights []float64, returns [][]float64) []float64 {
	obs := len(returns[0])
	out := make([]float64, obs)
	for t := 0; t < obs; t++ {
		total := 0.0
		for i := range returns {
			total += weights[i] * returns[i][t]
		}
		out[t] = total
	}
	return out
}

// drawdownOfReturns compounds the return sequence into an equity path
// and returns its largest peak-to-trough decline as a positive
// fraction.
func drawdownOfReturns(returns []float64) float64 {
	equity := 1.0
	peak := 1.0
	maxDrawdown := 0.0
	for _, r := range returns {
		equity *= 1 + r
		if equity > peak {
			peak = equity
		}
		if dd := (peak - equity) / peak; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}
	return maxDrawdown
}

// percentile indexes the ascending slice at floor(N*p/100).
func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
