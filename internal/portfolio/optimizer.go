// Package portfolio implements Modern Portfolio Theory weight
// optimization and the accompanying risk analytics. The optimizers
// use a fixed-iteration projected-gradient heuristic: descend the
// objective's gradient, clamp negative weights to zero, renormalize.
// That is a local-improvement method, not a certified optimum.
package portfolio

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

const (
	MethodEqual       = "equal"
	MethodMinVariance = "min-variance"
	MethodMaxSharpe   = "max-sharpe"
	MethodRiskParity  = "risk-parity"
)

var ErrUnknownMethod = errors.New("unknown optimization method")

const (
	optimizerIterations = 100
	learningRate        = 0.01
)

type Optimization struct {
	Weights     []float64 `json:"weights"`
	Method      string    `json:"method"`
	Description string    `json:"description"`
}

// Optimize computes target weights for the given per-asset return
// series. Weights are non-negative and sum to 1. The computation is
// fully deterministic: identical inputs produce identical weights.
func Optimize(returns [][]float64, method string) (*Optimization, error) {
	if err := validateReturns(returns); err != nil {
		return nil, err
	}

	switch method {
	case MethodEqual:
		return &Optimization{
			Weights:     equalWeights(len(returns)),
			Method:      method,
			Description: "Equal weight across all assets",
		}, nil
	case MethodMinVariance:
		weights := descend(returns, varianceGradient)
		return &Optimization{
			Weights:     weights,
			Method:      method,
			Description: "Gradient heuristic minimizing portfolio variance",
		}, nil
	case MethodMaxSharpe:
		weights := descend(returns, negativeSharpeGradient)
		return &Optimization{
			Weights:     weights,
			Method:      method,
			Description: "Gradient heuristic maximizing the Sharpe ratio",
		}, nil
	case MethodRiskParity:
		weights := descend(returns, riskParityGradient)
		return &Optimization{
			Weights:     weights,
			Method:      method,
			Description: "Gradient heuristic equalizing risk contributions",
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
}

func validateReturns(returns [][]float64) error {
	if len(returns) == 0 {
		return fmt.Errorf("at least one asset return series is required")
	}
	obs := len(returns[0])
	if obs == 0 {
		return fmt.Errorf("return series are empty")
	}
	for i, series := range returns {
		if len(series) != obs {
			return fmt.Errorf("asset %d has %d observations, expected %d", i, len(series), obs)
		}
	}
	return nil
}

func equalWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1 / float64(n)
	}
	return weights
}

// gradientFunc computes the per-asset descent direction for one
// iteration, given the current weights and the precomputed inputs.
type gradientFunc func(weights []float64, cov [][]float64, means []float64) []float64

// descend runs the shared projected-gradient loop. The covariance
// matrix and mean vector are computed once and reused across all
// iterations.
func descend(returns [][]float64, gradient gradientFunc) []float64 {
	cov := Covariance(returns)
	means := assetMeans(returns)

	weights := equalWeights(len(returns))
	for iter := 0; iter < optimizerIterations; iter++ {
		grad := gradient(weights, cov, means)
		for i := range weights {
			weights[i] = math.Max(0, weights[i]-learningRate*grad[i])
		}
		renormalize(weights)
	}
	return weights
}

func varianceGradient(weights []float64, cov [][]float64, _ []float64) []float64 {
	cw := matVec(cov, weights)
	grad := make([]float64, len(weights))
	for i := range grad {
		grad[i] = 2 * cw[i]
	}
	return grad
}

// negativeSharpeGradient descends -Sharpe: each asset's excess-return
// contribution is traded off against its marginal risk.
func negativeSharpeGradient(weights []float64, cov [][]float64, means []float64) []float64 {
	cw := matVec(cov, weights)
	portReturn := dot(weights, means)
	portVariance := dot(weights, cw)
	portStd := math.Sqrt(portVariance)

	grad := make([]float64, len(weights))
	if portStd == 0 {
		return grad
	}
	for i := range grad {
		dSharpe := (means[i]*portVariance - portReturn*cw[i]) / (portVariance * portStd)
		grad[i] = -dSharpe
	}
	return grad
}

// riskParityGradient pushes each asset's risk contribution toward the
// equal-contribution target.
func riskParityGradient(weights []float64, cov [][]float64, _ []float64) []float64 {
	cw := matVec(cov, weights)
	portStd := math.Sqrt(dot(weights, cw))

	grad := make([]float64, len(weights))
	if portStd == 0 {
		return grad
	}
	target := portStd / float64(len(weights))
	for i := range grad {
		contribution := weights[i] * cw[i] / portStd
		grad[i] = contribution - target
	}
	return grad
}

// renormalize scales weights to sum to 1, falling back to equal
// weights if the clamp zeroed everything out.
func renormalize(weights []float64) {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		for i := range weights {
			weights[i] = 1 / float64(len(weights))
		}
		return
	}
	for i := range weights {
		weights[i] /= sum
	}
}

// Covariance computes the population covariance matrix (divide by N)
// between each pair of asset return series.
func Covariance(returns [][]float64) [][]float64 {
	n := len(returns)
	means := assetMeans(returns)

	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
	}
	obs := float64(len(returns[0]))

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := 0.0
			for t := range returns[i] {
				sum += (returns[i][t] - means[i]) * (returns[j][t] - means[j])
			}
			cov[i][j] = sum / obs
			cov[j][i] = cov[i][j]
		}
	}
	return cov
}

func assetMeans(returns [][]float64) []float64 {
	means := make([]float64, len(returns))
	for i, series := range returns {
		m, err := stats.Mean(series)
		if err != nil {
			m = 0
		}
		means[i] = m
	}
	return means
}

func matVec(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		out[i] = dot(row, v)
	}
	return out
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
