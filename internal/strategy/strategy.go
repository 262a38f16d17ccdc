// Package strategy turns a price series into a chronological stream
// of BUY/SELL/HOLD signals for one of the six supported strategies.
package strategy

import (
	"errors"
	"fmt"

	"quantbacktest/internal/domain"
)

const (
	MovingAverageCrossover = "moving-average-crossover"
	MeanReversion          = "mean-reversion"
	Momentum               = "momentum"
	BollingerBands         = "bollinger-bands"
	RSIDivergence          = "rsi-divergence"
	MACDCrossover          = "macd-crossover"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Params carries strategy parameters by name. Missing keys fall back
// to the documented defaults.
type Params map[string]float64

func (p Params) get(key string, fallback float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return fallback
}

func (p Params) getInt(key string, fallback int) int {
	if v, ok := p[key]; ok {
		return int(v)
	}
	return fallback
}

// GenerateSignals evaluates the given strategy over the bars and
// returns one signal per evaluated bar (bars inside the indicator
// warm-up window are skipped). A series shorter than the warm-up
// yields an empty sequence, not an error.
func GenerateSignals(bars []domain.PriceBar, strategyID string, params Params) ([]domain.Signal, error) {
	switch strategyID {
	case MovingAverageCrossover:
		return movingAverageCrossover(bars, params), nil
	case MeanReversion:
		return meanReversion(bars, params), nil
	case Momentum:
		return momentum(bars, params), nil
	case BollingerBands:
		return bollingerBands(bars, params), nil
	case RSIDivergence:
		return rsiDivergence(bars, params), nil
	case MACDCrossover:
		return macdCrossover(bars, params), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategyID)
}

// condition is the raw per-bar state of a strategy's entry and exit
// rules, before edge triggering is applied.
type condition struct {
	buy  bool
	sell bool
}

// signalsFromConditions applies the shared tie-break rule: a signal
// fires only on the bar where its condition first becomes true, so a
// condition that stays true emits one signal, not a run of them.
// conds[j] describes the bar at index start+j; indicators reports the
// diagnostic values for that bar.
func signalsFromConditions(bars []domain.PriceBar, start int, conds []condition, indicators func(i int) map[string]float64) []domain.Signal {
	signals := make([]domain.Signal, 0, len(conds))
	prev := condition{}
	for j, cond := range conds {
		i := start + j
		sig := domain.Hold
		if cond.buy && !prev.buy {
			sig = domain.Buy
		} else if cond.sell && !prev.sell {
			sig = domain.Sell
		}
		prev = cond

		signals = append(signals, domain.Signal{
			Date:       bars[i].Date,
			Signal:     sig,
			Price:      bars[i].Close,
			Indicators: indicators(i),
		})
	}
	return signals
}
