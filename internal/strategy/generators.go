package strategy

import (
	"quantbacktest/internal/domain"
	"quantbacktest/internal/indicator"
)

// movingAverageCrossover buys on a golden cross (fast SMA crossing
// above slow) and sells on a death cross.
func movingAverageCrossover(bars []domain.PriceBar, params Params) []domain.Signal {
	fastPeriod := params.getInt("fastPeriod", 10)
	slowPeriod := params.getInt("slowPeriod", 20)

	closes := domain.Closes(bars)
	fast := indicator.SMA(closes, fastPeriod)
	slow := indicator.SMA(closes, slowPeriod)
	if fast == nil || slow == nil {
		return []domain.Signal{}
	}

	start := fastPeriod
	if slowPeriod > fastPeriod {
		start = slowPeriod
	}
	start--

	fastAt := func(i int) float64 { return fast[i-(fastPeriod-1)] }
	slowAt := func(i int) float64 { return slow[i-(slowPeriod-1)] }

	conds := make([]condition, 0, len(bars)-start)
	for i := start; i < len(bars); i++ {
		conds = append(conds, condition{
			buy:  fastAt(i) > slowAt(i),
			sell: fastAt(i) < slowAt(i),
		})
	}

	return signalsFromConditions(bars, start, conds, func(i int) map[string]float64 {
		return map[string]float64{
			"fastMA": fastAt(i),
			"slowMA": slowAt(i),
		}
	})
}

// meanReversion buys when price sits on the lower Bollinger Band
// while RSI is oversold, and sells at the upper band while RSI is
// overbought.
func meanReversion(bars []domain.PriceBar, params Params) []domain.Signal {
	bbPeriod := params.getInt("bbPeriod", 20)
	stdDev := params.get("stdDev", 2)
	rsiPeriod := params.getInt("rsiPeriod", 14)
	overbought := params.get("overbought", 70)
	oversold := params.get("oversold", 30)

	closes := domain.Closes(bars)
	bands := indicator.BollingerBands(closes, bbPeriod, stdDev)
	rsi := indicator.RSI(closes, rsiPeriod)
	if bands.Middle == nil || rsi == nil {
		return []domain.Signal{}
	}

	start := bbPeriod - 1
	if rsiPeriod > start {
		start = rsiPeriod
	}

	rsiAt := func(i int) float64 { return rsi[i-rsiPeriod] }
	bandAt := func(i int) (upper, lower float64) {
		return bands.Upper[i-(bbPeriod-1)], bands.Lower[i-(bbPeriod-1)]
	}

	conds := make([]condition, 0, len(bars)-start)
	for i := start; i < len(bars); i++ {
		upper, lower := bandAt(i)
		conds = append(conds, condition{
			buy:  closes[i] <= lower*1.01 && rsiAt(i) <= oversold,
			sell: closes[i] >= upper*0.99 && rsiAt(i) >= overbought,
		})
	}

	return signalsFromConditions(bars, start, conds, func(i int) map[string]float64 {
		upper, lower := bandAt(i)
		return map[string]float64{
			"rsi":       rsiAt(i),
			"upperBand": upper,
			"lowerBand": lower,
		}
	})
}

// momentum buys when the trailing lookback return exceeds the
// threshold and sells when it falls below the negative threshold.
func momentum(bars []domain.PriceBar, params Params) []domain.Signal {
	lookback := params.getInt("lookback", 20)
	threshold := params.get("threshold", 0.05)

	if lookback <= 0 || len(bars) <= lookback {
		return []domain.Signal{}
	}

	closes := domain.Closes(bars)
	momAt := func(i int) float64 {
		base := closes[i-lookback]
		if base == 0 {
			return 0
		}
		return (closes[i] - base) / base
	}

	start := lookback
	conds := make([]condition, 0, len(bars)-start)
	for i := start; i < len(bars); i++ {
		mom := momAt(i)
		conds = append(conds, condition{
			buy:  mom > threshold,
			sell: mom < -threshold,
		})
	}

	return signalsFromConditions(bars, start, conds, func(i int) map[string]float64 {
		return map[string]float64{"momentum": momAt(i)}
	})
}

// bollingerBands buys a touch of the lower band and sells a touch of
// the upper band.
func bollingerBands(bars []domain.PriceBar, params Params) []domain.Signal {
	period := params.getInt("period", 20)
	stdDev := params.get("stdDev", 2)

	closes := domain.Closes(bars)
	bands := indicator.BollingerBands(closes, period, stdDev)
	if bands.Middle == nil {
		return []domain.Signal{}
	}

	start := period - 1
	conds := make([]condition, 0, len(bars)-start)
	for i := start; i < len(bars); i++ {
		j := i - start
		conds = append(conds, condition{
			buy:  closes[i] <= bands.Lower[j],
			sell: closes[i] >= bands.Upper[j],
		})
	}

	return signalsFromConditions(bars, start, conds, func(i int) map[string]float64 {
		j := i - start
		return map[string]float64{
			"upperBand":  bands.Upper[j],
			"middleBand": bands.Middle[j],
			"lowerBand":  bands.Lower[j],
		}
	})
}

// rsiDivergence looks for price and RSI moving in opposite directions
// over the divergence window: a lower price with a higher RSI below 40
// is treated as bullish, a higher price with a lower RSI above 60 as
// bearish.
func rsiDivergence(bars []domain.PriceBar, params Params) []domain.Signal {
	rsiPeriod := params.getInt("rsiPeriod", 14)
	divergencePeriod := params.getInt("divergencePeriod", 20)

	closes := domain.Closes(bars)
	rsi := indicator.RSI(closes, rsiPeriod)
	if rsi == nil || divergencePeriod <= 0 {
		return []domain.Signal{}
	}

	start := rsiPeriod + divergencePeriod
	if len(bars) <= start {
		return []domain.Signal{}
	}

	rsiAt := func(i int) float64 { return rsi[i-rsiPeriod] }

	conds := make([]condition, 0, len(bars)-start)
	for i := start; i < len(bars); i++ {
		priceNow, priceThen := closes[i], closes[i-divergencePeriod]
		rsiNow, rsiThen := rsiAt(i), rsiAt(i-divergencePeriod)
		conds = append(conds, condition{
			buy:  priceNow < priceThen && rsiNow > rsiThen && rsiNow < 40,
			sell: priceNow > priceThen && rsiNow < rsiThen && rsiNow > 60,
		})
	}

	return signalsFromConditions(bars, start, conds, func(i int) map[string]float64 {
		return map[string]float64{"rsi": rsiAt(i)}
	})
}

// macdCrossover buys when the MACD line crosses above its signal line
// and sells on the cross below.
func macdCrossover(bars []domain.PriceBar, params Params) []domain.Signal {
	fast := params.getInt("fast", 12)
	slow := params.getInt("slow", 26)
	signalPeriod := params.getInt("signalPeriod", 9)

	closes := domain.Closes(bars)
	macd := indicator.MACD(closes, fast, slow, signalPeriod)
	if macd.Signal == nil {
		return []domain.Signal{}
	}

	longer := slow
	if fast > longer {
		longer = fast
	}
	start := longer + signalPeriod - 2
	macdAt := func(i int) float64 { return macd.MACD[i-(longer-1)] }
	signalAt := func(i int) float64 { return macd.Signal[i-start] }

	conds := make([]condition, 0, len(bars)-start)
	for i := start; i < len(bars); i++ {
		conds = append(conds, condition{
			buy:  macdAt(i) > signalAt(i),
			sell: macdAt(i) < signalAt(i),
		})
	}

	return signalsFromConditions(bars, start, conds, func(i int) map[string]float64 {
		return map[string]float64{
			"macd":       macdAt(i),
			"macdSignal": signalAt(i),
			"histogram":  macdAt(i) - signalAt(i),
		}
	})
}
