// Package indicator implements the technical indicators used by the
// signal generators. Every function is pure and operates on a
// chronologically ordered series of closing prices.
//
// Windowed indicators drop the warm-up prefix: output index i
// corresponds to input index i+period-1 (i+period for RSI, which
// consumes one extra bar for the first delta). Callers combining
// indicators computed at different periods are responsible for
// reconciling the offsets.
package indicator

import "math"

// SMA returns the simple moving average over each sliding window of
// size period. Returns nil when the series is shorter than period.
func SMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	out := make([]float64, 0, len(values)-period+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out
}

// EMA returns the exponential moving average with smoothing factor
// k = 2/(period+1). The first output is seeded with the SMA of the
// first period values, so output index i corresponds to input index
// i+period-1.
func EMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	k := 2.0 / float64(period+1)

	seed := 0.0
	for _, v := range values[:period] {
		seed += v
	}
	seed /= float64(period)

	out := make([]float64, 0, len(values)-period+1)
	out = append(out, seed)
	prev := seed
	for _, v := range values[period:] {
		prev = v*k + prev*(1-k)
		out = append(out, prev)
	}
	return out
}

// RSI returns the relative strength index using Wilder smoothing.
// The first output is derived from the simple average gain/loss of
// the first period deltas, so output index i corresponds to input
// index i+period. Values are in [0,100]; a window with no losses
// reads 100.
func RSI(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period+1 {
		return nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	out := make([]float64, 0, len(values)-period)
	out = append(out, rsiValue(avgGain, avgLoss))

	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out = append(out, rsiValue(avgGain, avgLoss))
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACDResult holds the three MACD series. MACD index j corresponds
// to input index j+max(fast,slow)-1; Signal and Histogram indices
// correspond to input index j+max(fast,slow)-1+signalPeriod-1.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes the MACD line (fast EMA minus slow EMA, aligned to
// the longer of the two EMA series), its signal line (EMA of the MACD
// line) and the histogram (MACD minus signal). Inverted periods
// (fast > slow) are accepted and simply flip the line's sign.
func MACD(values []float64, fast, slow, signalPeriod int) MACDResult {
	fastEMA := EMA(values, fast)
	slowEMA := EMA(values, slow)
	if slowEMA == nil || fastEMA == nil {
		return MACDResult{}
	}

	longer := slow
	if fast > longer {
		longer = fast
	}
	macd := make([]float64, len(values)-longer+1)
	for i := range macd {
		macd[i] = fastEMA[i+longer-fast] - slowEMA[i+longer-slow]
	}

	signal := EMA(macd, signalPeriod)
	if signal == nil {
		return MACDResult{MACD: macd}
	}

	hist := make([]float64, len(signal))
	for i := range signal {
		hist[i] = macd[i+signalPeriod-1] - signal[i]
	}

	return MACDResult{MACD: macd, Signal: signal, Histogram: hist}
}

// Bands holds Bollinger Band series, each aligned so that index i
// corresponds to input index i+period-1.
type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// BollingerBands computes the middle band (SMA) and the upper/lower
// bands at stdDev population standard deviations around it.
func BollingerBands(values []float64, period int, stdDev float64) Bands {
	middle := SMA(values, period)
	if middle == nil {
		return Bands{}
	}

	upper := make([]float64, len(middle))
	lower := make([]float64, len(middle))
	for i, mean := range middle {
		variance := 0.0
		for _, v := range values[i : i+period] {
			variance += (v - mean) * (v - mean)
		}
		sd := math.Sqrt(variance / float64(period))
		upper[i] = mean + stdDev*sd
		lower[i] = mean - stdDev*sd
	}

	return Bands{Upper: upper, Middle: middle, Lower: lower}
}
