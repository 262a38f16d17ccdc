package indicator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		out := SMA([]float64{1, 2, 3, 4, 5}, 3)
		require.Equal(t, "", cmp.Diff([]float64{2, 3, 4}, out))
	})

	t.Run("series shorter than period", func(t *testing.T) {
		require.Nil(t, SMA([]float64{1, 2}, 3))
	})

	t.Run("period equals length", func(t *testing.T) {
		out := SMA([]float64{2, 4, 6}, 3)
		require.Equal(t, []float64{4}, out)
	})
}

func TestEMA(t *testing.T) {
	t.Run("seeded from sma", func(t *testing.T) {
		out := EMA([]float64{1, 2, 3, 4, 5}, 3)
		require.Len(t, out, 3)
		require.Equal(t, 2.0, out[0])
		// k = 2/(3+1) = 0.5
		require.InDelta(t, 4*0.5+2*0.5, out[1], 1e-9)
		require.InDelta(t, 5*0.5+3*0.5, out[2], 1e-9)
	})

	t.Run("insufficient data", func(t *testing.T) {
		require.Nil(t, EMA([]float64{1}, 3))
	})
}

func TestRSI(t *testing.T) {
	t.Run("all gains reads 100", func(t *testing.T) {
		out := RSI([]float64{1, 2, 3, 4, 5, 6}, 3)
		require.Len(t, out, 3)
		for _, v := range out {
			require.Equal(t, 100.0, v)
		}
	})

	t.Run("all losses reads 0", func(t *testing.T) {
		out := RSI([]float64{6, 5, 4, 3, 2, 1}, 3)
		require.Len(t, out, 3)
		for _, v := range out {
			require.InDelta(t, 0.0, v, 1e-9)
		}
	})

	t.Run("bounded between 0 and 100", func(t *testing.T) {
		values := []float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16}
		for _, v := range RSI(values, 4) {
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 100.0)
		}
	})

	t.Run("needs period+1 bars", func(t *testing.T) {
		require.Nil(t, RSI([]float64{1, 2, 3}, 3))
	})
}

func TestMACD(t *testing.T) {
	t.Run("alignment", func(t *testing.T) {
		values := make([]float64, 40)
		for i := range values {
			values[i] = float64(i + 1)
		}
		out := MACD(values, 3, 6, 4)

		// macd aligned to the slow ema: 40-6+1 points
		require.Len(t, out.MACD, 35)
		require.Len(t, out.Signal, 32)
		require.Len(t, out.Histogram, 32)

		for i := range out.Signal {
			require.InDelta(t, out.MACD[i+3]-out.Signal[i], out.Histogram[i], 1e-9)
		}
	})

	t.Run("inverted periods flip the sign", func(t *testing.T) {
		values := make([]float64, 40)
		for i := range values {
			values[i] = float64(i%7) + 10
		}
		normal := MACD(values, 3, 6, 4)
		inverted := MACD(values, 6, 3, 4)

		require.Len(t, inverted.MACD, len(normal.MACD))
		for i := range normal.MACD {
			require.InDelta(t, -normal.MACD[i], inverted.MACD[i], 1e-9)
		}
		require.Len(t, inverted.Signal, len(normal.Signal))
		for i := range normal.Signal {
			require.InDelta(t, -normal.Signal[i], inverted.Signal[i], 1e-9)
		}
	})

	t.Run("insufficient data", func(t *testing.T) {
		out := MACD([]float64{1, 2, 3}, 3, 6, 4)
		require.Nil(t, out.MACD)
	})
}

func TestBollingerBands(t *testing.T) {
	t.Run("constant series collapses bands", func(t *testing.T) {
		out := BollingerBands([]float64{5, 5, 5, 5, 5}, 3, 2)
		require.Len(t, out.Middle, 3)
		for i := range out.Middle {
			require.Equal(t, 5.0, out.Middle[i])
			require.Equal(t, 5.0, out.Upper[i])
			require.Equal(t, 5.0, out.Lower[i])
		}
	})

	t.Run("bands bracket the middle", func(t *testing.T) {
		values := []float64{10, 11, 9, 12, 8, 13, 7}
		out := BollingerBands(values, 3, 2)
		require.Len(t, out.Middle, 5)
		for i := range out.Middle {
			require.Greater(t, out.Upper[i], out.Middle[i])
			require.Less(t, out.Lower[i], out.Middle[i])
		}
	})
}
