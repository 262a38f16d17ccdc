package chart

import (
	"testing"
	"time"

	"quantbacktest/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestEquityCurve(t *testing.T) {
	t.Run("renders a png", func(t *testing.T) {
		equity := []float64{100_000, 100_500, 99_800, 101_200, 102_000}
		signals := make([]domain.Signal, 4)
		start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
		for i := range signals {
			signals[i] = domain.Signal{Date: start.AddDate(0, 0, i), Signal: domain.Hold, Price: 100}
		}

		img, err := EquityCurve("AAPL moving-average-crossover", equity, signals)
		require.NoError(t, err)
		require.NotEmpty(t, img)
		// png magic bytes
		require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img[:4])
	})

	t.Run("too few points", func(t *testing.T) {
		_, err := EquityCurve("x", []float64{100_000}, nil)
		require.Error(t, err)
	})
}
