package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quantbacktest/internal/marketdata"
)

func testHandler() ApiHandler {
	gin.SetMode(gin.TestMode)
	return ApiHandler{
		MarketData: marketdata.NewService(0),
		Logger:     zap.NewNop().Sugar(),
	}
}

func post(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func inlineBars(closes []float64) []map[string]any {
	bars := make([]map[string]any, len(closes))
	for i, c := range closes {
		bars[i] = map[string]any{
			"date":   fmt.Sprintf("2023-01-%02dT00:00:00Z", i+1),
			"open":   c,
			"high":   c,
			"low":    c,
			"close":  c,
			"volume": 1000000,
		}
	}
	return bars
}

func TestBacktestResolver(t *testing.T) {
	router := testHandler().Router()

	t.Run("happy path", func(t *testing.T) {
		w := post(t, router, "/backtest", map[string]any{
			"strategy":       "moving-average-crossover",
			"initialCapital": 100000,
			"parameters":     map[string]float64{"fastPeriod": 2, "slowPeriod": 3},
			"data":           inlineBars([]float64{1, 2, 3, 4, 5, 4, 3, 2, 1}),
		})
		require.Equal(t, 200, w.Code)

		var response struct {
			RunID   string    `json:"runId"`
			Equity  []float64 `json:"equity"`
			Signals []any     `json:"signals"`
			Summary struct {
				TotalTrades int `json:"totalTrades"`
			} `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotEmpty(t, response.RunID)
		require.Len(t, response.Equity, len(response.Signals)+1)
		require.Equal(t, 1, response.Summary.TotalTrades)
	})

	t.Run("unknown strategy is a 400", func(t *testing.T) {
		w := post(t, router, "/backtest", map[string]any{
			"strategy": "martingale",
			"data":     inlineBars([]float64{1, 2, 3, 4, 5}),
		})
		require.Equal(t, 400, w.Code)
	})

	t.Run("non-positive close is a 400", func(t *testing.T) {
		bars := inlineBars([]float64{1, 2, 3, 4, 5})
		bars[2]["close"] = 0
		w := post(t, router, "/backtest", map[string]any{
			"strategy": "bollinger-bands",
			"data":     bars,
		})
		require.Equal(t, 400, w.Code)
	})

	t.Run("missing data and symbol is an error", func(t *testing.T) {
		w := post(t, router, "/backtest", map[string]any{
			"strategy": "momentum",
		})
		require.Equal(t, 500, w.Code)
	})
}

func TestStrategiesResolver(t *testing.T) {
	router := testHandler().Router()

	req := httptest.NewRequest(http.MethodGet, "/strategies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var response struct {
		Strategies []struct {
			ID string `json:"id"`
		} `json:"strategies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Strategies, 6)
}

func TestPortfolioResolvers(t *testing.T) {
	router := testHandler().Router()

	returns := [][]float64{
		{0.01, -0.005, 0.008, 0.002, -0.003, 0.007},
		{0.05, -0.06, 0.07, -0.04, 0.055, -0.05},
	}

	t.Run("optimize equal", func(t *testing.T) {
		w := post(t, router, "/portfolio/optimize", map[string]any{
			"returns": returns,
			"method":  "equal",
		})
		require.Equal(t, 200, w.Code)

		var response struct {
			Weights []float64 `json:"weights"`
			Method  string    `json:"method"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, []float64{0.5, 0.5}, response.Weights)
		require.Equal(t, "equal", response.Method)
	})

	t.Run("optimize rejects unknown method", func(t *testing.T) {
		w := post(t, router, "/portfolio/optimize", map[string]any{
			"returns": returns,
			"method":  "kelly",
		})
		require.Equal(t, 400, w.Code)
	})

	t.Run("simulate respects seed and count", func(t *testing.T) {
		body := map[string]any{
			"weights":        []float64{0.5, 0.5},
			"returns":        returns,
			"numSimulations": 250,
			"seed":           42,
		}
		first := post(t, router, "/portfolio/simulate", body)
		second := post(t, router, "/portfolio/simulate", body)
		require.Equal(t, 200, first.Code)
		require.Equal(t, first.Body.String(), second.Body.String())

		var response struct {
			SimulatedReturns []float64 `json:"simulatedReturns"`
		}
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &response))
		require.Len(t, response.SimulatedReturns, 250)
	})

	t.Run("simulate caps trial count", func(t *testing.T) {
		w := post(t, router, "/portfolio/simulate", map[string]any{
			"weights":        []float64{0.5, 0.5},
			"returns":        returns,
			"numSimulations": 200_000,
		})
		require.Equal(t, 400, w.Code)
	})
}

func TestBondResolver(t *testing.T) {
	router := testHandler().Router()

	w := post(t, router, "/bond/analyze", map[string]any{
		"parValue":         1000,
		"annualCouponRate": 0.05,
		"yearsToMaturity":  10,
		"paymentsPerYear":  2,
		"yield":            0.05,
	})
	require.Equal(t, 200, w.Code)

	var response struct {
		Price            float64 `json:"price"`
		MacaulayDuration float64 `json:"macaulayDuration"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.InDelta(t, 1000, response.Price, 1e-6)
	require.Greater(t, response.MacaulayDuration, 0.0)
}
