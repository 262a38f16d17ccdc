package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quantbacktest/internal/backtest"
	"quantbacktest/internal/calculator"
	"quantbacktest/internal/domain"
	"quantbacktest/internal/logger"
	"quantbacktest/internal/strategy"
)

var errInvalidBars = errors.New("invalid price data")

type backtestRequest struct {
	Strategy   string             `json:"strategy"`
	Parameters map[string]float64 `json:"parameters"`

	InitialCapital float64  `json:"initialCapital"`
	Commission     *float64 `json:"commission"`
	Slippage       *float64 `json:"slippage"`

	// either inline bars...
	Data []domain.PriceBar `json:"data"`
	// ...or a symbol and range to fetch
	Symbol    string `json:"symbol"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type backtestResponse struct {
	RunID   string                    `json:"runId"`
	Symbol  string                    `json:"symbol,omitempty"`
	Summary domain.PerformanceSummary `json:"summary"`
	Signals []domain.Signal           `json:"signals"`
	Equity  []float64                 `json:"equity"`
	Trades  []domain.Trade            `json:"trades"`
}

func (m ApiHandler) backtest(c *gin.Context) {
	response, err := m.runBacktest(c)
	if err != nil {
		if errors.Is(err, strategy.ErrUnknownStrategy) || errors.Is(err, errInvalidBars) {
			returnErrorJsonCode(err, c, 400)
		} else {
			returnErrorJson(err, c)
		}
		return
	}
	c.JSON(200, response)
}

// runBacktest is shared between the JSON resolver and the chart
// resolver, which render the same pipeline differently.
func (m ApiHandler) runBacktest(c *gin.Context) (*backtestResponse, error) {
	var requestBody backtestRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		return nil, err
	}

	bars := requestBody.Data
	if len(bars) > 0 {
		for i, bar := range bars {
			if bar.Close <= 0 {
				return nil, fmt.Errorf("%w: bar %d has non-positive close %f", errInvalidBars, i, bar.Close)
			}
		}
	} else {
		if requestBody.Symbol == "" {
			return nil, fmt.Errorf("either data or a symbol with a date range is required")
		}
		start, err := time.Parse(time.DateOnly, requestBody.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		end, err := time.Parse(time.DateOnly, requestBody.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		bars, err = m.MarketData.DailyBars(requestBody.Symbol, start, end)
		if err != nil {
			return nil, err
		}
	}

	signals, err := strategy.GenerateSignals(bars, requestBody.Strategy, requestBody.Parameters)
	if err != nil {
		return nil, err
	}

	cfg := backtest.Config{
		InitialCapital: requestBody.InitialCapital,
		Commission:     backtest.DefaultCommission,
		Slippage:       backtest.DefaultSlippage,
	}
	if cfg.InitialCapital == 0 {
		cfg.InitialCapital = backtest.DefaultInitialCapital
	}
	if requestBody.Commission != nil {
		cfg.Commission = *requestBody.Commission
	}
	if requestBody.Slippage != nil {
		cfg.Slippage = *requestBody.Slippage
	}

	result := backtest.Simulate(bars, signals, cfg)
	summary := calculator.Analyze(result.Equity, result.Trades, cfg.InitialCapital)

	logger.FromContext(c.Request.Context()).Infow("ran backtest",
		"strategy", requestBody.Strategy,
		"bars", len(bars),
		"trades", len(result.Trades),
	)

	return &backtestResponse{
		RunID:   uuid.New().String(),
		Symbol:  requestBody.Symbol,
		Summary: summary,
		Signals: signals,
		Equity:  result.Equity,
		Trades:  result.Trades,
	}, nil
}
