package api

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"quantbacktest/internal/chart"
	"quantbacktest/internal/strategy"
)

func (m ApiHandler) backtestChart(c *gin.Context) {
	response, err := m.runBacktest(c)
	if err != nil {
		if errors.Is(err, strategy.ErrUnknownStrategy) || errors.Is(err, errInvalidBars) {
			returnErrorJsonCode(err, c, 400)
		} else {
			returnErrorJson(err, c)
		}
		return
	}

	title := response.Symbol
	if title == "" {
		title = "backtest"
	}
	img, err := chart.EquityCurve(fmt.Sprintf("%s equity", title), response.Equity, response.Signals)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.Data(200, "image/png", img)
}
