package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getPrices(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		returnErrorJsonCode(fmt.Errorf("symbol is required"), c, 400)
		return
	}

	start, err := time.Parse(time.DateOnly, c.Query("start"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid start: %w", err), c, 400)
		return
	}
	end, err := time.Parse(time.DateOnly, c.Query("end"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid end: %w", err), c, 400)
		return
	}

	bars, err := m.MarketData.DailyBars(symbol, start, end)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"symbol": symbol,
		"bars":   bars,
	})
}
