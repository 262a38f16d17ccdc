package api

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"

	"quantbacktest/internal/portfolio"
)

const maxSimulations = 100_000

type optimizeRequest struct {
	Returns [][]float64 `json:"returns"`
	Method  string      `json:"method"`
}

func (m ApiHandler) optimizePortfolio(c *gin.Context) {
	var requestBody optimizeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	result, err := portfolio.Optimize(requestBody.Returns, requestBody.Method)
	if err != nil {
		if errors.Is(err, portfolio.ErrUnknownMethod) {
			returnErrorJsonCode(err, c, 400)
		} else {
			returnErrorJson(err, c)
		}
		return
	}

	metrics, err := portfolio.Analyze(result.Weights, requestBody.Returns)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"weights":     result.Weights,
		"method":      result.Method,
		"description": result.Description,
		"metrics":     metrics,
	})
}

type analyzePortfolioRequest struct {
	Weights []float64   `json:"weights"`
	Returns [][]float64 `json:"returns"`
}

func (m ApiHandler) analyzePortfolio(c *gin.Context) {
	var requestBody analyzePortfolioRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	report, err := portfolio.Analyze(requestBody.Weights, requestBody.Returns)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, report)
}

type simulatePortfolioRequest struct {
	Weights        []float64   `json:"weights"`
	Returns        [][]float64 `json:"returns"`
	NumSimulations int         `json:"numSimulations"`
	// optional, for reproducible runs
	Seed *int64 `json:"seed"`
}

func (m ApiHandler) simulatePortfolio(c *gin.Context) {
	var requestBody simulatePortfolioRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	numSimulations := requestBody.NumSimulations
	if numSimulations == 0 {
		numSimulations = 1000
	}
	if numSimulations > maxSimulations {
		returnErrorJsonCode(fmt.Errorf("numSimulations may not exceed %d", maxSimulations), c, 400)
		return
	}

	seed := time.Now().UnixNano()
	if requestBody.Seed != nil {
		seed = *requestBody.Seed
	}

	result, err := portfolio.Simulate(requestBody.Weights, requestBody.Returns, numSimulations, rand.New(rand.NewSource(seed)))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result)
}
