package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quantbacktest/internal/logger"
	"quantbacktest/internal/marketdata"
)

type ApiHandler struct {
	MarketData *marketdata.Service
	Logger     *zap.SugaredLogger
}

func (m ApiHandler) StartApi(port int) error {
	router := m.Router()
	return router.Run(fmt.Sprintf(":%d", port))
}

// Router wires every route; split from StartApi so tests can drive
// the handler with httptest.
func (m ApiHandler) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to quantbacktest"})
	})
	router.GET("/strategies", m.getStrategies)
	router.GET("/prices", m.getPrices)
	router.POST("/backtest", m.backtest)
	router.POST("/backtest/chart", m.backtestChart)
	router.POST("/portfolio/optimize", m.optimizePortfolio)
	router.POST("/portfolio/analyze", m.analyzePortfolio)
	router.POST("/portfolio/simulate", m.simulatePortfolio)
	router.POST("/bond/analyze", m.analyzeBond)

	return router
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.New()
	ctx.Set("requestID", requestID.String())

	// request-scoped logger for resolvers further down the chain
	requestLogger := m.Logger.With("requestID", requestID.String())
	ctx.Request = ctx.Request.WithContext(
		context.WithValue(ctx.Request.Context(), logger.ContextKey, requestLogger),
	)

	start := time.Now()
	ctx.Next()

	m.Logger.Infow("handled request",
		"requestID", requestID.String(),
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"status", ctx.Writer.Status(),
		"elapsedMs", time.Since(start).Milliseconds(),
	)
}
