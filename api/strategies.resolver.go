package api

import (
	"github.com/gin-gonic/gin"

	"quantbacktest/internal/strategy"
)

func (m ApiHandler) getStrategies(c *gin.Context) {
	c.JSON(200, gin.H{
		"strategies": strategy.Catalog(),
	})
}
