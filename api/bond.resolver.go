package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"quantbacktest/internal/bond"
	"quantbacktest/internal/domain"
	treasury_client "quantbacktest/pkg/treasury"
)

type analyzeBondRequest struct {
	ParValue         float64 `json:"parValue"`
	AnnualCouponRate float64 `json:"annualCouponRate"`
	YearsToMaturity  float64 `json:"yearsToMaturity"`
	PaymentsPerYear  int     `json:"paymentsPerYear"`

	// either a flat yield or a curve keyed by tenor in months;
	// when both are absent, today's treasury curve is used
	Yield      *float64        `json:"yield"`
	YieldCurve map[int]float64 `json:"yieldCurve"`
}

func (m ApiHandler) analyzeBond(c *gin.Context) {
	var requestBody analyzeBondRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	b := bond.Bond{
		ParValue:         requestBody.ParValue,
		AnnualCouponRate: requestBody.AnnualCouponRate,
		YearsToMaturity:  requestBody.YearsToMaturity,
		PaymentsPerYear:  requestBody.PaymentsPerYear,
	}
	if b.PaymentsPerYear == 0 {
		b.PaymentsPerYear = 2
	}

	var analysis *bond.Analysis
	var err error
	switch {
	case requestBody.Yield != nil:
		analysis, err = bond.Analyze(b, *requestBody.Yield)
	case len(requestBody.YieldCurve) > 0:
		analysis, err = bond.AnalyzeOnCurve(b, domain.YieldCurve{Rates: requestBody.YieldCurve})
	default:
		var curve domain.YieldCurve
		curve, err = treasury_client.GetYieldCurveOnDay(time.Now())
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		analysis, err = bond.AnalyzeOnCurve(b, curve)
	}
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	c.JSON(200, analysis)
}
