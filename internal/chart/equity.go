// Package chart renders backtest results to PNG for clients that
// want a ready-made image instead of raw series.
package chart

import (
	"errors"
	"fmt"
	"time"

	charts "github.com/vicanso/go-charts/v2"

	"quantbacktest/internal/domain"
)

// EquityCurve renders the equity curve and its running drawdown as a
// two-series line chart. The first equity point is the seed capital
// and has no matching signal date, so it is labeled "start".
func EquityCurve(title string, equity []float64, signals []domain.Signal) ([]byte, error) {
	if len(equity) < 2 {
		return nil, errors.New("not enough equity points to chart")
	}

	labels := make([]string, len(equity))
	labels[0] = "start"
	for i := 1; i < len(equity); i++ {
		if i-1 < len(signals) {
			labels[i] = signals[i-1].Date.Format(time.DateOnly)
		} else {
			labels[i] = fmt.Sprintf("t+%d", i)
		}
	}

	drawdown := make([]float64, len(equity))
	peak := equity[0]
	for i, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			drawdown[i] = -(peak - v) / peak * 100
		}
	}

	split := len(equity) / 10
	if split < 2 {
		split = 2
	}

	painter, err := charts.LineRender([][]float64{equity, drawdown},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: split,
		}),
		charts.LegendLabelsOptionFunc([]string{"equity", "drawdown %"}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render equity chart: %w", err)
	}

	img, err := painter.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode equity chart: %w", err)
	}
	return img, nil
}
