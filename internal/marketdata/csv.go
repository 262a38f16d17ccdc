package marketdata

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"quantbacktest/internal/domain"
)

type barRow struct {
	Date   string  `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

// LoadBarsCSV reads daily bars from CSV with a
// date,open,high,low,close,volume header. Dates are YYYY-MM-DD and
// rows must already be in chronological order.
func LoadBarsCSV(r io.Reader) ([]domain.PriceBar, error) {
	rows := []barRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse bars csv: %w", err)
	}

	bars := make([]domain.PriceBar, 0, len(rows))
	for i, row := range rows {
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d has invalid date %q: %w", i+1, row.Date, err)
		}
		if row.Close <= 0 {
			return nil, fmt.Errorf("row %d has non-positive close %f", i+1, row.Close)
		}
		bars = append(bars, domain.PriceBar{
			Date:   date,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}

	return bars, nil
}

func LoadBarsFile(path string) ([]domain.PriceBar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bars file: %w", err)
	}
	defer f.Close()
	return LoadBarsCSV(f)
}
