// Package marketdata supplies the price bars the analytics consume,
// either fetched from Yahoo Finance or loaded from a CSV file. The
// core never fetches anything itself; bars are materialized here and
// passed in.
package marketdata

import (
	"fmt"
	"sync"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"quantbacktest/internal/domain"
)

const DefaultCacheTTL = 5 * time.Minute

// Service fetches daily bars with a read-through in-memory cache.
// Cached slices are shared between callers and must be treated as
// read-only, which the core already guarantees.
type Service struct {
	mu    sync.RWMutex
	cache map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	bars      []domain.PriceBar
	fetchedAt time.Time
}

func NewService(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		cache: map[string]cacheEntry{},
		ttl:   ttl,
	}
}

// DailyBars returns the chronological daily OHLCV series for symbol
// over [start, end], hitting Yahoo only on a cache miss.
func (s *Service) DailyBars(symbol string, start, end time.Time) ([]domain.PriceBar, error) {
	key := fmt.Sprintf("%s|%s|%s", symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))

	if bars, ok := s.cached(key); ok {
		return bars, nil
	}

	bars, err := fetchDailyBars(symbol, start, end)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{bars: bars, fetchedAt: time.Now()}
	s.mu.Unlock()

	return bars, nil
}

func (s *Service) cached(key string) ([]domain.PriceBar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[key]
	if !ok || time.Since(entry.fetchedAt) > s.ttl {
		return nil, false
	}
	return entry.bars, true
}

func fetchDailyBars(symbol string, start, end time.Time) ([]domain.PriceBar, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	bars := []domain.PriceBar{}
	for iter.Next() {
		bar := iter.Bar()
		bars = append(bars, domain.PriceBar{
			Date:   time.Unix(int64(bar.Timestamp), 0).UTC(),
			Open:   bar.Open.InexactFloat64(),
			High:   bar.High.InexactFloat64(),
			Low:    bar.Low.InexactFloat64(),
			Close:  bar.Close.InexactFloat64(),
			Volume: float64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no price data returned for %s", symbol)
	}

	return bars, nil
}
