// Package backtest simulates trade execution over a signal stream.
// The account is either flat or fully long one position; money math
// runs on decimals so fills come out exact.
package backtest

import (
	"github.com/shopspring/decimal"

	"quantbacktest/internal/domain"
)

const (
	DefaultInitialCapital = 100_000.0
	DefaultCommission     = 0.001
	DefaultSlippage       = 0.0005

	// fraction of capital deployed on entry; the remainder stays as a
	// cash buffer so commission and slippage never overdraw the account
	capitalUtilization = 0.95
)

type Config struct {
	InitialCapital float64 `json:"initialCapital"`
	Commission     float64 `json:"commission"`
	Slippage       float64 `json:"slippage"`
}

func (c Config) withDefaults() Config {
	if c.InitialCapital == 0 {
		c.InitialCapital = DefaultInitialCapital
	}
	return c
}

// Result carries everything a simulation produces: the fills, the
// mark-to-market equity curve (seeded with the initial capital, so
// len(Equity) == len(signals)+1) and a per-signal account snapshot.
type Result struct {
	Trades    []domain.Trade    `json:"trades"`
	Equity    []float64         `json:"equity"`
	Positions []domain.Position `json:"positions"`
}

// Simulate replays the signals in order against a single account.
// BUY while flat deploys 95% of capital (rounded down to whole
// shares); SELL while long closes the position; everything else
// holds, including a BUY at a non-positive price. A position still
// open after the last signal is force-closed at the final bar's close
// so the run always ends flat.
func Simulate(bars []domain.PriceBar, signals []domain.Signal, cfg Config) Result {
	cfg = cfg.withDefaults()

	capital := decimal.NewFromFloat(cfg.InitialCapital)
	frictionBuy := decimal.NewFromFloat(1 + cfg.Commission + cfg.Slippage)
	frictionSell := decimal.NewFromFloat(1 - cfg.Commission - cfg.Slippage)
	utilization := decimal.NewFromFloat(capitalUtilization)

	var shares int64

	result := Result{
		Trades:    []domain.Trade{},
		Equity:    make([]float64, 0, len(signals)+1),
		Positions: make([]domain.Position, 0, len(signals)),
	}
	result.Equity = append(result.Equity, cfg.InitialCapital)

	for _, signal := range signals {
		price := decimal.NewFromFloat(signal.Price)

		switch {
		case signal.Signal == domain.Buy && shares == 0 && signal.Price > 0:
			toBuy := capital.Mul(utilization).Div(price).IntPart()
			if toBuy > 0 {
				cost := price.Mul(decimal.NewFromInt(toBuy)).Mul(frictionBuy)
				capital = capital.Sub(cost)
				shares = toBuy

				result.Trades = append(result.Trades, domain.Trade{
					Date:    signal.Date,
					Type:    domain.TradeBuy,
					Shares:  toBuy,
					Price:   signal.Price,
					Cost:    cost.InexactFloat64(),
					Capital: markToMarket(capital, shares, price),
				})
			}

		case signal.Signal == domain.Sell && shares > 0:
			proceeds := price.Mul(decimal.NewFromInt(shares)).Mul(frictionSell)
			capital = capital.Add(proceeds)

			result.Trades = append(result.Trades, domain.Trade{
				Date:     signal.Date,
				Type:     domain.TradeSell,
				Shares:   shares,
				Price:    signal.Price,
				Proceeds: proceeds.InexactFloat64(),
				Capital:  capital.InexactFloat64(),
			})
			shares = 0
		}

		equity := markToMarket(capital, shares, price)
		result.Equity = append(result.Equity, equity)
		result.Positions = append(result.Positions, domain.Position{
			Date:        signal.Date,
			Shares:      shares,
			Price:       signal.Price,
			Equity:      equity,
			Capital:     capital.InexactFloat64(),
			MarketValue: price.Mul(decimal.NewFromInt(shares)).InexactFloat64(),
		})
	}

	// force-close so capital is fully realized
	if shares > 0 && len(bars) > 0 {
		finalBar := bars[len(bars)-1]
		price := decimal.NewFromFloat(finalBar.Close)
		proceeds := price.Mul(decimal.NewFromInt(shares)).Mul(frictionSell)
		capital = capital.Add(proceeds)

		result.Trades = append(result.Trades, domain.Trade{
			Date:     finalBar.Date,
			Type:     domain.TradeSell,
			Shares:   shares,
			Price:    finalBar.Close,
			Proceeds: proceeds.InexactFloat64(),
			Capital:  capital.InexactFloat64(),
		})
		shares = 0
		result.Equity[len(result.Equity)-1] = capital.InexactFloat64()
	}

	return result
}

func markToMarket(capital decimal.Decimal, shares int64, price decimal.Decimal) float64 {
	return capital.Add(price.Mul(decimal.NewFromInt(shares))).InexactFloat64()
}
