package newgame

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config carries every constant the core depends on. All of it is
// injectable; DefaultConfig returns the values the original game data set
// was built for.
type Config struct {
	// GameStart is the earliest date the clock can hold.
	GameStart Date
	// MaxDate is the horizon: navigation clamps here and never passes it.
	MaxDate Date
	// StartingCash is the cash balance of a fresh session.
	StartingCash decimal.Decimal
	// CashQuantum is the smallest representable cash increment (0.01).
	CashQuantum decimal.Decimal
	// ShareQuantum is the smallest representable share increment (0.0001).
	ShareQuantum decimal.Decimal
	// MaxLookback bounds the backward scan of previous-trading-price lookups.
	MaxLookback int
	// Inceptions maps crypto symbols to their invention date. A crypto
	// instrument is tradable every calendar day once the clock reaches its
	// inception, and has no price before it.
	Inceptions map[string]Date
}

// DefaultConfig returns the configuration matching the bundled historical
// data set: prices from 2000-01-03 onward, 10000 starting cash.
func DefaultConfig() Config {
	return Config{
		GameStart:    NewDate(2000, time.January, 3),
		MaxDate:      Today(),
		StartingCash: decimal.NewFromInt(10000),
		CashQuantum:  decimal.New(1, -2),
		ShareQuantum: decimal.New(1, -4),
		MaxLookback:  10,
		Inceptions: map[string]Date{
			"BTC-USD": NewDate(2009, time.January, 3),
			"ETH-USD": NewDate(2015, time.July, 30),
		},
	}
}

// RoundCash rounds a monetary amount to the cash quantum, half away from zero.
func (c Config) RoundCash(v decimal.Decimal) decimal.Decimal {
	return v.Div(c.CashQuantum).Round(0).Mul(c.CashQuantum)
}

// FloorShares truncates a share quantity down to the share quantum. Flooring
// (rather than rounding) guarantees a budget-derived quantity never overspends.
func (c Config) FloorShares(v decimal.Decimal) decimal.Decimal {
	return v.Div(c.ShareQuantum).Floor().Mul(c.ShareQuantum)
}

// Clamp limits a date to the configured horizon.
func (c Config) Clamp(d Date) Date { return d.Min(c.MaxDate) }
