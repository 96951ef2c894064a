package newgame

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// testConfig returns a deterministic configuration for tests: fixed horizon,
// standard quanta, 10000 starting cash.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.GameStart = NewDate(2020, time.January, 2)
	cfg.MaxDate = NewDate(2025, time.December, 31)
	return cfg
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seriesOf builds a Series from "date price" pairs.
func seriesOf(points ...string) *Series {
	s := &Series{}
	for _, p := range points {
		var day, price string
		if _, err := fmt.Sscan(p, &day, &price); err != nil {
			panic(err)
		}
		s.Append(MustParseDate(day), dec(price))
	}
	return s
}

// mapSource serves canned series and counts fetches per symbol.
type mapSource struct {
	mu     sync.Mutex
	series map[string]*Series
	calls  map[string]int
	delay  time.Duration
}

func newMapSource() *mapSource {
	return &mapSource{series: make(map[string]*Series), calls: make(map[string]int)}
}

func (m *mapSource) add(symbol string, s *Series) *mapSource {
	m.series[symbol] = s
	return m
}

func (m *mapSource) Series(_ context.Context, symbol string) (*Series, error) {
	m.mu.Lock()
	m.calls[symbol]++
	s, ok := m.series[symbol]
	m.mu.Unlock()
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if !ok {
		return nil, fmt.Errorf("no series for %s", symbol)
	}
	return s, nil
}

func (m *mapSource) callCount(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

// testCatalog returns a catalog with one stock, one ETF, and one crypto.
func testCatalog() *Catalog {
	return NewCatalog(
		Instrument{Symbol: "AAPL", Name: "Apple Inc.", Kind: Stock},
		Instrument{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", Kind: ETF},
		Instrument{Symbol: "BTC-USD", Name: "Bitcoin", Kind: Crypto},
	)
}
