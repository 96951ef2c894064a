package newgame

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Source provides the full historical price series for a symbol. It is the
// sole ground truth for prices; the core never mutates it. Implementations
// are expected to be safe for concurrent use.
type Source interface {
	Series(ctx context.Context, symbol string) (*Series, error)
}

// PriceIndex caches per-instrument price series for point-in-time lookup.
// Each series is fetched from the Source at most once per session; duplicate
// in-flight requests for the same symbol coalesce into a single fetch, while
// fetches for distinct symbols run in parallel.
type PriceIndex struct {
	source Source

	mu     sync.RWMutex
	series map[string]*Series

	group singleflight.Group
}

// NewPriceIndex creates an index backed by the given source.
func NewPriceIndex(source Source) *PriceIndex {
	return &PriceIndex{
		source: source,
		series: make(map[string]*Series),
	}
}

// Series returns the cached series for a symbol, loading it on first use.
func (x *PriceIndex) Series(ctx context.Context, symbol string) (*Series, error) {
	symbol = strings.ToUpper(symbol)

	x.mu.RLock()
	s, ok := x.series[symbol]
	x.mu.RUnlock()
	if ok {
		return s, nil
	}

	v, err, _ := x.group.Do(symbol, func() (any, error) {
		// Re-check under the group: a previous flight may have filled the cache.
		x.mu.RLock()
		s, ok := x.series[symbol]
		x.mu.RUnlock()
		if ok {
			return s, nil
		}
		s, err := x.source.Series(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("loading series for %s: %w", symbol, err)
		}
		x.mu.Lock()
		x.series[symbol] = s
		x.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Series), nil
}

// Preload fetches several symbols concurrently, filling the cache. Failures
// are joined; symbols that loaded stay cached.
func (x *PriceIndex) Preload(ctx context.Context, symbols ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, symbol := range symbols {
		g.Go(func() error {
			_, err := x.Series(ctx, symbol)
			return err
		})
	}
	return g.Wait()
}

// PriceAsOf returns the price of the latest point dated on or before day.
func (x *PriceIndex) PriceAsOf(ctx context.Context, symbol string, day Date) (decimal.Decimal, bool, error) {
	s, err := x.Series(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	price, ok := s.PriceAsOf(day)
	return price, ok, nil
}

// PreviousTradingPrice returns the price of the last trading day strictly
// before the as-of point for day, scanning back at most maxLookback entries.
func (x *PriceIndex) PreviousTradingPrice(ctx context.Context, symbol string, day Date, maxLookback int) (decimal.Decimal, bool, error) {
	s, err := x.Series(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	price, ok := s.PreviousTradingPrice(day, maxLookback)
	return price, ok, nil
}
