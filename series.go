package newgame

import (
	"iter"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// Series stores a chronological price series for one instrument: one price
// per date, always sorted, duplicate dates collapsing to the later write.
// A Series is immutable once loaded into a PriceIndex.
type Series struct {
	days   []Date
	prices []decimal.Decimal
}

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.days) }

// Latest returns the latest date and price in the series, or zero values if
// the series is empty.
func (s *Series) Latest() (Date, decimal.Decimal) {
	last := len(s.days) - 1
	if last < 0 {
		return Date{}, decimal.Decimal{}
	}
	return s.days[last], s.prices[last]
}

// Earliest returns the first date and price in the series, or zero values if
// the series is empty.
func (s *Series) Earliest() (Date, decimal.Decimal) {
	if len(s.days) == 0 {
		return Date{}, decimal.Decimal{}
	}
	return s.days[0], s.prices[0]
}

// chronological sorts the parallel day/price slices together.
type chronological struct{ *Series }

func (c chronological) Len() int           { return len(c.days) }
func (c chronological) Less(i, j int) bool { return c.days[i].Before(c.days[j]) }
func (c chronological) Swap(i, j int) {
	c.days[i], c.days[j] = c.days[j], c.days[i]
	c.prices[i], c.prices[j] = c.prices[j], c.prices[i]
}

// Append adds a point to the series. An existing price at that date is
// overwritten: the last write wins.
func (s *Series) Append(on Date, price decimal.Decimal) *Series {
	if n := len(s.days); n == 0 || s.days[n-1].Before(on) {
		// Common case: points arrive in chronological order.
		s.days, s.prices = append(s.days, on), append(s.prices, price)
		return s
	}
	if i := slices.Index(s.days, on); i >= 0 {
		s.prices[i] = price
		return s
	}
	s.days, s.prices = append(s.days, on), append(s.prices, price)
	sort.Sort(chronological{s})
	return s
}

// Points returns an iterator over all date/price pairs in chronological order.
func (s *Series) Points() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range s.days {
			if !yield(on, s.prices[i]) {
				return
			}
		}
	}
}

// search locates the index of the latest point with a date <= day, or -1.
func (s *Series) search(day Date) int {
	i, found := slices.BinarySearchFunc(s.days, day, func(d, t Date) int {
		return d.Compare(t)
	})
	if found {
		return i
	}
	// i is the insertion index; the point we want is just before it.
	return i - 1
}

// PriceAsOf returns the price of the latest point dated on or before day.
// It returns false if the series is empty or every point postdates day
// (an instrument listed later, or crypto before its inception).
func (s *Series) PriceAsOf(day Date) (decimal.Decimal, bool) {
	i := s.search(day)
	if i < 0 {
		return decimal.Decimal{}, false
	}
	return s.prices[i], true
}

// PreviousTradingPrice returns the price of the last trading day strictly
// before the as-of point for day. The backward scan is bounded by
// maxLookback entries, which tolerates weekend and holiday gaps without ever
// scanning an unbounded distance. It returns false when the as-of point does
// not exist, is the first point, or no qualifying earlier point lies within
// the bound.
func (s *Series) PreviousTradingPrice(day Date, maxLookback int) (decimal.Decimal, bool) {
	ref := s.search(day)
	if ref <= 0 {
		return decimal.Decimal{}, false
	}
	refDay := s.days[ref]
	for i := ref - 1; i >= 0 && ref-i <= maxLookback; i-- {
		if s.days[i].Before(refDay) {
			return s.prices[i], true
		}
	}
	return decimal.Decimal{}, false
}
