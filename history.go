package newgame

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// MonthlyPoint is one valuation per calendar month, derived on demand by the
// Reconstructor and never persisted as a primary entity.
type MonthlyPoint struct {
	Date  Date            `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// Reconstructor rebuilds the monthly value-over-time curve by replaying the
// transaction log against the price index and the recorded exact snapshots.
// It is read-only over its inputs and safe to run concurrently with price
// loads.
type Reconstructor struct {
	cfg   Config
	index *PriceIndex
	log   *logrus.Entry
}

// NewReconstructor creates a reconstructor over the given price index.
func NewReconstructor(cfg Config, index *PriceIndex, log *logrus.Entry) *Reconstructor {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Reconstructor{cfg: cfg, index: index, log: log}
}

// monthKey identifies a calendar month.
type monthKey struct {
	year  int
	month int
}

func keyOf(d Date) monthKey { return monthKey{d.Year(), int(d.Month())} }

// Monthly produces exactly one point per calendar month from the earliest
// relevant month through the month containing current, inclusive. Months
// with a recorded snapshot emit that exact value; months without one are
// valued by carrying holdings and cash forward and pricing them at the month
// boundary. Replay uses each transaction's own recorded price and total, so
// it is exact, never re-priced. A corrupt or out-of-order log entry is
// skipped with a diagnostic rather than aborting the whole reconstruction.
func (r *Reconstructor) Monthly(ctx context.Context, log []Transaction, snaps *SnapshotSeries, current Date) ([]MonthlyPoint, error) {
	// Seed cash from the earliest snapshot: an approximation of historical
	// starting cash, falling back to the configured constant when the
	// session has recorded nothing yet.
	cash := r.cfg.StartingCash
	first := current
	if earliest, ok := snaps.Earliest(); ok {
		cash = earliest.Value
		first = earliest.Date
	}
	if len(log) > 0 && log[0].Date.Before(first) {
		first = log[0].Date
	}

	// Keep only the latest-dated snapshot of each month as that month's
	// authoritative value: it reflects true intra-month state the monthly
	// bucket would otherwise lose.
	authoritative := make(map[monthKey]ValuationSnapshot)
	for _, snap := range snaps.All() {
		authoritative[keyOf(snap.Date)] = snap
	}

	shares := make(map[string]decimal.Decimal)
	var points []MonthlyPoint
	next := 0             // index of the first transaction not yet replayed
	var lastReplayed Date // high-water mark for out-of-order detection

	for m := first.StartOfMonth(); !m.After(current.StartOfMonth()); m = m.AddMonths(1) {
		boundary := m.EndOfMonth()
		if m.SameMonth(current) {
			boundary = current
		}

		// Replay every transaction up to the boundary, in log order.
		for next < len(log) && !log[next].Date.After(boundary) {
			tx := log[next]
			next++
			if tx.Date.Before(lastReplayed) {
				r.log.WithFields(logrus.Fields{"tx": tx.ID, "date": tx.Date}).
					Warn("skipping out-of-order transaction during replay")
				continue
			}
			switch tx.Kind {
			case TxBuy:
				cash = cash.Sub(tx.Total)
				shares[tx.Symbol] = shares[tx.Symbol].Add(tx.Quantity)
			case TxSell:
				cash = cash.Add(tx.Total)
				shares[tx.Symbol] = shares[tx.Symbol].Sub(tx.Quantity)
			default:
				r.log.WithFields(logrus.Fields{"tx": tx.ID, "kind": tx.Kind}).
					Warn("skipping transaction of unknown kind during replay")
				continue
			}
			lastReplayed = tx.Date
		}

		if snap, ok := authoritative[keyOf(m)]; ok {
			points = append(points, MonthlyPoint{Date: snap.Date, Value: snap.Value})
			continue
		}

		value, err := r.value(ctx, cash, shares, boundary)
		if err != nil {
			return nil, err
		}
		points = append(points, MonthlyPoint{Date: boundary, Value: value})
	}
	return points, nil
}

// value prices the carried-forward state at a boundary date. An instrument
// with no known price at the boundary contributes zero, it is not an error.
func (r *Reconstructor) value(ctx context.Context, cash decimal.Decimal, shares map[string]decimal.Decimal, on Date) (decimal.Decimal, error) {
	symbols := make([]string, 0, len(shares))
	for symbol, qty := range shares {
		if !qty.IsZero() {
			symbols = append(symbols, symbol)
		}
	}
	sort.Strings(symbols)

	total := cash
	for _, symbol := range symbols {
		price, ok, err := r.index.PriceAsOf(ctx, symbol, on)
		if err != nil {
			if ctx.Err() != nil {
				return decimal.Decimal{}, ctx.Err()
			}
			r.log.WithError(err).WithField("symbol", symbol).
				Warn("price series unavailable during reconstruction")
			continue
		}
		if !ok {
			continue
		}
		total = total.Add(shares[symbol].Mul(price))
	}
	return r.cfg.RoundCash(total), nil
}
