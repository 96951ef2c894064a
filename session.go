package newgame

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mitchypi/newgame/kv"
)

// Session ties the clock, ledger, price index, and snapshot history of one
// simulation together. There is no ambient global: every operation goes
// through an explicit Session, so independent simulations can coexist in a
// single process.
//
// A mutex serializes clock-advance and trade operations, because each one
// reads then writes shared clock/ledger state. Price-series loads run
// outside the lock and parallelize freely across instruments. A generation
// counter invalidates history reconstructions that were still computing when
// a newer mutation landed, so a caller never sees output from a superseded
// state.
type Session struct {
	cfg     Config
	catalog *Catalog
	index   *PriceIndex
	store   kv.Store
	recon   *Reconstructor
	log     *logrus.Entry

	mu     sync.Mutex
	clock  *Clock
	ledger *Ledger
	snaps  SnapshotSeries

	generation atomic.Uint64
}

// NewSession creates a fresh session at the game start with the configured
// starting cash. Nothing is persisted until the first mutation.
func NewSession(cfg Config, catalog *Catalog, source Source, store kv.Store, log *logrus.Entry) *Session {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	index := NewPriceIndex(source)
	return &Session{
		cfg:     cfg,
		catalog: catalog,
		index:   index,
		store:   store,
		recon:   NewReconstructor(cfg, index, log),
		log:     log,
		clock:   NewClock(cfg),
		ledger:  NewLedger(cfg),
	}
}

// LoadSession restores a session from the store, or returns a fresh one when
// the store holds no state yet.
func LoadSession(ctx context.Context, cfg Config, catalog *Catalog, source Source, store kv.Store, log *logrus.Entry) (*Session, error) {
	s := NewSession(cfg, catalog, source, store, log)
	if err := s.load(ctx); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	return s, nil
}

// Config returns the session's configuration.
func (s *Session) Config() Config { return s.cfg }

// Catalog returns the instrument catalog.
func (s *Session) Catalog() *Catalog { return s.catalog }

// Index returns the session's price index.
func (s *Session) Index() *PriceIndex { return s.index }

// Now returns the current simulated date and session phase.
func (s *Session) Now() (Date, Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Date(), s.clock.Phase()
}

// Cash returns the current cash balance.
func (s *Session) Cash() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Cash()
}

// Holdings returns the open positions ordered by symbol.
func (s *Session) Holdings() []Holding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Holdings()
}

// Transactions returns a copy of the transaction log.
func (s *Session) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Transactions()
}

// bump marks every in-flight reconstruction as superseded.
func (s *Session) bump() { s.generation.Add(1) }

// tradePrice resolves the execution price for a trade at the current clock,
// enforcing availability and price-existence rules.
func (s *Session) tradePrice(ctx context.Context, symbol string, on Date) (decimal.Decimal, error) {
	inst, ok := s.catalog.Get(symbol)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", symbol, ErrUnknownInstrument)
	}
	if !s.cfg.Tradable(inst, on) {
		return decimal.Decimal{}, fmt.Errorf("%s on %s: %w", inst.Symbol, on, ErrInstrumentUnavailable)
	}
	price, ok, err := s.index.PriceAsOf(ctx, inst.Symbol, on)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s on %s: %w", inst.Symbol, on, ErrPriceUnavailable)
	}
	return price, nil
}

// Buy purchases an instrument at the current clock's as-of price. On any
// failure the session is unchanged.
func (s *Session) Buy(ctx context.Context, symbol string, order Order) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	on, phase := s.clock.Date(), s.clock.Phase()
	price, err := s.tradePrice(ctx, symbol, on)
	if err != nil {
		return Transaction{}, err
	}
	tx, err := s.ledger.Buy(symbol, price, order, on, phase)
	if err != nil {
		return Transaction{}, err
	}
	s.log.WithFields(logrus.Fields{
		"symbol": tx.Symbol, "quantity": tx.Quantity, "price": tx.Price, "cost": tx.Total, "date": on,
	}).Info("buy executed")
	s.afterMutation(ctx, tx)
	return tx, nil
}

// Sell disposes of an instrument at the current clock's as-of price. On any
// failure the session is unchanged.
func (s *Session) Sell(ctx context.Context, symbol string, order Order) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	on, phase := s.clock.Date(), s.clock.Phase()
	price, err := s.tradePrice(ctx, symbol, on)
	if err != nil {
		return Transaction{}, err
	}
	tx, err := s.ledger.Sell(symbol, price, order, on, phase)
	if err != nil {
		return Transaction{}, err
	}
	s.log.WithFields(logrus.Fields{
		"symbol": tx.Symbol, "quantity": tx.Quantity, "price": tx.Price,
		"proceeds": tx.Total, "realizedPnL": tx.RealizedPnL, "date": on,
	}).Info("sell executed")
	s.afterMutation(ctx, tx)
	return tx, nil
}

// afterMutation re-values the current instant, persists the dirty state, and
// supersedes in-flight reconstructions. Called with the mutex held.
func (s *Session) afterMutation(ctx context.Context, txs ...Transaction) {
	s.recordSnapshot(ctx)
	if err := s.save(ctx, txs...); err != nil {
		s.log.WithError(err).Error("persisting session state")
	}
	s.bump()
}

// recordSnapshot stores the exact valuation of the current (date, phase),
// overwriting a previous snapshot of the same instant. Called with the
// mutex held.
func (s *Session) recordSnapshot(ctx context.Context) {
	on, phase := s.clock.Date(), s.clock.Phase()
	value, err := s.valueAt(ctx, on)
	if err != nil {
		s.log.WithError(err).WithField("date", on).Warn("skipping valuation snapshot")
		return
	}
	s.snaps.Record(ValuationSnapshot{Date: on, Phase: phase, Value: value})
}

// valueAt computes cash plus all holdings at their as-of prices. Holdings
// with no known price contribute zero.
func (s *Session) valueAt(ctx context.Context, on Date) (decimal.Decimal, error) {
	total := s.ledger.Cash()
	for _, h := range s.ledger.Holdings() {
		price, ok, err := s.index.PriceAsOf(ctx, h.Symbol, on)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if !ok {
			continue
		}
		total = total.Add(h.MarketValue(price))
	}
	return s.cfg.RoundCash(total), nil
}

// DayChange returns how much the symbol's as-of price moved since its
// previous trading day. The backward scan is bounded by Config.MaxLookback,
// so a long-dormant series reports no change rather than one against an
// arbitrarily old price.
func (s *Session) DayChange(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	s.mu.Lock()
	on := s.clock.Date()
	s.mu.Unlock()

	price, ok, err := s.index.PriceAsOf(ctx, symbol, on)
	if err != nil || !ok {
		return decimal.Decimal{}, false, err
	}
	prev, ok, err := s.index.PreviousTradingPrice(ctx, symbol, on, s.cfg.MaxLookback)
	if err != nil || !ok {
		return decimal.Decimal{}, false, err
	}
	return price.Sub(prev), true, nil
}

// Valuation returns the total portfolio value at the current clock.
func (s *Session) Valuation(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueAt(ctx, s.clock.Date())
}

// AdvanceSession plays the next half-day: open to close, or close to the
// next date's open. It reports whether the horizon blocked the move.
func (s *Session) AdvanceSession(ctx context.Context) (clamped bool, err error) {
	return s.navigate(ctx, func(c *Clock) (bool, error) { return c.AdvanceSession(), nil })
}

// JumpWeek advances the clock by seven calendar days.
func (s *Session) JumpWeek(ctx context.Context) (clamped bool, err error) {
	return s.navigate(ctx, func(c *Clock) (bool, error) { return c.JumpDays(7), nil })
}

// JumpMonth advances the clock by one calendar month.
func (s *Session) JumpMonth(ctx context.Context) (clamped bool, err error) {
	return s.navigate(ctx, func(c *Clock) (bool, error) { return c.JumpMonths(1), nil })
}

// JumpYear advances the clock by twelve calendar months.
func (s *Session) JumpYear(ctx context.Context) (clamped bool, err error) {
	return s.navigate(ctx, func(c *Clock) (bool, error) { return c.JumpMonths(12), nil })
}

// JumpTo moves the clock to an explicit later date. A target before the
// current date fails with ErrBackwardJump and changes nothing.
func (s *Session) JumpTo(ctx context.Context, target Date) (clamped bool, err error) {
	return s.navigate(ctx, func(c *Clock) (bool, error) { return c.JumpTo(target) })
}

// SkipWeekend advances to the next Monday if the clock sits on a weekend.
func (s *Session) SkipWeekend(ctx context.Context) (clamped bool, err error) {
	return s.navigate(ctx, func(c *Clock) (bool, error) { return c.SkipWeekend(), nil })
}

// navigate runs one clock move under the session lock, then snapshots and
// persists the new instant.
func (s *Session) navigate(ctx context.Context, move func(*Clock) (bool, error)) (clamped bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clamped, err = move(s.clock)
	if err != nil {
		return false, err
	}
	s.afterMutation(ctx)
	return clamped, nil
}

// History reconstructs the monthly valuation curve. It recomputes from the
// transaction log and snapshots on every call; a result computed from state
// that a concurrent trade or navigation superseded is discarded and the
// reconstruction re-runs against the fresh state.
func (s *Session) History(ctx context.Context) ([]MonthlyPoint, error) {
	for {
		gen := s.generation.Load()

		s.mu.Lock()
		log := s.ledger.Transactions()
		snaps := s.snaps
		snaps.points = s.snaps.All()
		current := s.clock.Date()
		s.mu.Unlock()

		points, err := s.recon.Monthly(ctx, log, &snaps, current)
		if err != nil {
			return nil, err
		}
		if s.generation.Load() == gen {
			return points, nil
		}
		// Superseded while computing: discard and replay against fresh state.
		s.log.Debug("discarding stale history reconstruction")
	}
}
