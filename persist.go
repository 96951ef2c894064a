package newgame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mitchypi/newgame/kv"
)

// Store keys. The transaction log is append-only: each entry gets its own
// key and is never rewritten. Snapshots are keyed by instant, so re-valuing
// the same (date, phase) overwrites in place.
const (
	keyClock      = "clock"
	keyPortfolio  = "portfolio"
	keyTxPrefix   = "tx:"
	keySnapPrefix = "snap:"
)

func txKey(seq uint64) string { return fmt.Sprintf("%s%012d", keyTxPrefix, seq) }

func snapKey(on Date, phase Phase) string {
	return fmt.Sprintf("%s%s:%s", keySnapPrefix, on, phase)
}

// clockState is the persisted form of the clock.
type clockState struct {
	Date  Date  `json:"date"`
	Phase Phase `json:"phase"`
}

// portfolioState is the persisted form of cash and holdings.
type portfolioState struct {
	Cash     decimal.Decimal `json:"cash"`
	Holdings []Holding       `json:"holdings"`
}

// save writes the dirty parts of the session state: the clock, the cash and
// holdings, any newly appended transactions, and the snapshot of the current
// instant. Called with the session mutex held.
func (s *Session) save(ctx context.Context, newTxs ...Transaction) error {
	put := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}
		if err := s.store.Put(ctx, key, raw); err != nil {
			return fmt.Errorf("storing %s: %w", key, err)
		}
		return nil
	}

	if err := put(keyClock, clockState{Date: s.clock.Date(), Phase: s.clock.Phase()}); err != nil {
		return err
	}
	if err := put(keyPortfolio, portfolioState{Cash: s.ledger.Cash(), Holdings: s.ledger.Holdings()}); err != nil {
		return err
	}
	for _, tx := range newTxs {
		if err := put(txKey(tx.Seq), tx); err != nil {
			return err
		}
	}
	for _, snap := range s.snaps.All() {
		if snap.Date == s.clock.Date() && snap.Phase == s.clock.Phase() {
			if err := put(snapKey(snap.Date, snap.Phase), snap); err != nil {
				return err
			}
		}
	}
	return nil
}

// load restores clock, portfolio, transaction log, and snapshots from the
// store. A store with no clock key is a fresh game and leaves the session
// at its initial state.
func (s *Session) load(ctx context.Context) error {
	raw, err := s.store.Get(ctx, keyClock)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var cs clockState
	if err := json.Unmarshal(raw, &cs); err != nil {
		return fmt.Errorf("decoding clock state: %w", err)
	}
	s.clock.restore(cs.Date, cs.Phase)

	var ps portfolioState
	raw, err = s.store.Get(ctx, keyPortfolio)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return err
	}
	if err == nil {
		if err := json.Unmarshal(raw, &ps); err != nil {
			return fmt.Errorf("decoding portfolio state: %w", err)
		}
	} else {
		ps.Cash = s.cfg.StartingCash
	}

	log, err := s.loadTransactions(ctx)
	if err != nil {
		return err
	}
	s.ledger.restore(ps.Cash, ps.Holdings, log)

	return s.loadSnapshots(ctx)
}

// loadTransactions reads the persisted log in key order, which is seq order.
// A corrupt entry is skipped with a diagnostic rather than refusing the
// whole session.
func (s *Session) loadTransactions(ctx context.Context) ([]Transaction, error) {
	keys, err := s.store.List(ctx, keyTxPrefix)
	if err != nil {
		return nil, err
	}
	log := make([]Transaction, 0, len(keys))
	for _, key := range keys {
		raw, err := s.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		var tx Transaction
		if err := json.Unmarshal(raw, &tx); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("skipping corrupt transaction record")
			continue
		}
		log = append(log, tx)
	}
	return log, nil
}

func (s *Session) loadSnapshots(ctx context.Context) error {
	keys, err := s.store.List(ctx, keySnapPrefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		raw, err := s.store.Get(ctx, key)
		if err != nil {
			return err
		}
		var snap ValuationSnapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("skipping corrupt snapshot record")
			continue
		}
		s.snaps.Record(snap)
	}
	return nil
}
