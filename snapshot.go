package newgame

import (
	"slices"

	"github.com/shopspring/decimal"
)

// ValuationSnapshot is one exact portfolio valuation recorded at a clock
// event: cash plus the sum of all holdings at their as-of prices.
type ValuationSnapshot struct {
	Date  Date            `json:"date"`
	Phase Phase           `json:"phase"`
	Value decimal.Decimal `json:"value"`
}

// key orders snapshots by (date, phase).
func (v ValuationSnapshot) compare(u ValuationSnapshot) int {
	if c := v.Date.Compare(u.Date); c != 0 {
		return c
	}
	return int(v.Phase) - int(u.Phase)
}

// SnapshotSeries holds valuation snapshots in chronological order, keyed by
// (date, phase): recording at an existing key overwrites in place, which
// supports re-valuing the same instant; any other key inserts.
type SnapshotSeries struct {
	points []ValuationSnapshot
}

// Len returns the number of recorded snapshots.
func (s *SnapshotSeries) Len() int { return len(s.points) }

// Record stores a snapshot, overwriting any existing one at the same
// (date, phase).
func (s *SnapshotSeries) Record(snap ValuationSnapshot) {
	i, found := slices.BinarySearchFunc(s.points, snap, ValuationSnapshot.compare)
	if found {
		s.points[i] = snap
		return
	}
	s.points = slices.Insert(s.points, i, snap)
}

// Earliest returns the first recorded snapshot.
func (s *SnapshotSeries) Earliest() (ValuationSnapshot, bool) {
	if len(s.points) == 0 {
		return ValuationSnapshot{}, false
	}
	return s.points[0], true
}

// All returns a copy of the snapshots in chronological order.
func (s *SnapshotSeries) All() []ValuationSnapshot {
	return append([]ValuationSnapshot(nil), s.points...)
}
