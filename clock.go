package newgame

import (
	"encoding/json"
	"fmt"
	"time"
)

// Phase is the intraday sub-state of the simulated clock. A date is played
// in two halves: the session opens, then closes, then the clock moves to the
// next calendar date.
type Phase int

const (
	Open Phase = iota
	Close
)

// String returns "open" or "close".
func (p Phase) String() string {
	if p == Close {
		return "close"
	}
	return "open"
}

// ParsePhase parses "open" or "close".
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "open":
		return Open, nil
	case "close":
		return Close, nil
	default:
		return Open, fmt.Errorf("unknown session phase %q", s)
	}
}

// MarshalJSON implements json.Marshaler.
func (p Phase) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

// UnmarshalJSON implements json.Unmarshaler.
func (p *Phase) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Clock is the virtual market clock: a (date, phase) pair that only ever
// moves forward. Navigation clamps at the configured horizon; reaching it is
// a boundary condition reported to the caller, never an error.
type Clock struct {
	cfg   Config
	day   Date
	phase Phase
}

// NewClock returns a clock positioned at the game start, session open.
func NewClock(cfg Config) *Clock {
	return &Clock{cfg: cfg, day: cfg.GameStart, phase: Open}
}

// Date returns the current simulated date.
func (c *Clock) Date() Date { return c.day }

// Phase returns the current session phase.
func (c *Clock) Phase() Phase { return c.phase }

// AtHorizon reports whether the clock has reached the configured MaxDate.
func (c *Clock) AtHorizon() bool { return !c.day.Before(c.cfg.MaxDate) }

// restore positions the clock at a persisted state, clamped into the
// configured [GameStart, MaxDate] window.
func (c *Clock) restore(day Date, phase Phase) {
	if day.Before(c.cfg.GameStart) {
		day = c.cfg.GameStart
	}
	c.day = c.cfg.Clamp(day)
	c.phase = phase
}

// AdvanceSession moves the clock by one half-day: open to close on the same
// date, close to the next date's open. It reports whether the horizon
// prevented the move.
func (c *Clock) AdvanceSession() (clamped bool) {
	if c.phase == Open {
		c.phase = Close
		return false
	}
	if c.AtHorizon() {
		return true
	}
	c.day = c.day.Add(1)
	c.phase = Open
	return false
}

// jump moves the clock to target at session open, clamped to the horizon.
func (c *Clock) jump(target Date) (clamped bool) {
	clamped = target.After(c.cfg.MaxDate)
	c.day = c.cfg.Clamp(target)
	c.phase = Open
	return clamped
}

// JumpDays advances the clock by n calendar days.
func (c *Clock) JumpDays(n int) (clamped bool) { return c.jump(c.day.Add(n)) }

// JumpMonths advances the clock by n calendar months.
func (c *Clock) JumpMonths(n int) (clamped bool) { return c.jump(c.day.AddMonths(n)) }

// JumpTo moves the clock to an explicit target date. A target before the
// current date is rejected with ErrBackwardJump and the clock is unchanged.
func (c *Clock) JumpTo(target Date) (clamped bool, err error) {
	if target.Before(c.day) {
		return false, fmt.Errorf("cannot jump from %s to %s: %w", c.day, target, ErrBackwardJump)
	}
	return c.jump(target), nil
}

// SkipWeekend advances to the next Monday when the clock sits on a weekend;
// otherwise it behaves like a jump by zero days.
func (c *Clock) SkipWeekend() (clamped bool) {
	switch c.day.Weekday() {
	case time.Saturday:
		return c.jump(c.day.Add(2))
	case time.Sunday:
		return c.jump(c.day.Add(1))
	default:
		return c.jump(c.day)
	}
}
