package newgame

import (
	"errors"
	"testing"
	"time"
)

func TestClock_AdvanceSession(t *testing.T) {
	c := NewClock(testConfig())

	if c.Date() != MustParseDate("2020-01-02") || c.Phase() != Open {
		t.Fatalf("fresh clock at %s (%s)", c.Date(), c.Phase())
	}

	if clamped := c.AdvanceSession(); clamped {
		t.Error("open to close should not clamp")
	}
	if c.Date() != MustParseDate("2020-01-02") || c.Phase() != Close {
		t.Fatalf("after one advance: %s (%s)", c.Date(), c.Phase())
	}

	c.AdvanceSession()
	if c.Date() != MustParseDate("2020-01-03") || c.Phase() != Open {
		t.Fatalf("after two advances: %s (%s)", c.Date(), c.Phase())
	}
}

func TestClock_AdvanceSessionAtHorizon(t *testing.T) {
	cfg := testConfig()
	c := NewClock(cfg)
	c.restore(cfg.MaxDate, Close)

	if clamped := c.AdvanceSession(); !clamped {
		t.Error("advancing past the horizon should report the boundary")
	}
	if c.Date() != cfg.MaxDate || c.Phase() != Close {
		t.Errorf("clock moved past the horizon: %s (%s)", c.Date(), c.Phase())
	}
}

func TestClock_Jumps(t *testing.T) {
	testCases := []struct {
		name string
		move func(*Clock) bool
		want string
	}{
		{"one week", func(c *Clock) bool { return c.JumpDays(7) }, "2020-01-09"},
		{"one month", func(c *Clock) bool { return c.JumpMonths(1) }, "2020-02-02"},
		{"one year", func(c *Clock) bool { return c.JumpMonths(12) }, "2021-01-02"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClock(testConfig())
			c.AdvanceSession() // phase close, so jumps must reset to open

			if clamped := tc.move(c); clamped {
				t.Error("unexpected clamp")
			}
			if c.Date() != MustParseDate(tc.want) {
				t.Errorf("date = %s, want %s", c.Date(), tc.want)
			}
			if c.Phase() != Open {
				t.Error("jump should reset the phase to open")
			}
		})
	}
}

func TestClock_JumpClampsToHorizon(t *testing.T) {
	cfg := testConfig()
	c := NewClock(cfg)
	c.restore(NewDate(2025, time.December, 20), Open)

	if clamped := c.JumpMonths(1); !clamped {
		t.Error("jump beyond the horizon should report the boundary")
	}
	if c.Date() != cfg.MaxDate {
		t.Errorf("date = %s, want %s", c.Date(), cfg.MaxDate)
	}
}

func TestClock_JumpToBackwardIsRejected(t *testing.T) {
	c := NewClock(testConfig())
	c.restore(MustParseDate("2020-06-15"), Close)

	_, err := c.JumpTo(MustParseDate("2020-06-14"))
	if !errors.Is(err, ErrBackwardJump) {
		t.Fatalf("err = %v, want ErrBackwardJump", err)
	}
	if c.Date() != MustParseDate("2020-06-15") || c.Phase() != Close {
		t.Error("rejected jump must leave the clock unchanged")
	}
}

func TestClock_JumpToSameDate(t *testing.T) {
	c := NewClock(testConfig())
	if _, err := c.JumpTo(c.Date()); err != nil {
		t.Errorf("jump to the current date is allowed: %v", err)
	}
}

func TestClock_SkipWeekend(t *testing.T) {
	testCases := []struct {
		name string
		from string
		want string
	}{
		{"saturday to monday", "2020-01-04", "2020-01-06"},
		{"sunday to monday", "2020-01-05", "2020-01-06"},
		{"weekday no-op", "2020-01-07", "2020-01-07"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClock(testConfig())
			c.restore(MustParseDate(tc.from), Open)
			c.SkipWeekend()
			if c.Date() != MustParseDate(tc.want) {
				t.Errorf("date = %s, want %s", c.Date(), tc.want)
			}
		})
	}
}

func TestClock_MonotonicUnderNavigation(t *testing.T) {
	c := NewClock(testConfig())
	prev := c.Date()
	moves := []func(){
		func() { c.AdvanceSession() },
		func() { c.JumpDays(7) },
		func() { c.AdvanceSession() },
		func() { c.JumpMonths(1) },
		func() { c.SkipWeekend() },
		func() { c.JumpMonths(12) },
		func() { c.AdvanceSession() },
	}
	for i, move := range moves {
		move()
		if c.Date().Before(prev) {
			t.Fatalf("move %d went backward: %s < %s", i, c.Date(), prev)
		}
		prev = c.Date()
	}
}
