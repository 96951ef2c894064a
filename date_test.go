package newgame

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_Arithmetic(t *testing.T) {
	testCases := []struct {
		name string
		got  Date
		want string
	}{
		{"add days", NewDate(2020, time.January, 30).Add(3), "2020-02-02"},
		{"add days across year", NewDate(2020, time.December, 30).Add(5), "2021-01-04"},
		{"add month", NewDate(2020, time.January, 15).AddMonths(1), "2020-02-15"},
		{"add twelve months", NewDate(2020, time.February, 29).AddMonths(12), "2021-03-01"},
		{"start of month", NewDate(2020, time.March, 17).StartOfMonth(), "2020-03-01"},
		{"end of month", NewDate(2020, time.February, 10).EndOfMonth(), "2020-02-29"},
		{"end of december", NewDate(2021, time.December, 5).EndOfMonth(), "2021-12-31"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.got.String(); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDate_IsWeekend(t *testing.T) {
	if !MustParseDate("2020-01-04").IsWeekend() { // Saturday
		t.Error("2020-01-04 should be a weekend")
	}
	if !MustParseDate("2020-01-05").IsWeekend() { // Sunday
		t.Error("2020-01-05 should be a weekend")
	}
	if MustParseDate("2020-01-06").IsWeekend() { // Monday
		t.Error("2020-01-06 should not be a weekend")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-7-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2025-07-01" {
		t.Errorf("got %s, want 2025-07-01", d)
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Error("expected an error for an invalid date")
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	in := MustParseDate("2020-03-10")
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `"2020-03-10"` {
		t.Errorf("got %s", raw)
	}
	var out Date
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip changed the date: %s != %s", out, in)
	}
}

func TestDate_SameMonth(t *testing.T) {
	if !MustParseDate("2020-03-01").SameMonth(MustParseDate("2020-03-31")) {
		t.Error("same month expected")
	}
	if MustParseDate("2020-03-01").SameMonth(MustParseDate("2021-03-01")) {
		t.Error("different years are different months")
	}
}
