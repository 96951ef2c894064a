package newgame

import (
	"testing"
)

func TestSeries_PriceAsOf(t *testing.T) {
	s := seriesOf(
		"2020-01-02 100",
		"2020-01-03 101",
		"2020-01-06 104", // weekend gap
		"2020-01-07 105",
	)

	testCases := []struct {
		name string
		day  string
		want string
		ok   bool
	}{
		{"before first point", "2020-01-01", "", false},
		{"exact first point", "2020-01-02", "100", true},
		{"exact inner point", "2020-01-03", "101", true},
		{"weekend falls back to friday", "2020-01-05", "101", true},
		{"exact last point", "2020-01-07", "105", true},
		{"after last point", "2020-12-31", "105", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price, ok := s.PriceAsOf(MustParseDate(tc.day))
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && !price.Equal(dec(tc.want)) {
				t.Errorf("price = %s, want %s", price, tc.want)
			}
		})
	}
}

func TestSeries_PriceAsOf_Empty(t *testing.T) {
	s := &Series{}
	if _, ok := s.PriceAsOf(MustParseDate("2020-01-01")); ok {
		t.Error("empty series should have no price")
	}
}

func TestSeries_AppendOverwritesDuplicateDate(t *testing.T) {
	s := seriesOf("2020-01-02 100")
	s.Append(MustParseDate("2020-01-02"), dec("110"))

	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	price, _ := s.PriceAsOf(MustParseDate("2020-01-02"))
	if !price.Equal(dec("110")) {
		t.Errorf("duplicate date should keep the later write, got %s", price)
	}
}

func TestSeries_AppendOutOfOrder(t *testing.T) {
	s := &Series{}
	s.Append(MustParseDate("2020-01-06"), dec("104"))
	s.Append(MustParseDate("2020-01-02"), dec("100"))

	day, _ := s.Earliest()
	if day != MustParseDate("2020-01-02") {
		t.Errorf("series should re-sort on out-of-order append, earliest = %s", day)
	}
}

func TestSeries_PreviousTradingPrice(t *testing.T) {
	s := seriesOf(
		"2020-01-02 100",
		"2020-01-03 101",
		"2020-01-06 104",
	)

	testCases := []struct {
		name     string
		day      string
		lookback int
		want     string
		ok       bool
	}{
		{"previous weekday", "2020-01-03", 10, "100", true},
		{"across weekend gap", "2020-01-06", 10, "101", true},
		{"as-of resolves then steps back", "2020-01-05", 10, "100", true},
		{"reference is first point", "2020-01-02", 10, "", false},
		{"no as-of point at all", "2020-01-01", 10, "", false},
		{"bounded lookback exhausted", "2020-01-06", 0, "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price, ok := s.PreviousTradingPrice(MustParseDate(tc.day), tc.lookback)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && !price.Equal(dec(tc.want)) {
				t.Errorf("price = %s, want %s", price, tc.want)
			}
		})
	}
}
