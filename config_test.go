package newgame

import (
	"testing"
)

func TestConfig_RoundCash(t *testing.T) {
	cfg := testConfig()
	testCases := []struct {
		in, want string
	}{
		{"10.004", "10"},
		{"10.005", "10.01"},
		{"10.995", "11"},
		{"-10.005", "-10.01"},
		{"0", "0"},
	}
	for _, tc := range testCases {
		if got := cfg.RoundCash(dec(tc.in)); !got.Equal(dec(tc.want)) {
			t.Errorf("RoundCash(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestConfig_FloorShares(t *testing.T) {
	cfg := testConfig()
	testCases := []struct {
		in, want string
	}{
		{"3.00009", "3"},
		{"3.00019", "3.0001"},
		{"0.00009", "0"},
		{"5", "5"},
	}
	for _, tc := range testCases {
		if got := cfg.FloorShares(dec(tc.in)); !got.Equal(dec(tc.want)) {
			t.Errorf("FloorShares(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestConfig_Clamp(t *testing.T) {
	cfg := testConfig()
	if got := cfg.Clamp(cfg.MaxDate.Add(100)); got != cfg.MaxDate {
		t.Errorf("clamp past horizon = %s, want %s", got, cfg.MaxDate)
	}
	in := MustParseDate("2021-05-05")
	if got := cfg.Clamp(in); got != in {
		t.Errorf("clamp within horizon = %s, want %s", got, in)
	}
}
