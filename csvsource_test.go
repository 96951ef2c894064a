package newgame

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeSeries(t *testing.T) {
	testCases := []struct {
		name string
		csv  string
		len  int
	}{
		{
			"standard header",
			"Date,Open,High,Low,Close,Volume\n" +
				"2020-01-02,296.24,300.60,295.19,300.35,33870100\n" +
				"2020-01-03,297.15,300.58,296.50,297.43,36580700\n",
			2,
		},
		{
			"lowercase header",
			"date,close\n2020-01-02,300.35\n",
			1,
		},
		{
			"adj close fallback",
			"Date,Adj Close\n2020-01-02,298.82\n",
			1,
		},
		{
			"crypto timestamp suffix",
			"date,close\n2020-01-02 00:00:00+00:00,7200.17\n2020-01-03T00:00:00Z,7344.88\n",
			2,
		},
		{
			"bad rows skipped",
			"Date,Close\nnot-a-date,100\n2020-01-02,not-a-price\n2020-01-03,101\n",
			1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := DecodeSeries(strings.NewReader(tc.csv))
			if err != nil {
				t.Fatal(err)
			}
			if s.Len() != tc.len {
				t.Errorf("len = %d, want %d", s.Len(), tc.len)
			}
		})
	}
}

func TestDecodeSeries_PicksCloseOverAdjClose(t *testing.T) {
	s, err := DecodeSeries(strings.NewReader("Date,Adj Close,Close\n2020-01-02,290.00,300.35\n"))
	if err != nil {
		t.Fatal(err)
	}
	price, _ := s.PriceAsOf(MustParseDate("2020-01-02"))
	if !price.Equal(dec("300.35")) {
		t.Errorf("price = %s, want the Close column value", price)
	}
}

func TestDecodeSeries_NoCloseColumn(t *testing.T) {
	if _, err := DecodeSeries(strings.NewReader("Date,Open,High\n2020-01-02,1,2\n")); err == nil {
		t.Error("expected an error when no close column exists")
	}
}

func writeDataFile(t *testing.T, root, sub, name, content string) {
	t.Helper()
	dir := filepath.Join(root, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirSource(t *testing.T) {
	root := t.TempDir()
	writeDataFile(t, root, "stocks", "AAPL.csv", "Date,Close\n2020-01-02,300.35\n")
	writeDataFile(t, root, "crypto", "BTC-USD.csv", "date,close\n2020-01-02 00:00:00+00:00,7200.17\n")
	writeDataFile(t, root, "stocks", "manifest.json",
		`{"symbols": [{"symbol": "AAPL", "name": "Apple Inc.", "asset_type": "STOCK"}]}`)
	writeDataFile(t, root, "crypto", "manifest.json",
		`{"symbols": [{"symbol": "BTC-USD", "name": "Bitcoin", "asset_type": "CRYPTO"}]}`)

	d := NewDirSource(root)
	ctx := context.Background()

	// Both subdirectories serve series, case-insensitively.
	for _, symbol := range []string{"aapl", "BTC-USD"} {
		s, err := d.Series(ctx, symbol)
		if err != nil {
			t.Fatalf("%s: %v", symbol, err)
		}
		if s.Len() != 1 {
			t.Errorf("%s: len = %d, want 1", symbol, s.Len())
		}
	}

	if _, err := d.Series(ctx, "MISSING"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing symbol: err = %v, want fs.ErrNotExist", err)
	}

	c, err := d.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("catalog merges both manifests, len = %d", c.Len())
	}
}

func TestDirSource_NoManifests(t *testing.T) {
	d := NewDirSource(t.TempDir())
	c, err := d.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("len = %d, want 0", c.Len())
	}
}
