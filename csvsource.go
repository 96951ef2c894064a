package newgame

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// DirSource loads price series and the instrument catalog from the directory
// tree written by the offline data pipeline:
//
//	<root>/stocks/manifest.json
//	<root>/stocks/<SYMBOL>.csv
//	<root>/crypto/manifest.json
//	<root>/crypto/<SYMBOL>.csv
//
// Each CSV has a header row; the date lives in the first column (or a column
// named "Date"/"date") and the price in the first of "Close", "close",
// "Adj Close", "adj_close".
type DirSource struct {
	root string
}

// NewDirSource creates a source rooted at the given data directory.
func NewDirSource(root string) *DirSource { return &DirSource{root: root} }

func (d *DirSource) subdirs() []string {
	return []string{filepath.Join(d.root, "stocks"), filepath.Join(d.root, "crypto")}
}

// Series implements Source. It returns fs.ErrNotExist wrapped if no data
// file exists for the symbol.
func (d *DirSource) Series(_ context.Context, symbol string) (*Series, error) {
	symbol = strings.ToUpper(symbol)
	for _, dir := range d.subdirs() {
		path := filepath.Join(dir, symbol+".csv")
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		s, err := DecodeSeries(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("no price data for %s under %s: %w", symbol, d.root, fs.ErrNotExist)
}

// Catalog merges the stock and crypto manifests into one instrument catalog.
// A missing manifest file is not an error; an empty catalog only means no
// manifest was found at all.
func (d *DirSource) Catalog() (*Catalog, error) {
	merged := NewCatalog()
	for _, dir := range d.subdirs() {
		path := filepath.Join(dir, "manifest.json")
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		c, err := DecodeCatalog(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		for _, symbol := range c.Symbols() {
			inst, _ := c.Get(symbol)
			merged.add(inst)
		}
	}
	return merged, nil
}

// closeColumns lists accepted price column headers, in priority order.
var closeColumns = []string{"Close", "close", "Adj Close", "adj_close"}

// DecodeSeries parses one price CSV stream into a Series. Rows with an
// unparsable date or price are skipped; the file-level format (header,
// locatable price column) must be valid.
func DecodeSeries(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	dateCol := 0
	for i, name := range header {
		if name == "Date" || name == "date" {
			dateCol = i
			break
		}
	}
	closeCol := -1
	for _, candidate := range closeColumns {
		for i, name := range header {
			if name == candidate {
				closeCol = i
				break
			}
		}
		if closeCol >= 0 {
			break
		}
	}
	if closeCol < 0 {
		return nil, fmt.Errorf("no close column in header %v", header)
	}

	s := &Series{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if len(record) <= dateCol || len(record) <= closeCol {
			continue
		}
		// Crypto exports carry a full timestamp; keep the date part only.
		raw := record[dateCol]
		if i := strings.IndexAny(raw, " T"); i > 0 {
			raw = raw[:i]
		}
		day, err := ParseDate(raw)
		if err != nil {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[closeCol]))
		if err != nil {
			continue
		}
		s.Append(day, price)
	}
	return s, nil
}
