package newgame

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies an instrument for availability rules and display.
type Kind string

const (
	Stock  Kind = "STOCK"
	ETF    Kind = "ETF"
	Crypto Kind = "CRYPTO"
)

// Instrument describes one tradable symbol from the catalog manifest.
type Instrument struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Kind              Kind    `json:"asset_type"`
	Segment           string  `json:"segment,omitempty"`
	SharesOutstanding float64 `json:"shares_outstanding,omitempty"`
}

// IsCrypto reports whether the instrument trades on the crypto calendar
// (every day of the week, from its inception date onward).
func (i Instrument) IsCrypto() bool { return i.Kind == Crypto }

// MarketCap estimates the market capitalization from a closing price.
// It returns zero when shares outstanding is unknown.
func (i Instrument) MarketCap(close decimal.Decimal) decimal.Decimal {
	if i.SharesOutstanding <= 0 {
		return decimal.Zero
	}
	return close.Mul(decimal.NewFromFloat(i.SharesOutstanding))
}

// Catalog is the read-only instrument registry, indexed by upper-cased symbol.
type Catalog struct {
	index map[string]Instrument
}

// NewCatalog builds a catalog from a list of instruments. Later duplicates
// of the same symbol overwrite earlier ones.
func NewCatalog(instruments ...Instrument) *Catalog {
	c := &Catalog{index: make(map[string]Instrument, len(instruments))}
	for _, inst := range instruments {
		c.add(inst)
	}
	return c
}

func (c *Catalog) add(inst Instrument) {
	inst.Symbol = strings.ToUpper(inst.Symbol)
	if inst.Name == "" {
		inst.Name = inst.Symbol
	}
	if inst.Kind == "" {
		inst.Kind = Stock
	}
	c.index[inst.Symbol] = inst
}

// Get returns the instrument for a symbol, case-insensitively.
func (c *Catalog) Get(symbol string) (Instrument, bool) {
	inst, ok := c.index[strings.ToUpper(symbol)]
	return inst, ok
}

// Has reports whether the symbol is in the catalog.
func (c *Catalog) Has(symbol string) bool {
	_, ok := c.Get(symbol)
	return ok
}

// Len returns the number of instruments in the catalog.
func (c *Catalog) Len() int { return len(c.index) }

// Symbols returns all symbols in lexical order.
func (c *Catalog) Symbols() []string {
	symbols := make([]string, 0, len(c.index))
	for s := range c.index {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// manifest is the JSON layout written by the offline data pipeline.
type manifest struct {
	Symbols []Instrument `json:"symbols"`
}

// DecodeCatalog reads a catalog from a manifest stream. The manifest is
// either an object with a "symbols" list or a bare list of instruments.
// An empty manifest in either layout decodes to an empty catalog.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var symbols []Instrument
	if trimmed := bytes.TrimLeft(raw, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		// Bare-list layout.
		if err := json.Unmarshal(raw, &symbols); err != nil {
			return nil, fmt.Errorf("decoding manifest: %w", err)
		}
	} else {
		var m manifest
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decoding manifest: %w", err)
		}
		symbols = m.Symbols
	}
	c := NewCatalog()
	for _, inst := range symbols {
		if inst.Symbol == "" {
			continue
		}
		c.add(inst)
	}
	return c, nil
}

// Tradable reports whether an instrument can be traded on a given date.
// Equities and ETFs trade on weekdays only. Crypto trades every day, but
// only once the date has reached the instrument's inception; before that it
// is treated exactly like a security listed later (no market, no price).
func (c Config) Tradable(inst Instrument, on Date) bool {
	if inst.IsCrypto() {
		inception, ok := c.Inceptions[strings.ToUpper(inst.Symbol)]
		if !ok {
			// Unknown inception: conservatively allow once prices exist.
			return true
		}
		return !on.Before(inception)
	}
	return !on.IsWeekend()
}
