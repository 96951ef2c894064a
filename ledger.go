package newgame

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Holding is an open position: a quantity of shares and the average cost
// paid per share. A holding's quantity is always positive; a position that
// reaches zero is deleted, never stored as zero.
type Holding struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	AvgCost  decimal.Decimal `json:"avgCost"`
}

// MarketValue returns the holding valued at the given price.
func (h Holding) MarketValue(price decimal.Decimal) decimal.Decimal {
	return h.Quantity.Mul(price)
}

// UnrealizedPnL returns the gain over cost basis at the given price.
func (h Holding) UnrealizedPnL(price decimal.Decimal) decimal.Decimal {
	return price.Sub(h.AvgCost).Mul(h.Quantity)
}

// Order specifies the size of a trade: either an exact share quantity or a
// cash budget to convert at the execution price.
type Order struct {
	amount   decimal.Decimal
	isBudget bool
}

// Shares orders an exact quantity of shares.
func Shares(quantity decimal.Decimal) Order { return Order{amount: quantity} }

// Budget orders as many shares as the given cash amount affords at the
// execution price. Quantization floors, so the resulting cost never exceeds
// the budget.
func Budget(cash decimal.Decimal) Order { return Order{amount: cash, isBudget: true} }

// resolve converts the order into a share quantity at the given price,
// floored to the share quantum.
func (o Order) resolve(cfg Config, price decimal.Decimal) decimal.Decimal {
	if o.isBudget {
		if price.IsZero() {
			return decimal.Zero
		}
		return cfg.FloorShares(o.amount.Div(price))
	}
	return cfg.FloorShares(o.amount)
}

// Ledger holds the player's cash, open positions, and the append-only
// transaction log. All mutation goes through Buy and Sell, which are atomic:
// they validate completely before touching any state.
type Ledger struct {
	cfg      Config
	cash     decimal.Decimal
	holdings map[string]Holding
	log      []Transaction
	nextSeq  uint64
}

// NewLedger creates a ledger holding the configured starting cash.
func NewLedger(cfg Config) *Ledger {
	return &Ledger{
		cfg:      cfg,
		cash:     cfg.RoundCash(cfg.StartingCash),
		holdings: make(map[string]Holding),
	}
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() decimal.Decimal { return l.cash }

// Holding returns the open position for a symbol, if any.
func (l *Ledger) Holding(symbol string) (Holding, bool) {
	h, ok := l.holdings[symbol]
	return h, ok
}

// Holdings returns all open positions ordered by symbol.
func (l *Ledger) Holdings() []Holding {
	out := make([]Holding, 0, len(l.holdings))
	for _, h := range l.holdings {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Transactions returns a copy of the transaction log, in log order.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.log))
	copy(out, l.log)
	return out
}

// append stamps the transaction with the next sequence number and records it.
func (l *Ledger) append(tx Transaction) Transaction {
	tx.Seq = l.nextSeq
	l.nextSeq++
	l.log = append(l.log, tx)
	return tx
}

// Buy executes a purchase of symbol at price and records it at (on, phase).
// The order resolves to a quantized quantity; the rounded cost must fit in
// the available cash. On any failure the ledger is unchanged.
func (l *Ledger) Buy(symbol string, price decimal.Decimal, order Order, on Date, phase Phase) (Transaction, error) {
	quantity := order.resolve(l.cfg, price)
	if !quantity.IsPositive() {
		return Transaction{}, fmt.Errorf("buy %s: %w", symbol, ErrInvalidQuantity)
	}
	cost := l.cfg.RoundCash(quantity.Mul(price))
	if cost.GreaterThan(l.cash) {
		return Transaction{}, fmt.Errorf("buy %s for %s with %s cash: %w", symbol, cost, l.cash, ErrInsufficientFunds)
	}

	h, ok := l.holdings[symbol]
	if !ok {
		h = Holding{Symbol: symbol, Quantity: quantity, AvgCost: price}
	} else {
		// Weighted average of the existing cost basis and the new purchase.
		oldBasis := h.AvgCost.Mul(h.Quantity)
		newQty := h.Quantity.Add(quantity)
		h.AvgCost = oldBasis.Add(cost).Div(newQty)
		h.Quantity = newQty
	}
	l.holdings[symbol] = h
	l.cash = l.cash.Sub(cost)

	return l.append(newTransaction(TxBuy, on, phase, symbol, quantity, price, cost)), nil
}

// Sell executes a sale of symbol at price and records it at (on, phase).
// Selling more than held sells the entire position; selling with no holding
// at all fails with ErrInsufficientHoldings. The average cost of any
// remaining shares is unchanged. On any failure the ledger is unchanged.
func (l *Ledger) Sell(symbol string, price decimal.Decimal, order Order, on Date, phase Phase) (Transaction, error) {
	h, ok := l.holdings[symbol]
	if !ok {
		return Transaction{}, fmt.Errorf("sell %s: %w", symbol, ErrInsufficientHoldings)
	}
	quantity := order.resolve(l.cfg, price)
	if quantity.GreaterThan(h.Quantity) {
		quantity = h.Quantity
	}
	if !quantity.IsPositive() {
		return Transaction{}, fmt.Errorf("sell %s: %w", symbol, ErrInvalidQuantity)
	}

	proceeds := l.cfg.RoundCash(quantity.Mul(price))
	realized := l.cfg.RoundCash(proceeds.Sub(h.AvgCost.Mul(quantity)))

	remaining := h.Quantity.Sub(quantity)
	if l.cfg.FloorShares(remaining).IsPositive() {
		h.Quantity = remaining
		l.holdings[symbol] = h
	} else {
		delete(l.holdings, symbol)
	}
	l.cash = l.cash.Add(proceeds)

	tx := newTransaction(TxSell, on, phase, symbol, quantity, price, proceeds)
	tx.RealizedPnL = &realized
	return l.append(tx), nil
}

// restore resets the ledger to a persisted state. The transaction log must
// already be in log order.
func (l *Ledger) restore(cash decimal.Decimal, holdings []Holding, log []Transaction) {
	l.cash = cash
	l.holdings = make(map[string]Holding, len(holdings))
	for _, h := range holdings {
		if h.Quantity.IsPositive() {
			l.holdings[h.Symbol] = h
		}
	}
	l.log = append([]Transaction(nil), log...)
	l.nextSeq = 0
	for _, tx := range l.log {
		if tx.Seq >= l.nextSeq {
			l.nextSeq = tx.Seq + 1
		}
	}
}
