package newgame

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// TxKind identifies the kind of a ledger transaction.
type TxKind string

const (
	TxBuy  TxKind = "buy"
	TxSell TxKind = "sell"
)

// Transaction is one immutable entry of the append-only trade log. The log
// is the single source of truth for replay: entries are never mutated or
// reordered after append. Ordering key is (Date, Phase, Seq).
type Transaction struct {
	ID       string          `json:"id"`
	Seq      uint64          `json:"seq"`
	Kind     TxKind          `json:"kind"`
	Date     Date            `json:"date"`
	Phase    Phase           `json:"phase"`
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
	// RealizedPnL is present only on sells: proceeds minus the average cost
	// of the shares sold, fixed at execution time.
	RealizedPnL *decimal.Decimal `json:"realizedPnL,omitempty"`
}

// newTransaction stamps a fresh transaction with a unique id.
func newTransaction(kind TxKind, on Date, phase Phase, symbol string, quantity, price, total decimal.Decimal) Transaction {
	return Transaction{
		ID:       uuid.New().String(),
		Kind:     kind,
		Date:     on,
		Phase:    phase,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Total:    total,
	}
}

// before reports whether t precedes u in log order.
func (t Transaction) before(u Transaction) bool {
	if c := t.Date.Compare(u.Date); c != 0 {
		return c < 0
	}
	if t.Phase != u.Phase {
		return t.Phase < u.Phase
	}
	return t.Seq < u.Seq
}
