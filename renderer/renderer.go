// Package renderer turns core reporting types into markdown for the
// command-line surface. It is a thin presentation adapter: nothing here
// feeds back into the ledger.
package renderer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// bar renders a proportional bar of width cells for a value within
// [min, max]. Used for the inline value-over-time chart.
func bar(v, min, max decimal.Decimal, width int) string {
	if width <= 0 || max.LessThanOrEqual(min) {
		return ""
	}
	span := max.Sub(min)
	cells := v.Sub(min).Div(span).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart()
	if cells < 0 {
		cells = 0
	}
	if cells > int64(width) {
		cells = int64(width)
	}
	return strings.Repeat("█", int(cells))
}
