package renderer

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchypi/newgame"
)

// HoldingsMarkdown renders the current positions with as-of prices from the
// session's index, plus the cash line and total.
func HoldingsMarkdown(ctx context.Context, s *newgame.Session) (string, error) {
	var b strings.Builder
	on, phase := s.Now()
	fmt.Fprintf(&b, "# Portfolio on %s (%s)\n\n", on, phase)

	fmt.Fprintln(&b, "| Symbol | Quantity | Avg Cost | Price | Day | Value | Unrealized |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")

	total := s.Cash()
	for _, h := range s.Holdings() {
		price, ok, err := s.Index().PriceAsOf(ctx, h.Symbol, on)
		if err != nil {
			return "", err
		}
		if !ok {
			fmt.Fprintf(&b, "| %s | %s | %s | n/a | n/a | n/a | n/a |\n", h.Symbol, h.Quantity, h.AvgCost)
			continue
		}
		day := "n/a"
		if change, ok, err := s.DayChange(ctx, h.Symbol); err != nil {
			return "", err
		} else if ok {
			day = signedUSD(change)
		}
		value := h.MarketValue(price)
		total = total.Add(value)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			h.Symbol, h.Quantity,
			newgame.FormatUSD(h.AvgCost), newgame.FormatUSD(price), day,
			newgame.FormatUSD(value), signedUSD(h.UnrealizedPnL(price)))
	}

	fmt.Fprintf(&b, "\nCash: %s\n", newgame.FormatUSD(s.Cash()))
	fmt.Fprintf(&b, "Total: %s\n", newgame.FormatUSD(s.Config().RoundCash(total)))
	return b.String(), nil
}
