package renderer

import (
	"fmt"
	"strings"

	"github.com/mitchypi/newgame"
)

// TransactionsMarkdown renders the trade log as a markdown table, newest last.
func TransactionsMarkdown(txs []newgame.Transaction) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Transactions\n\n")

	if len(txs) == 0 {
		fmt.Fprintln(&b, "No trades yet.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Phase | Kind | Symbol | Quantity | Price | Total | Realized |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|---:|---:|---:|")
	for _, tx := range txs {
		realized := ""
		if tx.RealizedPnL != nil {
			realized = signedUSD(*tx.RealizedPnL)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Phase, tx.Kind, tx.Symbol, tx.Quantity,
			newgame.FormatUSD(tx.Price), newgame.FormatUSD(tx.Total), realized)
	}
	return b.String()
}
