package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/mitchypi/newgame"
)

type buyCmd struct {
	quantity string
	budget   string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy an instrument at the current date's price" }
func (*buyCmd) Usage() string {
	return `replay buy -q <quantity> | -b <cash> <symbol>

  Buys a quantity of shares, or as many shares as the cash budget affords.

Usage Examples:
# Buy 10 shares of AAPL.
$ replay buy -q 10 AAPL
# Spend up to 2500 on SPY.
$ replay buy -b 2500 SPY
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "q", "", "number of shares to buy")
	f.StringVar(&c.budget, "b", "", "cash budget to spend")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	order, symbol, status := parseOrder(c.quantity, c.budget, f)
	if status != subcommands.ExitSuccess {
		return status
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err := s.Buy(ctx, symbol, order)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buy rejected: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Bought %s %s at %s for %s\n",
		tx.Quantity, tx.Symbol, newgame.FormatUSD(tx.Price), newgame.FormatUSD(tx.Total))
	fmt.Printf("Cash remaining: %s\n", newgame.FormatUSD(s.Cash()))
	return subcommands.ExitSuccess
}

// parseOrder validates the shared -q/-b flags and the symbol argument.
func parseOrder(quantity, budget string, f *flag.FlagSet) (newgame.Order, string, subcommands.ExitStatus) {
	if (quantity == "") == (budget == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -q or -b must be provided")
		return newgame.Order{}, "", subcommands.ExitUsageError
	}
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one instrument symbol is required")
		return newgame.Order{}, "", subcommands.ExitUsageError
	}

	raw, mk := quantity, newgame.Shares
	if budget != "" {
		raw, mk = budget, newgame.Budget
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid amount %q: %v\n", raw, err)
		return newgame.Order{}, "", subcommands.ExitUsageError
	}
	return mk(amount), f.Arg(0), subcommands.ExitSuccess
}
