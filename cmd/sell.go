package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mitchypi/newgame"
)

type sellCmd struct {
	quantity string
	budget   string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell an instrument at the current date's price" }
func (*sellCmd) Usage() string {
	return `replay sell -q <quantity> | -b <cash> <symbol>

  Sells a quantity of shares, or enough shares to raise the cash amount.
  Selling more than held sells the entire position.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "q", "", "number of shares to sell")
	f.StringVar(&c.budget, "b", "", "cash amount to raise")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	order, symbol, status := parseOrder(c.quantity, c.budget, f)
	if status != subcommands.ExitSuccess {
		return status
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err := s.Sell(ctx, symbol, order)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sell rejected: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Sold %s %s at %s for %s", tx.Quantity, tx.Symbol,
		newgame.FormatUSD(tx.Price), newgame.FormatUSD(tx.Total))
	if tx.RealizedPnL != nil {
		fmt.Printf(" (realized %s)", newgame.FormatUSD(*tx.RealizedPnL))
	}
	fmt.Println()
	fmt.Printf("Cash: %s\n", newgame.FormatUSD(s.Cash()))
	return subcommands.ExitSuccess
}
