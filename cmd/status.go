package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mitchypi/newgame"
)

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show the current date, cash, and portfolio value" }
func (*statusCmd) Usage() string {
	return `replay status

  Shows the simulated clock, the cash balance, and the total portfolio value.
`
}
func (*statusCmd) SetFlags(*flag.FlagSet) {}

func (c *statusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	on, phase := s.Now()
	value, err := s.Valuation(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing valuation: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Date:  %s (%s)\n", on, phase)
	fmt.Printf("Cash:  %s\n", newgame.FormatUSD(s.Cash()))
	fmt.Printf("Value: %s\n", newgame.FormatUSD(value))
	return subcommands.ExitSuccess
}
