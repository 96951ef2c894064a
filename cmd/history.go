package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mitchypi/newgame/renderer"
)

type historyCmd struct {
	labels int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the monthly portfolio value curve" }
func (*historyCmd) Usage() string {
	return `replay history [-labels <n>]

  Reconstructs and displays one portfolio valuation per calendar month, from
  the first recorded month through the current date.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.labels, "labels", 12, "maximum number of month labels to show")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	points, err := s.History(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reconstructing history: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Print(renderer.HistoryMarkdown(points, c.labels))
	return subcommands.ExitSuccess
}
