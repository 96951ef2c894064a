package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type nextCmd struct{}

func (*nextCmd) Name() string     { return "next" }
func (*nextCmd) Synopsis() string { return "advance the clock by one session" }
func (*nextCmd) Usage() string {
	return `replay next

  Advances the clock by one half-day: open to close, or close to the next
  date's open. Records a valuation snapshot at the new instant.
`
}
func (*nextCmd) SetFlags(*flag.FlagSet) {}

func (c *nextCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	clamped, err := s.AdvanceSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	on, phase := s.Now()
	fmt.Printf("Now at %s (%s)\n", on, phase)
	if clamped {
		fmt.Println("The simulation has reached its horizon.")
	}
	return subcommands.ExitSuccess
}
