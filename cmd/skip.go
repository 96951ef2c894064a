package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type skipCmd struct{}

func (*skipCmd) Name() string     { return "skip" }
func (*skipCmd) Synopsis() string { return "skip a weekend to the next Monday" }
func (*skipCmd) Usage() string {
	return `replay skip

  Advances the clock to the next Monday if it sits on a weekend; otherwise
  leaves the date unchanged.
`
}
func (*skipCmd) SetFlags(*flag.FlagSet) {}

func (c *skipCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if _, err := s.SkipWeekend(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	on, phase := s.Now()
	fmt.Printf("Now at %s (%s)\n", on, phase)
	return subcommands.ExitSuccess
}
