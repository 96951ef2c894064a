package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mitchypi/newgame"
)

type jumpCmd struct {
	week  bool
	month bool
	year  bool
	to    string
}

func (*jumpCmd) Name() string     { return "jump" }
func (*jumpCmd) Synopsis() string { return "jump the clock forward" }
func (*jumpCmd) Usage() string {
	return `replay jump -w | -m | -y | -to <date>

  Jumps the clock forward by a week, a month, a year, or to an explicit
  later date. Jumping backward is not possible.
`
}

func (c *jumpCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.week, "w", false, "jump one week")
	f.BoolVar(&c.month, "m", false, "jump one month")
	f.BoolVar(&c.year, "y", false, "jump one year")
	f.StringVar(&c.to, "to", "", "jump to an explicit date (YYYY-MM-DD)")
}

func (c *jumpCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	chosen := 0
	for _, b := range []bool{c.week, c.month, c.year, c.to != ""} {
		if b {
			chosen++
		}
	}
	if chosen != 1 {
		fmt.Fprintln(os.Stderr, "exactly one of -w, -m, -y, or -to must be provided")
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var clamped bool
	switch {
	case c.week:
		clamped, err = s.JumpWeek(ctx)
	case c.month:
		clamped, err = s.JumpMonth(ctx)
	case c.year:
		clamped, err = s.JumpYear(ctx)
	default:
		var target newgame.Date
		target, err = newgame.ParseDate(c.to)
		if err == nil {
			clamped, err = s.JumpTo(ctx, target)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Jump rejected: %v\n", err)
		return subcommands.ExitFailure
	}

	on, phase := s.Now()
	fmt.Printf("Now at %s (%s)\n", on, phase)
	if clamped {
		fmt.Println("The simulation has reached its horizon.")
	}
	return subcommands.ExitSuccess
}
