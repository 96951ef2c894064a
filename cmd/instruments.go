package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type instrumentsCmd struct{}

func (*instrumentsCmd) Name() string     { return "instruments" }
func (*instrumentsCmd) Synopsis() string { return "list the tradable instruments" }
func (*instrumentsCmd) Usage() string {
	return `replay instruments

  Lists every symbol in the catalog with its name and kind.
`
}
func (*instrumentsCmd) SetFlags(*flag.FlagSet) {}

func (c *instrumentsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, symbol := range s.Catalog().Symbols() {
		inst, _ := s.Catalog().Get(symbol)
		fmt.Printf("%-10s %-6s %s\n", inst.Symbol, inst.Kind, inst.Name)
	}
	return subcommands.ExitSuccess
}
