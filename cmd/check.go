package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the ledger" }
func (*checkCmd) Usage() string {
	return `perf check

  Validates the ledger declarations and transactions, and makes sure the
  ledger can be valued on every day with a transaction.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	as, cfg, err := accountingSystem()
	if err != nil {
		logger().Error().Err(err).Msg("cannot load the ledger")
		return subcommands.ExitFailure
	}
	if err := as.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "Ledger %q is invalid:\n%v\n", cfg.Ledger, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Ledger %q is valid.\n", cfg.Ledger)
	return subcommands.ExitSuccess
}
