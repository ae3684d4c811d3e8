package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/performance"
	"github.com/google/subcommands"
)

type formatLedgerCmd struct {
	check bool
}

func (*formatLedgerCmd) Name() string     { return "format-ledger" }
func (*formatLedgerCmd) Synopsis() string { return "formats the ledger file into a canonical form" }
func (*formatLedgerCmd) Usage() string {
	return `perf format-ledger [-check]

  Rewrites the ledger file into a canonical form: declarations, prices and
  exchange rates first, then transactions in chronological order. Transactions
  without an id are given one.
`
}

func (c *formatLedgerCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.check, "check", false, "do not write the file, fail if it is not formatted")
}

func (c *formatLedgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := settings()
	if err != nil {
		logger().Error().Err(err).Msg("cannot load the configuration")
		return subcommands.ExitFailure
	}

	original, err := os.ReadFile(cfg.Ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := performance.DecodeLedger(bytes.NewReader(original))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	var formatted bytes.Buffer
	if err := performance.EncodeLedger(&formatted, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.check {
		if !bytes.Equal(original, formatted.Bytes()) {
			fmt.Fprintf(os.Stderr, "Ledger file '%s' is not formatted.\n", cfg.Ledger)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := os.WriteFile(cfg.Ledger, formatted.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", cfg.Ledger, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Ledger file '%s' has been formatted.\n", cfg.Ledger)
	return subcommands.ExitSuccess
}
