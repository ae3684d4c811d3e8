package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/performance/date"
	"github.com/etnz/performance/renderer"
	"github.com/google/subcommands"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	date  string
	json  bool
	query string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the value of every account and position on a date" }
func (*holdingCmd) Usage() string {
	return `perf holding [-d <date>] [-json [-q <jsonpath>]]

  Displays the ledger holdings (cash accounts and positions) on a given date,
  valued in the reporting currency.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date for the holdings report. See the user manual for supported date formats.")
	f.BoolVar(&c.json, "json", false, "print the report in JSON")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON report, implies -json")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	as, cfg, err := accountingSystem()
	if err != nil {
		logger().Error().Err(err).Msg("cannot load the ledger")
		return subcommands.ExitFailure
	}

	s, err := as.Snapshot(on)
	if err != nil {
		as.Logger.Error().Err(err).Stringer("on", on).Msg("cannot value the ledger")
		return subcommands.ExitFailure
	}

	h := renderer.NewHolding("", s)
	if c.json || c.query != "" || cfg.Report.Format == "json" {
		if err := printJSON(os.Stdout, h, c.query); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderHolding(h))
	return subcommands.ExitSuccess
}
