package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/performance/renderer"
	"github.com/google/subcommands"
)

// performanceCmd holds the flags for the 'performance' subcommand.
type performanceCmd struct {
	period  string
	start   string
	end     string
	summary bool
	gains   bool
	json    bool
	query   string
}

func (*performanceCmd) Name() string { return "performance" }
func (*performanceCmd) Synopsis() string {
	return "attribute the change of value over a period to gains, earnings, costs and transfers"
}
func (*performanceCmd) Usage() string {
	return `perf performance [-p <period> | -s <date>] [-d <date>] [-summary] [-gains] [-json [-q <jsonpath>]]

  Values the ledger at the start and at the end of the period, and explains
  the difference: capital gains, earnings, fees, taxes, currency gains and
  transfers. See 'perf topic performance' for the definitions.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "year", "Predefined period (day, week, month, quarter, year)")
	f.StringVar(&c.start, "s", "", "Start date of the reporting range, overrides -p. See the user manual for supported date formats.")
	f.StringVar(&c.end, "d", "0d", "End date of the reporting range. See the user manual for supported date formats.")
	f.BoolVar(&c.summary, "summary", false, "only print the summary table")
	f.BoolVar(&c.gains, "gains", false, "print the capital gains walk of every position")
	f.BoolVar(&c.json, "json", false, "print the report in JSON")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON report, implies -json")
}

func (c *performanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := reportRange(c.period, c.start, c.end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	as, cfg, err := accountingSystem()
	if err != nil {
		logger().Error().Err(err).Msg("cannot load the ledger")
		return subcommands.ExitFailure
	}

	cp, err := as.Performance(period)
	if err != nil {
		as.Logger.Error().Err(err).Stringer("range", period).Msg("cannot compute the performance")
		return subcommands.ExitFailure
	}

	if c.json || c.query != "" || cfg.Report.Format == "json" {
		if err := printJSON(os.Stdout, cp, c.query); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	var md strings.Builder
	md.WriteString(renderer.RenderPerformance(renderer.NewPerformance("", cp), renderer.PerformanceRenderOptions{SkipDetails: c.summary}))
	if c.gains {
		md.WriteString("\n")
		md.WriteString(renderer.GainsMarkdown(cp))
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
