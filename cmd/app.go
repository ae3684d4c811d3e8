// Package cmd implements the CLI application to report on the performance of a ledger.
package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/performance"
	"github.com/etnz/performance/config"
	"github.com/etnz/performance/date"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&performanceCmd{}, "reports")
	c.Register(&holdingCmd{}, "reports")

	c.Register(&checkCmd{}, "ledger")
	c.Register(&formatLedgerCmd{}, "ledger")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", envOr(EnvConfigFile, "perf.toml"), "Path to the TOML configuration file")
var ledgerFile = flag.String("ledger-file", "", "Path to the ledger file (JSONL format). Overrides the configuration.")
var defaultCurrency = flag.String("default-currency", "", "Reporting currency. Overrides the configuration.")

// Verbose turns on debug logging.
var Verbose = flag.Bool("v", false, "log the computation details")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// settings loads the configuration file, then applies the global flags.
func settings() (*config.Config, error) {
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.Ledger = *ledgerFile
	}
	if *defaultCurrency != "" {
		cfg.ReportingCurrency = *defaultCurrency
	}
	if *Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// DecodeLedger decodes the ledger file.
func DecodeLedger(path string) (*performance.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening ledger file %q: %w", path, err)
	}
	defer f.Close()
	return performance.DecodeLedger(f)
}

// accountingSystem loads the configuration and the ledger it points to.
func accountingSystem() (*performance.AccountingSystem, *config.Config, error) {
	cfg, err := settings()
	if err != nil {
		return nil, nil, err
	}
	log := config.NewLogger(cfg.LogLevel, os.Stderr)
	ledger, err := DecodeLedger(cfg.Ledger)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("ledger", cfg.Ledger).Str("currency", cfg.ReportingCurrency).Msg("ledger loaded")
	as, err := performance.NewAccountingSystem(ledger, cfg.ReportingCurrency, log)
	if err != nil {
		return nil, nil, err
	}
	return as, cfg, nil
}

// logger returns a logger for commands that failed before the configuration was loaded.
func logger() *zerolog.Logger {
	l := config.NewLogger("warn", os.Stderr)
	return &l
}

// reportRange computes the reporting range from an explicit start date, or
// from a standard period ending on the end date.
func reportRange(period, start, end string) (date.Range, error) {
	endDate, err := date.Parse(end)
	if err != nil {
		return date.Range{}, fmt.Errorf("error parsing end date: %w", err)
	}
	if start != "" {
		startDate, err := date.Parse(start)
		if err != nil {
			return date.Range{}, fmt.Errorf("error parsing start date: %w", err)
		}
		return date.Range{From: startDate, To: endDate}, nil
	}
	p, err := date.ParsePeriod(period)
	if err != nil {
		return date.Range{}, err
	}
	return date.PeriodRange(endDate, p), nil
}

// printMarkdown renders markdown for the terminal, or prints it raw when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// printJSON writes v as indented JSON. A non empty query is a JSONPath
// expression selecting the part of the document to print.
func printJSON(w io.Writer, v any, query string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("error reading report: %w", err)
	}
	if query != "" {
		doc, err = jsonpath.Get(query, doc)
		if err != nil {
			return fmt.Errorf("error evaluating query %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
