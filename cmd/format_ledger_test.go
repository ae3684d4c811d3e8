package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

// Helper function to create a temporary ledger file
func createTempLedger(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_ledger.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp ledger: %v", err)
	}
	return path
}

// useLedger points the global -ledger-file flag to path for the duration of the test.
func useLedger(t *testing.T, path string) {
	t.Helper()
	old := *ledgerFile
	*ledgerFile = path
	t.Cleanup(func() { *ledgerFile = old })
}

const unformattedLedger = `{"command":"deposit","date":"2025-08-01","id":"d1","account":"Cash","amount":1000.00,"memo":"salary"}
{"command":"buy","date":"2025-08-03","id":"b1","portfolio":"Broker","security":"ACME","quantity":10,"amount":150.5}
{"command":"security","name":"ACME","currency":"EUR"}
{"command":"portfolio","name":"Broker","account":"Cash"}
{"command":"account","name":"Cash","currency":"EUR"}
`

const formattedLedger = `{"command":"account","name":"Cash","currency":"EUR"}
{"command":"portfolio","name":"Broker","account":"Cash"}
{"command":"security","name":"ACME","currency":"EUR"}
{"command":"deposit","date":"2025-08-01","id":"d1","account":"Cash","amount":1000,"memo":"salary"}
{"command":"buy","date":"2025-08-03","id":"b1","portfolio":"Broker","security":"ACME","quantity":10,"amount":150.5}
`

func runFormatLedger(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	cmd := &formatLedgerCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cmd.Execute(context.Background(), f)
}

func TestFormatLedger(t *testing.T) {
	path := createTempLedger(t, unformattedLedger)
	useLedger(t, path)

	if status := runFormatLedger(t, "-check"); status != subcommands.ExitFailure {
		t.Errorf("format-ledger -check on an unformatted ledger = %v, want ExitFailure", status)
	}

	if status := runFormatLedger(t); status != subcommands.ExitSuccess {
		t.Fatalf("format-ledger = %v, want ExitSuccess", status)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != formattedLedger {
		t.Errorf("formatted ledger mismatch.\nGot:\n%s\nWant:\n%s", got, formattedLedger)
	}

	if status := runFormatLedger(t, "-check"); status != subcommands.ExitSuccess {
		t.Errorf("format-ledger -check on a formatted ledger = %v, want ExitSuccess", status)
	}
}

func TestFormatLedgerMissingFile(t *testing.T) {
	useLedger(t, filepath.Join(t.TempDir(), "missing.jsonl"))
	if status := runFormatLedger(t); status != subcommands.ExitFailure {
		t.Errorf("format-ledger of a missing file = %v, want ExitFailure", status)
	}
}
