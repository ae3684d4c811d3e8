package performance

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/performance/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// setupAccountingTest creates a two currency ledger reporting in EUR.
func setupAccountingTest(t *testing.T) (*AccountingSystem, *bytes.Buffer) {
	t.Helper()
	l := NewLedger().
		AddAccount(
			NewAccount("Cash", "EUR").Add(NewDeposit(date.New(2025, time.January, 1), eur(1000_00))),
			NewAccount("Dollars", "USD").Add(NewDeposit(date.New(2025, time.January, 1), M(1000_00, "USD"))),
		)
	l.Rates().
		Add("USD", "EUR", date.New(2025, time.January, 1), decimal.RequireFromString("0.9")).
		Add("USD", "EUR", date.New(2025, time.July, 1), decimal.RequireFromString("0.8"))

	var buf bytes.Buffer
	as, err := NewAccountingSystem(l, "EUR", zerolog.New(&buf).Level(zerolog.DebugLevel))
	if err != nil {
		t.Fatalf("NewAccountingSystem() error = %v", err)
	}
	return as, &buf
}

func TestAccountingSystem(t *testing.T) {
	as, logs := setupAccountingTest(t)
	if got := as.ReportingCurrency(); got != "EUR" {
		t.Errorf("ReportingCurrency() = %q", got)
	}

	s, err := as.Snapshot(date.New(2025, time.March, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !s.Total().Equal(eur(1900_00)) {
		t.Errorf("Snapshot().Total() = %v, want 1900.00", s.Total())
	}

	cp, err := as.Performance(date.Range{From: date.New(2025, time.March, 1), To: date.New(2025, time.December, 31)})
	if err != nil {
		t.Fatal(err)
	}
	if got := cp.Valuation(CurrencyGains); !got.Equal(eur(-100_00)) {
		t.Errorf("CURRENCY_GAINS = %v, want -100.00", got)
	}
	if got := cp.Valuation(AbsolutePerformance); !got.Equal(eur(-100_00)) {
		t.Errorf("PERFORMANCE = %v, want -100.00", got)
	}
	if !strings.Contains(logs.String(), "performance computed") {
		t.Errorf("logs = %s, want a performance computed entry", logs.String())
	}
	if !strings.Contains(logs.String(), "snapshot computed") {
		t.Errorf("logs = %s, want a snapshot computed entry", logs.String())
	}
}

func TestAccountingSystemCheck(t *testing.T) {
	as, logs := setupAccountingTest(t)
	if err := as.Check(); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !strings.Contains(logs.String(), `"days":1`) {
		t.Errorf("logs = %s, want one checked day", logs.String())
	}

	// A USD deposit before the first rate cannot be valued.
	as.Ledger.Account("Dollars").Add(NewDeposit(date.New(2024, time.December, 1), M(1_00, "USD")))
	var missing *MissingRateError
	if err := as.Check(); err == nil || !strings.Contains(err.Error(), "2024-12-01") {
		t.Errorf("Check() error = %v, want a valuation error on 2024-12-01", err)
	} else if !errors.As(err, &missing) {
		t.Errorf("Check() error = %v, want a MissingRateError", err)
	}
}

func TestNewAccountingSystemInvalidCurrency(t *testing.T) {
	if _, err := NewAccountingSystem(NewLedger(), "ABC", zerolog.Nop()); err == nil {
		t.Error("NewAccountingSystem() with an invalid currency expected an error")
	}
}
