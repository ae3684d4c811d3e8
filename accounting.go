package performance

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/performance/date"
	"github.com/rs/zerolog"
)

// AccountingSystem bundles a ledger with the currency converter used to value
// it, and the logger the computations report to.
type AccountingSystem struct {
	Ledger    *Ledger
	Converter CurrencyConverter
	Logger    zerolog.Logger
}

// NewAccountingSystem creates an accounting system reporting in the given
// currency, converting with the ledger's own exchange rates.
func NewAccountingSystem(ledger *Ledger, reportingCurrency string, logger zerolog.Logger) (*AccountingSystem, error) {
	if err := ValidateCurrency(reportingCurrency); err != nil {
		return nil, fmt.Errorf("invalid reporting currency: %w", err)
	}
	return &AccountingSystem{
		Ledger:    ledger,
		Converter: ledger.Rates().Converter(reportingCurrency),
		Logger:    logger,
	}, nil
}

// ReportingCurrency returns the currency all valuations are converted into.
func (as *AccountingSystem) ReportingCurrency() string { return as.Converter.ReportingCurrency() }

// Snapshot values the whole ledger on a given day.
func (as *AccountingSystem) Snapshot(on date.Date) (*ClientSnapshot, error) {
	s, err := NewClientSnapshot(as.Ledger, as.Converter, on)
	if err != nil {
		return nil, err
	}
	as.Logger.Debug().Stringer("on", on).Stringer("total", s.Total()).Msg("snapshot computed")
	return s, nil
}

// Performance computes the performance of the ledger over a reporting range.
func (as *AccountingSystem) Performance(period date.Range) (*ClientPerformance, error) {
	return computePerformance(as.Ledger, as.Converter, period, as.Logger)
}

// Check validates the ledger and, when valid, makes sure every day with a
// transaction can be valued.
func (as *AccountingSystem) Check() error {
	if err := as.Ledger.Validate(); err != nil {
		return err
	}
	days := make(map[date.Date]bool)
	for a := range as.Ledger.Accounts() {
		for _, tx := range a.transactions {
			days[tx.Date] = true
		}
	}
	for p := range as.Ledger.Portfolios() {
		for _, tx := range p.transactions {
			days[tx.Date] = true
		}
	}
	for _, on := range slices.SortedFunc(maps.Keys(days), date.Date.Compare) {
		if _, err := NewClientSnapshot(as.Ledger, as.Converter, on); err != nil {
			return fmt.Errorf("ledger cannot be valued on %s: %w", on, err)
		}
	}
	as.Logger.Info().Int("days", len(days)).Msg("ledger checked")
	return nil
}
