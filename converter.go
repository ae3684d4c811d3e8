package performance

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/performance/date"
	"github.com/shopspring/decimal"
)

// CurrencyConverter converts money into a reporting currency at a given date.
//
// Implementations must be side-effect free: the engine calls Convert for every
// valuation and every transaction amount.
type CurrencyConverter interface {
	ReportingCurrency() string
	Convert(m Money, on date.Date) (Money, error)
}

// IdentityConverter is a CurrencyConverter for ledgers held in a single
// currency. Converting another currency fails.
type IdentityConverter string

func (c IdentityConverter) ReportingCurrency() string { return string(c) }

func (c IdentityConverter) Convert(m Money, on date.Date) (Money, error) {
	if !m.In(string(c)) && !m.IsZero() {
		return Money{}, fmt.Errorf("cannot convert %s to %s on %s: %w", m.Currency(), c, on, ErrCurrencyMismatch)
	}
	return M(m.amount, string(c)), nil
}

// RateTable stores dated exchange rates by currency pair.
//
// A rate for the pair "USDEUR" is the price of one USD in EUR.
type RateTable struct {
	pairs map[string]*date.History[decimal.Decimal]
}

// NewRateTable returns an empty table.
func NewRateTable() *RateTable {
	return &RateTable{pairs: make(map[string]*date.History[decimal.Decimal])}
}

// Add records the rate of base in quote currency on a given day.
func (t *RateTable) Add(base, quote string, on date.Date, rate decimal.Decimal) *RateTable {
	if t.pairs == nil {
		t.pairs = make(map[string]*date.History[decimal.Decimal])
	}
	h, ok := t.pairs[base+quote]
	if !ok {
		h = new(date.History[decimal.Decimal])
		t.pairs[base+quote] = h
	}
	h.Append(on, rate)
	return t
}

// Pairs returns the pairs known to the table, sorted.
func (t *RateTable) Pairs() []string {
	return slices.Sorted(maps.Keys(t.pairs))
}

// History returns the rates recorded for a pair, in chronological order.
func (t *RateTable) History(pair string) iter.Seq2[date.Date, decimal.Decimal] {
	h, ok := t.pairs[pair]
	if !ok {
		return func(func(date.Date, decimal.Decimal) bool) {}
	}
	return h.Values()
}

// Rate returns the value of one unit of from expressed in to, as of on.
//
// The direct pair is preferred, the inverse pair is used otherwise.
func (t *RateTable) Rate(from, to string, on date.Date) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if h, ok := t.pairs[from+to]; ok {
		if r, ok := h.ValueAsOf(on); ok {
			return r, nil
		}
	}
	if h, ok := t.pairs[to+from]; ok {
		if r, ok := h.ValueAsOf(on); ok && !r.IsZero() {
			return decimal.NewFromInt(1).DivRound(r, 16), nil
		}
	}
	return decimal.Decimal{}, &MissingRateError{From: from, To: to, Date: on}
}

// Converter returns a CurrencyConverter to the reporting currency backed by this table.
func (t *RateTable) Converter(reportingCurrency string) CurrencyConverter {
	return rateConverter{table: t, currency: reportingCurrency}
}

type rateConverter struct {
	table    *RateTable
	currency string
}

func (c rateConverter) ReportingCurrency() string { return c.currency }

func (c rateConverter) Convert(m Money, on date.Date) (Money, error) {
	if m.In(c.currency) {
		return M(m.amount, c.currency), nil
	}
	if m.IsZero() {
		return M(0, c.currency), nil
	}
	rate, err := c.table.Rate(m.cur, c.currency, on)
	if err != nil {
		return Money{}, err
	}
	return ParseMoney(m.Major().Mul(rate), c.currency), nil
}
