package performance

import (
	"fmt"

	"github.com/etnz/performance/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ClientPerformance explains the change of net worth of a ledger over a
// reporting range, broken down into categories that add up exactly.
type ClientPerformance struct {
	start, end *ClientSnapshot
	categories []Category
	gains      []SecurityGains
}

// NewClientPerformance computes the performance of the ledger over period.
//
// Transactions dated period.From are part of the initial value, transactions
// dated period.To are part of the period.
func NewClientPerformance(ledger *Ledger, converter CurrencyConverter, period date.Range) (*ClientPerformance, error) {
	return computePerformance(ledger, converter, period, zerolog.Nop())
}

func computePerformance(ledger *Ledger, converter CurrencyConverter, period date.Range, log zerolog.Logger) (*ClientPerformance, error) {
	if period.To.Before(period.From) {
		return nil, fmt.Errorf("invalid range %s: end is before start", period)
	}
	cur := converter.ReportingCurrency()

	start, err := NewClientSnapshot(ledger, converter, period.From)
	if err != nil {
		return nil, fmt.Errorf("could not value the ledger on %s: %w", period.From, err)
	}
	end, err := NewClientSnapshot(ledger, converter, period.To)
	if err != nil {
		return nil, fmt.Errorf("could not value the ledger on %s: %w", period.To, err)
	}

	k := newClassifier(ledger, converter, period, log)
	if err := k.classify(); err != nil {
		return nil, err
	}

	cp := &ClientPerformance{start: start, end: end}
	categories := make(map[CategoryType]*Category)
	for _, t := range CategoryTypes {
		if c, ok := k.categories[t]; ok {
			categories[t] = c
		} else {
			categories[t] = &Category{Type: t, Valuation: M(0, cur)}
		}
	}

	// Boundary values, with one item per holding.
	categories[InitialValue].Valuation = start.Total()
	categories[InitialValue].Items = snapshotItems(start)
	categories[FinalValue].Valuation = end.Total()
	categories[FinalValue].Items = snapshotItems(end)

	// Capital gains, one item per position.
	for p := range ledger.Portfolios() {
		for _, security := range p.Securities() {
			key := positionKey{portfolio: p.name, security: security}
			s, inStart := start.Position(p.name, security)
			e, inEnd := end.Position(p.name, security)
			events := k.events[key]
			if !inStart && !inEnd && len(events) == 0 {
				continue
			}
			g, err := walkGains(key, period, s, e, events, converter)
			if err != nil {
				return nil, err
			}
			cp.gains = append(cp.gains, g)
			categories[CapitalGains].add(Item{Label: fmt.Sprintf("%s: %s", p.name, security), Valuation: g.Total})
		}
	}

	// Currency gains, the revaluation of each account beyond its cash flows.
	for _, s := range start.Accounts() {
		e, _ := end.Account(s.Account)
		flows, ok := k.cashFlows[s.Account]
		if !ok {
			flows = M(0, cur)
		}
		residual := e.Value.Sub(s.Value).Sub(flows)
		categories[CurrencyGains].add(Item{Label: s.Account, Valuation: residual})
	}

	// Performance is what the investments earned, net of costs.
	perf := M(0, cur)
	for _, t := range []CategoryType{CapitalGains, Earnings, Fees, Taxes, CurrencyGains} {
		perf = perf.Add(categories[t].Signed())
	}
	categories[AbsolutePerformance].Valuation = perf

	for _, t := range CategoryTypes {
		cp.categories = append(cp.categories, *categories[t])
	}
	if err := cp.reconcile(); err != nil {
		return nil, err
	}

	log.Info().
		Stringer("from", period.From).
		Stringer("to", period.To).
		Stringer("initial", start.Total()).
		Stringer("final", end.Total()).
		Stringer("performance", perf).
		Msg("performance computed")
	return cp, nil
}

func snapshotItems(s *ClientSnapshot) []Item {
	var items []Item
	for _, a := range s.Accounts() {
		if !a.Value.IsZero() {
			items = append(items, Item{Label: a.Account, Date: s.On(), Valuation: a.Value})
		}
	}
	for _, p := range s.Positions() {
		items = append(items, Item{Label: fmt.Sprintf("%s: %s", p.Portfolio, p.Security), Date: s.On(), Valuation: p.Value})
	}
	return items
}

// reconcile checks that the initial value plus every signed category is the
// final value, and that performance is the change of value net of transfers.
func (cp *ClientPerformance) reconcile() error {
	initial, final := cp.Valuation(InitialValue), cp.Valuation(FinalValue)
	actual := initial
	for _, c := range cp.categories {
		actual = actual.Add(c.Signed())
	}
	if !actual.Equal(final) {
		return &ReconciliationError{Expected: final, Actual: actual}
	}
	if want := final.Sub(initial).Sub(cp.Valuation(Transfers)); !want.Equal(cp.Valuation(AbsolutePerformance)) {
		return &ReconciliationError{Expected: want, Actual: cp.Valuation(AbsolutePerformance)}
	}
	return nil
}

// Start returns the snapshot at the start of the range.
func (cp *ClientPerformance) Start() *ClientSnapshot { return cp.start }

// End returns the snapshot at the end of the range.
func (cp *ClientPerformance) End() *ClientSnapshot { return cp.end }

// Range returns the reporting range.
func (cp *ClientPerformance) Range() date.Range { return date.Range{From: cp.start.On(), To: cp.end.On()} }

// Currency returns the reporting currency.
func (cp *ClientPerformance) Currency() string { return cp.start.Currency() }

// Categories returns the nine categories in presentation order.
func (cp *ClientPerformance) Categories() []Category { return cp.categories }

// CategoryMap returns the categories by type.
func (cp *ClientPerformance) CategoryMap() map[CategoryType]Category {
	m := make(map[CategoryType]Category, len(cp.categories))
	for _, c := range cp.categories {
		m[c.Type] = c
	}
	return m
}

// Category returns the category of a given type.
func (cp *ClientPerformance) Category(t CategoryType) Category {
	for _, c := range cp.categories {
		if c.Type == t {
			return c
		}
	}
	return Category{Type: t, Valuation: M(0, cp.Currency())}
}

// Valuation returns the valuation of the category of a given type.
func (cp *ClientPerformance) Valuation(t CategoryType) Money { return cp.Category(t).Valuation }

// Gains returns the capital gains walk of every position.
func (cp *ClientPerformance) Gains() []SecurityGains { return cp.gains }

// Return returns the simple return of the range: the change of value net of
// transfers relative to the initial value. It is zero when the initial value is zero.
func (cp *ClientPerformance) Return() decimal.Decimal {
	initial := cp.Valuation(InitialValue)
	if initial.IsZero() {
		return decimal.Zero
	}
	gain := cp.Valuation(FinalValue).Sub(initial).Sub(cp.Valuation(Transfers))
	return decimal.NewFromInt(gain.Amount()).DivRound(decimal.NewFromInt(initial.Amount()), 8)
}

// MarshalJSON writes the range, the reporting currency, the categories and the return.
func (cp *ClientPerformance) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("from", cp.start.On())
	w.Append("to", cp.end.On())
	w.Append("currency", cp.Currency())
	w.Append("categories", cp.categories)
	w.Append("return", cp.Return())
	return w.MarshalJSON()
}
