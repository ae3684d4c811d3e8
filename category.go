package performance

import (
	"fmt"

	"github.com/etnz/performance/date"
)

// CategoryType identifies one bucket of the performance attribution.
type CategoryType int

// Categories, in presentation order.
const (
	InitialValue CategoryType = iota
	CapitalGains
	Earnings
	Fees
	Taxes
	CurrencyGains
	Transfers
	FinalValue
	AbsolutePerformance
)

// CategoryTypes lists every category in presentation order.
var CategoryTypes = []CategoryType{
	InitialValue, CapitalGains, Earnings, Fees, Taxes, CurrencyGains, Transfers, FinalValue, AbsolutePerformance,
}

func (t CategoryType) String() string {
	switch t {
	case InitialValue:
		return "INITIAL_VALUE"
	case CapitalGains:
		return "CAPITAL_GAINS"
	case Earnings:
		return "EARNINGS"
	case Fees:
		return "FEES"
	case Taxes:
		return "TAXES"
	case CurrencyGains:
		return "CURRENCY_GAINS"
	case Transfers:
		return "TRANSFERS"
	case FinalValue:
		return "FINAL_VALUE"
	case AbsolutePerformance:
		return "PERFORMANCE"
	default:
		return fmt.Sprintf("CategoryType(%d)", int(t))
	}
}

// Label returns a human readable name.
func (t CategoryType) Label() string {
	switch t {
	case InitialValue:
		return "Initial Value"
	case CapitalGains:
		return "Capital Gains"
	case Earnings:
		return "Earnings"
	case Fees:
		return "Fees"
	case Taxes:
		return "Taxes"
	case CurrencyGains:
		return "Currency Gains"
	case Transfers:
		return "Transfers"
	case FinalValue:
		return "Final Value"
	case AbsolutePerformance:
		return "Performance"
	default:
		return t.String()
	}
}

// Sign returns how the category valuation moves net worth between the initial
// and the final value: +1 adds, -1 subtracts (costs are stored positive), 0 for
// the boundary values and the derived performance.
func (t CategoryType) Sign() int {
	switch t {
	case CapitalGains, Earnings, CurrencyGains, Transfers:
		return 1
	case Fees, Taxes:
		return -1
	case InitialValue, FinalValue, AbsolutePerformance:
		return 0
	default:
		panic(fmt.Sprintf("unknown category type %d", int(t)))
	}
}

// ParseCategoryType parses a category name like "CAPITAL_GAINS".
func ParseCategoryType(s string) (CategoryType, error) {
	for _, t := range CategoryTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler, so that categories are
// readable as JSON values and map keys.
func (t CategoryType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Item is one line contributing to a category.
type Item struct {
	Label         string
	Date          date.Date // zero for items not tied to a transaction.
	TransactionID string
	Valuation     Money
}

// Category is a bucket of the performance attribution with its contributing items.
type Category struct {
	Type      CategoryType
	Valuation Money
	Items     []Item
}

// Signed returns the contribution of the category to the change of net worth.
func (c Category) Signed() Money { return c.Valuation.Times(c.Type.Sign()) }

// add accumulates an item. Zero items are dropped.
func (c *Category) add(item Item) {
	if item.Valuation.IsZero() {
		return
	}
	c.Valuation = c.Valuation.Add(item.Valuation)
	c.Items = append(c.Items, item)
}

// MarshalJSON writes the category as {"type", "label", "valuation", "items"}.
func (c Category) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", c.Type)
	w.Append("label", c.Type.Label())
	w.Append("valuation", c.Valuation)
	w.Optional("items", c.Items)
	return w.MarshalJSON()
}

// MarshalJSON writes the item with optional date and transaction id.
func (i Item) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("label", i.Label)
	if !i.Date.IsZero() {
		w.Append("date", i.Date)
	}
	w.Optional("transaction", i.TransactionID)
	w.Append("valuation", i.Valuation)
	return w.MarshalJSON()
}
