package performance

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in minor units (e.g. cents) of a currency.
//
// All arithmetic is exact integer arithmetic.
type Money struct {
	amount int64 // minor units
	cur    string
}

// M returns an amount of minor units in the given currency.
func M(amount int64, currency string) Money { return Money{amount: amount, cur: currency} }

// ParseMoney converts a major unit value (e.g. 12.34) into Money, rounding to
// the currency's fraction digits.
func ParseMoney(major decimal.Decimal, currency string) Money {
	return Money{amount: major.Shift(int32(fraction(currency))).Round(0).IntPart(), cur: currency}
}

// ValidateCurrency checks that code is a known ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// fraction returns the number of fraction digits of a currency, defaulting to 2.
func fraction(code string) int {
	if c := money.GetCurrency(code); c != nil {
		return c.Fraction
	}
	return 2
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 { return m.amount }

// Currency returns the money's currency
func (m Money) Currency() string { return m.cur }

// Major returns the value in major units.
func (m Money) Major() decimal.Decimal {
	return decimal.New(m.amount, -int32(fraction(m.cur)))
}

// String returns the string representation of the money value.
func (m Money) String() string {
	if m.cur == "" {
		return m.Major().StringFixed(2)
	}
	return money.New(m.amount, m.cur).Display()
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as "-".
func (m Money) SignedString() string {
	switch {
	case m.amount == 0:
		return "-"
	case m.amount > 0:
		return "+" + m.String()
	default:
		return m.String()
	}
}

func (m Money) Equal(n Money) bool      { return m.amount == n.amount && m.cur == n.cur }
func (m Money) IsZero() bool            { return m.amount == 0 }
func (m Money) IsPositive() bool        { return m.amount > 0 }
func (m Money) IsNegative() bool        { return m.amount < 0 }
func (m Money) LessThan(n Money) bool   { return m.amount < cmp(m, n).amount }
func (m Money) Neg() Money              { return Money{amount: -m.amount, cur: m.cur} }
func (m Money) Add(n Money) Money       { return Money{amount: m.amount + n.amount, cur: cur(m, n)} }
func (m Money) Sub(n Money) Money       { return Money{amount: m.amount - n.amount, cur: cur(m, n)} }
func (m Money) Times(sign int) Money    { return Money{amount: m.amount * int64(sign), cur: m.cur} }
func (m Money) In(currency string) bool { return m.cur == "" || m.cur == currency }

// Prorate returns m × part / whole, rounded half away from zero to the minor unit.
func (m Money) Prorate(part, whole Quantity) Money {
	if whole.IsZero() {
		return Money{cur: m.cur}
	}
	v := decimal.NewFromInt(m.amount).Mul(part.Decimal()).Div(whole.Decimal())
	return Money{amount: v.Round(0).IntPart(), cur: m.cur}
}

func cmp(m, n Money) Money {
	cur(m, n)
	return n
}

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// MarshalJSON writes money as {"amount": <major units>, "currency": <code>}.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", m.Major())
	w.Optional("currency", m.cur)
	return w.MarshalJSON()
}
