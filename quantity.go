package performance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QuantityScale is the number of quantity units in one whole share.
const QuantityScale = 100_000_000

var quantityScale = decimal.NewFromInt(QuantityScale)

// Quantity is a fixed point number of shares with eight decimal digits.
type Quantity struct {
	units int64
}

// Q returns a Quantity for a number of whole (or fractional) shares.
func Q[T int | int64 | float64 | decimal.Decimal](value T) Quantity {
	switch v := any(value).(type) {
	case int:
		return Quantity{units: int64(v) * QuantityScale}
	case int64:
		return Quantity{units: v * QuantityScale}
	case float64:
		return fromDecimal(decimal.NewFromFloat(v))
	case decimal.Decimal:
		return fromDecimal(v)
	default:
		panic("unsupported type")
	}
}

func fromDecimal(d decimal.Decimal) Quantity {
	return Quantity{units: d.Mul(quantityScale).Round(0).IntPart()}
}

// ParseQuantity parses a decimal string like "12.5" into a Quantity.
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return fromDecimal(d), nil
}

// Units returns the raw fixed point value.
func (q Quantity) Units() int64 { return q.units }

// Decimal returns the number of shares as a decimal.
func (q Quantity) Decimal() decimal.Decimal { return decimal.New(q.units, -8) }

func (q Quantity) Equal(p Quantity) bool    { return q.units == p.units }
func (q Quantity) LessThan(p Quantity) bool { return q.units < p.units }
func (q Quantity) Add(p Quantity) Quantity  { return Quantity{units: q.units + p.units} }
func (q Quantity) Sub(p Quantity) Quantity  { return Quantity{units: q.units - p.units} }
func (q Quantity) Neg() Quantity            { return Quantity{units: -q.units} }
func (q Quantity) IsNegative() bool         { return q.units < 0 }
func (q Quantity) IsPositive() bool         { return q.units > 0 }
func (q Quantity) IsZero() bool             { return q.units == 0 }
func (q Quantity) String() string           { return q.Decimal().String() }

// Value returns the value of q shares at a unit price, rounded half away from
// zero to the price's minor unit.
func (q Quantity) Value(price Money) Money {
	v := decimal.NewFromInt(price.amount).Mul(q.Decimal())
	return Money{amount: v.Round(0).IntPart(), cur: price.cur}
}

// UnitPrice returns the price of one share when q shares cost total.
func (q Quantity) UnitPrice(total Money) Money {
	if q.IsZero() {
		return Money{cur: total.cur}
	}
	v := decimal.NewFromInt(total.amount).Div(q.Decimal())
	return Money{amount: v.Round(0).IntPart(), cur: total.cur}
}

// MarshalJSON writes the quantity as a decimal number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.Decimal().String()), nil
}

// UnmarshalJSON reads a decimal number, quoted or not.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}
	*q = fromDecimal(d)
	return nil
}
