package performance

import (
	"errors"
	"fmt"

	"github.com/etnz/performance/date"
)

// ErrCurrencyMismatch is returned when a transaction amount is not expressed in
// the currency of its holder.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// MissingPriceError is returned when a non zero holding must be valued but the
// security has no price at or before the valuation date.
type MissingPriceError struct {
	Security string
	Date     date.Date
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("no price for security %q at or before %s", e.Security, e.Date)
}

// NegativeHoldingError is returned when a disposal exceeds the shares held.
type NegativeHoldingError struct {
	Portfolio string
	Security  string
	Date      date.Date
	Held      Quantity
	Requested Quantity
}

func (e *NegativeHoldingError) Error() string {
	return fmt.Sprintf("on %s, cannot remove %v %s from portfolio %q, position is only %v", e.Date, e.Requested, e.Security, e.Portfolio, e.Held)
}

// UnsupportedTransactionKindError is returned for a transaction kind the
// holder does not accept.
type UnsupportedTransactionKindError struct {
	Holder        string
	Kind          Kind
	TransactionID string
}

func (e *UnsupportedTransactionKindError) Error() string {
	if e.TransactionID == "" {
		return fmt.Sprintf("%q does not support %s transactions", e.Holder, e.Kind)
	}
	return fmt.Sprintf("%q does not support %s transactions (transaction %s)", e.Holder, e.Kind, e.TransactionID)
}

// ReconciliationError is returned when the categories do not add up to the
// observed change of value. It is an internal inconsistency and never tolerated.
type ReconciliationError struct {
	Expected Money
	Actual   Money
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("categories do not reconcile: expected %s got %s (difference %s)", e.Expected, e.Actual, e.Actual.Sub(e.Expected))
}

// MissingRateError is returned when no exchange rate is known for a pair at or
// before a date.
type MissingRateError struct {
	From, To string
	Date     date.Date
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no exchange rate from %s to %s at or before %s", e.From, e.To, e.Date)
}
