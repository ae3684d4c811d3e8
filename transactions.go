package performance

import (
	"errors"
	"fmt"

	"github.com/etnz/performance/date"
)

// Kind identifies the type of a transaction.
type Kind string

// Transaction kinds. The set is closed: the classifier knows how to attribute
// every one of them.
const (
	KindDeposit     Kind = "deposit"
	KindWithdrawal  Kind = "withdrawal"
	KindInterest    Kind = "interest"
	KindDividend    Kind = "dividend"
	KindBuy         Kind = "buy"
	KindSell        Kind = "sell"
	KindTransferIn  Kind = "transfer-in"
	KindTransferOut Kind = "transfer-out"
	KindFee         Kind = "fee"
	KindTax         Kind = "tax"
)

// accountKinds lists the kinds an Account accepts.
var accountKinds = map[Kind]bool{
	KindDeposit:     true,
	KindWithdrawal:  true,
	KindInterest:    true,
	KindDividend:    true,
	KindTransferIn:  true,
	KindTransferOut: true,
	KindFee:         true,
	KindTax:         true,
}

// portfolioKinds lists the kinds a Portfolio accepts.
var portfolioKinds = map[Kind]bool{
	KindBuy:         true,
	KindSell:        true,
	KindTransferIn:  true,
	KindTransferOut: true,
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if accountKinds[k] || portfolioKinds[k] {
		return k, nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

func (k Kind) String() string { return string(k) }

// Acquires reports whether the kind adds shares to a portfolio.
func (k Kind) Acquires() bool { return k == KindBuy || k == KindTransferIn }

// Disposes reports whether the kind removes shares from a portfolio.
func (k Kind) Disposes() bool { return k == KindSell || k == KindTransferOut }

// Transaction is an immutable ledger event. It belongs to exactly one Account
// or Portfolio.
//
// Amount is never negative, the kind gives the direction. For a Buy, Amount is
// the cash paid (fee and tax included). For a Sell, Amount is the cash
// received (fee and tax deducted). For Interest and Dividend, Amount is the
// net cash credited.
type Transaction struct {
	ID       string
	Date     date.Date
	Kind     Kind
	Security string   // security concerned, if any.
	Shares   Quantity // for portfolio transactions.
	Amount   Money
	Fee      Money
	Tax      Money
	Memo     string
}

// NewDeposit creates a deposit of cash into an account.
func NewDeposit(on date.Date, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindDeposit, Amount: amount}
}

// NewWithdrawal creates a withdrawal of cash from an account.
func NewWithdrawal(on date.Date, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindWithdrawal, Amount: amount}
}

// NewInterest creates an interest payment. security is optional.
func NewInterest(on date.Date, security string, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindInterest, Security: security, Amount: amount}
}

// NewDividend creates a dividend payment for a security.
func NewDividend(on date.Date, security string, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindDividend, Security: security, Amount: amount}
}

// NewFee creates a standalone fee charged to an account.
func NewFee(on date.Date, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindFee, Amount: amount}
}

// NewTax creates a standalone tax charged to an account.
func NewTax(on date.Date, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindTax, Amount: amount}
}

// NewTransferIn creates a transfer of cash into an account from outside the ledger.
func NewTransferIn(on date.Date, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindTransferIn, Amount: amount}
}

// NewTransferOut creates a transfer of cash from an account to outside the ledger.
func NewTransferOut(on date.Date, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindTransferOut, Amount: amount}
}

// NewBuy creates the purchase of shares of a security for amount (cash paid).
func NewBuy(on date.Date, security string, shares Quantity, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindBuy, Security: security, Shares: shares, Amount: amount}
}

// NewSell creates the sale of shares of a security for amount (cash received).
func NewSell(on date.Date, security string, shares Quantity, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindSell, Security: security, Shares: shares, Amount: amount}
}

// NewDeliveryIn creates the delivery of shares into a portfolio from outside
// the ledger. A zero amount means the shares are valued at market price.
func NewDeliveryIn(on date.Date, security string, shares Quantity, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindTransferIn, Security: security, Shares: shares, Amount: amount}
}

// NewDeliveryOut creates the delivery of shares out of a portfolio. A zero
// amount means the shares are valued at market price.
func NewDeliveryOut(on date.Date, security string, shares Quantity, amount Money) Transaction {
	return Transaction{Date: on, Kind: KindTransferOut, Security: security, Shares: shares, Amount: amount}
}

// WithFee returns a copy of t with an embedded fee.
func (t Transaction) WithFee(fee Money) Transaction { t.Fee = fee; return t }

// WithTax returns a copy of t with an embedded tax.
func (t Transaction) WithTax(tax Money) Transaction { t.Tax = tax; return t }

// WithMemo returns a copy of t with a memo.
func (t Transaction) WithMemo(memo string) Transaction { t.Memo = memo; return t }

// WithID returns a copy of t with an ID.
func (t Transaction) WithID(id string) Transaction { t.ID = id; return t }

// IsDelivery reports whether t moves shares across the ledger boundary.
func (t Transaction) IsDelivery() bool {
	return (t.Kind == KindTransferIn || t.Kind == KindTransferOut) && !t.Shares.IsZero()
}

// Signed returns the signed cash effect of t on the cash account it touches:
// positive when cash is received. Deliveries have no cash effect.
func (t Transaction) Signed() Money {
	switch t.Kind {
	case KindDeposit, KindInterest, KindDividend, KindSell:
		return t.Amount
	case KindTransferIn:
		if t.IsDelivery() {
			return Money{cur: t.Amount.cur}
		}
		return t.Amount
	case KindWithdrawal, KindFee, KindTax, KindBuy:
		return t.Amount.Neg()
	case KindTransferOut:
		if t.IsDelivery() {
			return Money{cur: t.Amount.cur}
		}
		return t.Amount.Neg()
	}
	return Money{cur: t.Amount.cur}
}

// Gross returns the amount before fee and tax: the price paid for shares
// bought, the proceeds of shares sold, or the income before deductions.
func (t Transaction) Gross() Money {
	switch t.Kind {
	case KindBuy:
		return t.Amount.Sub(t.Fee).Sub(t.Tax)
	case KindSell, KindInterest, KindDividend:
		return t.Amount.Add(t.Fee).Add(t.Tax)
	default:
		return t.Amount
	}
}

// String returns a short human readable description of the transaction.
func (t Transaction) String() string {
	if t.Security == "" {
		return fmt.Sprintf("%s %s %s", t.Date, t.Kind, t.Amount)
	}
	if t.Shares.IsZero() {
		return fmt.Sprintf("%s %s %s %s", t.Date, t.Kind, t.Security, t.Amount)
	}
	return fmt.Sprintf("%s %s %v %s %s", t.Date, t.Kind, t.Shares, t.Security, t.Amount)
}

// validate checks the fields that do not depend on the holder. currency is the
// currency every amount of t must be expressed in.
func (t Transaction) validate(currency string) error {
	if t.Date.IsZero() {
		return errors.New("transaction date is missing")
	}
	for _, m := range []struct {
		name  string
		value Money
	}{{"amount", t.Amount}, {"fee", t.Fee}, {"tax", t.Tax}} {
		if m.value.IsNegative() {
			return fmt.Errorf("%s must not be negative, got %s", m.name, m.value)
		}
		if !m.value.In(currency) {
			return fmt.Errorf("%s in %s, want %s: %w", m.name, m.value.Currency(), currency, ErrCurrencyMismatch)
		}
	}
	if (t.Kind == KindFee || t.Kind == KindTax) && !(t.Fee.IsZero() && t.Tax.IsZero()) {
		return fmt.Errorf("a standalone %s cannot embed a fee or a tax", t.Kind)
	}
	if t.Kind == KindBuy && t.Gross().IsNegative() {
		return fmt.Errorf("fee and tax exceed the amount paid %s", t.Amount)
	}
	return nil
}
