package performance

import (
	"fmt"

	"github.com/etnz/performance/date"
)

// AccountValuation is the value of one cash account in a ClientSnapshot.
type AccountValuation struct {
	Account string
	Balance Money // in the account currency.
	Value   Money // in the reporting currency.
}

// PositionValuation is the value of the shares of one security held in one
// portfolio in a ClientSnapshot.
type PositionValuation struct {
	Portfolio   string
	Security    string
	Shares      Quantity
	Price       Money // in the security currency.
	MarketValue Money // in the security currency.
	Value       Money // in the reporting currency.
}

// ClientSnapshot is the valuation of a whole ledger on one day, in a single
// reporting currency.
//
// It is computed once by NewClientSnapshot and never modified.
type ClientSnapshot struct {
	on        date.Date
	currency  string
	accounts  []AccountValuation
	positions []PositionValuation
	total     Money
}

// NewClientSnapshot values every account and every non zero position of the
// ledger on a given day, converted to the converter's reporting currency.
//
// It fails with a *MissingPriceError when a held security has no price at or
// before on, and with a *NegativeHoldingError when a position would be negative.
func NewClientSnapshot(ledger *Ledger, converter CurrencyConverter, on date.Date) (*ClientSnapshot, error) {
	s := &ClientSnapshot{
		on:       on,
		currency: converter.ReportingCurrency(),
		total:    M(0, converter.ReportingCurrency()),
	}

	for a := range ledger.Accounts() {
		balance, err := ledger.CashBalance(a.name, on)
		if err != nil {
			return nil, err
		}
		value, err := converter.Convert(balance, on)
		if err != nil {
			return nil, fmt.Errorf("could not value account %q on %s: %w", a.name, on, err)
		}
		s.accounts = append(s.accounts, AccountValuation{Account: a.name, Balance: balance, Value: value})
		s.total = s.total.Add(value)
	}

	for p := range ledger.Portfolios() {
		for _, security := range p.Securities() {
			shares, err := ledger.Position(p.name, security, on)
			if err != nil {
				return nil, err
			}
			if shares.IsZero() {
				continue
			}
			mv, err := ledger.MarketValue(security, shares, on)
			if err != nil {
				return nil, err
			}
			price, err := ledger.Security(security).PriceAsOf(on)
			if err != nil {
				return nil, err
			}
			value, err := converter.Convert(mv, on)
			if err != nil {
				return nil, fmt.Errorf("could not value %s in portfolio %q on %s: %w", security, p.name, on, err)
			}
			s.positions = append(s.positions, PositionValuation{
				Portfolio:   p.name,
				Security:    security,
				Shares:      shares,
				Price:       withCurrency(price, mv.Currency()),
				MarketValue: mv,
				Value:       value,
			})
			s.total = s.total.Add(value)
		}
	}
	return s, nil
}

// On returns the date of the snapshot.
func (s *ClientSnapshot) On() date.Date { return s.on }

// Currency returns the reporting currency.
func (s *ClientSnapshot) Currency() string { return s.currency }

// Accounts returns the valuation of every account, in ledger order.
func (s *ClientSnapshot) Accounts() []AccountValuation { return s.accounts }

// Positions returns the valuation of every non zero position.
func (s *ClientSnapshot) Positions() []PositionValuation { return s.positions }

// Account returns the valuation of an account.
func (s *ClientSnapshot) Account(name string) (AccountValuation, bool) {
	for _, a := range s.accounts {
		if a.Account == name {
			return a, true
		}
	}
	return AccountValuation{}, false
}

// Position returns the valuation of a security held in a portfolio. A position
// not held is reported as not found.
func (s *ClientSnapshot) Position(portfolio, security string) (PositionValuation, bool) {
	for _, p := range s.positions {
		if p.Portfolio == portfolio && p.Security == security {
			return p, true
		}
	}
	return PositionValuation{}, false
}

// Total returns the net worth of the ledger, in the reporting currency.
func (s *ClientSnapshot) Total() Money { return s.total }
