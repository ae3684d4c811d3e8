package performance

import (
	"fmt"
	"iter"

	"github.com/etnz/performance/date"
)

// CashBalance returns the balance of an account on a given day: its own
// transactions plus the cash legs of the buys and sells of every portfolio
// settling in it.
func (l *Ledger) CashBalance(account string, on date.Date) (Money, error) {
	a := l.Account(account)
	if a == nil {
		return Money{}, fmt.Errorf("unknown account %q", account)
	}
	balance := M(0, a.currency)
	for _, tx := range a.transactions {
		if tx.Date.After(on) {
			break
		}
		if !accountKinds[tx.Kind] {
			return Money{}, &UnsupportedTransactionKindError{Holder: a.name, Kind: tx.Kind, TransactionID: tx.ID}
		}
		balance = balance.Add(tx.Signed())
	}
	for p, tx := range l.settlements(a) {
		if tx.Date.After(on) {
			continue
		}
		cash := withCurrency(tx.Signed(), a.currency)
		if !cash.In(a.currency) {
			return Money{}, fmt.Errorf("portfolio %q: %s %s on %s settles %s in account %q held in %s: %w",
				p.name, tx.Kind, tx.Security, tx.Date, cash.Currency(), a.name, a.currency, ErrCurrencyMismatch)
		}
		balance = balance.Add(cash)
	}
	return balance, nil
}

// settlements iterates over the buys and sells whose cash leg settles in a.
func (l *Ledger) settlements(a *Account) iter.Seq2[*Portfolio, Transaction] {
	return func(yield func(*Portfolio, Transaction) bool) {
		for _, p := range l.portfolios {
			if p.account != a.name {
				continue
			}
			for _, tx := range p.transactions {
				if tx.Kind != KindBuy && tx.Kind != KindSell {
					continue
				}
				if !yield(p, tx) {
					return
				}
			}
		}
	}
}

// Position returns the number of shares of a security held in a portfolio on
// a given day.
//
// It fails with a *NegativeHoldingError on the first transaction that would
// remove more shares than held.
func (l *Ledger) Position(portfolio, security string, on date.Date) (Quantity, error) {
	p := l.Portfolio(portfolio)
	if p == nil {
		return Quantity{}, fmt.Errorf("unknown portfolio %q", portfolio)
	}
	var held Quantity
	for _, tx := range p.transactions {
		if tx.Date.After(on) {
			break
		}
		if !portfolioKinds[tx.Kind] {
			return Quantity{}, &UnsupportedTransactionKindError{Holder: p.name, Kind: tx.Kind, TransactionID: tx.ID}
		}
		if tx.Security != security {
			continue
		}
		next, err := move(p, tx, held)
		if err != nil {
			return Quantity{}, err
		}
		held = next
	}
	return held, nil
}

// move applies a quantity changing transaction to the shares held.
func move(p *Portfolio, tx Transaction, held Quantity) (Quantity, error) {
	switch {
	case tx.Kind.Acquires():
		return held.Add(tx.Shares), nil
	case tx.Kind.Disposes():
		if held.LessThan(tx.Shares) {
			return held, &NegativeHoldingError{Portfolio: p.name, Security: tx.Security, Date: tx.Date, Held: held, Requested: tx.Shares}
		}
		return held.Sub(tx.Shares), nil
	}
	return held, &UnsupportedTransactionKindError{Holder: p.name, Kind: tx.Kind, TransactionID: tx.ID}
}

// MarketValue returns the value of a number of shares of a security on a given
// day, in the security's currency. No shares need no price.
func (l *Ledger) MarketValue(security string, shares Quantity, on date.Date) (Money, error) {
	sec := l.Security(security)
	if sec == nil {
		return Money{}, fmt.Errorf("unknown security %q", security)
	}
	if shares.IsZero() {
		return M(0, sec.currency), nil
	}
	price, err := sec.PriceAsOf(on)
	if err != nil {
		return Money{}, err
	}
	return shares.Value(withCurrency(price, sec.currency)), nil
}
