package performance

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/performance/date"
)

// Account is a cash account held in a single currency.
type Account struct {
	name         string
	currency     string
	transactions []Transaction
}

// NewAccount returns an empty account.
func NewAccount(name, currency string) *Account {
	return &Account{name: name, currency: currency}
}

// Name returns the account name.
func (a *Account) Name() string { return a.name }

// Currency returns the account currency.
func (a *Account) Currency() string { return a.currency }

// Add appends transactions to the account and maintains the chronological order of transactions.
func (a *Account) Add(txs ...Transaction) *Account {
	a.transactions = appendSorted(a.transactions, a.currency, txs)
	return a
}

// Transactions returns the account transactions in chronological order.
func (a *Account) Transactions() []Transaction { return slices.Clone(a.transactions) }

// Portfolio holds securities. The cash legs of its buys and sells settle in
// its reference account.
type Portfolio struct {
	name         string
	account      string
	transactions []Transaction
}

// NewPortfolio returns an empty portfolio settling in the named reference
// account. When that account is not part of the ledger, cash legs cross the
// ledger boundary.
func NewPortfolio(name, referenceAccount string) *Portfolio {
	return &Portfolio{name: name, account: referenceAccount}
}

// Name returns the portfolio name.
func (p *Portfolio) Name() string { return p.name }

// ReferenceAccount returns the name of the account buys and sells settle in.
func (p *Portfolio) ReferenceAccount() string { return p.account }

// Add appends transactions to the portfolio and maintains the chronological order of transactions.
func (p *Portfolio) Add(txs ...Transaction) *Portfolio {
	p.transactions = appendSorted(p.transactions, "", txs)
	return p
}

// Transactions returns the portfolio transactions in chronological order.
func (p *Portfolio) Transactions() []Transaction { return slices.Clone(p.transactions) }

// Securities returns the securities the portfolio ever traded, in order of
// first appearance.
func (p *Portfolio) Securities() []string {
	var names []string
	for _, tx := range p.transactions {
		if tx.Security != "" && !slices.Contains(names, tx.Security) {
			names = append(names, tx.Security)
		}
	}
	return names
}

// appendSorted appends txs and stable sorts by date, so that transactions on
// the same day keep their insertion order. Amounts without currency get
// currency.
func appendSorted(list []Transaction, currency string, txs []Transaction) []Transaction {
	for _, tx := range txs {
		if currency != "" {
			tx.Amount = withCurrency(tx.Amount, currency)
			tx.Fee = withCurrency(tx.Fee, currency)
			tx.Tax = withCurrency(tx.Tax, currency)
		}
		list = append(list, tx)
	}
	slices.SortStableFunc(list, func(a, b Transaction) int { return a.Date.Compare(b.Date) })
	return list
}

func withCurrency(m Money, currency string) Money {
	if m.cur == "" {
		m.cur = currency
	}
	return m
}

// Ledger is the complete set of accounts, portfolios and securities of a client,
// together with the exchange rates needed to value them.
//
// A Ledger is built once and read only during a computation.
type Ledger struct {
	accounts   []*Account
	portfolios []*Portfolio
	securities []*Security
	rates      *RateTable
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{rates: NewRateTable()}
}

// AddAccount adds accounts to the ledger.
func (l *Ledger) AddAccount(accounts ...*Account) *Ledger {
	l.accounts = append(l.accounts, accounts...)
	return l
}

// AddPortfolio adds portfolios to the ledger.
func (l *Ledger) AddPortfolio(portfolios ...*Portfolio) *Ledger {
	l.portfolios = append(l.portfolios, portfolios...)
	return l
}

// AddSecurity adds securities to the ledger.
func (l *Ledger) AddSecurity(securities ...*Security) *Ledger {
	l.securities = append(l.securities, securities...)
	return l
}

// Rates returns the exchange rates of the ledger.
func (l *Ledger) Rates() *RateTable { return l.rates }

// Accounts iterates over accounts in declaration order.
func (l *Ledger) Accounts() iter.Seq[*Account] { return slices.Values(l.accounts) }

// Portfolios iterates over portfolios in declaration order.
func (l *Ledger) Portfolios() iter.Seq[*Portfolio] { return slices.Values(l.portfolios) }

// Securities iterates over securities in declaration order.
func (l *Ledger) Securities() iter.Seq[*Security] { return slices.Values(l.securities) }

// Account returns the account with this name, or nil if unknown.
func (l *Ledger) Account(name string) *Account {
	if name == "" {
		return nil
	}
	for _, a := range l.accounts {
		if a.name == name {
			return a
		}
	}
	return nil
}

// Portfolio returns the portfolio with this name, or nil if unknown.
func (l *Ledger) Portfolio(name string) *Portfolio {
	for _, p := range l.portfolios {
		if p.name == name {
			return p
		}
	}
	return nil
}

// Security returns the security with this name, or nil if unknown.
func (l *Ledger) Security(name string) *Security {
	for _, s := range l.securities {
		if s.name == name {
			return s
		}
	}
	return nil
}

// settles reports whether the cash legs of p settle in an account of the ledger.
func (l *Ledger) settles(p *Portfolio) bool { return l.Account(p.account) != nil }

// LastDate returns the date of the latest transaction or price in the ledger.
func (l *Ledger) LastDate() date.Date {
	var last date.Date
	later := func(d date.Date) {
		if d.After(last) {
			last = d
		}
	}
	for _, a := range l.accounts {
		if n := len(a.transactions); n > 0 {
			later(a.transactions[n-1].Date)
		}
	}
	for _, p := range l.portfolios {
		if n := len(p.transactions); n > 0 {
			later(p.transactions[n-1].Date)
		}
	}
	for _, s := range l.securities {
		if s.prices.Len() > 0 {
			d, _ := s.prices.Latest()
			later(d)
		}
	}
	return last
}

// Validate checks the whole ledger for consistency and returns every problem
// found.
func (l *Ledger) Validate() error {
	var errs []error
	names := make(map[string]bool)
	unique := func(kind, name string) {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s name is missing", kind))
		} else if names[name] {
			errs = append(errs, fmt.Errorf("%s %q: name already used", kind, name))
		}
		names[name] = true
	}

	for _, a := range l.accounts {
		unique("account", a.name)
		if err := ValidateCurrency(a.currency); err != nil {
			errs = append(errs, fmt.Errorf("account %q: %w", a.name, err))
			continue
		}
		for _, tx := range a.transactions {
			if err := l.checkAccountTx(a, tx); err != nil {
				errs = append(errs, fmt.Errorf("account %q: invalid %s transaction on %s: %w", a.name, tx.Kind, tx.Date, err))
			}
		}
	}

	for _, p := range l.portfolios {
		unique("portfolio", p.name)
		for _, tx := range p.transactions {
			if err := l.checkPortfolioTx(p, tx); err != nil {
				errs = append(errs, fmt.Errorf("portfolio %q: invalid %s transaction on %s: %w", p.name, tx.Kind, tx.Date, err))
			}
		}
		for _, sec := range p.Securities() {
			if _, err := l.Position(p.name, sec, l.LastDate()); err != nil {
				errs = append(errs, err)
			}
		}
	}

	secNames := make(map[string]bool)
	for _, s := range l.securities {
		if secNames[s.name] {
			errs = append(errs, fmt.Errorf("security %q: declared twice", s.name))
		}
		secNames[s.name] = true
		if err := s.validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (l *Ledger) checkAccountTx(a *Account, tx Transaction) error {
	if !accountKinds[tx.Kind] {
		return &UnsupportedTransactionKindError{Holder: a.name, Kind: tx.Kind, TransactionID: tx.ID}
	}
	if !tx.Shares.IsZero() {
		return fmt.Errorf("cash transactions cannot carry shares")
	}
	if tx.Security != "" && l.Security(tx.Security) == nil {
		return fmt.Errorf("security %q not declared in ledger", tx.Security)
	}
	return tx.validate(a.currency)
}

func (l *Ledger) checkPortfolioTx(p *Portfolio, tx Transaction) error {
	if !portfolioKinds[tx.Kind] {
		return &UnsupportedTransactionKindError{Holder: p.name, Kind: tx.Kind, TransactionID: tx.ID}
	}
	sec := l.Security(tx.Security)
	if sec == nil {
		return fmt.Errorf("security %q not declared in ledger", tx.Security)
	}
	if !tx.Shares.IsPositive() {
		return fmt.Errorf("quantity must be positive, got %v", tx.Shares)
	}
	if (tx.Kind == KindBuy || tx.Kind == KindSell) && l.settles(p) {
		if cur := l.Account(p.account).currency; cur != sec.currency {
			return fmt.Errorf("reference account %q in %s settles a security in %s: %w", p.account, cur, sec.currency, ErrCurrencyMismatch)
		}
	}
	return tx.validate(sec.currency)
}
