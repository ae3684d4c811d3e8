package performance

import (
	"fmt"

	"github.com/etnz/performance/date"
	"github.com/rs/zerolog"
)

// positionKey identifies the shares of one security held in one portfolio.
type positionKey struct {
	portfolio string
	security  string
}

// gainEvent is a quantity changing transaction, ready for the gains walk.
type gainEvent struct {
	date      date.Date
	id        string
	shares    Quantity
	acquire   bool
	gross     Money // in the security currency.
	grossConv Money // in the reporting currency.
	price     Money // market price, set when the event is valued at market.
	priceErr  error // why price is missing, reported only if shares are held.
}

// classifier assigns every transaction of a reporting range to the categories
// it contributes to, and collects the events of the gains walk.
//
// Each transaction converts its amount, fee and tax separately, at its own
// date, and derives its primary contribution from the converted parts so that
// its contributions always sum to its converted effect on net worth.
type classifier struct {
	ledger    *Ledger
	converter CurrencyConverter
	period    date.Range
	log       zerolog.Logger

	categories map[CategoryType]*Category
	events     map[positionKey][]gainEvent
	cashFlows  map[string]Money // converted in-period cash effects, by account.
}

func newClassifier(ledger *Ledger, converter CurrencyConverter, period date.Range, log zerolog.Logger) *classifier {
	cur := converter.ReportingCurrency()
	k := &classifier{
		ledger:     ledger,
		converter:  converter,
		period:     period,
		log:        log,
		categories: make(map[CategoryType]*Category),
		events:     make(map[positionKey][]gainEvent),
		cashFlows:  make(map[string]Money),
	}
	for _, t := range []CategoryType{Earnings, Fees, Taxes, Transfers} {
		k.categories[t] = &Category{Type: t, Valuation: M(0, cur)}
	}
	return k
}

// convertedTx holds the parts of a transaction in the reporting currency.
type convertedTx struct {
	amount, fee, tax Money
}

func (k *classifier) convert(m Money, on date.Date) (Money, error) {
	if m.IsZero() {
		return M(0, k.converter.ReportingCurrency()), nil
	}
	return k.converter.Convert(m, on)
}

func (k *classifier) convertTx(tx Transaction) (c convertedTx, err error) {
	if c.amount, err = k.convert(tx.Amount, tx.Date); err != nil {
		return c, err
	}
	if c.fee, err = k.convert(tx.Fee, tx.Date); err != nil {
		return c, err
	}
	if c.tax, err = k.convert(tx.Tax, tx.Date); err != nil {
		return c, err
	}
	return c, nil
}

// classify walks every account and portfolio transaction in (From, To].
func (k *classifier) classify() error {
	for a := range k.ledger.Accounts() {
		for _, tx := range a.transactions {
			if !k.period.Covers(tx.Date) {
				continue
			}
			if err := k.account(a, tx); err != nil {
				return fmt.Errorf("account %q: %s transaction on %s: %w", a.name, tx.Kind, tx.Date, err)
			}
		}
	}
	for p := range k.ledger.Portfolios() {
		for _, tx := range p.transactions {
			if !k.period.Covers(tx.Date) {
				continue
			}
			if err := k.portfolio(p, tx); err != nil {
				return fmt.Errorf("portfolio %q: %s transaction on %s: %w", p.name, tx.Kind, tx.Date, err)
			}
		}
	}
	return nil
}

func (k *classifier) add(t CategoryType, label string, tx Transaction, v Money) {
	k.categories[t].add(Item{Label: label, Date: tx.Date, TransactionID: tx.ID, Valuation: v})
}

func (k *classifier) cashFlow(account string, v Money) {
	if prev, ok := k.cashFlows[account]; ok {
		v = prev.Add(v)
	}
	k.cashFlows[account] = v
}

// costs reports the embedded fee and tax of a transaction.
func (k *classifier) costs(label string, tx Transaction, c convertedTx) {
	k.add(Fees, label, tx, c.fee)
	k.add(Taxes, label, tx, c.tax)
}

func (k *classifier) account(a *Account, tx Transaction) error {
	if err := k.ledger.checkAccountTx(a, tx); err != nil {
		return err
	}
	c, err := k.convertTx(tx)
	if err != nil {
		return err
	}
	label := txLabel(a.name, tx)

	switch tx.Kind {
	case KindDeposit, KindTransferIn:
		k.add(Transfers, label, tx, c.amount.Add(c.fee).Add(c.tax))
		k.cashFlow(a.name, c.amount)
	case KindWithdrawal, KindTransferOut:
		k.add(Transfers, label, tx, c.fee.Add(c.tax).Sub(c.amount))
		k.cashFlow(a.name, c.amount.Neg())
	case KindInterest, KindDividend:
		k.add(Earnings, label, tx, c.amount.Add(c.fee).Add(c.tax))
		k.cashFlow(a.name, c.amount)
	case KindFee:
		k.add(Fees, label, tx, c.amount)
		k.cashFlow(a.name, c.amount.Neg())
	case KindTax:
		k.add(Taxes, label, tx, c.amount)
		k.cashFlow(a.name, c.amount.Neg())
	default:
		return &UnsupportedTransactionKindError{Holder: a.name, Kind: tx.Kind, TransactionID: tx.ID}
	}
	k.costs(label, tx, c)

	k.log.Debug().Str("account", a.name).Str("kind", tx.Kind.String()).Stringer("date", tx.Date).Stringer("amount", c.amount).Msg("classified")
	return nil
}

func (k *classifier) portfolio(p *Portfolio, tx Transaction) error {
	if err := k.ledger.checkPortfolioTx(p, tx); err != nil {
		return err
	}
	sec := k.ledger.Security(tx.Security)
	tx.Amount = withCurrency(tx.Amount, sec.currency)
	tx.Fee = withCurrency(tx.Fee, sec.currency)
	tx.Tax = withCurrency(tx.Tax, sec.currency)

	c, err := k.convertTx(tx)
	if err != nil {
		return err
	}
	label := txLabel(p.name, tx)
	settles := k.ledger.settles(p)
	ev := gainEvent{date: tx.Date, id: tx.ID, shares: tx.Shares, acquire: tx.Kind.Acquires()}

	switch tx.Kind {
	case KindBuy:
		ev.gross = tx.Gross()
		ev.grossConv = c.amount.Sub(c.fee).Sub(c.tax)
		if settles {
			k.cashFlow(p.account, c.amount.Neg())
		} else {
			k.add(Transfers, label, tx, c.amount)
		}
	case KindSell:
		ev.gross = tx.Gross()
		ev.grossConv = c.amount.Add(c.fee).Add(c.tax)
		if settles {
			k.cashFlow(p.account, c.amount)
		} else {
			k.add(Transfers, label, tx, c.amount.Neg())
		}
	case KindTransferIn, KindTransferOut:
		if tx.Amount.IsZero() {
			price, err := sec.PriceAsOf(tx.Date)
			if err != nil {
				return err
			}
			ev.price = withCurrency(price, sec.currency)
			ev.gross = tx.Shares.Value(ev.price)
			if ev.grossConv, err = k.convert(ev.gross, tx.Date); err != nil {
				return err
			}
		} else {
			ev.gross = tx.Amount
			ev.grossConv = c.amount
		}
		if tx.Kind == KindTransferIn {
			k.add(Transfers, label, tx, ev.grossConv.Add(c.fee).Add(c.tax))
		} else {
			k.add(Transfers, label, tx, c.fee.Add(c.tax).Sub(ev.grossConv))
		}
	default:
		return &UnsupportedTransactionKindError{Holder: p.name, Kind: tx.Kind, TransactionID: tx.ID}
	}
	if ev.gross.IsZero() && ev.price.IsZero() {
		// Shares changing hands for nothing are marked at market.
		price, err := sec.PriceAsOf(tx.Date)
		ev.price, ev.priceErr = withCurrency(price, sec.currency), err
	}
	k.costs(label, tx, c)

	key := positionKey{portfolio: p.name, security: tx.Security}
	k.events[key] = append(k.events[key], ev)

	k.log.Debug().Str("portfolio", p.name).Str("kind", tx.Kind.String()).Str("security", tx.Security).Stringer("date", tx.Date).Stringer("gross", ev.grossConv).Msg("classified")
	return nil
}

func txLabel(holder string, tx Transaction) string {
	label := fmt.Sprintf("%s: %s", holder, tx.Kind)
	if tx.Security != "" {
		label += " " + tx.Security
	}
	if tx.Memo != "" {
		label += " (" + tx.Memo + ")"
	}
	return label
}
