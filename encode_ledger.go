package performance

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/etnz/performance/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Record commands that are not transactions.
const (
	cmdAccount   = "account"
	cmdPortfolio = "portfolio"
	cmdSecurity  = "security"
	cmdPrice     = "price"
	cmdForex     = "forex"
)

// record is one line of a ledger file, with all possible fields.
type record struct {
	Command   string          `json:"command"`
	ID        string          `json:"id"`
	Date      date.Date       `json:"date"`
	Name      string          `json:"name"`
	Currency  string          `json:"currency"`
	ISIN      string          `json:"isin"`
	Account   string          `json:"account"`
	Portfolio string          `json:"portfolio"`
	Security  string          `json:"security"`
	Quantity  Quantity        `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	Tax       decimal.Decimal `json:"tax"`
	Price     decimal.Decimal `json:"price"`
	Pair      string          `json:"pair"`
	Rate      decimal.Decimal `json:"rate"`
	Memo      string          `json:"memo"`

	line int
}

// DecodeLedger reads a ledger from a stream of JSONL records.
//
// Declarations (accounts, portfolios, securities) may appear anywhere in the
// stream. Amounts are decimal numbers in the currency of the holder: the
// account currency, or the security currency for portfolio transactions.
// Transactions without an id are given a new one.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var records []record
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var rec record
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("line %d: could not decode %q: %w", line, string(lineBytes), err)
		}
		rec.line = line
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger := NewLedger()
	// Declarations first, so that every other record can resolve its holder currency.
	for _, rec := range records {
		switch rec.Command {
		case cmdAccount:
			if ledger.Account(rec.Name) != nil {
				return nil, fmt.Errorf("line %d: account %q already declared", rec.line, rec.Name)
			}
			ledger.AddAccount(NewAccount(rec.Name, rec.Currency))
		case cmdPortfolio:
			if ledger.Portfolio(rec.Name) != nil {
				return nil, fmt.Errorf("line %d: portfolio %q already declared", rec.line, rec.Name)
			}
			ledger.AddPortfolio(NewPortfolio(rec.Name, rec.Account))
		case cmdSecurity:
			if ledger.Security(rec.Name) != nil {
				return nil, fmt.Errorf("line %d: security %q already declared", rec.line, rec.Name)
			}
			ledger.AddSecurity(NewSecurity(rec.Name, rec.Currency).WithISIN(rec.ISIN))
		}
	}

	for _, rec := range records {
		if err := decodeRecord(ledger, rec); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", rec.line, rec.Command, err)
		}
	}
	return ledger, nil
}

func decodeRecord(ledger *Ledger, rec record) error {
	switch rec.Command {
	case cmdAccount, cmdPortfolio, cmdSecurity:
		return nil
	case cmdPrice:
		sec := ledger.Security(rec.Security)
		if sec == nil {
			return fmt.Errorf("security %q not declared", rec.Security)
		}
		sec.AddPrice(rec.Date, ParseMoney(rec.Price, sec.currency))
		return nil
	case cmdForex:
		base, quote, err := ParseCurrencyPair(rec.Pair)
		if err != nil {
			return err
		}
		ledger.Rates().Add(base, quote, rec.Date, rec.Rate)
		return nil
	}

	kind, err := ParseKind(rec.Command)
	if err != nil {
		return err
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	tx := Transaction{ID: id, Date: rec.Date, Kind: kind, Security: rec.Security, Shares: rec.Quantity, Memo: rec.Memo}

	switch {
	case rec.Account != "" && rec.Portfolio != "":
		return fmt.Errorf("transaction belongs to both account %q and portfolio %q", rec.Account, rec.Portfolio)
	case rec.Account != "":
		a := ledger.Account(rec.Account)
		if a == nil {
			return fmt.Errorf("account %q not declared", rec.Account)
		}
		a.Add(withAmounts(tx, rec, a.currency))
	case rec.Portfolio != "":
		p := ledger.Portfolio(rec.Portfolio)
		if p == nil {
			return fmt.Errorf("portfolio %q not declared", rec.Portfolio)
		}
		sec := ledger.Security(rec.Security)
		if sec == nil {
			return fmt.Errorf("security %q not declared", rec.Security)
		}
		p.Add(withAmounts(tx, rec, sec.currency))
	default:
		return fmt.Errorf("transaction needs an account or a portfolio")
	}
	return nil
}

func withAmounts(tx Transaction, rec record, currency string) Transaction {
	tx.Amount = ParseMoney(rec.Amount, currency)
	tx.Fee = ParseMoney(rec.Fee, currency)
	tx.Tax = ParseMoney(rec.Tax, currency)
	return tx
}

// EncodeLedger writes the ledger in JSONL format: declarations, prices, exchange
// rates and then transactions in chronological order. The sort is stable:
// transactions on the same day keep the order of their holders.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	enc := jsonlEncoder{w: w}

	for _, a := range ledger.accounts {
		var o jsonObjectWriter
		o.Append("command", cmdAccount)
		o.Append("name", a.name)
		o.Append("currency", a.currency)
		enc.write(&o)
	}
	for _, p := range ledger.portfolios {
		var o jsonObjectWriter
		o.Append("command", cmdPortfolio)
		o.Append("name", p.name)
		o.Optional("account", p.account)
		enc.write(&o)
	}
	for _, s := range ledger.securities {
		var o jsonObjectWriter
		o.Append("command", cmdSecurity)
		o.Append("name", s.name)
		o.Append("currency", s.currency)
		o.Optional("isin", s.isin)
		enc.write(&o)
	}
	for _, s := range ledger.securities {
		for on, price := range s.Prices() {
			var o jsonObjectWriter
			o.Append("command", cmdPrice)
			o.Append("date", on)
			o.Append("security", s.name)
			o.Append("price", price.Major())
			enc.write(&o)
		}
	}
	for _, pair := range ledger.rates.Pairs() {
		for on, rate := range ledger.rates.History(pair) {
			var o jsonObjectWriter
			o.Append("command", cmdForex)
			o.Append("date", on)
			o.Append("pair", pair)
			o.Append("rate", rate)
			enc.write(&o)
		}
	}

	type entry struct {
		holder string // "account" or "portfolio"
		name   string
		tx     Transaction
	}
	var entries []entry
	for _, a := range ledger.accounts {
		for _, tx := range a.transactions {
			entries = append(entries, entry{cmdAccount, a.name, tx})
		}
	}
	for _, p := range ledger.portfolios {
		for _, tx := range p.transactions {
			entries = append(entries, entry{cmdPortfolio, p.name, tx})
		}
	}
	slices.SortStableFunc(entries, func(a, b entry) int { return a.tx.Date.Compare(b.tx.Date) })

	for _, e := range entries {
		var o jsonObjectWriter
		o.Append("command", e.tx.Kind)
		o.Append("date", e.tx.Date)
		o.Optional("id", e.tx.ID)
		o.Append(e.holder, e.name)
		o.Optional("security", e.tx.Security)
		if !e.tx.Shares.IsZero() {
			o.Append("quantity", e.tx.Shares)
		}
		o.Append("amount", e.tx.Amount.Major())
		o.OptionalMoney("fee", e.tx.Fee)
		o.OptionalMoney("tax", e.tx.Tax)
		o.Optional("memo", e.tx.Memo)
		enc.write(&o)
	}
	return enc.err
}

// jsonlEncoder writes one JSON object per line and keeps the first error.
type jsonlEncoder struct {
	w   io.Writer
	err error
}

func (e *jsonlEncoder) write(o *jsonObjectWriter) {
	if e.err != nil {
		return
	}
	data, err := o.MarshalJSON()
	if err != nil {
		e.err = fmt.Errorf("failed to marshal record: %w", err)
		return
	}
	if _, err := e.w.Write(append(data, '\n')); err != nil {
		e.err = fmt.Errorf("failed to write record: %w", err)
	}
}
