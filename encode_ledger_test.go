package performance

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/etnz/performance/date"
	"github.com/google/uuid"
)

const sampleLedger = `
{"command":"account","name":"Cash","currency":"EUR"}
{"command":"portfolio","name":"Broker","account":"Cash"}
{"command":"security","name":"ACME","currency":"EUR","isin":"US0378331005"}
{"command":"price","date":"2025-01-02","security":"ACME","price":100}
{"command":"price","date":"2025-02-03","security":"ACME","price":120.5}
{"command":"forex","date":"2025-01-01","pair":"USDEUR","rate":0.9}
{"command":"deposit","date":"2025-01-01","account":"Cash","amount":5000,"memo":"salary"}
{"command":"buy","date":"2025-01-02","portfolio":"Broker","security":"ACME","quantity":10,"amount":1000,"fee":2.5}
{"command":"interest","date":"2025-01-31","id":"interest-jan","account":"Cash","amount":1.25,"tax":0.25}
`

func TestDecodeLedger(t *testing.T) {
	l, err := DecodeLedger(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	cash := l.Account("Cash")
	if cash == nil {
		t.Fatal("account Cash not decoded")
	}
	txs := cash.Transactions()
	if len(txs) != 2 {
		t.Fatalf("Cash has %d transactions, want 2", len(txs))
	}
	if txs[0].Kind != KindDeposit || !txs[0].Amount.Equal(eur(5000_00)) || txs[0].Memo != "salary" {
		t.Errorf("deposit = %v", txs[0])
	}
	if _, err := uuid.Parse(txs[0].ID); err != nil {
		t.Errorf("deposit id %q is not a uuid: %v", txs[0].ID, err)
	}
	if txs[1].ID != "interest-jan" || !txs[1].Tax.Equal(eur(25)) {
		t.Errorf("interest = %v", txs[1])
	}

	buys := l.Portfolio("Broker").Transactions()
	if len(buys) != 1 || !buys[0].Shares.Equal(Q(10)) || !buys[0].Fee.Equal(eur(2_50)) {
		t.Errorf("Broker transactions = %v", buys)
	}

	acme := l.Security("ACME")
	if acme.ISIN() != "US0378331005" {
		t.Errorf("ISIN() = %q", acme.ISIN())
	}
	if p, err := acme.PriceAsOf(date.New(2025, time.March, 1)); err != nil || !p.Equal(eur(120_50)) {
		t.Errorf("PriceAsOf() = %v, %v want 120.50", p, err)
	}
	if _, err := l.Rates().Rate("USD", "EUR", date.New(2025, time.March, 1)); err != nil {
		t.Errorf("Rate(USD, EUR) error = %v", err)
	}
}

func TestDecodeLedgerErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown command", `{"command":"convert","date":"2025-01-01","account":"Cash","amount":1}`, "line 1"},
		{"invalid json", `{"command":`, "could not decode"},
		{"undeclared account", `{"command":"deposit","date":"2025-01-01","account":"Cash","amount":1}`, `account "Cash" not declared`},
		{"duplicate account", "{\"command\":\"account\",\"name\":\"Cash\",\"currency\":\"EUR\"}\n{\"command\":\"account\",\"name\":\"Cash\",\"currency\":\"EUR\"}", "already declared"},
		{"no holder", `{"command":"deposit","date":"2025-01-01","amount":1}`, "needs an account or a portfolio"},
		{"bad pair", `{"command":"forex","date":"2025-01-01","pair":"USD","rate":1}`, "invalid currency pair"},
		{"relative date", `{"command":"forex","date":"-1d","pair":"USDEUR","rate":1}`, "invalid date"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLedger(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("DecodeLedger() expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("DecodeLedger() error = %q, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestEncodeLedgerRoundTrip(t *testing.T) {
	l, err := DecodeLedger(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatal(err)
	}
	var first bytes.Buffer
	if err := EncodeLedger(&first, l); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}

	again, err := DecodeLedger(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("DecodeLedger() of encoded ledger error = %v\n%s", err, first.String())
	}
	var second bytes.Buffer
	if err := EncodeLedger(&second, again); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("round trip mismatch:\n got: %s\nwant: %s", second.String(), first.String())
	}

	lines := strings.Split(strings.TrimSpace(first.String()), "\n")
	if len(lines) != 9 {
		t.Fatalf("EncodeLedger() wrote %d lines, want 9:\n%s", len(lines), first.String())
	}
	if want := `{"command":"account","name":"Cash","currency":"EUR"}`; lines[0] != want {
		t.Errorf("first line = %s, want %s", lines[0], want)
	}
	if want := `{"command":"price","date":"2025-02-03","security":"ACME","price":120.5}`; lines[4] != want {
		t.Errorf("price line = %s, want %s", lines[4], want)
	}
	if want := `{"command":"interest","date":"2025-01-31","id":"interest-jan","account":"Cash","amount":1.25,"tax":0.25}`; lines[8] != want {
		t.Errorf("last line = %s, want %s", lines[8], want)
	}
}
