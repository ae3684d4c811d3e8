package performance

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/performance/date"
	"github.com/shopspring/decimal"
)

func TestRateTable(t *testing.T) {
	jan, jun := date.New(2025, time.January, 1), date.New(2025, time.June, 1)
	table := NewRateTable().
		Add("USD", "EUR", jan, decimal.RequireFromString("0.9")).
		Add("USD", "EUR", jun, decimal.RequireFromString("0.8")).
		Add("EUR", "CHF", jan, decimal.RequireFromString("0.95"))

	testCases := []struct {
		name     string
		from, to string
		on       date.Date
		want     string
	}{
		{"same currency", "EUR", "EUR", jan, "1"},
		{"direct pair", "USD", "EUR", jan, "0.9"},
		{"latest rate before", "USD", "EUR", date.New(2025, time.December, 31), "0.8"},
		{"inverse pair", "CHF", "EUR", jan, "1.0526315789473684"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := table.Rate(tc.from, tc.to, tc.on)
			if err != nil {
				t.Fatalf("Rate() error = %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("Rate(%s, %s) = %v, want %s", tc.from, tc.to, got, tc.want)
			}
		})
	}

	var missing *MissingRateError
	if _, err := table.Rate("USD", "EUR", date.New(2024, time.December, 31)); !errors.As(err, &missing) {
		t.Errorf("Rate() before the first rate error = %v, want a MissingRateError", err)
	}
	if _, err := table.Rate("USD", "JPY", jan); !errors.As(err, &missing) || missing.To != "JPY" {
		t.Errorf("Rate() of an unknown pair error = %v, want a MissingRateError", err)
	}
	if got, want := table.Pairs(), []string{"EURCHF", "USDEUR"}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}

func TestRateConverter(t *testing.T) {
	table := NewRateTable().Add("USD", "EUR", date.New(2025, time.January, 1), decimal.RequireFromString("0.9"))
	c := table.Converter("EUR")
	on := date.New(2025, time.February, 1)

	if got := c.ReportingCurrency(); got != "EUR" {
		t.Errorf("ReportingCurrency() = %q", got)
	}
	got, err := c.Convert(M(100_01, "USD"), on)
	if err != nil {
		t.Fatal(err)
	}
	if want := eur(90_01); !got.Equal(want) { // 90.009 rounds to 90.01
		t.Errorf("Convert() = %v, want %v", got, want)
	}
	if got, err := c.Convert(M(0, "JPY"), on); err != nil || !got.Equal(eur(0)) {
		t.Errorf("Convert() of zero = %v, %v", got, err)
	}
	if _, err := c.Convert(M(1, "JPY"), on); err == nil {
		t.Error("Convert() without rate expected an error")
	}
}

func TestIdentityConverter(t *testing.T) {
	c := IdentityConverter("EUR")
	got, err := c.Convert(M(42, ""), date.New(2025, time.January, 1))
	if err != nil || !got.Equal(eur(42)) {
		t.Errorf("Convert() = %v, %v want 42 EUR", got, err)
	}
	if _, err := c.Convert(M(42, "USD"), date.New(2025, time.January, 1)); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Convert() of USD error = %v, want ErrCurrencyMismatch", err)
	}
}
