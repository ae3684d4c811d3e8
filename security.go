package performance

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/etnz/performance/date"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// currencyPairRegex checks for the format: 6 uppercase letters (3 for base, 3 for quote).
var currencyPairRegex = regexp.MustCompile(`^[A-Z]{6}$`)

// Security is a tradable instrument with a history of market prices.
//
// Prices are expressed in the security's currency, in minor units per whole share.
type Security struct {
	name     string
	currency string
	isin     string
	prices   date.History[Money]
}

// NewSecurity returns a security without prices.
func NewSecurity(name, currency string) *Security {
	return &Security{name: name, currency: currency}
}

// Name returns the name used by transactions to refer to the security.
func (s *Security) Name() string { return s.name }

// Currency returns the currency the security is priced in.
func (s *Security) Currency() string { return s.currency }

// ISIN returns the optional ISIN of the security.
func (s *Security) ISIN() string { return s.isin }

// WithISIN sets the ISIN of the security.
func (s *Security) WithISIN(isin string) *Security {
	s.isin = isin
	return s
}

// AddPrice records the market price on a given day. A price already recorded
// that day is replaced.
func (s *Security) AddPrice(on date.Date, price Money) *Security {
	s.prices.Append(on, price)
	return s
}

// Prices returns the price points in chronological order.
func (s *Security) Prices() iter.Seq2[date.Date, Money] { return s.prices.Values() }

// PriceAsOf returns the latest price at or before on.
func (s *Security) PriceAsOf(on date.Date) (Money, error) {
	p, ok := s.prices.ValueAsOf(on)
	if !ok {
		return Money{}, &MissingPriceError{Security: s.name, Date: on}
	}
	return p, nil
}

// validate checks the declaration and the price history.
func (s *Security) validate() error {
	if s.name == "" {
		return fmt.Errorf("security name is missing")
	}
	if err := ValidateCurrency(s.currency); err != nil {
		return fmt.Errorf("security %q: %w", s.name, err)
	}
	if s.isin != "" {
		if err := ValidateISIN(s.isin); err != nil {
			return fmt.Errorf("security %q: invalid ISIN: %w", s.name, err)
		}
	}
	for on, p := range s.prices.Values() {
		if !p.In(s.currency) {
			return fmt.Errorf("security %q: price on %s in %s: %w", s.name, on, p.Currency(), ErrCurrencyMismatch)
		}
		if p.IsNegative() {
			return fmt.Errorf("security %q: negative price %s on %s", s.name, p, on)
		}
	}
	return nil
}

// ValidateISIN checks if a string is a validly formatted ISIN.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// Letters count as two digits (A=10 ... Z=35).
	var digits strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			digits.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			digits.WriteRune(char)
		}
	}

	// Luhn, doubling from the rightmost digit.
	sum, double := 0, true
	s := digits.String()
	for i := len(s) - 1; i >= 0; i-- {
		digit := int(s[i] - '0')
		if double {
			digit *= 2
		}
		sum += digit/10 + digit%10
		double = !double
	}

	want := (10 - sum%10) % 10
	if got := int(isin[11] - '0'); got != want {
		return fmt.Errorf("invalid check digit: expected %d, got %d", want, got)
	}
	return nil
}

// ParseCurrencyPair splits a six letter pair like "USDEUR" into its base and
// quote currencies.
func ParseCurrencyPair(pair string) (base, quote string, err error) {
	if !currencyPairRegex.MatchString(pair) {
		return "", "", fmt.Errorf("invalid currency pair %q: must be 6 uppercase letters", pair)
	}
	base, quote = pair[:3], pair[3:]
	if err := ValidateCurrency(base); err != nil {
		return "", "", fmt.Errorf("invalid currency pair %q: %w", pair, err)
	}
	if err := ValidateCurrency(quote); err != nil {
		return "", "", fmt.Errorf("invalid currency pair %q: %w", pair, err)
	}
	return base, quote, nil
}
