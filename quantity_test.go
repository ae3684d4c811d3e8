package performance

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestQuantity(t *testing.T) {
	if got := Q(10).Units(); got != 10*QuantityScale {
		t.Errorf("Q(10).Units() = %d", got)
	}
	if got := Q(0.5).Add(Q(0.25)); !got.Equal(Q(0.75)) {
		t.Errorf("Q(0.5).Add(Q(0.25)) = %v", got)
	}
	if got := Q(decimal.RequireFromString("1.000000001")); !got.Equal(Q(1)) {
		t.Errorf("Q(1.000000001) = %v, want 1 (rounded to 8 digits)", got)
	}
	if !Q(1).Sub(Q(2)).IsNegative() {
		t.Error("Q(1).Sub(Q(2)) should be negative")
	}
}

func TestQuantityValue(t *testing.T) {
	testCases := []struct {
		q     Quantity
		price Money
		want  Money
	}{
		{Q(10), M(1000, "EUR"), M(10000, "EUR")},
		{Q(9), M(1100, "EUR"), M(9900, "EUR")},
		{Q(0.5), M(3, "EUR"), M(2, "EUR")},   // 1.5 rounds up
		{Q(0.25), M(2, "EUR"), M(1, "EUR")},  // 0.5 rounds away from zero
		{Q(0.125), M(4, "EUR"), M(1, "EUR")}, // 0.5 again
		{Q(0), M(1234, "EUR"), M(0, "EUR")},
	}
	for _, tc := range testCases {
		if got := tc.q.Value(tc.price); !got.Equal(tc.want) {
			t.Errorf("%v.Value(%d) = %d, want %d", tc.q, tc.price.Amount(), got.Amount(), tc.want.Amount())
		}
	}
}

func TestUnitPrice(t *testing.T) {
	if got, want := Q(10).UnitPrice(M(9900, "EUR")), M(990, "EUR"); !got.Equal(want) {
		t.Errorf("UnitPrice() = %v, want %v", got, want)
	}
	if got := Q(0).UnitPrice(M(9900, "EUR")); !got.IsZero() {
		t.Errorf("UnitPrice() of no shares = %v, want 0", got)
	}
}

func TestQuantityJSON(t *testing.T) {
	data, err := json.Marshal(Q(12.5))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "12.5"; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}
	var q Quantity
	for _, in := range []string{`12.5`, `"12.5"`} {
		if err := json.Unmarshal([]byte(in), &q); err != nil {
			t.Fatalf("json.Unmarshal(%s) error = %v", in, err)
		}
		if !q.Equal(Q(12.5)) {
			t.Errorf("json.Unmarshal(%s) = %v", in, q)
		}
	}
	if _, err := ParseQuantity("ten"); err == nil {
		t.Error("ParseQuantity(\"ten\") expected an error")
	}
}
