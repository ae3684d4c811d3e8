package renderer

import (
	"github.com/etnz/performance"
	"github.com/etnz/performance/date"
)

// Holding is a struct to represent the holding data in json.
// Numbers are handled using the exact types (Money, Quantity)
// so that they already contain basic renderers (SignedString etc.)
type Holding struct {
	// Name of the ledger.
	Name string `json:"name,omitempty"`
	// Date of the holding
	Date date.Date `json:"date"`
	// Currency is the reporting currency.
	Currency string `json:"currency"`
	// Total is the value of the whole ledger in the reporting currency.
	Total performance.Money `json:"total"`
	// TotalCash is the value of all accounts in the reporting currency.
	TotalCash performance.Money `json:"totalCash"`
	// TotalPositions is the value of all positions in the reporting currency.
	TotalPositions performance.Money `json:"totalPositions"`
	Accounts       []HoldingAccount  `json:"accounts"`
	Positions      []HoldingPosition `json:"positions"`
}

// HoldingAccount represents a single account balance.
type HoldingAccount struct {
	Name    string            `json:"name"`
	Balance performance.Money `json:"balance"`
	Value   performance.Money `json:"value"`
}

// HoldingPosition represents the shares of a security held in a portfolio.
type HoldingPosition struct {
	Portfolio   string               `json:"portfolio"`
	Security    string               `json:"security"`
	Shares      performance.Quantity `json:"shares"`
	Price       performance.Money    `json:"price"`
	MarketValue performance.Money    `json:"marketValue"`
	Value       performance.Money    `json:"value"`
}

// NewHolding creates a new Holding struct from a ledger snapshot.
func NewHolding(name string, s *performance.ClientSnapshot) *Holding {
	zero := performance.M(0, s.Currency())
	h := &Holding{
		Name:           name,
		Date:           s.On(),
		Currency:       s.Currency(),
		Total:          s.Total(),
		TotalCash:      zero,
		TotalPositions: zero,
	}
	for _, a := range s.Accounts() {
		h.Accounts = append(h.Accounts, HoldingAccount{Name: a.Account, Balance: a.Balance, Value: a.Value})
		h.TotalCash = h.TotalCash.Add(a.Value)
	}
	for _, p := range s.Positions() {
		h.Positions = append(h.Positions, HoldingPosition{
			Portfolio:   p.Portfolio,
			Security:    p.Security,
			Shares:      p.Shares,
			Price:       p.Price,
			MarketValue: p.MarketValue,
			Value:       p.Value,
		})
		h.TotalPositions = h.TotalPositions.Add(p.Value)
	}
	return h
}
