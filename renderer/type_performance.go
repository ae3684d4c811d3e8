package renderer

import (
	"github.com/etnz/performance"
	"github.com/etnz/performance/date"
	"github.com/shopspring/decimal"
)

// Performance is the view of a performance report used by the templates.
type Performance struct {
	Name string    `json:"name,omitempty"`
	From date.Date `json:"from"`
	To   date.Date `json:"to"`
	// Period names a standard reporting range, like "2025-Q1".
	Period   string `json:"period,omitempty"`
	Currency string `json:"currency"`
	// Return is the absolute performance relative to the initial value, formatted as a percentage.
	Return     string                `json:"return"`
	Categories []PerformanceCategory `json:"categories"`
}

// PerformanceCategory is one line of the summary table.
type PerformanceCategory struct {
	Name      string            `json:"name"`
	Label     string            `json:"label"`
	Valuation performance.Money `json:"valuation"`
	Items     []PerformanceItem `json:"items,omitempty"`
}

// PerformanceItem is one contribution to a category. Date is empty for
// items not tied to a day.
type PerformanceItem struct {
	Date      string            `json:"date,omitempty"`
	Label     string            `json:"label"`
	Valuation performance.Money `json:"valuation"`
}

// NewPerformance creates the report view of a computed performance.
func NewPerformance(name string, cp *performance.ClientPerformance) *Performance {
	p := &Performance{
		Name:     name,
		From:     cp.Range().From,
		To:       cp.Range().To,
		Currency: cp.Currency(),
		Return:   formatPercent(cp.Return()),
	}
	if _, ok := cp.Range().Period(); ok {
		p.Period = cp.Range().Identifier()
	}
	for _, c := range cp.Categories() {
		pc := PerformanceCategory{
			Name:      c.Type.String(),
			Label:     c.Type.Label(),
			Valuation: c.Valuation,
		}
		for _, item := range c.Items {
			pi := PerformanceItem{Label: item.Label, Valuation: item.Valuation}
			if !item.Date.IsZero() {
				pi.Date = item.Date.String()
			}
			pc.Items = append(pc.Items, pi)
		}
		p.Categories = append(p.Categories, pc)
	}
	return p
}

// formatPercent formats a ratio as a signed percentage with two decimals.
func formatPercent(r decimal.Decimal) string {
	s := r.Shift(2).StringFixed(2) + "%"
	if r.IsPositive() {
		return "+" + s
	}
	return s
}
