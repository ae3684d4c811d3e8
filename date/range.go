package date

import (
	"fmt"
	"time"
)

// Range represents a range of dates.
//
// For performance reporting, From is the date of the opening valuation: events
// dated From are already part of it, so a reporting range covers (From, To].
type Range struct{ From, To Date }

// PeriodRange returns the reporting range for the period that ends with the
// period containing d: it opens on the last day of the previous period, so that
// a yearly report of 2011 opens on 2010-12-31.
func PeriodRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period).Add(-1), To: d.EndOf(period)}
}

// Covers reports whether date belongs to the half-open reporting interval (From, To].
func (r Range) Covers(date Date) bool { return date.After(r.From) && !date.After(r.To) }

// Period returns the period of this reporting range if it is a standard one.
func (r Range) Period() (p Period, ok bool) {
	first := r.From.Add(1)
	switch {
	case first == r.To:
		return Daily, true
	case first.Weekday() == time.Monday && first.EndOf(Weekly) == r.To:
		return Weekly, true
	case first.Day() == 1 && first.EndOf(Monthly) == r.To:
		return Monthly, true
	case first.StartOf(Quarterly) == first && first.EndOf(Quarterly) == r.To:
		return Quarterly, true
	case first.StartOf(Yearly) == first && first.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Daily, false
	}
}

// Identifier names the range: "2025", "2025-Q1", "2025-03", "2025-W10" or the
// opening day of a standard period, and "from_to" otherwise.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	first := r.From.Add(1)
	switch p {
	case Daily:
		return first.String()
	case Weekly:
		_, week := first.ISOWeek()
		return fmt.Sprintf("%d-W%02d", first.Year(), week)
	case Monthly:
		return first.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", first.Year(), (first.Month()-1)/3+1)
	case Yearly:
		return first.Format("2006")
	default:
		panic("unknown period")
	}
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
