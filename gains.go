package performance

import (
	"fmt"

	"github.com/etnz/performance/date"
)

// Checkpoint is a date at which a position is repriced during the gains walk.
//
// Mark is the value, at the checkpoint price, of the shares held before the
// checkpoint. Carry is the value of the shares held after it: Mark plus the
// gross price of shares acquired, or minus the gross proceeds of shares
// disposed of. Both are in the reporting currency.
type Checkpoint struct {
	Date          date.Date
	TransactionID string
	Shares        Quantity // held after the checkpoint.
	Mark          Money
	Carry         Money
}

// Interval is the span between two consecutive checkpoints, during which the
// shares held do not change.
type Interval struct {
	From, To    date.Date
	Shares      Quantity
	Open, Close Money // unit prices in the reporting currency.
	Gain        Money
}

// SecurityGains is the capital gain of one security held in one portfolio over
// a reporting range, with the checkpoints and intervals that explain it.
type SecurityGains struct {
	Portfolio   string
	Security    string
	Checkpoints []Checkpoint
	Intervals   []Interval
	Total       Money
}

// walkGains computes the capital gain of a position from its boundary
// valuations and the quantity changing events in between.
//
// The gain of an interval is the Mark of its closing checkpoint minus the
// Carry of its opening checkpoint: the price movement of the shares held during
// the interval. Shares bought earn nothing before their purchase and shares
// sold earn nothing after their sale. Gains are gross of fee and tax.
func walkGains(key positionKey, period date.Range, start, end PositionValuation, events []gainEvent, converter CurrencyConverter) (SecurityGains, error) {
	cur := converter.ReportingCurrency()
	zero := M(0, cur)
	g := SecurityGains{Portfolio: key.portfolio, Security: key.security, Total: zero}

	startValue, endValue := withCurrency(start.Value, cur), withCurrency(end.Value, cur)
	held := start.Shares
	g.Checkpoints = append(g.Checkpoints, Checkpoint{Date: period.From, Shares: held, Mark: startValue, Carry: startValue})

	for _, ev := range events {
		mark := zero
		if !held.IsZero() {
			var native Money
			if ev.priceErr != nil {
				return g, ev.priceErr
			}
			if !ev.price.IsZero() {
				native = held.Value(ev.price)
			} else {
				native = ev.gross.Prorate(held, ev.shares)
			}
			var err error
			if mark, err = converter.Convert(native, ev.date); err != nil {
				return g, fmt.Errorf("could not value %s in portfolio %q on %s: %w", key.security, key.portfolio, ev.date, err)
			}
		}

		cp := Checkpoint{Date: ev.date, TransactionID: ev.id, Mark: mark}
		if ev.acquire {
			held = held.Add(ev.shares)
			cp.Carry = mark.Add(ev.grossConv)
		} else {
			if held.LessThan(ev.shares) {
				return g, &NegativeHoldingError{Portfolio: key.portfolio, Security: key.security, Date: ev.date, Held: held, Requested: ev.shares}
			}
			held = held.Sub(ev.shares)
			cp.Carry = mark.Sub(ev.grossConv)
		}
		cp.Shares = held
		g.Checkpoints = append(g.Checkpoints, cp)
	}

	if !held.Equal(end.Shares) {
		return g, fmt.Errorf("%s in portfolio %q: walk ends with %v shares, position on %s is %v", key.security, key.portfolio, held, period.To, end.Shares)
	}
	g.Checkpoints = append(g.Checkpoints, Checkpoint{Date: period.To, Shares: held, Mark: endValue, Carry: endValue})

	for i := 1; i < len(g.Checkpoints); i++ {
		prev, next := g.Checkpoints[i-1], g.Checkpoints[i]
		in := Interval{
			From:   prev.Date,
			To:     next.Date,
			Shares: prev.Shares,
			Open:   prev.Shares.UnitPrice(prev.Carry),
			Close:  prev.Shares.UnitPrice(next.Mark),
			Gain:   next.Mark.Sub(prev.Carry),
		}
		g.Intervals = append(g.Intervals, in)
		g.Total = g.Total.Add(in.Gain)
	}
	return g, nil
}
