package date

import (
	"testing"
	"time"
)

func TestPeriodRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{
			name:   "A day",
			in:     New(2025, time.September, 8),
			period: Daily,
			want:   Range{From: New(2025, time.September, 7), To: New(2025, time.September, 8)},
		},
		{
			name:   "A Wednesday",
			in:     New(2025, time.September, 10),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 7), To: New(2025, time.September, 14)},
		},
		{
			name:   "A leap year",
			in:     New(2024, time.February, 15),
			period: Monthly,
			want:   Range{From: New(2024, time.January, 31), To: New(2024, time.February, 29)},
		},
		{
			name:   "Third quarter",
			in:     New(2025, time.August, 20),
			period: Quarterly,
			want:   Range{From: New(2025, time.June, 30), To: New(2025, time.September, 30)},
		},
		{
			name:   "A year",
			in:     New(2011, time.June, 1),
			period: Yearly,
			want:   Range{From: New(2010, time.December, 31), To: New(2011, time.December, 31)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := PeriodRange(tc.in, tc.period)
			if got != tc.want {
				t.Errorf("PeriodRange() = %v, want %v", got, tc.want)
			}
			if p, ok := got.Period(); !ok || p != tc.period {
				t.Errorf("PeriodRange().Period() = %v, %v want %v", p, ok, tc.period)
			}
		})
	}
}

func TestIdentifier(t *testing.T) {
	testCases := []struct {
		r    Range
		want string
	}{
		{PeriodRange(New(2011, 6, 1), Yearly), "2011"},
		{PeriodRange(New(2025, 8, 20), Quarterly), "2025-Q3"},
		{PeriodRange(New(2024, 2, 15), Monthly), "2024-02"},
		{PeriodRange(New(2025, 9, 10), Weekly), "2025-W37"},
		{Range{From: New(2025, 1, 3), To: New(2025, 2, 7)}, "2025-01-03_2025-02-07"},
	}
	for _, tc := range testCases {
		if got := tc.r.Identifier(); got != tc.want {
			t.Errorf("%v.Identifier() = %q, want %q", tc.r, got, tc.want)
		}
	}
}

func TestCovers(t *testing.T) {
	r := Range{From: New(2010, 12, 31), To: New(2011, 12, 31)}
	testCases := []struct {
		on   Date
		want bool
	}{
		{New(2010, 12, 30), false},
		{New(2010, 12, 31), false}, // opening valuation day
		{New(2011, 1, 1), true},
		{New(2011, 12, 31), true}, // closing day
		{New(2012, 1, 1), false},
	}
	for _, tc := range testCases {
		if got := r.Covers(tc.on); got != tc.want {
			t.Errorf("Covers(%v) = %v, want %v", tc.on, got, tc.want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"day": Daily, "Week": Weekly, "monthly": Monthly, "quarter": Quarterly, " year ": Yearly} {
		got, err := ParsePeriod(in)
		if err != nil || got != want {
			t.Errorf("ParsePeriod(%q) = %v, %v want %v", in, got, err, want)
		}
	}
	if _, err := ParsePeriod("decade"); err == nil {
		t.Error("ParsePeriod(\"decade\") expected an error")
	}
}
