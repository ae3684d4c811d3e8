package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("history days = %v, want [%v %v]", h.days, d2, d1)
	}
	if h.values[0] != v2 || h.values[1] != v1 {
		t.Errorf("history values = %v, want [%v %v]", h.values, v2, v1)
	}

	h.Append(d1, "replaced")
	if got, _ := h.ValueAsOf(d1); got != "replaced" || h.Len() != 2 {
		t.Errorf("Append(d1) on existing day: ValueAsOf() = %q, Len() = %d", got, h.Len())
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[int64])
	h.Append(New(2010, 1, 1), 10000)
	h.Append(New(2011, 6, 1), 11000)

	testCases := []struct {
		name   string
		on     Date
		want   int64
		wantOK bool
	}{
		{"before first point", New(2009, 12, 31), 0, false},
		{"on first point", New(2010, 1, 1), 10000, true},
		{"between points", New(2010, 12, 31), 10000, true},
		{"on last point", New(2011, 6, 1), 11000, true},
		{"after last point", New(2011, 12, 31), 11000, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := h.ValueAsOf(tc.on)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tc.on, got, ok, tc.want, tc.wantOK)
			}
		})
	}

	if day, v := h.Latest(); day != New(2011, 6, 1) || v != 11000 {
		t.Errorf("Latest() = %v, %v", day, v)
	}
}
