package date

import (
	"iter"
	"slices"
)

// History is a series of values indexed by day, kept sorted with at most one
// value per day. Its zero value is an empty history.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of days in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Latest returns the last day of the history and its value, or zero values
// if the history is empty.
func (h *History[T]) Latest() (day Date, value T) {
	if len(h.days) == 0 {
		return Date{}, value
	}
	last := len(h.days) - 1
	return h.days[last], h.values[last]
}

// Append records v on day, replacing the value already recorded on that day.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Values iterates over the history in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// ValueAsOf returns the value recorded on day, or else the last one before it.
// ok is false when nothing was recorded up to day.
func (h *History[T]) ValueAsOf(day Date) (value T, ok bool) {
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	switch {
	case found:
		return h.values[i], true
	case i > 0:
		return h.values[i-1], true
	}
	return value, false
}
