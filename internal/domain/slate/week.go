package slate

import "time"

// WeekStartSunday returns the Sunday beginning the Eastern week containing t.
// Sunday-anchored weeks are the storage partition key for weekly totals.
func WeekStartSunday(t time.Time) Date {
	date := SlateDateOf(t)
	return date.AddDays(-int(date.Weekday()))
}

// WeekStartMonday returns the Monday beginning the Eastern week containing t.
// Monday-anchored weeks are what users see; for any instant it equals
// WeekStartSunday plus one day.
func WeekStartMonday(t time.Time) Date {
	return WeekStartSunday(t).AddDays(1)
}

// WeekWindow is the resolved weekly partition for an instant. When the
// instant falls inside the Sunday ambiguity window, RolloverWeekStart carries
// the second bucket callers must merge.
type WeekWindow struct {
	StorageWeekStart  Date `json:"storage_week_start"`
	RolloverWeekStart Date `json:"rollover_week_start,omitempty"`
	DisplayWeekStart  Date `json:"display_week_start"`
}

// HasRollover reports whether two storage buckets are live for the window.
func (w WeekWindow) HasRollover() bool {
	return w.RolloverWeekStart != ""
}

type weekOptions struct {
	sundayResetAt *time.Time
}

type WeekOption func(*weekOptions)

// WithSundayResetAt supplies the lock threshold that ends the Sunday
// ambiguity window, derived externally from the first scheduled game of the
// day minus a lock buffer.
func WithSundayResetAt(at time.Time) WeekOption {
	return func(o *weekOptions) {
		o.sundayResetAt = &at
	}
}

// ResolveWeek decides which storage week an instant belongs to.
//
// The product week starts Monday, but Sunday-night games still count toward
// the week that is ending until the Sunday lock threshold passes. Until then
// the previous Sunday stays the storage key and the current Sunday is exposed
// as a rollover bucket so callers can query both partitions and merge.
func ResolveWeek(t time.Time, opts ...WeekOption) WeekWindow {
	var options weekOptions
	for _, opt := range opts {
		opt(&options)
	}

	currentWeekSunday := WeekStartSunday(t)
	window := WeekWindow{
		StorageWeekStart: currentWeekSunday,
		DisplayWeekStart: WeekStartMonday(t),
	}

	if SlateDateOf(t).Weekday() != time.Sunday {
		return window
	}

	if options.sundayResetAt != nil && !t.Before(*options.sundayResetAt) {
		// The week already rolled over: the current Sunday owns new activity.
		return window
	}

	window.StorageWeekStart = currentWeekSunday.AddDays(-7)
	window.RolloverWeekStart = currentWeekSunday
	window.DisplayWeekStart = window.StorageWeekStart.AddDays(1)
	return window
}
