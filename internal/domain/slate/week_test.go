package slate

import (
	"testing"
	"time"
)

func TestWeekStartSunday(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	if got := WeekStartSunday(monday); got != "2024-03-03" {
		t.Fatalf("monday week start: got=%s want=2024-03-03", got)
	}

	sundayEvening := time.Date(2024, 3, 3, 20, 0, 0, 0, time.UTC)
	if got := WeekStartSunday(sundayEvening); got != "2024-03-03" {
		t.Fatalf("sunday is its own week start: got=%s want=2024-03-03", got)
	}

	saturday := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	if got := WeekStartSunday(saturday); got != "2024-03-03" {
		t.Fatalf("saturday week start: got=%s want=2024-03-03", got)
	}
}

func TestWeekStartMonday_IsSundayPlusOneDay(t *testing.T) {
	t.Parallel()

	instants := []time.Time{
		time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC),  // Sunday
		time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),  // Monday
		time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), // spring-forward Sunday
		time.Date(2024, 11, 3, 12, 0, 0, 0, time.UTC), // fall-back Sunday
		time.Date(2024, 7, 20, 1, 0, 0, 0, time.UTC),  // summer Saturday
	}
	for _, instant := range instants {
		want := WeekStartSunday(instant).AddDays(1)
		if got := WeekStartMonday(instant); got != want {
			t.Fatalf("monday anchor for %s: got=%s want=%s", instant, got, want)
		}
	}
}

func TestResolveWeek_Weekday(t *testing.T) {
	t.Parallel()

	tuesday := time.Date(2024, 3, 12, 12, 0, 0, 0, time.UTC)
	got := ResolveWeek(tuesday)
	if got.StorageWeekStart != "2024-03-10" {
		t.Fatalf("storage week: got=%s want=2024-03-10", got.StorageWeekStart)
	}
	if got.HasRollover() {
		t.Fatalf("weekday must not have a rollover bucket, got=%s", got.RolloverWeekStart)
	}
	if got.DisplayWeekStart != "2024-03-11" {
		t.Fatalf("display week: got=%s want=2024-03-11", got.DisplayWeekStart)
	}
}

func TestResolveWeek_SundayWithoutThreshold(t *testing.T) {
	t.Parallel()

	sunday := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	got := ResolveWeek(sunday)
	if got.StorageWeekStart != "2024-03-03" {
		t.Fatalf("storage week: got=%s want=2024-03-03", got.StorageWeekStart)
	}
	if got.RolloverWeekStart != "2024-03-10" {
		t.Fatalf("rollover week: got=%s want=2024-03-10", got.RolloverWeekStart)
	}
	if got.DisplayWeekStart != "2024-03-04" {
		t.Fatalf("display week: got=%s want=2024-03-04", got.DisplayWeekStart)
	}
}

func TestResolveWeek_SundayResetThreshold(t *testing.T) {
	t.Parallel()

	resetAt := time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)

	before := ResolveWeek(time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC), WithSundayResetAt(resetAt))
	if before.StorageWeekStart != "2024-03-03" {
		t.Fatalf("before reset storage week: got=%s want=2024-03-03", before.StorageWeekStart)
	}
	if before.RolloverWeekStart != "2024-03-10" {
		t.Fatalf("before reset rollover week: got=%s want=2024-03-10", before.RolloverWeekStart)
	}

	after := ResolveWeek(time.Date(2024, 3, 10, 17, 5, 0, 0, time.UTC), WithSundayResetAt(resetAt))
	if after.StorageWeekStart != "2024-03-10" {
		t.Fatalf("after reset storage week: got=%s want=2024-03-10", after.StorageWeekStart)
	}
	if after.HasRollover() {
		t.Fatalf("after reset must not have a rollover bucket, got=%s", after.RolloverWeekStart)
	}
	if after.DisplayWeekStart != "2024-03-11" {
		t.Fatalf("after reset display week: got=%s want=2024-03-11", after.DisplayWeekStart)
	}

	// Exactly at the threshold the week has rolled over.
	atReset := ResolveWeek(resetAt, WithSundayResetAt(resetAt))
	if atReset.StorageWeekStart != "2024-03-10" {
		t.Fatalf("at reset storage week: got=%s want=2024-03-10", atReset.StorageWeekStart)
	}
}

func TestResolveWeek_DisplayIsStoragePlusOneDay(t *testing.T) {
	t.Parallel()

	instants := []time.Time{
		time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 12, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC),
	}
	for _, instant := range instants {
		window := ResolveWeek(instant)
		if want := window.StorageWeekStart.AddDays(1); window.DisplayWeekStart != want {
			t.Fatalf("display for %s: got=%s want=%s", instant, window.DisplayWeekStart, want)
		}
	}
}
