package slate

import (
	"fmt"
	"regexp"
	"time"
	_ "time/tzdata"
)

// Date identifies one slate: the Eastern calendar day its games belong to.
// The wire and storage form is always YYYY-MM-DD.
type Date string

const easternName = "America/New_York"

var dateFormatRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var eastern = mustLoadEastern()

func mustLoadEastern() *time.Location {
	loc, err := time.LoadLocation(easternName)
	if err != nil {
		panic(fmt.Sprintf("load %s location: %v", easternName, err))
	}
	return loc
}

// ParseDate validates a YYYY-MM-DD string against the real calendar.
// Malformed input is rejected, never coerced.
func ParseDate(raw string) (Date, error) {
	if !dateFormatRegex.MatchString(raw) {
		return "", fmt.Errorf("slate date %q must be YYYY-MM-DD", raw)
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, eastern)
	if err != nil {
		return "", fmt.Errorf("slate date %q is not a calendar date: %w", raw, err)
	}
	if parsed.Format("2006-01-02") != raw {
		return "", fmt.Errorf("slate date %q is not a calendar date", raw)
	}
	return Date(raw), nil
}

func (d Date) String() string {
	return string(d)
}

// Start returns Eastern midnight at the beginning of the date.
func (d Date) Start() time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", string(d), eastern)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// AddDays walks the Eastern calendar, not 24h increments, so results stay
// correct across DST transitions.
func (d Date) AddDays(days int) Date {
	next := d.Start().AddDate(0, 0, days)
	return Date(next.Format("2006-01-02"))
}

// BoundsUTC returns the UTC instants of Eastern midnight and the following
// Eastern midnight. The interval is 24h except on the two annual DST
// transition dates, where it is 23h or 25h.
func (d Date) BoundsUTC() (time.Time, time.Time) {
	start := d.Start()
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC()
}

// Weekday reports the Eastern day of week for the date.
func (d Date) Weekday() time.Weekday {
	return d.Start().Weekday()
}

// Before reports whether d sorts before other. Dates compare lexically
// because the format is fixed-width.
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

// SlateDateOf maps an instant to its Eastern calendar date. Two instants with
// the same Eastern date always map to the same slate regardless of the host
// timezone.
func SlateDateOf(t time.Time) Date {
	return Date(t.In(eastern).Format("2006-01-02"))
}

// LastNDates returns the most recent count slate dates ending with yesterday
// (Eastern), newest first.
func LastNDates(now time.Time, count int) []Date {
	if count <= 0 {
		return nil
	}
	out := make([]Date, 0, count)
	cursor := SlateDateOf(now).AddDays(-1)
	for i := 0; i < count; i++ {
		out = append(out, cursor)
		cursor = cursor.AddDays(-1)
	}
	return out
}
