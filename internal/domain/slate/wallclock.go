package slate

import "time"

// WallClock is an instant broken into Eastern wall-clock fields. The offset is
// whatever the tz database rules say for that instant (standard or daylight
// time), never a fixed value.
type WallClock struct {
	Year             int        `json:"year"`
	Month            time.Month `json:"month"`
	Day              int        `json:"day"`
	Hour             int        `json:"hour"`
	Minute           int        `json:"minute"`
	Second           int        `json:"second"`
	UTCOffsetMinutes int        `json:"utc_offset_minutes"`
}

func ToEasternWallClock(t time.Time) WallClock {
	local := t.In(eastern)
	_, offsetSeconds := local.Zone()
	return WallClock{
		Year:             local.Year(),
		Month:            local.Month(),
		Day:              local.Day(),
		Hour:             local.Hour(),
		Minute:           local.Minute(),
		Second:           local.Second(),
		UTCOffsetMinutes: offsetSeconds / 60,
	}
}
