package schedule

import "time"

// Shift is one open working period expressed as local times of day.
type Shift struct {
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// ShiftIntervals anchors local time-of-day shifts on a calendar date,
// producing absolute intervals in the store's zone.
func ShiftIntervals(date string, loc *time.Location, shifts []Shift) ([]Interval, error) {
	intervals := make([]Interval, 0, len(shifts))
	for _, sh := range shifts {
		start, err := LocalToInstant(date, sh.Start, loc)
		if err != nil {
			return nil, err
		}
		end, err := LocalToInstant(date, sh.End, loc)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, Interval{Start: start, End: end})
	}
	return intervals, nil
}
