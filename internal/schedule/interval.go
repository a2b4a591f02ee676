package schedule

import "time"

// Interval is a half-open range of absolute instants [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two half-open intervals share any instant.
// Touching intervals (i.End == o.Start) do not overlap, which is what
// makes back-to-back bookings legal.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// OverlapsAny reports whether i overlaps at least one interval in set.
func (i Interval) OverlapsAny(set []Interval) bool {
	for _, o := range set {
		if i.Overlaps(o) {
			return true
		}
	}
	return false
}

// AddMinutes returns t shifted by n minutes.
func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}
