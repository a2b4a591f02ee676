package schedule

import (
	"fmt"
	"regexp"
	"time"
)

const (
	dateLayout = "2006-01-02"
	hhmmLayout = "15:04"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidDate reports whether s matches the YYYY-MM-DD grammar and names a
// real calendar date.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidHHMM reports whether s is a 24-hour HH:MM time of day.
func ValidHHMM(s string) bool {
	return hhmmRe.MatchString(s)
}

// LocalToInstant maps a civil date + time-of-day in zone loc to the
// absolute instant it names. The offset is itself a function of the target
// instant; time.Date resolves that fixed point against the zone's
// transition table, so the mapping is correct on either side of a DST
// change. For civil times inside a spring-forward gap the result is
// normalized past the gap.
func LocalToInstant(date, hhmm string, loc *time.Location) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	t, err := time.Parse(hhmmLayout, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// DayWindow is the absolute span covering the local calendar day:
// local midnight up to, exclusive, the next local midnight. On a DST
// transition day the window is genuinely shorter or longer than 24h.
func DayWindow(date string, loc *time.Location) (Interval, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc)
	return Interval{Start: start, End: end}, nil
}

// LocalWeekday returns the weekday (0=Sunday..6=Saturday) of a local date.
// Anchoring at local noon keeps the answer stable on days whose midnight
// sits next to a DST transition.
func LocalWeekday(date string, loc *time.Location) (time.Weekday, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	noon := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)
	return noon.Weekday(), nil
}

// FormatLocal renders an instant as the store-local "HH:MM". Display only.
func FormatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(hhmmLayout)
}
