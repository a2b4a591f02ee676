package schedule

import (
	"sort"
	"time"
)

// SlotParams are the knobs of a slot enumeration pass.
type SlotParams struct {
	ServiceMinutes int       // nominal service duration, > 0
	BufferMinutes  int       // post-service buffer, >= 0
	StepMinutes    int       // grid granularity, > 0
	LeadMinutes    int       // minimum notice between Now and a slot start
	Now            time.Time // the request instant
}

// GenerateSlots walks each open shift in StepMinutes increments and emits
// every candidate [cursor, cursor+service+buffer) that fits inside the
// shift, starts no earlier than Now+lead, and overlaps neither busy nor
// blocked intervals. Results are store-local "HH:MM" strings, deduplicated
// and sorted ascending (lexicographic == chronological for zero-padded
// times). An empty result is a normal outcome, not an error.
func GenerateSlots(shifts, busy, blocked []Interval, loc *time.Location, p SlotParams) []string {
	if p.ServiceMinutes <= 0 || p.StepMinutes <= 0 {
		return []string{}
	}

	occupyMinutes := p.ServiceMinutes + p.BufferMinutes
	minStartAllowed := AddMinutes(p.Now, p.LeadMinutes)

	seen := make(map[string]struct{})
	slots := make([]string, 0)

	for _, shift := range shifts {
		for cursor := shift.Start; cursor.Before(shift.End); cursor = AddMinutes(cursor, p.StepMinutes) {
			candidate := Interval{Start: cursor, End: AddMinutes(cursor, occupyMinutes)}

			if candidate.End.After(shift.End) {
				continue
			}
			if candidate.Start.Before(minStartAllowed) {
				continue
			}
			if candidate.OverlapsAny(busy) || candidate.OverlapsAny(blocked) {
				continue
			}

			hhmm := FormatLocal(candidate.Start, loc)
			if _, dup := seen[hhmm]; dup {
				continue
			}
			seen[hhmm] = struct{}{}
			slots = append(slots, hhmm)
		}
	}

	sort.Strings(slots)
	return slots
}
