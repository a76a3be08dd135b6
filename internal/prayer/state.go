package prayer

import (
	"fmt"
	"time"
)

// State is the prayer period in effect at some instant.
type State struct {
	// Current is nil before Fajr: the previous night's Isha is not reported.
	Current *Name
	Next    Name
	// NextIsTomorrow is set when Next refers to the following day's Fajr.
	NextIsTomorrow bool
}

// Resolve finds the active and the upcoming boundary at now. After Isha the
// next prayer is tomorrow's Fajr; its instant is not computed here, see
// NextOccurrence.
func Resolve(t *Times, now time.Time) State {
	prayers := t.Prayers()

	var s State
	if cur := CurrentPrayer(prayers, now); cur != nil {
		name := cur.Name
		s.Current = &name
	}
	if next := NextPrayer(prayers, now); next != nil {
		s.Next = next.Name
	} else {
		s.Next = Fajr
		s.NextIsTomorrow = true
	}
	return s
}

// CurrentPrayer returns the last prayer whose time is at or before now, or
// nil if now precedes all of them.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var cur *Prayer
	for i := range prayers {
		if !prayers[i].Time.After(now) {
			cur = &prayers[i]
		}
	}
	return cur
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers have passed, it returns nil (caller should compute tomorrow's).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// DayFunc returns the boundaries of one date.
type DayFunc func(Date) (*Times, error)

// Day calculates p for another date. It satisfies DayFunc.
func (p Params) Day(d Date) (*Times, error) {
	p.Date = d
	return Calculate(p)
}

// NextOccurrence returns the first of the selected prayers after now,
// looking at the day after date when every selected prayer of date has
// passed. A nil selection means all six.
func NextOccurrence(day DayFunc, date Date, now time.Time, selected []Name) (Prayer, error) {
	if len(selected) == 0 {
		selected = Names
	}

	today, err := day(date)
	if err != nil {
		return Prayer{}, err
	}
	if next := NextPrayer(today.Select(selected), now); next != nil {
		return *next, nil
	}

	tomorrow, err := day(date.AddDays(1))
	if err != nil {
		return Prayer{}, fmt.Errorf("failed to compute %v: %w", date.AddDays(1), err)
	}
	prayers := tomorrow.Select(selected)
	if len(prayers) == 0 {
		return Prayer{}, fmt.Errorf("no prayers selected")
	}
	return prayers[0], nil
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(p Prayer, now time.Time) time.Duration {
	return p.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
