package calendar

import "time"

// =============================================================================
// COMPARISON - Absolute and region-relative predicates
// =============================================================================

func (d RegionalDate) Before(other RegionalDate) bool { return d.instant.Before(other.instant) }
func (d RegionalDate) After(other RegionalDate) bool  { return d.instant.After(other.instant) }

// Compare returns -1, 0 or +1 comparing instants only.
func (d RegionalDate) Compare(other RegionalDate) int {
	switch {
	case d.instant.Before(other.instant):
		return -1
	case d.instant.After(other.instant):
		return 1
	}
	return 0
}

// IsInSameDay reports whether other falls on the same day as d, both read
// in d's region.
func (d RegionalDate) IsInSameDay(other RegionalDate) (bool, error) {
	return d.sameDay(other.instant, 0)
}

// IsToday reports whether d is on the same day as now in d's region.
func (d RegionalDate) IsToday(now time.Time) (bool, error) { return d.sameDay(now, 0) }

// IsYesterday reports whether d is on the day before now.
func (d RegionalDate) IsYesterday(now time.Time) (bool, error) { return d.sameDay(now, -1) }

// IsTomorrow reports whether d is on the day after now.
func (d RegionalDate) IsTomorrow(now time.Time) (bool, error) { return d.sameDay(now, 1) }

func (d RegionalDate) sameDay(ref time.Time, offsetDays int) (bool, error) {
	if offsetDays != 0 {
		moved, err := d.sys().AddComponents(Days(offsetDays), ref, d.region)
		if err != nil {
			return false, err
		}
		ref = moved
	}
	mine, err := StartOf(d.sys(), d.instant, d.region, Day)
	if err != nil {
		return false, err
	}
	theirs, err := StartOf(d.sys(), ref, d.region, Day)
	if err != nil {
		return false, err
	}
	return mine.Equal(theirs), nil
}

// Day parts by local hour: morning [5,12), afternoon [12,17),
// evening [17,21), night otherwise.
func (d RegionalDate) IsMorning() (bool, error)   { return d.hourIn(5, 12) }
func (d RegionalDate) IsAfternoon() (bool, error) { return d.hourIn(12, 17) }
func (d RegionalDate) IsEvening() (bool, error)   { return d.hourIn(17, 21) }

func (d RegionalDate) IsNight() (bool, error) {
	h, _, err := d.Component(Hour)
	if err != nil {
		return false, err
	}
	return h >= 21 || h < 5, nil
}

func (d RegionalDate) hourIn(from, to int) (bool, error) {
	h, _, err := d.Component(Hour)
	if err != nil {
		return false, err
	}
	return h >= from && h < to, nil
}

// Oldest returns the earliest date by instant. ok is false for no dates.
func Oldest(dates ...RegionalDate) (RegionalDate, bool) {
	return pick(dates, RegionalDate.Before)
}

// Latest returns the most recent date by instant. ok is false for no dates.
func Latest(dates ...RegionalDate) (RegionalDate, bool) {
	return pick(dates, RegionalDate.After)
}

func pick(dates []RegionalDate, better func(a, b RegionalDate) bool) (RegionalDate, bool) {
	if len(dates) == 0 {
		return RegionalDate{}, false
	}
	best := dates[0]
	for _, d := range dates[1:] {
		if better(d, best) {
			best = d
		}
	}
	return best, true
}
