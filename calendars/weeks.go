package calendars

// =============================================================================
// WEEKS - Weekday numbering and week-of-year/month rules
// =============================================================================
// A week belongs to the year (or month) holding at least minDays of its
// days; weeks start on the locale's first weekday. Weekdays are 1 = Sunday
// through 7 = Saturday.

const daysPerWeek = 7

// weekdayOf returns the weekday of a day number. Day 0 is a Thursday.
func weekdayOf(day int64) int {
	return int(((day+4)%daysPerWeek+daysPerWeek)%daysPerWeek) + 1
}

// weekRules are the locale conventions a session computes weeks with.
type weekRules struct {
	firstWeekday int
	minDays      int
	weekendStart int
	weekendDays  int
}

// offset returns how many days weekday lies after the first weekday.
func (w weekRules) offset(weekday int) int {
	return (weekday - w.firstWeekday + daysPerWeek) % daysPerWeek
}

// firstWeekStart returns the first day of week 1 of the span starting at
// day: the week holding the span start if it has minDays in the span,
// otherwise the week after.
func (w weekRules) firstWeekStart(day int64) int64 {
	i := w.offset(weekdayOf(day))
	start := day - int64(i)
	if daysPerWeek-i < w.minDays {
		start += daysPerWeek
	}
	return start
}

// week1 returns the first day of week 1 of year ext.
func (s *session) week1(ext int) int64 {
	start, _ := yearStart(s.kernel, ext)
	return s.rules.firstWeekStart(start)
}

// weekOfYear returns the week-numbering year and week of a day.
func (s *session) weekOfYear(day int64, ext int) (yearForWeek, week int) {
	start := s.week1(ext)
	switch {
	case day < start:
		prev := s.week1(ext - 1)
		return ext - 1, int((day-prev)/daysPerWeek) + 1
	case day >= s.week1(ext+1):
		return ext + 1, 1
	default:
		return ext, int((day-start)/daysPerWeek) + 1
	}
}

// weeksIn returns the number of weeks in week-numbering year ext.
func (s *session) weeksIn(ext int) int {
	return int((s.week1(ext+1) - s.week1(ext)) / daysPerWeek)
}

// weekDay returns the day number of a weekday in a week of year ext.
func (s *session) weekDay(ext, week, weekday int) int64 {
	return s.week1(ext) + int64(week-1)*daysPerWeek + int64(s.rules.offset(weekday))
}

// weekOfMonth numbers the weeks of the month starting at monthStart. Days
// before the first full week of the month are in week 0.
func (s *session) weekOfMonth(day, monthStart int64) int {
	i := s.rules.offset(weekdayOf(monthStart))
	week := int((day - (monthStart - int64(i))) / daysPerWeek)
	if daysPerWeek-i >= s.rules.minDays {
		week++
	}
	return week
}

// weekdayOrdinal is the occurrence of the weekday within the month.
func weekdayOrdinal(dayOfMonth int) int {
	return (dayOfMonth-1)/daysPerWeek + 1
}

// inWeekend reports whether the weekday falls in the weekend window.
func (w weekRules) inWeekend(weekday int) bool {
	if w.weekendDays <= 0 {
		return false
	}
	return (weekday-w.weekendStart+daysPerWeek)%daysPerWeek < w.weekendDays
}
