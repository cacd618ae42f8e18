package calendars

import "time"

// =============================================================================
// GREGORIAN FAMILY - Proleptic Gregorian rules from package time
// =============================================================================

// gregorian covers the gregorian and iso8601 calendars: era 1 is CE, era 0
// is BCE with years counted back from 1 (1 BCE is proleptic year 0).
type gregorian struct{}

var twelveMonths = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

func (gregorian) fromDay(day int64) civil {
	y, m, d := gregorianOf(day)
	era, year := gregorian{}.fromExtYear(y)
	return civil{era: era, year: year, month: int(m), day: d}
}

func (g gregorian) toDay(c civil) (int64, bool) {
	if !g.validEra(c.era) || c.year < 1 {
		return 0, false
	}
	return resolveGregorian(g.extYear(c.era, c.year), c.month, c.day)
}

func (gregorian) defaultEra() int         { return 1 }
func (gregorian) validEra(era int) bool   { return era == 0 || era == 1 }
func (gregorian) months(int) []int        { return twelveMonths }
func (gregorian) isLeapYear(ext int) bool { return gregorianMonthDays(ext, 2) == 29 }

func (gregorian) extYear(era, year int) int {
	if era == 0 {
		return 1 - year
	}
	return year
}

func (gregorian) fromExtYear(ext int) (int, int) {
	if ext < 1 {
		return 0, 1 - ext
	}
	return 1, ext
}

func (gregorian) daysInMonth(ext, month int) int { return gregorianMonthDays(ext, month) }

// February of a leap year counts as the leap month.
func (g gregorian) isLeapMonth(ext, month int) bool {
	return month == 2 && g.isLeapYear(ext)
}

func (gregorian) quarter(c civil) (int, bool) { return (c.month-1)/3 + 1, true }

// buddhist is the Thai solar calendar: Gregorian months and days, years
// counted from 543 BCE in a single era 0.
type buddhist struct{}

const buddhistOffset = 543

func (buddhist) fromDay(day int64) civil {
	y, m, d := gregorianOf(day)
	return civil{era: 0, year: y + buddhistOffset, month: int(m), day: d}
}

func (b buddhist) toDay(c civil) (int64, bool) {
	return resolveGregorian(c.year-buddhistOffset, c.month, c.day)
}

func (buddhist) defaultEra() int                 { return 0 }
func (buddhist) validEra(era int) bool           { return era == 0 }
func (buddhist) extYear(_, year int) int         { return year }
func (buddhist) fromExtYear(ext int) (int, int)  { return 0, ext }
func (buddhist) months(int) []int                { return twelveMonths }
func (buddhist) daysInMonth(ext, month int) int  { return gregorianMonthDays(ext-buddhistOffset, month) }
func (b buddhist) isLeapYear(ext int) bool       { return b.daysInMonth(ext, 2) == 29 }
func (b buddhist) isLeapMonth(ext, month int) bool { return month == 2 && b.isLeapYear(ext) }
func (buddhist) quarter(c civil) (int, bool)     { return (c.month-1)/3 + 1, true }

func resolveGregorian(y, month, day int) (int64, bool) {
	if month < 1 || month > 12 || day < 1 || day > gregorianMonthDays(y, month) {
		return 0, false
	}
	return dayOf(y, time.Month(month), day), true
}

// gregorianMonthDays uses time.Date normalization: day 0 of the next month
// is the last day of this one.
func gregorianMonthDays(y, month int) int {
	return time.Date(y, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
