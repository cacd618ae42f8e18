package calendars

import "github.com/hebcal/hdate"

// =============================================================================
// HEBREW - Lunisolar calendar backed by hebcal/hdate
// =============================================================================
// Months are numbered from the start of the civil year:
//
//	1 Tishrei   2 Cheshvan  3 Kislev  4 Tevet   5 Shvat
//	6 Adar I    7 Adar (Adar II in leap years)
//	8 Nisan     9 Iyyar    10 Sivan  11 Tamuz  12 Av     13 Elul
//
// Month 6 exists only in leap years. There is a single era 0 and no
// quarters.

type hebrew struct{}

var (
	hebrewLeapMonths   = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	hebrewCommonMonths = []int{1, 2, 3, 4, 5, 7, 8, 9, 10, 11, 12, 13}
)

// toHMonth maps a civil month number to hdate's Nisan-based months.
func toHMonth(month, year int) hdate.HMonth {
	switch {
	case month <= 5:
		return hdate.HMonth(month + 6) // Tishrei..Shvat
	case month == 6:
		return hdate.Adar1
	case month == 7:
		if hdate.IsLeapYear(year) {
			return hdate.Adar2
		}
		return hdate.Adar1
	default:
		return hdate.HMonth(month - 7) // Nisan..Elul
	}
}

func fromHMonth(m hdate.HMonth, year int) int {
	switch {
	case m >= hdate.Tishrei && m <= hdate.Shvat:
		return int(m) - 6
	case m == hdate.Adar1:
		if hdate.IsLeapYear(year) {
			return 6
		}
		return 7
	case m == hdate.Adar2:
		return 7
	default:
		return int(m) + 7
	}
}

func (hebrew) fromDay(day int64) civil {
	y, m, d := gregorianOf(day)
	hd := hdate.FromGregorian(y, m, d)
	return civil{era: 0, year: hd.Year(), month: fromHMonth(hd.Month(), hd.Year()), day: hd.Day()}
}

func (h hebrew) toDay(c civil) (int64, bool) {
	if c.year < 1 || indexOfExact(h.months(c.year), c.month) < 0 {
		return 0, false
	}
	if c.day < 1 || c.day > h.daysInMonth(c.year, c.month) {
		return 0, false
	}
	g := hdate.New(c.year, toHMonth(c.month, c.year), c.day).Gregorian()
	return dayOf(g.Year(), g.Month(), g.Day()), true
}

func (hebrew) defaultEra() int                { return 0 }
func (hebrew) validEra(era int) bool          { return true }
func (hebrew) extYear(_, year int) int        { return year }
func (hebrew) fromExtYear(ext int) (int, int) { return 0, ext }
func (hebrew) isLeapYear(ext int) bool        { return hdate.IsLeapYear(ext) }
func (hebrew) quarter(civil) (int, bool)      { return 0, false }

func (hebrew) months(ext int) []int {
	if hdate.IsLeapYear(ext) {
		return hebrewLeapMonths
	}
	return hebrewCommonMonths
}

func (hebrew) daysInMonth(ext, month int) int {
	return hdate.DaysInMonth(toHMonth(month, ext), ext)
}

// Adar I is the intercalated month.
func (hebrew) isLeapMonth(ext, month int) bool {
	return month == 6 && hdate.IsLeapYear(ext)
}

func indexOfExact(list []int, month int) int {
	for i, m := range list {
		if m == month {
			return i
		}
	}
	return -1
}
