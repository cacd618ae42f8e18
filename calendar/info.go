package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE INFO - Month length, leap flags, zone and Julian day
// =============================================================================

// MonthDays returns the number of days in d's month.
func (d RegionalDate) MonthDays() (int, error) {
	return d.sys().DaysInMonth(d.instant, d.region)
}

// IsLeapMonth reports whether d's month is a leap month.
func (d RegionalDate) IsLeapMonth() (bool, error) {
	return d.sys().IsLeap(d.instant, Month, d.region)
}

// IsLeapYear reports whether d's year is a leap year.
func (d RegionalDate) IsLeapYear() (bool, error) {
	return d.sys().IsLeap(d.instant, Year, d.region)
}

// Zone returns the time zone state at d.
func (d RegionalDate) Zone() (Zone, error) {
	return d.sys().Zone(d.instant, d.region)
}

// IsDST reports whether d falls in daylight saving time.
func (d RegionalDate) IsDST() (bool, error) {
	z, err := d.Zone()
	if err != nil {
		return false, err
	}
	return z.IsDST, nil
}

// NextDSTTransition returns the next offset change after d, in d's region.
// ok is false when the zone has no further transitions.
func (d RegionalDate) NextDSTTransition() (RegionalDate, bool, error) {
	z, err := d.Zone()
	if err != nil || z.NextTransition.IsZero() {
		return RegionalDate{}, false, err
	}
	return d.with(z.NextTransition), true, nil
}

const nanosPerDay = int64(24 * time.Hour)

var half = decimal.New(5, -1)

// JulianDay returns the astronomical Julian date of the instant. Whole days
// start at noon UTC, so 2000-01-01T12:00:00Z is 2451545.
func (d RegionalDate) JulianDay() decimal.Decimal {
	return JulianDay(d.instant)
}

// ModifiedJulianDay returns JulianDay - 2400000.5.
func (d RegionalDate) ModifiedJulianDay() decimal.Decimal {
	return ModifiedJulianDay(d.instant)
}

// JulianDay is the region-independent Julian date of t.
func JulianDay(t time.Time) decimal.Decimal {
	u := t.UTC()
	y, m, day := u.Year(), int(u.Month()), u.Day()

	a := (m - 14) / 12
	jdn := (1461*(y+4800+a))/4 +
		(367*(m-2-12*a))/12 -
		(3*((y+4900+a)/100))/4 +
		day - 32075

	sinceMidnight := int64(u.Hour())*int64(time.Hour) +
		int64(u.Minute())*int64(time.Minute) +
		int64(u.Second())*int64(time.Second) +
		int64(u.Nanosecond())
	fraction := decimal.NewFromInt(sinceMidnight).Div(decimal.NewFromInt(nanosPerDay))

	return decimal.NewFromInt(int64(jdn)).Sub(half).Add(fraction)
}

// ModifiedJulianDay is JulianDay(t) - 2400000.5.
func ModifiedJulianDay(t time.Time) decimal.Decimal {
	return JulianDay(t).Sub(decimal.New(24000005, -1))
}
