package calendar

// =============================================================================
// SETTERS - Derive a date by fixing some of its fields
// =============================================================================

// AtTime returns d with the given time of day and zero nanoseconds.
func (d RegionalDate) AtTime(hour, minute, second int) (RegionalDate, error) {
	return d.Compose(Components{}.
		Set(Hour, hour).
		Set(Minute, minute).
		Set(Second, second).
		Set(Nanosecond, 0))
}

// At returns d with one field replaced, keeping the others.
func (d RegionalDate) At(u Unit, value int) (RegionalDate, error) {
	return d.Compose(Of(u, value))
}

// AtValues keeps only the keep units of d, writes values over them and
// composes the result without a base: every other field takes its synthetic
// default.
func (d RegionalDate) AtValues(values Components, keep ...Unit) (RegionalDate, error) {
	current, err := d.Components()
	if err != nil {
		return RegionalDate{}, err
	}
	return d.engine.Compose(current.Only(keep...).Overlay(values), d.region)
}

// Next returns the first date strictly after d that falls on weekday
// (1 = Sunday ... 7 = Saturday), at the same time of day.
func (d RegionalDate) Next(weekday int) (RegionalDate, error) {
	if weekday < 1 || weekday > 7 {
		return RegionalDate{}, NewComposeError(Of(Weekday, weekday), d.region, "weekday out of range")
	}
	for i := 1; i <= weekCadence; i++ {
		candidate, err := d.Add(Days(i))
		if err != nil {
			return RegionalDate{}, err
		}
		wd, _, err := candidate.Component(Weekday)
		if err != nil {
			return RegionalDate{}, err
		}
		if wd == weekday {
			return candidate, nil
		}
	}
	return RegionalDate{}, NewComposeError(Of(Weekday, weekday), d.region, "weekday not found within a week")
}

// NearestHour returns the hour of d rounded to the nearest whole hour.
func (d RegionalDate) NearestHour() (int, error) {
	shifted, err := d.Add(Minutes(30))
	if err != nil {
		return 0, err
	}
	h, _, err := shifted.Component(Hour)
	return h, err
}
