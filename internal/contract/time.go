package contract

import (
	"time"

	"github.com/FractalWire/git-tools/schema"
)

// WindowStart returns now minus count units.
// Days and weeks are fixed durations; months and years follow the calendar.
func WindowStart(unit schema.TimeUnit, count int, now time.Time) time.Time {
	switch unit {
	case schema.DayUnit:
		return now.Add(-time.Duration(count) * 24 * time.Hour)
	case schema.WeekUnit:
		return now.Add(-time.Duration(count) * 7 * 24 * time.Hour)
	case schema.MonthUnit:
		return now.AddDate(0, -count, 0)
	case schema.YearUnit:
		return now.AddDate(-count, 0, 0)
	default:
		return now
	}
}
