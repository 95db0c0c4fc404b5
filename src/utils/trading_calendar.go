package utils

import (
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar answers trading-day and market-hours questions for the US
// session using scmhub/calendar, with a weekday fallback when the calendar
// data cannot be loaded.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// NewTradingCalendar loads the NYSE calendar (MIC xnys). Every instrument
// the service quotes trades on the US session, so one calendar covers them
// all.
func NewTradingCalendar() *TradingCalendar {
	cal := calendar.GetCalendar("xnys")
	if cal == nil {
		// Fallback: Mon-Fri 09:30-16:00 New York time
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC
		}
		return &TradingCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}

	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}

		hour := t.Hour()
		minute := t.Minute()

		if (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16 {
			return true
		}
		return false
	}

	return tc.Calendar.IsOpen(t)
}

// -----------------------------------------------------------------------------

// TradingDaysBack walks backward from the given date until it has skipped n
// trading days, returning the date it lands on. Used to build default
// history ranges that always contain n sessions of data.
func (tc *TradingCalendar) TradingDaysBack(from time.Time, n int) time.Time {
	d := from
	for n > 0 {
		d = d.AddDate(0, 0, -1)
		if tc.IsTradingDay(d) {
			n--
		}
	}
	return d
}
