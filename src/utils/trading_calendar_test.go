package utils

import (
	"testing"
	"time"
)

// fallbackCalendar builds a calendar forced onto the weekday fallback so the
// tests do not depend on loaded holiday data.
func fallbackCalendar() *TradingCalendar {
	nyLoc, _ := time.LoadLocation("America/New_York")
	if nyLoc == nil {
		nyLoc = time.UTC
	}
	return &TradingCalendar{Fallback: true, Timezone: nyLoc}
}

func TestIsTradingDay_Fallback(t *testing.T) {
	tc := fallbackCalendar()

	wednesday := time.Date(2013, 6, 5, 12, 0, 0, 0, tc.Timezone)
	saturday := time.Date(2013, 6, 8, 12, 0, 0, 0, tc.Timezone)

	if !tc.IsTradingDay(wednesday) {
		t.Error("expected Wednesday to be a trading day")
	}
	if tc.IsTradingDay(saturday) {
		t.Error("expected Saturday not to be a trading day")
	}
}

func TestIsOpenOnMinute_Fallback(t *testing.T) {
	tc := fallbackCalendar()

	cases := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"before the bell", time.Date(2013, 6, 5, 9, 29, 0, 0, tc.Timezone), false},
		{"at the open", time.Date(2013, 6, 5, 9, 30, 0, 0, tc.Timezone), true},
		{"midday", time.Date(2013, 6, 5, 13, 0, 0, 0, tc.Timezone), true},
		{"at the close", time.Date(2013, 6, 5, 16, 0, 0, 0, tc.Timezone), false},
		{"weekend", time.Date(2013, 6, 8, 13, 0, 0, 0, tc.Timezone), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := tc.IsOpenOnMinute(c.at); got != c.open {
				t.Errorf("IsOpenOnMinute(%v) = %v, want %v", c.at, got, c.open)
			}
		})
	}
}

func TestTradingDaysBack(t *testing.T) {
	tc := fallbackCalendar()

	// Walking 5 sessions back from a Wednesday crosses one weekend.
	from := time.Date(2013, 6, 5, 0, 0, 0, 0, tc.Timezone)
	got := tc.TradingDaysBack(from, 5)
	want := time.Date(2013, 5, 29, 0, 0, 0, 0, tc.Timezone)

	if !got.Equal(want) {
		t.Errorf("TradingDaysBack() = %v, want %v", got, want)
	}
}
