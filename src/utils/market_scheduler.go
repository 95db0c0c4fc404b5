package utils

import (
	"time"

	"brokerage-client/src/logger"
)

// MarketScheduler tells the polling loop whether quotes are worth fetching
// right now. All watched instruments trade the US session, so it wraps a
// single calendar.
type MarketScheduler struct {
	Calendar *TradingCalendar
	Logger   *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMarketScheduler(l *logger.Logger) *MarketScheduler {
	ms := &MarketScheduler{
		Calendar: NewTradingCalendar(),
		Logger:   l,
	}
	if ms.Calendar.Fallback {
		l.Warning("MarketScheduler: exchange calendar unavailable, using weekday fallback")
	}
	return ms
}

// -----------------------------------------------------------------------------

// MarketOpen checks whether the US session is open right now.
func (ms *MarketScheduler) MarketOpen() bool {
	return ms.Calendar.IsOpenOnMinute(time.Now().UTC())
}

// -----------------------------------------------------------------------------

// DefaultHistoryRange builds the [start, end] date pair for a history fetch
// covering the last n trading days, ending today.
func (ms *MarketScheduler) DefaultHistoryRange(n int) (time.Time, time.Time) {
	end := time.Now().UTC()
	return ms.Calendar.TradingDaysBack(end, n), end
}
