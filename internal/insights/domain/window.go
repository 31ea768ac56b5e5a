package domain

import "time"

const (
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// AnalysisWindow is the date range an insight request looks at.
// Immutable once constructed.
type AnalysisWindow struct {
	StartDate time.Time
	EndDate   time.Time
}

// NewAnalysisWindow derives a window ending at now from a period token.
// Unknown tokens fall back to one month, matching the request default.
func NewAnalysisWindow(period string, now time.Time) AnalysisWindow {
	start := now
	switch period {
	case PeriodQuarter:
		start = now.AddDate(0, -3, 0)
	case PeriodYear:
		start = now.AddDate(-1, 0, 0)
	default:
		start = now.AddDate(0, -1, 0)
	}
	return AnalysisWindow{StartDate: start, EndDate: now}
}

// NewMonthsWindow is used by paths with a fixed lookback (budget prediction
// uses 6 months, health score and anomaly detection use 3).
func NewMonthsWindow(months int, now time.Time) AnalysisWindow {
	return AnalysisWindow{StartDate: now.AddDate(0, -months, 0), EndDate: now}
}

func IsValidPeriod(period string) bool {
	return period == "" || period == PeriodMonth || period == PeriodQuarter || period == PeriodYear
}
