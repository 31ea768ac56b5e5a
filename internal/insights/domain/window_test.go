package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAnalysisWindow_Periods(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	month := NewAnalysisWindow(PeriodMonth, now)
	assert.Equal(t, now.AddDate(0, -1, 0), month.StartDate)
	assert.Equal(t, now, month.EndDate)

	quarter := NewAnalysisWindow(PeriodQuarter, now)
	assert.Equal(t, now.AddDate(0, -3, 0), quarter.StartDate)

	year := NewAnalysisWindow(PeriodYear, now)
	assert.Equal(t, now.AddDate(-1, 0, 0), year.StartDate)
}

func TestNewAnalysisWindow_UnknownPeriodDefaultsToMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	window := NewAnalysisWindow("decade", now)

	assert.Equal(t, now.AddDate(0, -1, 0), window.StartDate)
}

func TestNewMonthsWindow(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	window := NewMonthsWindow(6, now)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), window.StartDate)
	assert.Equal(t, now, window.EndDate)
}

func TestIsValidPeriod(t *testing.T) {
	assert.True(t, IsValidPeriod(""))
	assert.True(t, IsValidPeriod(PeriodMonth))
	assert.True(t, IsValidPeriod(PeriodQuarter))
	assert.True(t, IsValidPeriod(PeriodYear))
	assert.False(t, IsValidPeriod("week"))
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{ID: "t1", Amount: 10, Type: TypeExpense}
	assert.NoError(t, valid.Validate())

	negative := Transaction{ID: "t2", Amount: -5, Type: TypeExpense}
	assert.Error(t, negative.Validate())

	unknown := Transaction{ID: "t3", Amount: 5, Type: "transfer"}
	assert.Error(t, unknown.Validate())
}
