package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestShouldGenerate_Daily(t *testing.T) {
	rule := Rule{Frequency: Daily}
	anchor := date(2025, time.January, 5)

	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.January, 5)))
	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.January, 6)))
	assert.True(t, ShouldGenerate(rule, anchor, date(2026, time.July, 19)))
}

func TestShouldGenerate_EndDateCutoff(t *testing.T) {
	rule := Rule{Frequency: Daily, EndDate: date(2025, time.March, 10)}
	anchor := date(2025, time.January, 1)

	// the end date itself is still in range
	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.March, 10)))
	assert.False(t, ShouldGenerate(rule, anchor, date(2025, time.March, 11)))
}

func TestShouldGenerate_EndDateIgnoresTimeOfDay(t *testing.T) {
	rule := Rule{
		Frequency: Daily,
		EndDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
	target := time.Date(2025, time.March, 10, 23, 30, 0, 0, time.UTC)

	assert.True(t, ShouldGenerate(rule, date(2025, time.January, 1), target))
}

func TestShouldGenerate_WeeklyWithDaysOfWeek(t *testing.T) {
	rule := Rule{Frequency: Weekly, DaysOfWeek: []int{1, 5}} // Monday, Friday
	anchor := date(2025, time.January, 1)

	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.January, 6)))  // Monday
	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.January, 10))) // Friday
	assert.False(t, ShouldGenerate(rule, anchor, date(2025, time.January, 7))) // Tuesday
}

func TestShouldGenerate_WeeklySundayIsIsoDay7(t *testing.T) {
	rule := Rule{Frequency: Weekly, DaysOfWeek: []int{7}}

	assert.True(t, ShouldGenerate(rule, date(2025, time.January, 1), date(2025, time.January, 12)))
	assert.False(t, ShouldGenerate(rule, date(2025, time.January, 1), date(2025, time.January, 13)))
}

func TestShouldGenerate_WeeklyFallsBackToAnchorWeekday(t *testing.T) {
	rule := Rule{Frequency: Weekly}
	anchor := date(2025, time.January, 8) // Wednesday

	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.January, 15)))
	assert.False(t, ShouldGenerate(rule, anchor, date(2025, time.January, 16)))
}

func TestShouldGenerate_MonthlyWithDayOfMonth(t *testing.T) {
	rule := Rule{Frequency: Monthly, DayOfMonth: 15}
	anchor := date(2025, time.January, 3)

	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.February, 15)))
	assert.False(t, ShouldGenerate(rule, anchor, date(2025, time.February, 14)))
}

func TestShouldGenerate_MonthlyDay31SkipsShortMonths(t *testing.T) {
	rule := Rule{Frequency: Monthly, DayOfMonth: 31}
	anchor := date(2025, time.January, 31)

	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.January, 31)))
	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.March, 31)))
	// no clamping: April has 30 days, nothing fires at all
	assert.False(t, ShouldGenerate(rule, anchor, date(2025, time.April, 30)))
	assert.False(t, ShouldGenerate(rule, anchor, date(2025, time.February, 28)))
}

func TestShouldGenerate_MonthlyFallsBackToAnchorDay(t *testing.T) {
	rule := Rule{Frequency: Monthly}
	anchor := date(2025, time.January, 12)

	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.June, 12)))
	assert.False(t, ShouldGenerate(rule, anchor, date(2025, time.June, 13)))
}

func TestShouldGenerate_YearlyDayOfYearLeapYears(t *testing.T) {
	rule := Rule{Frequency: Yearly, DayOfYear: 60}
	anchor := date(2020, time.January, 1)

	// day 60 is Feb 29 in leap years and Mar 1 otherwise
	assert.True(t, ShouldGenerate(rule, anchor, date(2024, time.February, 29)))
	assert.False(t, ShouldGenerate(rule, anchor, date(2024, time.March, 1)))
	assert.True(t, ShouldGenerate(rule, anchor, date(2023, time.March, 1)))
	assert.False(t, ShouldGenerate(rule, anchor, date(2023, time.February, 28)))
}

func TestShouldGenerate_YearlyFallsBackToAnchorDate(t *testing.T) {
	rule := Rule{Frequency: Yearly}
	anchor := date(2023, time.August, 14)

	assert.True(t, ShouldGenerate(rule, anchor, date(2025, time.August, 14)))
	assert.False(t, ShouldGenerate(rule, anchor, date(2025, time.August, 15)))
	assert.False(t, ShouldGenerate(rule, anchor, date(2025, time.September, 14)))
}

func TestShouldGenerate_ZeroRuleNeverFires(t *testing.T) {
	assert.False(t, ShouldGenerate(Rule{}, date(2025, time.January, 1), date(2025, time.January, 1)))
}

func TestDaysOfWeekRoundTrip(t *testing.T) {
	assert.Equal(t, "1,3,7", DaysOfWeekToString([]int{1, 3, 7}))
	assert.Equal(t, []int{1, 3, 7}, DaysOfWeekFromString("1,3,7"))
	assert.Nil(t, DaysOfWeekFromString(""))
	// out-of-range and malformed entries are dropped
	assert.Equal(t, []int{2}, DaysOfWeekFromString("2,8,x"))
}
