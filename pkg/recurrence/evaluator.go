package recurrence

import "time"

// ShouldGenerate decides whether a template with the given rule and anchor date
// is due on targetDate. Only the calendar date of targetDate matters; the
// time of day of the anchor is ignored for day matching.
//
// A rule with DayOfMonth=31 never matches in a 30-day month: no clamping is
// performed for short months.
func ShouldGenerate(rule Rule, anchor time.Time, targetDate time.Time) bool {
	if !rule.EndDate.IsZero() && dateOnly(targetDate).After(dateOnly(rule.EndDate)) {
		return false
	}

	switch rule.Frequency {
	case Daily:
		return true

	case Weekly:
		if len(rule.DaysOfWeek) == 0 {
			return isoWeekday(targetDate.Weekday()) == isoWeekday(anchor.Weekday())
		}
		target := isoWeekday(targetDate.Weekday())
		for _, d := range rule.DaysOfWeek {
			if d == target {
				return true
			}
		}
		return false

	case Monthly:
		if rule.DayOfMonth != 0 {
			return targetDate.Day() == rule.DayOfMonth
		}
		return targetDate.Day() == anchor.Day()

	case Yearly:
		if rule.DayOfYear != 0 {
			due := time.Date(targetDate.Year(), time.January, 1, 0, 0, 0, 0, targetDate.Location()).
				AddDate(0, 0, rule.DayOfYear-1)
			return dateOnly(targetDate).Equal(due)
		}
		return targetDate.Month() == anchor.Month() && targetDate.Day() == anchor.Day()

	default:
		return false
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
