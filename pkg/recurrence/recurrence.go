package recurrence

import (
	"strconv"
	"strings"
	"time"
)

type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
)

// Rule describes when a recurring template spawns occurrences. At most one of
// DaysOfWeek, DayOfMonth, DayOfYear is meaningful, selected by Frequency; when
// none is set the template's anchor date supplies the implicit rule.
type Rule struct {
	Frequency  Frequency
	EndDate    time.Time // zero means no end
	DaysOfWeek []int     // ISO weekdays, 1=Monday..7=Sunday
	DayOfMonth int       // 1..31, 0 when unset
	DayOfYear  int       // 1..365, 0 when unset
}

// IsZero reports whether the rule carries no recurrence at all.
func (r Rule) IsZero() bool {
	return r.Frequency == ""
}

// isoWeekday maps time.Weekday (Sunday=0) to ISO numbering (Monday=1..Sunday=7).
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// DaysOfWeekToString serializes ISO weekdays as a comma separated list for storage.
func DaysOfWeekToString(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

// DaysOfWeekFromString parses the stored comma separated weekday list.
// Malformed entries are skipped.
func DaysOfWeekFromString(s string) []int {
	if s == "" {
		return nil
	}
	var days []int
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d < 1 || d > 7 {
			continue
		}
		days = append(days, d)
	}
	return days
}
