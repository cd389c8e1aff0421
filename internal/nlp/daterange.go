package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Range is an inclusive [Start, End] window. Ranges derived from
// relative phrases are always whole-day aligned in UTC.
type Range struct {
	Start time.Time
	End   time.Time
}

var lastNMonthsRe = regexp.MustCompile(`last (\d+) months?`)

// ResolveRelativeRange converts relative-date phrases in text into a
// concrete range. Supported phrases, checked in this order with the
// first match winning:
//
//	"this month"    calendar month containing now
//	"last month"    previous calendar month
//	"last N months" 1st of the month N-1 months before last month's
//	                month, through the end of last month
//	"last week"     Monday through Sunday of the week before the
//	                current week (weeks start Monday)
//
// Returns ok=false when no phrase matches. All arithmetic is done in
// UTC and rolls over year boundaries.
func ResolveRelativeRange(text string, now time.Time) (Range, bool) {
	text = strings.ToLower(text)
	now = now.UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	if strings.Contains(text, "this month") {
		return Range{
			Start: firstOfMonth,
			End:   firstOfMonth.AddDate(0, 1, 0).Add(-time.Second),
		}, true
	}

	if strings.Contains(text, "last month") {
		return Range{
			Start: firstOfMonth.AddDate(0, -1, 0),
			End:   firstOfMonth.Add(-time.Second),
		}, true
	}

	if m := lastNMonthsRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 1 {
			end := firstOfMonth.Add(-time.Second)
			start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
			return Range{Start: start, End: end}, true
		}
	}

	if strings.Contains(text, "last week") {
		// Monday-indexed weekday: Monday=0 ... Sunday=6.
		weekday := (int(now.Weekday()) + 6) % 7
		startOfThisWeek := startOfDay(now).AddDate(0, 0, -weekday)
		return Range{
			Start: startOfThisWeek.AddDate(0, 0, -7),
			End:   startOfThisWeek.Add(-time.Second),
		}, true
	}

	return Range{}, false
}

// MonthRange returns the full calendar month containing now.
func MonthRange(now time.Time) Range {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Second),
	}
}

// DaysRemaining counts whole days from the start of now's day through
// end, inclusive. The result is never below 1, so callers can divide
// by it even when the range has already ended.
func DaysRemaining(now, end time.Time) int {
	days := int(end.Sub(startOfDay(now.UTC())).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
