package nlp

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestResolveRelativeRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "this_month",
			text:      "show my expenses this month",
			now:       date(2024, time.June, 15, 12, 30, 0),
			wantStart: date(2024, time.June, 1, 0, 0, 0),
			wantEnd:   date(2024, time.June, 30, 23, 59, 59),
		},
		{
			name:      "last_month",
			text:      "what did I spend last month",
			now:       date(2024, time.June, 15, 12, 30, 0),
			wantStart: date(2024, time.May, 1, 0, 0, 0),
			wantEnd:   date(2024, time.May, 31, 23, 59, 59),
		},
		{
			name:      "last_month_january_rolls_into_previous_year",
			text:      "last month",
			now:       date(2024, time.January, 15, 9, 0, 0),
			wantStart: date(2023, time.December, 1, 0, 0, 0),
			wantEnd:   date(2023, time.December, 31, 23, 59, 59),
		},
		{
			name:      "last_2_months_honors_leap_year",
			text:      "last 2 months",
			now:       date(2024, time.March, 10, 8, 0, 0),
			wantStart: date(2024, time.January, 1, 0, 0, 0),
			wantEnd:   date(2024, time.February, 29, 23, 59, 59),
		},
		{
			name:      "last_3_months",
			text:      "spending over the last 3 months",
			now:       date(2024, time.July, 4, 0, 0, 0),
			wantStart: date(2024, time.April, 1, 0, 0, 0),
			wantEnd:   date(2024, time.June, 30, 23, 59, 59),
		},
		{
			// 2024-06-12 is a Wednesday; the previous week runs
			// Monday June 3 through Sunday June 9.
			name:      "last_week",
			text:      "expenses last week",
			now:       date(2024, time.June, 12, 17, 45, 0),
			wantStart: date(2024, time.June, 3, 0, 0, 0),
			wantEnd:   date(2024, time.June, 9, 23, 59, 59),
		},
		{
			// 2024-06-10 is a Monday: the current week starts today.
			name:      "last_week_from_monday",
			text:      "last week",
			now:       date(2024, time.June, 10, 1, 0, 0),
			wantStart: date(2024, time.June, 3, 0, 0, 0),
			wantEnd:   date(2024, time.June, 9, 23, 59, 59),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ResolveRelativeRange(tt.text, tt.now)
			if !ok {
				t.Fatalf("ResolveRelativeRange(%q) matched nothing", tt.text)
			}
			if !r.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", r.Start, tt.wantStart)
			}
			if !r.End.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", r.End, tt.wantEnd)
			}
		})
	}
}

func TestResolveRelativeRangeNoMatch(t *testing.T) {
	for _, text := range []string{"show my food expenses", "yesterday", "next month", ""} {
		t.Run(text, func(t *testing.T) {
			if _, ok := ResolveRelativeRange(text, time.Now()); ok {
				t.Errorf("ResolveRelativeRange(%q) unexpectedly matched", text)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(date(2024, time.February, 14, 10, 0, 0))
	if !r.Start.Equal(date(2024, time.February, 1, 0, 0, 0)) {
		t.Errorf("start = %v", r.Start)
	}
	if !r.End.Equal(date(2024, time.February, 29, 23, 59, 59)) {
		t.Errorf("end = %v", r.End)
	}
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		end  time.Time
		want int
	}{
		{
			name: "mid_month",
			now:  date(2024, time.June, 15, 14, 0, 0),
			end:  date(2024, time.June, 30, 23, 59, 59),
			want: 16,
		},
		{
			name: "last_day",
			now:  date(2024, time.June, 30, 23, 0, 0),
			end:  date(2024, time.June, 30, 23, 59, 59),
			want: 1,
		},
		{
			name: "range_already_ended_floors_at_one",
			now:  date(2024, time.July, 5, 0, 0, 0),
			end:  date(2024, time.June, 30, 23, 59, 59),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.now, tt.end); got != tt.want {
				t.Errorf("DaysRemaining = %d, want %d", got, tt.want)
			}
		})
	}
}
