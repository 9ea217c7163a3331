package calendar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workdesk/internal/datemath"
	"workdesk/internal/eventindex"
	"workdesk/internal/model"
)

func dates(entries []DayEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Date)
	}
	return out
}

func TestMonthGridMarch2024(t *testing.T) {
	idx := eventindex.Build([]model.Event{
		{Date: "2024-03-15", Title: "a"},
		{Date: "2024-03-15", Time: "10:00", Title: "b"},
		{Date: "2024-02-26", Title: "spill"},
	})

	mv := MonthGrid("2024-03-01", idx)

	assert.Equal(t, 2024, mv.Year)
	assert.Equal(t, 3, mv.Month)
	require.Len(t, mv.Weeks, 5)
	assert.Equal(t, "2024-02-26", mv.Weeks[0][0].Date)
	assert.False(t, mv.Weeks[0][0].InCurrentMonth)
	assert.Equal(t, 1, mv.Weeks[0][0].EventCount)
	assert.Equal(t, "2024-03-31", mv.Weeks[4][6].Date)
	assert.Equal(t, "2024-02-01", mv.Prev)
	assert.Equal(t, "2024-04-01", mv.Next)

	for _, week := range mv.Weeks {
		for _, c := range week {
			if c.Date == "2024-03-15" {
				assert.Equal(t, 2, c.EventCount)
				assert.True(t, c.InCurrentMonth)
				assert.Equal(t, 15, c.Day)
			}
		}
	}
}

func TestMonthGridFourWeeks(t *testing.T) {
	// February 2021 starts on a Monday and ends on a Sunday.
	mv := MonthGrid("2021-02-10", eventindex.Build(nil))
	require.Len(t, mv.Weeks, 4)
	assert.Equal(t, "2021-02-01", mv.Weeks[0][0].Date)
	assert.Equal(t, "2021-02-28", mv.Weeks[3][6].Date)
}

func TestMonthGridSixWeeks(t *testing.T) {
	// September 2024 starts on a Sunday.
	mv := MonthGrid("2024-09-30", eventindex.Build(nil))
	require.Len(t, mv.Weeks, 6)
	assert.Equal(t, "2024-08-26", mv.Weeks[0][0].Date)
	assert.Equal(t, "2024-10-06", mv.Weeks[5][6].Date)
}

func TestMonthGridProperties(t *testing.T) {
	idx := eventindex.Build(nil)
	for first := "2019-01-01"; first < "2027-01-01"; first = datemath.AddMonths(first, 1) {
		mv := MonthGrid(first, idx)

		require.GreaterOrEqual(t, len(mv.Weeks), 4, first)
		require.LessOrEqual(t, len(mv.Weeks), 6, first)
		require.Equal(t, time.Monday, datemath.Weekday(mv.Weeks[0][0].Date), first)

		seen := map[string]int{}
		prev := ""
		for _, week := range mv.Weeks {
			require.Len(t, week, 7, first)
			for _, c := range week {
				if prev != "" {
					require.Equal(t, datemath.AddDays(prev, 1), c.Date, first)
				}
				prev = c.Date
				if c.InCurrentMonth {
					seen[c.Date]++
				}
			}
		}

		last := datemath.LastOfMonth(first)
		_, _, days := datemath.Parse(last)
		require.Len(t, seen, days, first)
		for d, n := range seen {
			require.Equal(t, 1, n, d)
		}
	}
}

func TestWeekList(t *testing.T) {
	idx := eventindex.Build([]model.Event{{Date: "2024-02-29", Title: "leap"}})

	days := WeekList("2024-03-01", idx)

	want := []string{"2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02", "2024-03-03"}
	if diff := cmp.Diff(want, dates(days)); diff != "" {
		t.Fatalf("week dates (-want +got):\n%s", diff)
	}
	assert.Len(t, days[3].Events, 1)
	assert.NotNil(t, days[0].Events)
	assert.Empty(t, days[0].Events)
}

func TestWeekListProperty(t *testing.T) {
	idx := eventindex.Build(nil)
	for d := "2024-01-01"; d < "2025-01-01"; d = datemath.AddDays(d, 1) {
		days := WeekList(d, idx)
		require.Len(t, days, 7)
		require.Equal(t, time.Monday, datemath.Weekday(days[0].Date))
		require.Contains(t, dates(days), d)
	}
}

func TestDayList(t *testing.T) {
	idx := eventindex.Build([]model.Event{
		{Date: "2024-03-01", Time: "09:00", Title: "A"},
		{Date: "2024-03-01", Title: "B"},
	})

	days := DayList("2024-03-01", idx)

	assert.Equal(t, []string{"2024-02-29", "2024-03-01", "2024-03-02"}, dates(days))
	require.Len(t, days[1].Events, 2)
	assert.Equal(t, "B", days[1].Events[0].Title)
	assert.Equal(t, "A", days[1].Events[1].Title)
}

func TestDayListYearBoundary(t *testing.T) {
	days := DayList("2025-01-01", eventindex.Build(nil))
	assert.Equal(t, []string{"2024-12-31", "2025-01-01", "2025-01-02"}, dates(days))
}
