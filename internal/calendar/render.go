package calendar

import (
	"workdesk/internal/datemath"
	"workdesk/internal/eventindex"
	"workdesk/internal/model"
)

// Cell is one day of the month grid.
type Cell struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	InCurrentMonth bool   `json:"in_current_month"`
	EventCount     int    `json:"event_count"`
}

// MonthView is the month grid view model. Weeks always start on Monday.
type MonthView struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Weeks [][]Cell `json:"weeks"`
	// Prev and Next are the first days of the adjacent months.
	Prev string `json:"prev"`
	Next string `json:"next"`
}

// DayEntry is one day of the week or three-day list.
type DayEntry struct {
	Date   string        `json:"date"`
	Events []model.Event `json:"events"`
}

// Weekdays are the column headers of the month grid, Monday first.
var Weekdays = [7]string{"월", "화", "수", "목", "금", "토", "일"}

// MonthGrid lays out the anchor's month as complete Monday-to-Sunday weeks,
// from the week holding the 1st to the week holding the last day.
func MonthGrid(anchor string, idx *eventindex.Index) MonthView {
	year, month, _ := datemath.Parse(anchor)
	first := datemath.FirstOfMonth(anchor)
	last := datemath.LastOfMonth(anchor)

	start := datemath.StartOfWeek(first)
	// Close on the Sunday of the last day's own week, not of the day after
	// it: a month ending on Sunday gets no extra trailing week (March 2024
	// is 5 weeks, not 6).
	end := datemath.AddDays(datemath.StartOfWeek(last), 6)

	mv := MonthView{
		Year:  year,
		Month: month,
		Prev:  datemath.AddMonths(first, -1),
		Next:  datemath.AddMonths(first, 1),
	}

	var week []Cell
	for d := start; d <= end; d = datemath.AddDays(d, 1) {
		y, m, day := datemath.Parse(d)
		week = append(week, Cell{
			Date:           d,
			Day:            day,
			InCurrentMonth: y == year && m == month,
			EventCount:     idx.Count(d),
		})
		if len(week) == 7 {
			mv.Weeks = append(mv.Weeks, week)
			week = nil
		}
	}

	return mv
}

// WeekList returns the seven days, Monday first, of the week holding anchor.
func WeekList(anchor string, idx *eventindex.Index) []DayEntry {
	return dayRange(datemath.StartOfWeek(anchor), 7, idx)
}

// DayList returns the day before anchor, anchor, and the day after.
func DayList(anchor string, idx *eventindex.Index) []DayEntry {
	return dayRange(datemath.AddDays(anchor, -1), 3, idx)
}

func dayRange(start string, n int, idx *eventindex.Index) []DayEntry {
	out := make([]DayEntry, 0, n)
	for i := 0; i < n; i++ {
		d := datemath.AddDays(start, i)
		events := idx.Lookup(d)
		if events == nil {
			events = []model.Event{}
		}
		out = append(out, DayEntry{Date: d, Events: events})
	}
	return out
}
