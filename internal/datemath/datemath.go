// Package datemath implements calendar arithmetic on YYYY-MM-DD date keys.
//
// Keys are naive local calendar dates. All arithmetic runs on UTC midnights,
// so daylight-saving transitions never move a key by a day.
package datemath

import (
	"fmt"
	"strconv"
	"time"
)

// Layout is the date key format.
const Layout = "2006-01-02"

// Parse splits a key into year, month and day. Malformed keys yield
// unspecified values; callers check with Valid first.
func Parse(key string) (year, month, day int) {
	if len(key) != len(Layout) {
		return 0, 0, 0
	}
	year, _ = strconv.Atoi(key[0:4])
	month, _ = strconv.Atoi(key[5:7])
	day, _ = strconv.Atoi(key[8:10])
	return year, month, day
}

// Format renders a key, zero-padding month and day.
func Format(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// Valid reports whether key is a well-formed, existing calendar date.
func Valid(key string) bool {
	_, err := time.Parse(Layout, key)
	return err == nil
}

func toTime(key string) time.Time {
	y, m, d := Parse(key)
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func fromTime(t time.Time) string {
	return Format(t.Year(), int(t.Month()), t.Day())
}

// AddDays offsets key by n days, rolling over months and years.
func AddDays(key string, n int) string {
	return fromTime(toTime(key).AddDate(0, 0, n))
}

// Weekday returns the day of the week of key.
func Weekday(key string) time.Weekday {
	return toTime(key).Weekday()
}

// StartOfWeek returns the Monday on or before key. Weeks run Monday to Sunday.
func StartOfWeek(key string) string {
	wd := int(Weekday(key))
	offset := 1 - wd
	if wd == 0 {
		offset = -6
	}
	return AddDays(key, offset)
}

// FirstOfMonth returns the first day of key's month.
func FirstOfMonth(key string) string {
	y, m, _ := Parse(key)
	return Format(y, m, 1)
}

// LastOfMonth returns the last day of key's month.
func LastOfMonth(key string) string {
	y, m, _ := Parse(key)
	return fromTime(time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC))
}

// AddMonths returns the first day of the month n months after key's month.
func AddMonths(key string, n int) string {
	y, m, _ := Parse(key)
	return fromTime(time.Date(y, time.Month(m)+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

// DaysBetween returns to minus from in whole days.
func DaysBetween(from, to string) int {
	return int(toTime(to).Sub(toTime(from)).Hours() / 24)
}

// Today returns the current local calendar date.
func Today() string {
	return TodayIn(time.Local)
}

// TodayIn returns the current calendar date in loc.
func TodayIn(loc *time.Location) string {
	return DateOf(time.Now(), loc)
}

// DateOf returns the calendar date of t as seen in loc (t's own zone if nil).
func DateOf(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fromTime(t)
}
