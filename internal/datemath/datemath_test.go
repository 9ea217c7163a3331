package datemath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	y, m, d := Parse("2024-03-05")
	assert.Equal(t, []int{2024, 3, 5}, []int{y, m, d})
	assert.Equal(t, "2024-03-05", Format(2024, 3, 5))
	assert.Equal(t, "0999-12-01", Format(999, 12, 1))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("2024-02-29"))
	assert.False(t, Valid("2023-02-29"))
	assert.False(t, Valid("2024-3-5"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("2024-13-01"))
}

func TestAddDays(t *testing.T) {
	cases := []struct {
		key  string
		n    int
		want string
	}{
		{"2024-03-01", -1, "2024-02-29"},
		{"2023-03-01", -1, "2023-02-28"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2025-01-01", -1, "2024-12-31"},
		{"2024-01-31", 30, "2024-03-01"},
		{"2024-03-05", 0, "2024-03-05"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, AddDays(c.key, c.n), "%s%+d", c.key, c.n)
	}
}

func TestStartOfWeek(t *testing.T) {
	assert.Equal(t, "2024-02-26", StartOfWeek("2024-03-01")) // Friday
	assert.Equal(t, "2024-02-26", StartOfWeek("2024-03-03")) // Sunday
	assert.Equal(t, "2024-03-04", StartOfWeek("2024-03-04")) // Monday
	assert.Equal(t, "2024-12-30", StartOfWeek("2025-01-01"))
}

func TestStartOfWeekProperty(t *testing.T) {
	key := "2023-11-01"
	for i := 0; i < 800; i++ {
		start := StartOfWeek(key)
		require.Equal(t, time.Monday, Weekday(start), key)
		diff := DaysBetween(start, key)
		require.True(t, diff >= 0 && diff <= 6, "%s: diff %d", key, diff)
		key = AddDays(key, 1)
	}
}

func TestMonthHelpers(t *testing.T) {
	assert.Equal(t, "2024-02-01", FirstOfMonth("2024-02-17"))
	assert.Equal(t, "2024-02-29", LastOfMonth("2024-02-17"))
	assert.Equal(t, "2023-02-28", LastOfMonth("2023-02-01"))
	assert.Equal(t, "2024-12-31", LastOfMonth("2024-12-05"))
	assert.Equal(t, "2024-02-01", AddMonths("2024-03-31", -1))
	assert.Equal(t, "2025-01-01", AddMonths("2024-12-15", 1))
	assert.Equal(t, "2023-12-01", AddMonths("2024-01-01", -1))
}

func TestDateOf(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	ts := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-02", DateOf(ts, seoul))
	assert.Equal(t, "2024-03-01", DateOf(ts, nil))
	assert.True(t, Valid(Today()))
}
