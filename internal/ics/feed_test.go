package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workdesk/internal/eventindex"
	"workdesk/internal/model"
)

var stamp = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestFeedRoundTrip(t *testing.T) {
	idx := eventindex.Build([]model.Event{
		{Date: "2024-03-05", Time: "09:30", Title: "Standup", Memo: "room 3"},
		{Date: "2024-03-05", Title: "Holiday"},
		{Title: "dropped"},
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, idx, "Work", stamp))

	out := buf.String()
	assert.Contains(t, out, "X-WR-CALNAME:Work")
	assert.Contains(t, out, "DTSTART:20240305T093000")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240305")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20240306")

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	// All-day sorts first within the day.
	assert.Equal(t, "Holiday", events[0].GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "Standup", events[1].GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "room 3", events[1].GetProperty(ical.ComponentPropertyDescription).Value)
}

func TestFeedStableUIDs(t *testing.T) {
	events := []model.Event{
		{Date: "2024-03-05", Title: "same"},
		{Date: "2024-03-05", Title: "same"},
	}

	a := Feed(eventindex.Build(events), "", stamp).Events()
	b := Feed(eventindex.Build(events), "", stamp.Add(time.Hour)).Events()

	require.Len(t, a, 2)
	assert.NotEqual(t, a[0].Id(), a[1].Id())
	assert.Equal(t, a[0].Id(), b[0].Id())
	assert.Equal(t, a[1].Id(), b[1].Id())
}

func TestFeedMalformedTimeIsAllDay(t *testing.T) {
	idx := eventindex.Build([]model.Event{{Date: "2024-03-05", Time: "morning", Title: "x"}})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, idx, "", stamp))
	assert.Contains(t, buf.String(), "DTSTART;VALUE=DATE:20240305")
}

func TestFeedSkipsMalformedDates(t *testing.T) {
	idx := eventindex.Build([]model.Event{
		{Date: "2024-3-5", Title: "x"},
		{Date: "garbage", Time: "09:00"},
		{Date: "2024-03-05", Title: "kept"},
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, idx, "", stamp))

	out := buf.String()
	assert.NotContains(t, out, "-0001")
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:kept")
}
