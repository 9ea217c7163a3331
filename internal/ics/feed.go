// Package ics exports the indexed events as an iCalendar feed so the
// read-only calendar can be subscribed to from other clients.
package ics

import (
	"io"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"workdesk/internal/datemath"
	"workdesk/internal/eventindex"
	appLog "workdesk/internal/log"
	"workdesk/internal/model"
)

const productID = "-//workdesk//calendar//KO"

// uidSpace namespaces the name-based UIDs of exported events.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:workdesk:calendar"))

// Feed builds a calendar holding every event of idx. All-day events get
// DATE values; timed events get a floating DTSTART since store dates carry
// no timezone. UIDs are derived from the event content, so they stay
// stable across reloads of an unchanged store. Events whose date is not a
// valid key are left out.
func Feed(idx *eventindex.Index, name string, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if name != "" {
		cal.SetName(name)
		cal.SetXWRCalName(name)
	}

	seen := make(map[string]int)
	written := 0
	for _, e := range idx.Events() {
		if !datemath.Valid(e.Date) {
			appLog.Debug("ics: skipping event with malformed date", "date", e.Date, "title", e.Title)
			continue
		}
		key := eventKey(e)
		seen[key]++
		uid := uuid.NewSHA1(uidSpace, []byte(key+"#"+strconv.Itoa(seen[key]))).String()

		ve := cal.AddEvent(uid + "@workdesk")
		ve.SetDtStampTime(stamp.UTC())
		ve.SetSummary(e.Title)
		if e.Memo != "" {
			ve.SetDescription(e.Memo)
		}
		setStart(ve, e)
		written++
	}

	appLog.Debug("ics feed built", "events", written, "indexed", idx.Len())
	return cal
}

// Write serializes the feed of idx to w.
func Write(w io.Writer, idx *eventindex.Index, name string, stamp time.Time) error {
	return Feed(idx, name, stamp).SerializeTo(w)
}

func setStart(ve *ical.VEvent, e model.Event) {
	y, m, d := datemath.Parse(e.Date)
	day := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)

	clock, err := time.Parse("15:04", e.Time)
	if e.AllDay() || err != nil {
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		return
	}

	start := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	ve.SetProperty(ical.ComponentPropertyDtStart, start.Format("20060102T150405"))
}

func eventKey(e model.Event) string {
	return strings.Join([]string{e.Date, e.Time, e.Title, e.Memo}, "\x1f")
}
