package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"workdesk/internal/calendar"
	"workdesk/internal/eventindex"
	"workdesk/internal/model"
)

// NoEventsText marks a day without events.
const NoEventsText = "등록된 일정이 없습니다."

//go:embed templates/*.html
var embeddedTemplates embed.FS

var pageTemplates = template.Must(template.ParseFS(embeddedTemplates, "templates/*.html"))

// page is the painting-layer model: the view plus the link each trigger
// leads to. Links are the target states of the controller transitions.
type page struct {
	Title     string
	Today     string
	TodayHref string
	View      calendar.View
	Modes     []modeLink
	Header    string
	Prev      string
	Next      string
	Weeks     [][]cellLink
	Days      []dayBlock
	Empty     string
	Labels    [7]string
}

type modeLink struct {
	Name   string
	Label  string
	Href   string
	Active bool
}

type cellLink struct {
	calendar.Cell
	Href string
}

type dayBlock struct {
	Date   string
	Events []eventLine
}

type eventLine struct {
	Time  string
	Title string
	Memo  string
}

func stateURL(s calendar.ViewState) string {
	q := url.Values{}
	q.Set("view", s.Mode.String())
	q.Set("date", s.Anchor)
	return "/calendar?" + q.Encode()
}

func buildPage(st calendar.ViewState, idx *eventindex.Index, today string) page {
	p := page{
		Title:     "일정 달력",
		Today:     today,
		TodayHref: stateURL(st.WithAnchor(today)),
		View:      calendar.Render(st, idx),
		Empty:     NoEventsText,
		Labels:    calendar.Weekdays,
	}

	for _, m := range calendar.Modes {
		p.Modes = append(p.Modes, modeLink{
			Name:   m.String(),
			Label:  m.Label(),
			Href:   stateURL(st.WithMode(m)),
			Active: m == st.Mode,
		})
	}

	if mv := p.View.Month; mv != nil {
		p.Header = fmt.Sprintf("%d년 %d월", mv.Year, mv.Month)
		p.Prev = stateURL(st.PrevMonth())
		p.Next = stateURL(st.NextMonth())
		for _, week := range mv.Weeks {
			row := make([]cellLink, 0, len(week))
			for _, c := range week {
				row = append(row, cellLink{Cell: c, Href: stateURL(st.SelectCell(c.Date))})
			}
			p.Weeks = append(p.Weeks, row)
		}
	}

	for _, d := range p.View.Days {
		p.Days = append(p.Days, dayBlock{Date: d.Date, Events: eventLines(d.Events)})
	}
	return p
}

func eventLines(events []model.Event) []eventLine {
	out := make([]eventLine, 0, len(events))
	for _, e := range events {
		out = append(out, eventLine{Time: e.TimeLabel(), Title: e.Title, Memo: e.Memo})
	}
	return out
}

// WritePage paints the calendar page for st as HTML.
func WritePage(w io.Writer, st calendar.ViewState, idx *eventindex.Index, today string) error {
	return pageTemplates.ExecuteTemplate(w, "calendar.html", buildPage(st, idx, today))
}
