package calendar

import (
	"workdesk/internal/datemath"
	"workdesk/internal/eventindex"
	appLog "workdesk/internal/log"
)

// View is what a render produces for the current state. Exactly one of
// Month and Days is set, depending on Mode.
type View struct {
	Mode   Mode       `json:"mode"`
	Anchor string     `json:"anchor"`
	Label  string     `json:"label"`
	Month  *MonthView `json:"month,omitempty"`
	Days   []DayEntry `json:"days,omitempty"`
}

// Render builds the view for s from idx.
func Render(s ViewState, idx *eventindex.Index) View {
	v := View{Mode: s.Mode, Anchor: s.Anchor, Label: s.Mode.Label()}
	switch s.Mode {
	case Week:
		v.Days = WeekList(s.Anchor, idx)
	case ThreeDay:
		v.Days = DayList(s.Anchor, idx)
	default:
		mv := MonthGrid(s.Anchor, idx)
		v.Month = &mv
	}
	return v
}

// Controller owns one ViewState over a fixed index. Every transition
// re-renders and returns the new view. It is not safe for concurrent use.
type Controller struct {
	idx   *eventindex.Index
	state ViewState
	today func() string
	view  View
}

// NewController starts in month view anchored at today(). A nil today uses
// the local calendar date.
func NewController(idx *eventindex.Index, today func() string) *Controller {
	if today == nil {
		today = datemath.Today
	}
	c := &Controller{idx: idx, today: today}
	c.apply(NewViewState(today()))
	return c
}

// State returns the current state.
func (c *Controller) State() ViewState {
	return c.state
}

// View returns the last rendered view.
func (c *Controller) View() View {
	return c.view
}

// Today returns the date the controller considers today.
func (c *Controller) Today() string {
	return c.today()
}

// SelectMode switches mode and keeps the anchor.
func (c *Controller) SelectMode(m Mode) View {
	return c.apply(c.state.WithMode(m))
}

// SetAnchor moves the anchor and keeps the mode. key must be well-formed.
func (c *Controller) SetAnchor(key string) View {
	return c.apply(c.state.WithAnchor(key))
}

// Navigate optionally moves the anchor (empty key keeps it) and switches to m.
func (c *Controller) Navigate(m Mode, key string) View {
	return c.apply(c.state.Navigate(m, key))
}

// SelectCell opens the three-day view around a month-grid cell.
func (c *Controller) SelectCell(key string) View {
	return c.apply(c.state.SelectCell(key))
}

// PrevMonth shows the month view of the previous month.
func (c *Controller) PrevMonth() View {
	return c.apply(c.state.PrevMonth())
}

// NextMonth shows the month view of the next month.
func (c *Controller) NextMonth() View {
	return c.apply(c.state.NextMonth())
}

func (c *Controller) apply(s ViewState) View {
	if s.Anchor == "" {
		s.Anchor = c.today()
	}
	c.state = s
	c.view = Render(s, c.idx)
	appLog.Debug("calendar render", "mode", s.Mode.String(), "anchor", s.Anchor)
	return c.view
}
