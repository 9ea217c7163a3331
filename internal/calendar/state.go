// Package calendar builds the month, week and three-day views of the
// event index and holds the view-mode state machine that switches between
// them.
package calendar

import "workdesk/internal/datemath"

// Mode selects which view is rendered.
type Mode int

const (
	Month Mode = iota
	Week
	ThreeDay
)

// Modes lists every mode in button order.
var Modes = []Mode{Month, Week, ThreeDay}

// String returns the wire name used in URLs and JSON.
func (m Mode) String() string {
	switch m {
	case Week:
		return "week"
	case ThreeDay:
		return "3day"
	default:
		return "month"
	}
}

// Label returns the human-readable name shown as the view status.
func (m Mode) Label() string {
	switch m {
	case Week:
		return "주간달력(읽기전용)"
	case ThreeDay:
		return "어제·오늘·내일(3일, 읽기전용)"
	default:
		return "월간달력(읽기전용)"
	}
}

// ParseMode maps a wire name to a Mode. Unknown names give Month.
func ParseMode(s string) Mode {
	switch s {
	case "week":
		return Week
	case "3day":
		return ThreeDay
	default:
		return Month
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	*m = ParseMode(string(b))
	return nil
}

// ViewState is the whole state of the calendar page. Every (Mode, Anchor)
// pair is a valid state.
type ViewState struct {
	Mode   Mode   `json:"mode"`
	Anchor string `json:"anchor"`
}

// NewViewState returns the initial state: month view anchored at today.
func NewViewState(today string) ViewState {
	return ViewState{Mode: Month, Anchor: today}
}

// WithMode switches the mode and keeps the anchor.
func (s ViewState) WithMode(m Mode) ViewState {
	s.Mode = m
	return s
}

// WithAnchor moves the anchor and keeps the mode.
func (s ViewState) WithAnchor(key string) ViewState {
	s.Anchor = key
	return s
}

// Navigate moves the anchor when key is non-empty, then switches to m.
func (s ViewState) Navigate(m Mode, key string) ViewState {
	if key != "" {
		s.Anchor = key
	}
	return s.WithMode(m)
}

// SelectCell is the month-grid cell transition: three-day view at key.
func (s ViewState) SelectCell(key string) ViewState {
	return s.Navigate(ThreeDay, key)
}

// PrevMonth is the month view of the month before the anchor's.
func (s ViewState) PrevMonth() ViewState {
	return s.Navigate(Month, datemath.AddMonths(s.Anchor, -1))
}

// NextMonth is the month view of the month after the anchor's.
func (s ViewState) NextMonth() ViewState {
	return s.Navigate(Month, datemath.AddMonths(s.Anchor, 1))
}
