package model

// AllDayLabel is shown in place of the clock time for events without one.
const AllDayLabel = "종일"

// Event is a single dated entry of the store's calendar.events list.
// Only Date is required; an event without it cannot be placed on a day.
type Event struct {
	Date  string `json:"date"`
	Time  string `json:"time,omitempty"`
	Title string `json:"title,omitempty"`
	Memo  string `json:"memo,omitempty"`
}

// AllDay reports whether the event has no clock time.
func (e Event) AllDay() bool {
	return e.Time == ""
}

// TimeLabel returns the clock time or AllDayLabel.
func (e Event) TimeLabel() string {
	if e.Time == "" {
		return AllDayLabel
	}
	return e.Time
}
