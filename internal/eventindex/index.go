// Package eventindex groups store events by date key.
package eventindex

import (
	"slices"
	"sort"

	"workdesk/internal/model"
)

// Index maps date keys to the events of that day, ordered by time with
// all-day events first. It is immutable once built and safe to share.
type Index struct {
	byDate map[string][]model.Event
	dates  []string
	total  int
}

// Build groups events by Date and stable-sorts each group by Time. Events
// without a Date are left out.
func Build(events []model.Event) *Index {
	idx := &Index{byDate: make(map[string][]model.Event)}

	for _, e := range events {
		if e.Date == "" {
			continue
		}
		idx.byDate[e.Date] = append(idx.byDate[e.Date], e)
		idx.total++
	}

	for date, group := range idx.byDate {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Time < group[j].Time
		})
		idx.dates = append(idx.dates, date)
	}
	slices.Sort(idx.dates)

	return idx
}

// Lookup returns the events on date, or nil. The slice must not be modified.
func (idx *Index) Lookup(date string) []model.Event {
	if idx == nil {
		return nil
	}
	return idx.byDate[date]
}

// Count returns the number of events on date.
func (idx *Index) Count(date string) int {
	return len(idx.Lookup(date))
}

// Dates returns the indexed date keys in ascending order.
func (idx *Index) Dates() []string {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.dates)
}

// Len returns the number of indexed events.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return idx.total
}

// Events returns every indexed event ordered by date, then time.
func (idx *Index) Events() []model.Event {
	if idx == nil {
		return nil
	}
	out := make([]model.Event, 0, idx.total)
	for _, d := range idx.dates {
		out = append(out, idx.byDate[d]...)
	}
	return out
}
