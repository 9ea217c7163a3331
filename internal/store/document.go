// Package store loads the read-only JSON data store and extracts the
// calendar events from it.
package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"workdesk/internal/datemath"
	appLog "workdesk/internal/log"
	"workdesk/internal/model"
)

// DefaultEventsPath is where the event list lives inside the document.
const DefaultEventsPath = "calendar.events"

// Document is a parsed store document.
type Document map[string]any

// Parse decodes a store body. The top level must be a JSON object.
func Parse(body []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("store: decode document: %w", err)
	}
	if doc == nil {
		return Document{}, nil
	}
	return doc, nil
}

// GetByPath walks a dotted path through nested objects. A missing segment,
// a non-object on the way, or a null leaf all return fallback.
func GetByPath(doc Document, path string, fallback any) any {
	var cur any = map[string]any(doc)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return fallback
		}
		cur, ok = obj[part]
		if !ok || cur == nil {
			return fallback
		}
	}
	return cur
}

// Events extracts the event list at path. Entries that are not objects are
// skipped; fields that are not strings are treated as absent. A date that
// is not a valid YYYY-MM-DD key is blanked, which keeps the event out of the
// index.
func Events(doc Document, path string) []model.Event {
	if path == "" {
		path = DefaultEventsPath
	}
	raw, ok := GetByPath(doc, path, []any{}).([]any)
	if !ok {
		appLog.Error("store: events path is not a list; using empty list", nil, "path", path)
		return []model.Event{}
	}

	events := make([]model.Event, 0, len(raw))
	skipped, badDates := 0, 0
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			skipped++
			continue
		}
		date := stringField(obj, "date")
		if date != "" && !datemath.Valid(date) {
			appLog.Debug("store: dropping malformed event date", "path", path, "date", date)
			date = ""
			badDates++
		}
		events = append(events, model.Event{
			Date:  date,
			Time:  stringField(obj, "time"),
			Title: stringField(obj, "title"),
			Memo:  stringField(obj, "memo"),
		})
	}
	if skipped > 0 {
		appLog.Debug("store: skipped non-object events", "path", path, "skipped", skipped)
	}
	if badDates > 0 {
		appLog.Info("store: events with malformed dates left unindexed", "path", path, "count", badDates)
	}
	return events
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}
