package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"workdesk/internal/config"
	appLog "workdesk/internal/log"
	"workdesk/internal/model"
)

// Source says where the store document comes from.
type Source struct {
	URL  string
	Path string
	// EventsPath defaults to DefaultEventsPath.
	EventsPath string
}

// SourceFromConfig builds a Source from the data section of cfg.
func SourceFromConfig(cfg *config.Config) Source {
	return Source{URL: cfg.Data.URL, Path: cfg.Data.Path, EventsPath: cfg.Data.EventsPath}
}

// Remote reports whether the source is fetched over HTTP.
func (s Source) Remote() bool {
	return s.URL != ""
}

// Loader reads the store and returns its events.
type Loader struct {
	src     Source
	fetcher *Fetcher
}

// NewLoader creates a Loader. cacheDir is only used for URL sources.
func NewLoader(src Source, cacheDir string) *Loader {
	return &Loader{src: src, fetcher: NewFetcher(cacheDir)}
}

// Source returns the loader's source.
func (l *Loader) Source() Source {
	return l.src
}

// Load reads the document and extracts its events. Any failure here means
// there is nothing to render.
func (l *Loader) Load(ctx context.Context) ([]model.Event, error) {
	body, err := l.read(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(body)
	if err != nil {
		return nil, err
	}

	events := Events(doc, l.src.EventsPath)
	appLog.Info("store loaded", "events", len(events), "remote", l.src.Remote())
	return events, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	switch {
	case l.src.URL != "":
		res, err := l.fetcher.Fetch(ctx, l.src.URL)
		if err != nil {
			return nil, err
		}
		return res.Body, nil
	case l.src.Path != "":
		body, err := os.ReadFile(l.src.Path)
		if err != nil {
			return nil, fmt.Errorf("store: read %s: %w", l.src.Path, err)
		}
		return body, nil
	default:
		return nil, errors.New("store: no data url or path configured")
	}
}
