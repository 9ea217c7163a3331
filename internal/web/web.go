package web

import (
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"workdesk/internal/calendar"
	"workdesk/internal/config"
	"workdesk/internal/datemath"
	"workdesk/internal/eventindex"
	"workdesk/internal/ics"
	appLog "workdesk/internal/log"
	"workdesk/internal/model"
)

// Loader supplies the store events. *store.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context) ([]model.Event, error)
}

// Server serves the calendar page, its JSON view model and the ICS feed.
// The event index is replaced wholesale on reload; each request renders
// against the index current when it started.
type Server struct {
	cfg    *config.Config
	loader Loader
	loc    *time.Location
	mux    *http.ServeMux

	// now is swapped in tests.
	now func() time.Time

	idxMu    sync.RWMutex
	idx      *eventindex.Index
	loadedAt time.Time

	reloadMu sync.Mutex
}

//go:embed all:static
var embeddedStatic embed.FS

// NewServer constructs a Server. The index starts empty until Reload or
// SetEvents is called.
func NewServer(cfg *config.Config, loader Loader) *Server {
	s := &Server{
		cfg:    cfg,
		loader: loader,
		loc:    cfg.Location(),
		mux:    http.NewServeMux(),
		now:    time.Now,
		idx:    eventindex.Build(nil),
	}
	s.registerRoutes()
	return s
}

// Handler returns the root handler, wrapped in Basic Auth when configured.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// Serve listens on cfg.Listen until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Reload loads the store and swaps in a freshly built index. On failure
// the previous index stays in place.
func (s *Server) Reload(ctx context.Context) error {
	if s.loader == nil {
		return errors.New("web: no loader configured")
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	events, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}
	s.SetEvents(events)
	return nil
}

// SetEvents indexes events and makes them current.
func (s *Server) SetEvents(events []model.Event) {
	idx := eventindex.Build(events)

	s.idxMu.Lock()
	s.idx = idx
	s.loadedAt = s.now()
	s.idxMu.Unlock()

	appLog.Info("event index rebuilt", "events", idx.Len(), "days", len(idx.Dates()))
}

// Index returns the current event index.
func (s *Server) Index() *eventindex.Index {
	s.idxMu.RLock()
	defer s.idxMu.RUnlock()
	return s.idx
}

// Today returns the current calendar date in the configured timezone.
func (s *Server) Today() string {
	return datemath.DateOf(s.now(), s.loc)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/calendar", s.handleCalendar)
	s.mux.HandleFunc("/calendar.ics", s.handleICS)
	s.mux.HandleFunc("/api/calendar", s.handleAPICalendar)
	s.mux.HandleFunc("/api/refresh", s.handleRefresh)
	s.mux.Handle("/", s.staticFileServer())
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="workdesk", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// stateFromRequest reads ?view= and ?date=. A missing or invalid date
// anchors at today; date input is validated here, not in the calendar core.
func (s *Server) stateFromRequest(r *http.Request) calendar.ViewState {
	q := r.URL.Query()
	st := calendar.NewViewState(s.Today())
	if d := strings.TrimSpace(q.Get("date")); d != "" {
		if datemath.Valid(d) {
			st = st.WithAnchor(d)
		} else {
			appLog.Debug("ignoring invalid date parameter", "date", d)
		}
	}
	return st.WithMode(calendar.ParseMode(q.Get("view")))
}

// handleCalendar renders the HTML calendar page.
//
// GET /calendar?view=month|week|3day&date=YYYY-MM-DD
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := WritePage(w, s.stateFromRequest(r), s.Index(), s.Today()); err != nil {
		appLog.Error("calendar template failed", err)
	}
}

// handleAPICalendar returns the view model for the same query as /calendar.
func (s *Server) handleAPICalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	view := calendar.Render(s.stateFromRequest(r), s.Index())
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	s.idxMu.RLock()
	idx, stamp := s.idx, s.loadedAt
	s.idxMu.RUnlock()
	if stamp.IsZero() {
		stamp = s.now()
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if err := ics.Write(w, idx, s.cfg.CalendarName, stamp); err != nil {
		appLog.Error("ics feed write failed", err)
	}
}

type refreshResponse struct {
	Events int `json:"events"`
}

// handleRefresh reloads the store on demand.
//
// POST /api/refresh
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.Reload(r.Context()); err != nil {
		appLog.Error("api refresh failed", err)
		writeError(w, http.StatusBadGateway, "failed to reload store")
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Events: s.Index().Len()})
}

// staticFileServer serves embedded assets. /api/* never falls through to it.
func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		appLog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "static UI not available", http.StatusServiceUnavailable)
		})
	}
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			http.NotFound(w, r)
			return
		}
		if path == "/" {
			http.Redirect(w, r, "/calendar", http.StatusFound)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
