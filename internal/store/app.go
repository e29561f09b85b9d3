package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/models"
)

const (
	DefaultRouteCacheTTL   = 5 * time.Minute
	DefaultHistoryLimit    = 50
	DefaultPersistDebounce = 300 * time.Millisecond
)

// NavStateSink persists navigation state between sessions.
type NavStateSink interface {
	SaveNavState(ctx context.Context, state models.NavState) error
	LoadNavState(ctx context.Context) (*models.NavState, error)
}

type stopper interface {
	Stop() bool
}

type routeEntry struct {
	payload any
	at      time.Time
}

// AppStore holds app-wide UI state: the global loading flag, the route
// payload cache and the navigation history.
type AppStore struct {
	logger    *log.Logger
	now       func() time.Time
	afterFunc func(time.Duration, func()) stopper
	sink      NavStateSink
	ttl       time.Duration
	limit     int
	debounce  time.Duration

	mu         sync.Mutex
	loading    bool
	routes     map[string]routeEntry
	history    []string
	current    string
	navigating bool
	target     string
	timer      stopper
	dirty      bool
}

// AppOption configures an AppStore.
type AppOption func(*AppStore)

func WithNavSink(sink NavStateSink) AppOption {
	return func(s *AppStore) { s.sink = sink }
}

func WithRouteCacheTTL(d time.Duration) AppOption {
	return func(s *AppStore) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func WithHistoryLimit(n int) AppOption {
	return func(s *AppStore) {
		if n > 0 {
			s.limit = n
		}
	}
}

func WithPersistDebounce(d time.Duration) AppOption {
	return func(s *AppStore) {
		if d > 0 {
			s.debounce = d
		}
	}
}

func WithAppLogger(l *log.Logger) AppOption {
	return func(s *AppStore) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithAppClock(now func() time.Time) AppOption {
	return func(s *AppStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewAppStore(opts ...AppOption) *AppStore {
	s := &AppStore{
		logger: log.New(log.Writer(), "app: ", log.LstdFlags),
		now:    time.Now,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		ttl:      DefaultRouteCacheTTL,
		limit:    DefaultHistoryLimit,
		debounce: DefaultPersistDebounce,
		routes:   make(map[string]routeEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AppStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *AppStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// CacheRoute stores payload for route, stamped now.
func (s *AppStore) CacheRoute(route string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[route] = routeEntry{payload: payload, at: s.now()}
}

// CachedRoute returns the payload cached for route if it is younger than
// maxAge. maxAge <= 0 uses the store default. Expired entries are removed.
func (s *AppStore) CachedRoute(route string, maxAge time.Duration) (any, bool) {
	if maxAge <= 0 {
		maxAge = s.ttl
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.routes[route]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.at) > maxAge {
		delete(s.routes, route)
		return nil, false
	}
	return e.payload, true
}

func (s *AppStore) InvalidateRoute(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.routes, route)
}

func (s *AppStore) ClearRouteCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = make(map[string]routeEntry)
}

// Visit records route as the current route. A revisit moves the route to
// the end of the history; the oldest entries drop past the limit.
func (s *AppStore) Visit(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visitLocked(route)
}

func (s *AppStore) visitLocked(route string) {
	kept := s.history[:0]
	for _, r := range s.history {
		if r != route {
			kept = append(kept, r)
		}
	}
	s.history = append(kept, route)
	if over := len(s.history) - s.limit; over > 0 {
		s.history = append([]string(nil), s.history[over:]...)
	}
	s.current = route
	s.scheduleLocked()
}

// History returns the visited routes, oldest first.
func (s *AppStore) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

func (s *AppStore) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Back drops the current route and returns the one before it.
func (s *AppStore) Back() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) < 2 {
		return "", false
	}
	s.history = s.history[:len(s.history)-1]
	s.current = s.history[len(s.history)-1]
	s.scheduleLocked()
	return s.current, true
}

// BeginNavigation marks a navigation to target as in progress.
func (s *AppStore) BeginNavigation(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigating = true
	s.target = target
}

// CompleteNavigation settles a navigation. Navigating stays set when route is
// the route already shown.
func (s *AppStore) CompleteNavigation(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if route == s.current {
		return
	}
	s.navigating = false
	s.target = ""
	s.visitLocked(route)
}

func (s *AppStore) Navigating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigating
}

func (s *AppStore) scheduleLocked() {
	if s.sink == nil {
		return
	}
	s.dirty = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.afterFunc(s.debounce, func() {
		if err := s.Flush(context.Background()); err != nil {
			s.logger.Printf("persist navigation: %v", err)
		}
	})
}

// Flush writes pending navigation state now.
func (s *AppStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.sink == nil || !s.dirty {
		s.mu.Unlock()
		return nil
	}
	state := models.NavState{
		Current:   s.current,
		History:   append([]string(nil), s.history...),
		UpdatedAt: s.now(),
	}
	s.dirty = false
	sink := s.sink
	s.mu.Unlock()

	if err := sink.SaveNavState(ctx, state); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return err
	}
	return nil
}

// Restore loads persisted navigation state, replacing the in-memory history.
func (s *AppStore) Restore(ctx context.Context) error {
	if s.sink == nil {
		return nil
	}
	state, err := s.sink.LoadNavState(ctx)
	if err != nil || state == nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	history := state.History
	if over := len(history) - s.limit; over > 0 {
		history = history[over:]
	}
	s.history = append([]string(nil), history...)
	s.current = state.Current
	return nil
}
