package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/models"
)

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	was := !f.stopped
	f.stopped = true
	return was
}

type fakeSink struct {
	saved   []models.NavState
	stored  *models.NavState
	saveErr error
}

func (f *fakeSink) SaveNavState(_ context.Context, state models.NavState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, state)
	return nil
}

func (f *fakeSink) LoadNavState(context.Context) (*models.NavState, error) {
	return f.stored, nil
}

func newTestApp(opts ...AppOption) (*AppStore, *time.Time, *[]*fakeTimer) {
	clock := fixedNow
	var timers []*fakeTimer
	opts = append([]AppOption{WithAppLogger(quietLogger), WithAppClock(func() time.Time { return clock })}, opts...)
	s := NewAppStore(opts...)
	s.afterFunc = func(_ time.Duration, fn func()) stopper {
		t := &fakeTimer{fn: fn}
		timers = append(timers, t)
		return t
	}
	return s, &clock, &timers
}

func TestRouteCacheExpiry(t *testing.T) {
	s, clock, _ := newTestApp()
	s.CacheRoute("/dashboard", "payload")

	if v, ok := s.CachedRoute("/dashboard", 0); !ok || v != "payload" {
		t.Fatalf("expected fresh hit, got %v %v", v, ok)
	}
	*clock = fixedNow.Add(2 * time.Minute)
	if _, ok := s.CachedRoute("/dashboard", time.Minute); ok {
		t.Fatalf("expected miss past maxAge")
	}
	// The expired entry is gone even for a longer maxAge.
	if _, ok := s.CachedRoute("/dashboard", time.Hour); ok {
		t.Fatalf("expired entry was not removed")
	}
}

func TestRouteCacheDefaultTTL(t *testing.T) {
	s, clock, _ := newTestApp()
	s.CacheRoute("/sprints", 1)
	*clock = fixedNow.Add(DefaultRouteCacheTTL - time.Second)
	if _, ok := s.CachedRoute("/sprints", 0); !ok {
		t.Fatalf("expected hit inside default TTL")
	}
	*clock = fixedNow.Add(DefaultRouteCacheTTL + time.Second)
	if _, ok := s.CachedRoute("/sprints", 0); ok {
		t.Fatalf("expected miss past default TTL")
	}

	s.CacheRoute("/a", 1)
	s.InvalidateRoute("/a")
	if _, ok := s.CachedRoute("/a", 0); ok {
		t.Fatalf("invalidated route still cached")
	}
	s.CacheRoute("/b", 1)
	s.ClearRouteCache()
	if _, ok := s.CachedRoute("/b", 0); ok {
		t.Fatalf("ClearRouteCache left entries")
	}
}

func TestHistoryDedupAndLimit(t *testing.T) {
	s, _, _ := newTestApp(WithHistoryLimit(3))
	for _, r := range []string{"/a", "/b", "/a", "/c", "/d"} {
		s.Visit(r)
	}
	want := []string{"/a", "/c", "/d"}
	if got := s.History(); !reflect.DeepEqual(got, want) {
		t.Fatalf("History = %v, want %v", got, want)
	}
	if s.Current() != "/d" {
		t.Fatalf("Current = %q", s.Current())
	}

	prev, ok := s.Back()
	if !ok || prev != "/c" || s.Current() != "/c" {
		t.Fatalf("Back = %q %v", prev, ok)
	}
	s.Back()
	if _, ok := s.Back(); ok {
		t.Fatalf("Back past the first route")
	}
}

func TestCompleteNavigation(t *testing.T) {
	s, _, _ := newTestApp()
	s.Visit("/home")
	s.BeginNavigation("/sprints/1")
	if !s.Navigating() {
		t.Fatalf("expected navigating")
	}
	s.CompleteNavigation("/home")
	if !s.Navigating() {
		t.Fatalf("same-route completion should not settle navigation")
	}
	s.CompleteNavigation("/sprints/1")
	if s.Navigating() || s.Current() != "/sprints/1" {
		t.Fatalf("Navigating = %v, Current = %q", s.Navigating(), s.Current())
	}

	s.SetLoading(true)
	if !s.Loading() {
		t.Fatalf("loading flag not set")
	}
}

func TestPersistDebounced(t *testing.T) {
	sink := &fakeSink{}
	s, _, timers := newTestApp(WithNavSink(sink))

	s.Visit("/a")
	s.Visit("/b")
	s.Visit("/c")
	if len(*timers) != 3 {
		t.Fatalf("expected a timer per change, got %d", len(*timers))
	}
	for _, tm := range (*timers)[:2] {
		if !tm.stopped {
			t.Fatalf("earlier timer not stopped")
		}
	}
	if len(sink.saved) != 0 {
		t.Fatalf("saved before debounce fired")
	}

	(*timers)[2].fn()
	if len(sink.saved) != 1 {
		t.Fatalf("expected one coalesced save, got %d", len(sink.saved))
	}
	got := sink.saved[0]
	if got.Current != "/c" || !reflect.DeepEqual(got.History, []string{"/a", "/b", "/c"}) || !got.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("saved state = %+v", got)
	}

	// Nothing changed since, so Flush is a no-op.
	if err := s.Flush(context.Background()); err != nil || len(sink.saved) != 1 {
		t.Fatalf("Flush = %v, saves = %d", err, len(sink.saved))
	}
}

func TestFlushRetriesAfterFailure(t *testing.T) {
	sink := &fakeSink{saveErr: errors.New("disk full")}
	s, _, _ := newTestApp(WithNavSink(sink))
	s.Visit("/a")

	if err := s.Flush(context.Background()); err == nil {
		t.Fatalf("expected flush error")
	}
	sink.saveErr = nil
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(sink.saved) != 1 || sink.saved[0].Current != "/a" {
		t.Fatalf("saved = %+v", sink.saved)
	}
}

func TestRestoreTrimsToLimit(t *testing.T) {
	sink := &fakeSink{stored: &models.NavState{
		Current: "/d",
		History: []string{"/a", "/b", "/c", "/d"},
	}}
	s, _, timers := newTestApp(WithNavSink(sink), WithHistoryLimit(2))
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := s.History(); !reflect.DeepEqual(got, []string{"/c", "/d"}) {
		t.Fatalf("History = %v", got)
	}
	if s.Current() != "/d" {
		t.Fatalf("Current = %q", s.Current())
	}
	if len(*timers) != 0 {
		t.Fatalf("restore should not schedule a save")
	}
}
