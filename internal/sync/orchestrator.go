// Package sync keeps the entity stores in step with the signed-in user.
//
// The orchestrator clears every store when the user changes or signs out,
// reloads sprints and tasks when the user changes or the data is older than
// the refresh threshold, and loads the progress record whenever the active
// sprint changes.
package sync

import (
	"context"
	"log"
	"os"
	stdsync "sync"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/store"
	"golang.org/x/sync/errgroup"
)

// DefaultRefreshThreshold is how old loaded data may get before an auth
// event for the same user reloads it.
const DefaultRefreshThreshold = 5 * time.Minute

// Orchestrator drives the sprint, task and progress stores from auth events.
type Orchestrator struct {
	sprints   *store.SprintStore
	tasks     *store.TaskStore
	progress  *store.ProgressStore
	logger    *log.Logger
	now       func() time.Time
	threshold time.Duration

	mu          stdsync.Mutex
	userID      string
	lastRefresh time.Time
	// ctx is the context of the latest auth event or refresh; progress loads
	// cascading from active sprint changes run under it.
	ctx context.Context
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

func WithRefreshThreshold(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.threshold = d
		}
	}
}

// New wires an orchestrator to the stores and subscribes it to active sprint
// changes.
func New(sprints *store.SprintStore, tasks *store.TaskStore, progress *store.ProgressStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		sprints:   sprints,
		tasks:     tasks,
		progress:  progress,
		logger:    log.New(os.Stderr, "[sync] ", log.LstdFlags),
		now:       time.Now,
		threshold: DefaultRefreshThreshold,
	}
	for _, opt := range opts {
		opt(o)
	}
	sprints.OnActiveChange(o.onActiveChange)
	return o
}

// User returns the id of the tracked user, or "" when signed out.
func (o *Orchestrator) User() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.userID
}

// ShouldRefresh reports whether loaded data is older than the threshold.
func (o *Orchestrator) ShouldRefresh() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.shouldRefreshLocked()
}

func (o *Orchestrator) shouldRefreshLocked() bool {
	if o.lastRefresh.IsZero() {
		return true
	}
	return o.now().Sub(o.lastRefresh) > o.threshold
}

// HandleAuthChange reacts to a sign-in, sign-out or user switch. A nil user
// signs out.
func (o *Orchestrator) HandleAuthChange(ctx context.Context, user *identity.User) error {
	if user == nil {
		o.mu.Lock()
		prev := o.userID
		o.userID = ""
		o.lastRefresh = time.Time{}
		o.ctx = ctx
		o.mu.Unlock()
		o.clear()
		if prev != "" {
			o.logger.Printf("signed out %s, stores cleared", prev)
		}
		return nil
	}

	o.mu.Lock()
	o.ctx = ctx
	changed := user.ID != o.userID
	stale := o.shouldRefreshLocked()
	if changed {
		o.userID = user.ID
		o.lastRefresh = time.Time{}
	}
	o.mu.Unlock()

	if !changed && !stale {
		return nil
	}
	if changed {
		o.logger.Printf("user changed to %s (%s)", user.ID, user.Kind)
	}
	o.clear()
	return o.load(ctx, user.ID)
}

// Refresh drops the cached data of the current user and loads it again.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	o.mu.Lock()
	userID := o.userID
	if userID != "" {
		o.ctx = ctx
	}
	o.mu.Unlock()
	if userID == "" {
		return nil
	}
	o.clear()
	return o.load(ctx, userID)
}

func (o *Orchestrator) clear() {
	o.sprints.ClearAll()
	o.tasks.ClearAll()
	o.progress.Clear()
}

func (o *Orchestrator) load(ctx context.Context, userID string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o.sprints.LoadAll(gctx, userID)
		return nil
	})
	g.Go(func() error {
		o.sprints.LoadActive(gctx, userID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	o.tasks.LoadAll(ctx, userID)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.userID == userID {
		o.lastRefresh = o.now()
	}
	return ctx.Err()
}

func (o *Orchestrator) onActiveChange(_, nextID string) {
	if nextID == "" {
		return
	}
	o.mu.Lock()
	userID, ctx := o.userID, o.ctx
	o.mu.Unlock()
	if userID == "" {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	o.progress.Load(ctx, userID, nextID)
}
