// Package store holds the in-memory entity stores the UI reads from. Each
// store mirrors one backend per user, applies writes optimistically and rolls
// them back when the backend rejects them.
package store

import (
	"log"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/storage"
)

// Router resolves the backend owning a user's data.
type Router interface {
	For(userID string) (storage.Backend, error)
	Classify(userID string) identity.Kind
}

var _ Router = (*storage.Router)(nil)

type deps struct {
	logger  *log.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures an entity store.
type Option func(*deps)

func WithLogger(l *log.Logger) Option {
	return func(d *deps) {
		if l != nil {
			d.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(d *deps) { d.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(d *deps) {
		if now != nil {
			d.now = now
		}
	}
}

func newDeps(prefix string, opts []Option) deps {
	d := deps{
		logger: log.New(log.Writer(), prefix, log.LstdFlags),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func (d *deps) logRevert(store, id string, o outcome, err error) {
	d.metrics.revert(store, o)
	switch o {
	case outcomeReverted:
		d.logger.Printf("reverted %s after failed write: %v", id, err)
	case outcomeStale:
		d.logger.Printf("skipped stale revert of %s, newer write wins: %v", id, err)
	}
}
