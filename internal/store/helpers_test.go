package store

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/storage"
	"github.com/golang/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

var quietLogger = log.New(io.Discard, "", 0)

// testRouter sends every user to one backend.
type testRouter struct {
	backend storage.Backend
	kind    identity.Kind
}

func (r testRouter) For(string) (storage.Backend, error) { return r.backend, nil }

func (r testRouter) Classify(string) identity.Kind { return r.kind }

func testOpts() []Option {
	return []Option{WithLogger(quietLogger), WithClock(func() time.Time { return fixedNow })}
}

func newMockRouter(t *testing.T, kind identity.Kind) (*MockBackend, testRouter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	b := NewMockBackend(ctrl)
	return b, testRouter{backend: b, kind: kind}
}
