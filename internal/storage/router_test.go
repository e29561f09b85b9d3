package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/models"
)

// fakeBackend implements Backend with no behavior beyond Kind and Close.
type fakeBackend struct {
	Backend
	kind     identity.Kind
	closeErr error
	closed   bool
}

func (f *fakeBackend) Kind() identity.Kind { return f.kind }

func (f *fakeBackend) Close() error {
	f.closed = true
	return f.closeErr
}

func (f *fakeBackend) ListSprints(context.Context, string) ([]models.Sprint, error) {
	return []models.Sprint{{ID: string(f.kind)}}, nil
}

func TestRouterPicksBackendByKind(t *testing.T) {
	cloud := &fakeBackend{kind: identity.KindCloud}
	guest := &fakeBackend{kind: identity.KindGuest}
	r := NewRouter(nil, cloud, guest, nil)

	b, err := r.For("guest_42")
	if err != nil {
		t.Fatalf("For(guest) failed: %v", err)
	}
	sprints, _ := b.ListSprints(context.Background(), "guest_42")
	if sprints[0].ID != "guest" {
		t.Fatalf("routed to %q", sprints[0].ID)
	}
	if b, _ := r.For("uid-1"); b != Backend(cloud) {
		t.Fatalf("expected cloud backend")
	}

	_, err = r.For("local_1")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if len(r.Kinds()) != 2 {
		t.Fatalf("Kinds = %v", r.Kinds())
	}
}

type staticResolver identity.Kind

func (s staticResolver) Classify(string) identity.Kind { return identity.Kind(s) }

func TestRouterConsultsResolverEachCall(t *testing.T) {
	local := &fakeBackend{kind: identity.KindLocal}
	r := NewRouter(staticResolver(identity.KindLocal), local)
	if got := r.Classify("anything"); got != identity.KindLocal {
		t.Fatalf("Classify = %q", got)
	}
	if b, err := r.For("guest_1"); err != nil || b != Backend(local) {
		t.Fatalf("For = %v, %v", b, err)
	}
}

func TestRouterCloseJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeBackend{kind: identity.KindCloud, closeErr: boom}
	b := &fakeBackend{kind: identity.KindGuest}
	r := NewRouter(nil, a, b)
	if err := r.Close(); !errors.Is(err, boom) {
		t.Fatalf("Close = %v", err)
	}
	if !a.closed || !b.closed {
		t.Fatalf("not every backend closed")
	}
}

func TestOpErrorFormatting(t *testing.T) {
	err := WrapErr(identity.KindGuest, ResourceSprint, "update", "s1", ErrNotFound)
	if got := err.Error(); got != "guest: update sprint s1: not found" {
		t.Fatalf("Error() = %q", got)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped ErrNotFound")
	}
	if WrapErr(identity.KindGuest, ResourceSprint, "update", "s1", nil) != nil {
		t.Fatalf("nil err should wrap to nil")
	}
	if got := WrapErr(identity.KindCloud, ResourceTask, "list", "", errors.New("x")).Error(); got != "cloud: list task: x" {
		t.Fatalf("Error() = %q", got)
	}
}
