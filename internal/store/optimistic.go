package store

import (
	"context"
	"sync"
)

type outcome int

const (
	outcomeOK outcome = iota
	outcomeReverted
	outcomeStale
)

// versionTable hands out a token per entity mutation. Tokens come from one
// counter, so a reset never reissues a token still held by an in-flight write.
type versionTable struct {
	seq uint64
	m   map[string]uint64
}

func (v *versionTable) bump(key string) uint64 {
	if v.m == nil {
		v.m = make(map[string]uint64)
	}
	v.seq++
	v.m[key] = v.seq
	return v.seq
}

func (v *versionTable) current(key string) uint64 {
	return v.m[key]
}

func (v *versionTable) reset() {
	v.m = nil
}

// optimisticUpdate is one mutation: apply changes the cache and returns the
// pre-change snapshot with its token, persist writes through the backend, and
// revert restores the snapshot. apply and revert run with mu held; persist
// runs without it.
type optimisticUpdate[S any] struct {
	apply   func() (S, uint64)
	persist func(context.Context) error
	revert  func(S, uint64) bool
}

// run executes u. On persist failure the snapshot is restored unless a newer
// mutation of the same entity has happened since, in which case revert
// reports false and the outcome is stale.
func (u optimisticUpdate[S]) run(ctx context.Context, mu sync.Locker) (outcome, error) {
	mu.Lock()
	snapshot, token := u.apply()
	mu.Unlock()

	err := u.persist(ctx)
	if err == nil {
		return outcomeOK, nil
	}

	mu.Lock()
	applied := u.revert(snapshot, token)
	mu.Unlock()
	if !applied {
		return outcomeStale, err
	}
	return outcomeReverted, err
}
