package store

import (
	"context"
	"sync"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/storage"
)

const sprintStoreName = "sprint"

// SprintState is a point-in-time copy of the SprintStore.
type SprintState struct {
	Sprints []models.Sprint
	Active  *models.Sprint
	Loading bool
	Error   string
}

// SprintStore caches the current user's sprints and the single active sprint.
type SprintStore struct {
	deps
	router Router

	mu        sync.Mutex
	sprints   []models.Sprint
	active    *models.Sprint
	fetched   map[string]bool
	loads     int
	err       string
	gen       uint64
	versions  versionTable
	listeners []func(prevID, nextID string)
}

func NewSprintStore(router Router, opts ...Option) *SprintStore {
	return &SprintStore{
		deps:    newDeps("sprints: ", opts),
		router:  router,
		fetched: make(map[string]bool),
	}
}

// OnActiveChange registers fn to run whenever the cached active sprint id
// changes. fn runs synchronously on the mutating goroutine with no lock held.
func (s *SprintStore) OnActiveChange(fn func(prevID, nextID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *SprintStore) notify(prevID, nextID string) {
	if prevID == nextID {
		return
	}
	s.mu.Lock()
	listeners := append([]func(string, string){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(prevID, nextID)
	}
}

func (s *SprintStore) activeIDLocked() string {
	if s.active == nil {
		return ""
	}
	return s.active.ID
}

func (s *SprintStore) indexLocked(id string) int {
	for i := range s.sprints {
		if s.sprints[i].ID == id {
			return i
		}
	}
	return -1
}

// LoadAll fetches every sprint of userID unless some are already cached.
func (s *SprintStore) LoadAll(ctx context.Context, userID string) {
	s.mu.Lock()
	if len(s.sprints) > 0 {
		s.mu.Unlock()
		return
	}
	s.loads++
	s.err = ""
	gen := s.gen
	s.mu.Unlock()

	var list []models.Sprint
	b, err := s.router.For(userID)
	if err == nil {
		list, err = b.ListSprints(ctx, userID)
	}
	s.metrics.observe(sprintStoreName, "load_all", err)

	s.mu.Lock()
	s.loads--
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.err = MsgLoadSprints
		s.mu.Unlock()
		s.logger.Printf("load sprints for %s: %v", userID, err)
		return
	}
	s.sprints = list
	prev := s.activeIDLocked()
	if s.active != nil {
		if i := s.indexLocked(s.active.ID); i >= 0 {
			fresh := s.sprints[i].Clone()
			s.active = &fresh
		}
	}
	next := s.activeIDLocked()
	s.mu.Unlock()
	s.notify(prev, next)
}

// LoadActive fetches the active sprint of userID unless one is cached.
func (s *SprintStore) LoadActive(ctx context.Context, userID string) {
	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()
		return
	}
	s.loads++
	s.err = ""
	gen := s.gen
	s.mu.Unlock()

	var sp *models.Sprint
	b, err := s.router.For(userID)
	if err == nil {
		sp, err = b.GetActiveSprint(ctx, userID)
	}
	s.metrics.observe(sprintStoreName, "load_active", err)

	s.mu.Lock()
	s.loads--
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.err = MsgLoadActiveSprint
		s.mu.Unlock()
		s.logger.Printf("load active sprint for %s: %v", userID, err)
		return
	}
	prev := s.activeIDLocked()
	if sp != nil {
		active := sp.Clone()
		s.active = &active
		if i := s.indexLocked(sp.ID); i >= 0 {
			s.sprints[i] = sp.Clone()
		}
	}
	next := s.activeIDLocked()
	s.mu.Unlock()
	s.notify(prev, next)
}

// LoadOne returns sprintID from the cache, fetching it at most once per
// session on a miss. It returns nil when the sprint does not exist or the
// fetch failed.
func (s *SprintStore) LoadOne(ctx context.Context, userID, sprintID string) *models.Sprint {
	s.mu.Lock()
	if i := s.indexLocked(sprintID); i >= 0 {
		out := s.sprints[i].Clone()
		s.mu.Unlock()
		return &out
	}
	if s.fetched[sprintID] {
		s.mu.Unlock()
		return nil
	}
	s.fetched[sprintID] = true
	s.loads++
	gen := s.gen
	s.mu.Unlock()

	var sp *models.Sprint
	b, err := s.router.For(userID)
	if err == nil {
		sp, err = b.GetSprint(ctx, userID, sprintID)
	}
	s.metrics.observe(sprintStoreName, "load_one", err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads--
	if gen != s.gen {
		return nil
	}
	if err != nil {
		delete(s.fetched, sprintID)
		s.err = MsgLoadSprint
		s.logger.Printf("load sprint %s: %v", sprintID, err)
		return nil
	}
	if sp == nil {
		return nil
	}
	if i := s.indexLocked(sp.ID); i >= 0 {
		s.sprints[i] = sp.Clone()
	} else {
		s.sprints = append(s.sprints, sp.Clone())
	}
	out := sp.Clone()
	return &out
}

// Create validates and persists a new sprint, then caches it. An active
// sprint demotes every other cached active sprint to completed; demotions
// are written through best effort.
func (s *SprintStore) Create(ctx context.Context, userID string, draft models.SprintDraft) (string, error) {
	fail := func(err error) (string, error) {
		s.mu.Lock()
		s.err = MsgCreateSprint
		s.mu.Unlock()
		s.metrics.observe(sprintStoreName, "create", err)
		s.logger.Printf("create sprint for %s: %v", userID, err)
		return "", &Error{Op: MsgCreateSprint, Err: err}
	}
	if err := draft.Validate(); err != nil {
		return fail(err)
	}
	b, err := s.router.For(userID)
	if err != nil {
		return fail(err)
	}
	now := s.now()
	sprint := draft.Build("", userID, now)
	id, err := b.CreateSprint(ctx, userID, sprint)
	if err != nil {
		return fail(err)
	}
	sprint.ID = id
	s.metrics.observe(sprintStoreName, "create", nil)

	s.mu.Lock()
	prev := s.activeIDLocked()
	var demoted []demotion
	if sprint.Status == models.StatusActive {
		demoted = s.demoteOthersLocked(id, now)
		active := sprint.Clone()
		s.active = &active
	}
	s.sprints = append(s.sprints, sprint)
	s.versions.bump(id)
	s.err = ""
	next := s.activeIDLocked()
	s.mu.Unlock()
	s.notify(prev, next)

	s.writeDemotions(ctx, b, userID, demoted)
	return id, nil
}

// demotion is a cached sprint moved from active to completed, with its
// pre-demotion copy and the version token of the demotion.
type demotion struct {
	prev  models.Sprint
	token uint64
}

// demoteOthersLocked marks every cached active sprint other than keepID
// completed.
func (s *SprintStore) demoteOthersLocked(keepID string, now time.Time) []demotion {
	var out []demotion
	for i := range s.sprints {
		if s.sprints[i].Status != models.StatusActive || s.sprints[i].ID == keepID {
			continue
		}
		prev := s.sprints[i].Clone()
		s.sprints[i].Status = models.StatusCompleted
		s.sprints[i].UpdatedAt = now
		out = append(out, demotion{prev: prev, token: s.versions.bump(s.sprints[i].ID)})
	}
	return out
}

// writeDemotions persists demotions best effort.
func (s *SprintStore) writeDemotions(ctx context.Context, b storage.Backend, userID string, demoted []demotion) {
	completed := models.StatusCompleted
	for _, d := range demoted {
		if err := b.UpdateSprint(ctx, userID, d.prev.ID, models.SprintPatch{Status: &completed}); err != nil {
			s.logger.Printf("demote sprint %s: %v", d.prev.ID, err)
		}
	}
}

type sprintSnapshot struct {
	entry   *models.Sprint
	active  *models.Sprint
	demoted []demotion
}

// UpdateOptimistic applies patch to the cached sprint, then writes it
// through. A patch that activates the sprint demotes the previously active
// one. A rejected write restores the previous cache state unless a newer
// update of the same sprint has been applied meanwhile; the active slot is
// only restored while it still belongs to this sprint.
func (s *SprintStore) UpdateOptimistic(ctx context.Context, userID, sprintID string, patch models.SprintPatch) error {
	var prevActive, nextActive string
	var gen uint64
	var demoted []demotion
	u := optimisticUpdate[sprintSnapshot]{
		apply: func() (sprintSnapshot, uint64) {
			gen = s.gen
			prevActive = s.activeIDLocked()
			snap := sprintSnapshot{}
			if s.active != nil {
				a := s.active.Clone()
				snap.active = &a
			}
			now := s.now()
			if patch.Status != nil && *patch.Status == models.StatusActive {
				snap.demoted = s.demoteOthersLocked(sprintID, now)
				demoted = snap.demoted
			}
			if i := s.indexLocked(sprintID); i >= 0 {
				e := s.sprints[i].Clone()
				snap.entry = &e
				patch.Apply(&s.sprints[i], now)
				s.applyActiveLocked(s.sprints[i])
			} else if s.active != nil && s.active.ID == sprintID {
				updated := s.active.Clone()
				patch.Apply(&updated, now)
				s.applyActiveLocked(updated)
			}
			if s.active != nil && s.active.ID == sprintID {
				patch.Apply(s.active, now)
			}
			nextActive = s.activeIDLocked()
			return snap, s.versions.bump(sprintID)
		},
		persist: func(ctx context.Context) error {
			s.notify(prevActive, nextActive)
			b, err := s.router.For(userID)
			if err != nil {
				return err
			}
			return b.UpdateSprint(ctx, userID, sprintID, patch)
		},
		revert: func(snap sprintSnapshot, token uint64) bool {
			if s.versions.current(sprintID) != token {
				return false
			}
			prevActive = s.activeIDLocked()
			if snap.entry != nil {
				if i := s.indexLocked(sprintID); i >= 0 {
					s.sprints[i] = *snap.entry
				}
			}
			restored := make(map[string]bool)
			for _, d := range snap.demoted {
				if s.versions.current(d.prev.ID) != d.token {
					continue
				}
				if i := s.indexLocked(d.prev.ID); i >= 0 {
					s.sprints[i] = d.prev.Clone()
					restored[d.prev.ID] = true
				}
			}
			s.restoreActiveLocked(sprintID, snap.active, restored)
			nextActive = s.activeIDLocked()
			return true
		},
	}

	o, err := u.run(ctx, &s.mu)
	s.metrics.observe(sprintStoreName, "update", err)
	if err == nil {
		if len(demoted) > 0 {
			if b, err := s.router.For(userID); err == nil {
				s.writeDemotions(ctx, b, userID, demoted)
			}
		}
		return nil
	}
	s.logRevert(sprintStoreName, sprintID, o, err)
	s.mu.Lock()
	if gen == s.gen {
		s.err = MsgUpdateSprint
	}
	s.mu.Unlock()
	if o == outcomeReverted {
		s.notify(prevActive, nextActive)
	}
	return &Error{Op: MsgUpdateSprint, Err: err}
}

// restoreActiveLocked puts back the active slot a reverted update of
// sprintID replaced. A slot taken over by another sprint since is left
// alone, and a previously active sprint only returns if its demotion was
// undone.
func (s *SprintStore) restoreActiveLocked(sprintID string, prev *models.Sprint, restored map[string]bool) {
	owned := (s.active != nil && s.active.ID == sprintID) ||
		(s.active == nil && prev != nil && prev.ID == sprintID)
	if !owned {
		return
	}
	switch {
	case prev == nil:
		s.active = nil
	case prev.ID == sprintID || restored[prev.ID]:
		s.active = prev
	default:
		s.active = nil
	}
}

// applyActiveLocked keeps the active slot in step with a sprint's status.
func (s *SprintStore) applyActiveLocked(sp models.Sprint) {
	switch {
	case sp.Status == models.StatusActive && (s.active == nil || s.active.ID != sp.ID):
		a := sp.Clone()
		s.active = &a
	case sp.Status != models.StatusActive && s.active != nil && s.active.ID == sp.ID:
		s.active = nil
	}
}

// Sprints returns a copy of the cached list.
func (s *SprintStore) Sprints() []models.Sprint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Sprint, len(s.sprints))
	for i := range s.sprints {
		out[i] = s.sprints[i].Clone()
	}
	return out
}

// Active returns a copy of the active sprint, or nil.
func (s *SprintStore) Active() *models.Sprint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	out := s.active.Clone()
	return &out
}

// Get returns a cached sprint by id without fetching.
func (s *SprintStore) Get(id string) *models.Sprint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.ID == id {
		out := s.active.Clone()
		return &out
	}
	if i := s.indexLocked(id); i >= 0 {
		out := s.sprints[i].Clone()
		return &out
	}
	return nil
}

func (s *SprintStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads > 0
}

func (s *SprintStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *SprintStore) Snapshot() SprintState {
	sprints := s.Sprints()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := SprintState{Sprints: sprints, Loading: s.loads > 0, Error: s.err}
	if s.active != nil {
		a := s.active.Clone()
		st.Active = &a
	}
	return st
}

func (s *SprintStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// ClearAll drops every cached sprint. Loads and writes still in flight for
// the previous state are discarded when they complete.
func (s *SprintStore) ClearAll() {
	s.mu.Lock()
	prev := s.activeIDLocked()
	s.sprints = nil
	s.active = nil
	s.fetched = make(map[string]bool)
	s.err = ""
	s.gen++
	s.versions.reset()
	s.mu.Unlock()
	s.notify(prev, "")
}
