package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/storage"
)

const progressStoreName = "progress"

// SprintSource looks up cached sprints; stats are derived against the real
// slot count of the sprint.
type SprintSource interface {
	Get(id string) *models.Sprint
}

// ProgressStore caches the progress record of the sprint being viewed.
type ProgressStore struct {
	deps
	router  Router
	sprints SprintSource

	mu       sync.Mutex
	progress *models.UserProgress
	// confirmed is false while progress is an in-memory base built without
	// a successful read of the stored record.
	confirmed bool
	loads     int
	err      string
	updating map[string]bool
	gen      uint64
	versions versionTable
}

func NewProgressStore(router Router, sprints SprintSource, opts ...Option) *ProgressStore {
	return &ProgressStore{
		deps:     newDeps("progress: ", opts),
		router:   router,
		sprints:  sprints,
		updating: make(map[string]bool),
	}
}

func (s *ProgressStore) cachedLocked(userID, sprintID string) bool {
	return s.progress != nil && s.progress.UserID == userID && s.progress.SprintID == sprintID
}

func (s *ProgressStore) cachedCopyLocked(userID, sprintID string) *models.UserProgress {
	if !s.cachedLocked(userID, sprintID) {
		return nil
	}
	out := s.progress.Clone()
	return &out
}

// Load returns the progress of userID in sprintID. Guest and local-device
// users always get a record: a missing one is synthesized and saved. Cloud
// users get nil until their first write creates it. A record that was only
// built in memory by a write is fetched again.
func (s *ProgressStore) Load(ctx context.Context, userID, sprintID string) *models.UserProgress {
	id := models.ProgressID(userID, sprintID)
	s.mu.Lock()
	if s.confirmed && s.cachedLocked(userID, sprintID) {
		out := s.progress.Clone()
		s.mu.Unlock()
		return &out
	}
	s.loads++
	s.err = ""
	gen := s.gen
	version := s.versions.current(id)
	s.mu.Unlock()

	p, err := s.fetch(ctx, userID, sprintID)
	s.metrics.observe(progressStoreName, "load", err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads--
	if gen != s.gen {
		return nil
	}
	if err != nil {
		s.err = MsgLoadProgress
		s.logger.Printf("load progress %s: %v", id, err)
		return nil
	}
	if s.versions.current(id) != version {
		// A write landed while fetching; its optimistic state wins.
		return s.cachedCopyLocked(userID, sprintID)
	}
	if p == nil {
		return s.cachedCopyLocked(userID, sprintID)
	}
	s.progress = p
	s.confirmed = true
	out := p.Clone()
	return &out
}

func (s *ProgressStore) fetch(ctx context.Context, userID, sprintID string) (*models.UserProgress, error) {
	b, err := s.router.For(userID)
	if err != nil {
		return nil, err
	}
	p, err := b.GetProgress(ctx, userID, sprintID)
	if err != nil || p != nil {
		return p, err
	}
	if s.router.Classify(userID) == identity.KindCloud {
		s.logger.Printf("no progress record for %s yet", models.ProgressID(userID, sprintID))
		return nil, nil
	}
	fresh := models.NewEmptyProgress(userID, sprintID, s.now())
	if err := b.SaveProgress(ctx, fresh); err != nil {
		s.logger.Printf("save synthesized progress %s: %v", fresh.ID, err)
	}
	return &fresh, nil
}

// UpdateTaskStatus marks one task slot completed or not. IsUpdating reports
// the slot's key until the write settles.
func (s *ProgressStore) UpdateTaskStatus(ctx context.Context, userID, sprintID, dayID string, taskType models.TaskType, taskIndex int, completed bool) error {
	key := models.StatusKey(dayID, taskType, taskIndex)
	s.mu.Lock()
	s.updating[key] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.updating, key)
		s.mu.Unlock()
	}()

	var status models.TaskStatus
	return s.mutate(ctx, userID, sprintID, "update_task_status", MsgUpdateTaskStatus,
		func(p *models.UserProgress, now time.Time) {
			status = models.TaskStatus{DayID: dayID, TaskType: taskType, TaskIndex: taskIndex, Completed: completed}
			if completed {
				at := now
				status.CompletedAt = &at
			}
			p.UpsertTaskStatus(status)
		},
		func(ctx context.Context, b storage.Backend) error {
			return b.UpdateTaskStatus(ctx, userID, sprintID, status)
		})
}

// UpdateJournal writes the journal entry of dayID. The entry keeps its first
// CreatedAt.
func (s *ProgressStore) UpdateJournal(ctx context.Context, userID, sprintID, dayID, content string) error {
	var entry models.JournalEntry
	return s.mutate(ctx, userID, sprintID, "update_journal", MsgSaveJournalEntry,
		func(p *models.UserProgress, now time.Time) {
			entry = p.UpsertJournalEntry(dayID, content, now)
		},
		func(ctx context.Context, b storage.Backend) error {
			return b.UpdateJournalEntry(ctx, userID, sprintID, entry)
		})
}

// readBase fetches the stored record a write builds on when none is cached.
// ok is false when the read failed.
func (s *ProgressStore) readBase(ctx context.Context, userID, sprintID string) (p *models.UserProgress, ok bool) {
	b, err := s.router.For(userID)
	if err == nil {
		p, err = b.GetProgress(ctx, userID, sprintID)
	}
	if err != nil {
		s.logger.Printf("read progress %s before write: %v", models.ProgressID(userID, sprintID), err)
		return nil, false
	}
	return p, true
}

type progressSnapshot struct {
	progress  *models.UserProgress
	confirmed bool
}

// mutate applies change to the cached record and persists it. With no
// record cached for the sprint, the stored one is read first; a new record
// is synthesized when there is none, and left unconfirmed when the read
// failed so the next Load fetches the full record.
func (s *ProgressStore) mutate(
	ctx context.Context,
	userID, sprintID, op, msg string,
	change func(p *models.UserProgress, now time.Time),
	persist func(ctx context.Context, b storage.Backend) error,
) error {
	var sprint *models.Sprint
	if s.sprints != nil {
		sprint = s.sprints.Get(sprintID)
	}
	id := models.ProgressID(userID, sprintID)

	s.mu.Lock()
	cached := s.cachedLocked(userID, sprintID)
	baseGen := s.gen
	s.mu.Unlock()
	var base *models.UserProgress
	baseOK := true
	if !cached {
		base, baseOK = s.readBase(ctx, userID, sprintID)
	}

	var gen uint64
	u := optimisticUpdate[progressSnapshot]{
		apply: func() (progressSnapshot, uint64) {
			gen = s.gen
			snap := progressSnapshot{confirmed: s.confirmed}
			if s.progress != nil {
				c := s.progress.Clone()
				snap.progress = &c
			}
			now := s.now()
			if !s.cachedLocked(userID, sprintID) {
				if base != nil && baseGen == s.gen {
					c := base.Clone()
					s.progress = &c
				} else {
					fresh := models.NewEmptyProgress(userID, sprintID, now)
					s.progress = &fresh
				}
				s.confirmed = baseOK && baseGen == s.gen
			}
			change(s.progress, now)
			s.progress.Recompute(sprint)
			s.progress.UpdatedAt = now
			return snap, s.versions.bump(id)
		},
		persist: func(ctx context.Context) error {
			b, err := s.router.For(userID)
			if err != nil {
				return err
			}
			return persist(ctx, b)
		},
		revert: func(snap progressSnapshot, token uint64) bool {
			if s.versions.current(id) != token {
				return false
			}
			s.progress = snap.progress
			s.confirmed = snap.confirmed
			return true
		},
	}
	o, err := u.run(ctx, &s.mu)
	s.metrics.observe(progressStoreName, op, err)
	if err == nil {
		return nil
	}
	s.logRevert(progressStoreName, id, o, err)
	s.mu.Lock()
	if gen == s.gen {
		s.err = msg
	}
	s.mu.Unlock()
	return &Error{Op: msg, Err: err}
}

// Progress returns a copy of the cached record, or nil.
func (s *ProgressStore) Progress() *models.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress == nil {
		return nil
	}
	out := s.progress.Clone()
	return &out
}

func (s *ProgressStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads > 0
}

func (s *ProgressStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// IsUpdating reports whether the task slot key has a write in flight.
func (s *ProgressStore) IsUpdating(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating[key]
}

// Updating lists the keys of all in-flight task slot writes, sorted.
func (s *ProgressStore) Updating() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.updating))
	for k := range s.updating {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *ProgressStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *ProgressStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = nil
	s.confirmed = false
	s.err = ""
	s.gen++
	s.versions.reset()
}
