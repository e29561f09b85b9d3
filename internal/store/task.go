package store

import (
	"context"
	"sync"

	"github.com/akyairhashvil/sprintsync/internal/models"
)

const taskStoreName = "task"

// TaskStore caches the current user's task list.
type TaskStore struct {
	deps
	router Router

	mu       sync.Mutex
	tasks    []models.Task
	loaded   bool
	loads    int
	err      string
	updating string
	gen      uint64
	versions versionTable
}

func NewTaskStore(router Router, opts ...Option) *TaskStore {
	return &TaskStore{deps: newDeps("tasks: ", opts), router: router}
}

func (s *TaskStore) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// LoadAll fetches the task list once per session.
func (s *TaskStore) LoadAll(ctx context.Context, userID string) {
	s.mu.Lock()
	if s.loaded || len(s.tasks) > 0 {
		s.mu.Unlock()
		return
	}
	s.loads++
	s.err = ""
	gen := s.gen
	s.mu.Unlock()

	var list []models.Task
	b, err := s.router.For(userID)
	if err == nil {
		list, err = b.ListTasks(ctx, userID)
	}
	s.metrics.observe(taskStoreName, "load_all", err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads--
	if gen != s.gen {
		return
	}
	if err != nil {
		s.err = MsgLoadTasks
		s.logger.Printf("load tasks for %s: %v", userID, err)
		return
	}
	s.tasks = list
	s.loaded = true
}

// Create validates and persists a new task, then caches it.
func (s *TaskStore) Create(ctx context.Context, userID string, draft models.TaskDraft) (string, error) {
	task := draft.Build("", userID, s.now())
	id, err := func() (string, error) {
		if err := draft.Validate(); err != nil {
			return "", err
		}
		b, err := s.router.For(userID)
		if err != nil {
			return "", err
		}
		return b.CreateTask(ctx, userID, task)
	}()
	s.metrics.observe(taskStoreName, "create", err)
	if err != nil {
		s.mu.Lock()
		s.err = MsgCreateTask
		s.mu.Unlock()
		s.logger.Printf("create task for %s: %v", userID, err)
		return "", &Error{Op: MsgCreateTask, Err: err}
	}
	task.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]models.Task{task}, s.tasks...)
	s.versions.bump(id)
	s.err = ""
	return id, nil
}

// UpdateOptimistic applies patch to the cached task and writes it through,
// restoring the previous task if the write is rejected.
func (s *TaskStore) UpdateOptimistic(ctx context.Context, userID, taskID string, patch models.TaskPatch) error {
	var gen uint64
	u := optimisticUpdate[*models.Task]{
		apply: func() (*models.Task, uint64) {
			gen = s.gen
			var snap *models.Task
			if i := s.indexLocked(taskID); i >= 0 {
				t := s.tasks[i].Clone()
				snap = &t
				patch.Apply(&s.tasks[i], s.now())
			}
			return snap, s.versions.bump(taskID)
		},
		persist: func(ctx context.Context) error {
			b, err := s.router.For(userID)
			if err != nil {
				return err
			}
			return b.UpdateTask(ctx, userID, taskID, patch)
		},
		revert: func(snap *models.Task, token uint64) bool {
			if s.versions.current(taskID) != token {
				return false
			}
			if snap != nil {
				if i := s.indexLocked(taskID); i >= 0 {
					s.tasks[i] = *snap
				}
			}
			return true
		},
	}
	o, err := u.run(ctx, &s.mu)
	s.metrics.observe(taskStoreName, "update", err)
	if err == nil {
		return nil
	}
	s.logRevert(taskStoreName, taskID, o, err)
	s.mu.Lock()
	if gen == s.gen {
		s.err = MsgUpdateTask
	}
	s.mu.Unlock()
	return &Error{Op: MsgUpdateTask, Err: err}
}

// ToggleStatus marks a task completed or active. Updating reports taskID
// until the write settles.
func (s *TaskStore) ToggleStatus(ctx context.Context, userID, taskID string, completed bool) error {
	s.mu.Lock()
	s.updating = taskID
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		if s.updating == taskID {
			s.updating = ""
		}
		s.mu.Unlock()
	}()
	return s.UpdateOptimistic(ctx, userID, taskID, models.StatusPatch(completed, s.now()))
}

// Tasks returns a copy of the cached list.
func (s *TaskStore) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = s.tasks[i].Clone()
	}
	return out
}

func (s *TaskStore) Get(id string) *models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		t := s.tasks[i].Clone()
		return &t
	}
	return nil
}

func (s *TaskStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads > 0
}

func (s *TaskStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Updating is the id of the task whose status toggle is in flight, or "".
func (s *TaskStore) Updating() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating
}

func (s *TaskStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *TaskStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
	s.loaded = false
	s.err = ""
	s.updating = ""
	s.gen++
	s.versions.reset()
}
