package local

import (
	"context"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/storage"
	"github.com/google/uuid"
)

// Sprint and task lists are stored newest first.

func (s *Store) ListSprints(ctx context.Context, userID string) ([]models.Sprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sprints, err := s.loadSprints(ctx, userID)
	return sprints, wrapErr(storage.ResourceSprint, "list", "", err)
}

func (s *Store) loadSprints(ctx context.Context, userID string) ([]models.Sprint, error) {
	sprints := []models.Sprint{}
	if _, err := s.readDoc(ctx, sprintsKey(userID), &sprints); err != nil {
		return nil, err
	}
	return sprints, nil
}

func (s *Store) GetActiveSprint(ctx context.Context, userID string) (*models.Sprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sprints, err := s.loadSprints(ctx, userID)
	if err != nil {
		return nil, wrapErr(storage.ResourceSprint, "get active", "", err)
	}
	for i := range sprints {
		if sprints[i].Status == models.StatusActive {
			return &sprints[i], nil
		}
	}
	return nil, nil
}

func (s *Store) GetSprint(ctx context.Context, userID, sprintID string) (*models.Sprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sprints, err := s.loadSprints(ctx, userID)
	if err != nil {
		return nil, wrapErr(storage.ResourceSprint, "get", sprintID, err)
	}
	for i := range sprints {
		if sprints[i].ID == sprintID {
			return &sprints[i], nil
		}
	}
	return nil, nil
}

func (s *Store) CreateSprint(ctx context.Context, userID string, sprint models.Sprint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sprint.ID == "" {
		sprint.ID = uuid.NewString()
	}
	sprint.UserID = userID
	now := s.now()
	if sprint.CreatedAt.IsZero() {
		sprint.CreatedAt = now
	}
	if sprint.UpdatedAt.IsZero() {
		sprint.UpdatedAt = now
	}
	sprints, err := s.loadSprints(ctx, userID)
	if err != nil {
		return "", wrapErr(storage.ResourceSprint, "create", sprint.ID, err)
	}
	sprints = append([]models.Sprint{sprint}, sprints...)
	if err := s.writeDoc(ctx, sprintsKey(userID), sprints); err != nil {
		return "", wrapErr(storage.ResourceSprint, "create", sprint.ID, err)
	}
	return sprint.ID, nil
}

func (s *Store) UpdateSprint(ctx context.Context, userID, sprintID string, patch models.SprintPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sprints, err := s.loadSprints(ctx, userID)
	if err != nil {
		return wrapErr(storage.ResourceSprint, "update", sprintID, err)
	}
	for i := range sprints {
		if sprints[i].ID != sprintID {
			continue
		}
		patch.Apply(&sprints[i], s.now())
		return wrapErr(storage.ResourceSprint, "update", sprintID, s.writeDoc(ctx, sprintsKey(userID), sprints))
	}
	return wrapErr(storage.ResourceSprint, "update", sprintID, storage.ErrNotFound)
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := []models.Task{}
	if _, err := s.readDoc(ctx, tasksKey(userID), &tasks); err != nil {
		return nil, wrapErr(storage.ResourceTask, "list", "", err)
	}
	return tasks, nil
}

func (s *Store) CreateTask(ctx context.Context, userID string, task models.Task) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.UserID = userID
	now := s.now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}
	tasks := []models.Task{}
	if _, err := s.readDoc(ctx, tasksKey(userID), &tasks); err != nil {
		return "", wrapErr(storage.ResourceTask, "create", task.ID, err)
	}
	tasks = append([]models.Task{task}, tasks...)
	if err := s.writeDoc(ctx, tasksKey(userID), tasks); err != nil {
		return "", wrapErr(storage.ResourceTask, "create", task.ID, err)
	}
	return task.ID, nil
}

func (s *Store) UpdateTask(ctx context.Context, userID, taskID string, patch models.TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := []models.Task{}
	if _, err := s.readDoc(ctx, tasksKey(userID), &tasks); err != nil {
		return wrapErr(storage.ResourceTask, "update", taskID, err)
	}
	for i := range tasks {
		if tasks[i].ID != taskID {
			continue
		}
		patch.Apply(&tasks[i], s.now())
		return wrapErr(storage.ResourceTask, "update", taskID, s.writeDoc(ctx, tasksKey(userID), tasks))
	}
	return wrapErr(storage.ResourceTask, "update", taskID, storage.ErrNotFound)
}

func (s *Store) GetProgress(ctx context.Context, userID, sprintID string) (*models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p models.UserProgress
	found, err := s.readDoc(ctx, progressKey(userID, sprintID), &p)
	if err != nil {
		return nil, wrapErr(storage.ResourceProgress, "get", models.ProgressID(userID, sprintID), err)
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) SaveProgress(ctx context.Context, progress models.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if progress.ID == "" {
		progress.ID = models.ProgressID(progress.UserID, progress.SprintID)
	}
	err := s.writeDoc(ctx, progressKey(progress.UserID, progress.SprintID), progress)
	return wrapErr(storage.ResourceProgress, "save", progress.ID, err)
}

func (s *Store) UpdateTaskStatus(ctx context.Context, userID, sprintID string, status models.TaskStatus) error {
	return s.mutateProgress(ctx, userID, sprintID, "update task status", func(p *models.UserProgress) {
		p.UpsertTaskStatus(status)
	})
}

func (s *Store) UpdateJournalEntry(ctx context.Context, userID, sprintID string, entry models.JournalEntry) error {
	return s.mutateProgress(ctx, userID, sprintID, "update journal entry", func(p *models.UserProgress) {
		p.MergeJournalEntry(entry)
	})
}

// mutateProgress creates the record when missing and recomputes stats against
// the stored sprint.
func (s *Store) mutateProgress(ctx context.Context, userID, sprintID, op string, fn func(*models.UserProgress)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := models.ProgressID(userID, sprintID)
	now := s.now()

	var p models.UserProgress
	found, err := s.readDoc(ctx, progressKey(userID, sprintID), &p)
	if err != nil {
		return wrapErr(storage.ResourceProgress, op, id, err)
	}
	if !found {
		p = models.NewEmptyProgress(userID, sprintID, now)
	}
	sprints, err := s.loadSprints(ctx, userID)
	if err != nil {
		return wrapErr(storage.ResourceProgress, op, id, err)
	}
	var sprint *models.Sprint
	for i := range sprints {
		if sprints[i].ID == sprintID {
			sprint = &sprints[i]
			break
		}
	}
	fn(&p)
	p.Recompute(sprint)
	p.UpdatedAt = now
	return wrapErr(storage.ResourceProgress, op, id, s.writeDoc(ctx, progressKey(userID, sprintID), p))
}

// SaveNavState persists the navigation history.
func (s *Store) SaveNavState(ctx context.Context, state models.NavState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeDoc(ctx, NavigationKey, state)
}

// LoadNavState returns the persisted navigation history, or nil if none was saved.
func (s *Store) LoadNavState(ctx context.Context) (*models.NavState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var state models.NavState
	found, err := s.readDoc(ctx, NavigationKey, &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}
