package cloud

import (
	"context"
	"errors"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Store) ListSprints(ctx context.Context, userID string) ([]models.Sprint, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT doc FROM sprints WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, wrapErr(storage.ResourceSprint, "list", "", err)
	}
	sprints, err := pgx.CollectRows(rows, pgx.RowTo[models.Sprint])
	if err != nil {
		return nil, wrapErr(storage.ResourceSprint, "list", "", err)
	}
	if sprints == nil {
		sprints = []models.Sprint{}
	}
	return sprints, nil
}

func (s *Store) GetActiveSprint(ctx context.Context, userID string) (*models.Sprint, error) {
	var sp models.Sprint
	err := s.Pool.QueryRow(ctx,
		`SELECT doc FROM sprints WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 1`,
		userID, string(models.StatusActive)).Scan(&sp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(storage.ResourceSprint, "get active", "", err)
	}
	return &sp, nil
}

func (s *Store) GetSprint(ctx context.Context, userID, sprintID string) (*models.Sprint, error) {
	sp, err := getSprint(ctx, s.Pool, userID, sprintID, false)
	if err != nil {
		return nil, wrapErr(storage.ResourceSprint, "get", sprintID, err)
	}
	return sp, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getSprint(ctx context.Context, q querier, userID, sprintID string, forUpdate bool) (*models.Sprint, error) {
	query := `SELECT doc FROM sprints WHERE id = $1 AND user_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var sp models.Sprint
	err := q.QueryRow(ctx, query, sprintID, userID).Scan(&sp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *Store) CreateSprint(ctx context.Context, userID string, sprint models.Sprint) (string, error) {
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
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO sprints (id, user_id, status, doc, created_at) VALUES ($1, $2, $3, $4, $5)`,
		sprint.ID, userID, string(sprint.Status), sprint, sprint.CreatedAt)
	if err != nil {
		return "", wrapErr(storage.ResourceSprint, "create", sprint.ID, err)
	}
	return sprint.ID, nil
}

func (s *Store) UpdateSprint(ctx context.Context, userID, sprintID string, patch models.SprintPatch) error {
	err := pgx.BeginFunc(ctx, s.Pool, func(tx pgx.Tx) error {
		sp, err := getSprint(ctx, tx, userID, sprintID, true)
		if err != nil {
			return err
		}
		if sp == nil {
			return storage.ErrNotFound
		}
		patch.Apply(sp, s.now())
		_, err = tx.Exec(ctx,
			`UPDATE sprints SET status = $1, doc = $2 WHERE id = $3 AND user_id = $4`,
			string(sp.Status), *sp, sprintID, userID)
		return err
	})
	return wrapErr(storage.ResourceSprint, "update", sprintID, err)
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT doc FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, wrapErr(storage.ResourceTask, "list", "", err)
	}
	tasks, err := pgx.CollectRows(rows, pgx.RowTo[models.Task])
	if err != nil {
		return nil, wrapErr(storage.ResourceTask, "list", "", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *Store) CreateTask(ctx context.Context, userID string, task models.Task) (string, error) {
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
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO tasks (id, user_id, doc, created_at) VALUES ($1, $2, $3, $4)`,
		task.ID, userID, task, task.CreatedAt)
	if err != nil {
		return "", wrapErr(storage.ResourceTask, "create", task.ID, err)
	}
	return task.ID, nil
}

func (s *Store) UpdateTask(ctx context.Context, userID, taskID string, patch models.TaskPatch) error {
	err := pgx.BeginFunc(ctx, s.Pool, func(tx pgx.Tx) error {
		var task models.Task
		err := tx.QueryRow(ctx,
			`SELECT doc FROM tasks WHERE id = $1 AND user_id = $2 FOR UPDATE`, taskID, userID).Scan(&task)
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		patch.Apply(&task, s.now())
		_, err = tx.Exec(ctx, `UPDATE tasks SET doc = $1 WHERE id = $2`, task, taskID)
		return err
	})
	return wrapErr(storage.ResourceTask, "update", taskID, err)
}

// GetProgress returns nil when no record exists; cloud accounts get their
// record on first write, never on read.
func (s *Store) GetProgress(ctx context.Context, userID, sprintID string) (*models.UserProgress, error) {
	id := models.ProgressID(userID, sprintID)
	var p models.UserProgress
	err := s.Pool.QueryRow(ctx, `SELECT doc FROM user_progress WHERE id = $1`, id).Scan(&p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(storage.ResourceProgress, "get", id, err)
	}
	return &p, nil
}

func (s *Store) SaveProgress(ctx context.Context, progress models.UserProgress) error {
	if progress.ID == "" {
		progress.ID = models.ProgressID(progress.UserID, progress.SprintID)
	}
	_, err := s.Pool.Exec(ctx, upsertProgressSQL,
		progress.ID, progress.UserID, progress.SprintID, progress, progress.UpdatedAt)
	return wrapErr(storage.ResourceProgress, "save", progress.ID, err)
}

const upsertProgressSQL = `
	INSERT INTO user_progress (id, user_id, sprint_id, doc, updated_at) VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`

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

func (s *Store) mutateProgress(ctx context.Context, userID, sprintID, op string, fn func(*models.UserProgress)) error {
	id := models.ProgressID(userID, sprintID)
	err := pgx.BeginFunc(ctx, s.Pool, func(tx pgx.Tx) error {
		now := s.now()
		var p models.UserProgress
		err := tx.QueryRow(ctx, `SELECT doc FROM user_progress WHERE id = $1 FOR UPDATE`, id).Scan(&p)
		if errors.Is(err, pgx.ErrNoRows) {
			p = models.NewEmptyProgress(userID, sprintID, now)
		} else if err != nil {
			return err
		}
		sprint, err := getSprint(ctx, tx, userID, sprintID, false)
		if err != nil {
			return err
		}
		fn(&p)
		p.Recompute(sprint)
		p.UpdatedAt = now
		_, err = tx.Exec(ctx, upsertProgressSQL, p.ID, p.UserID, p.SprintID, p, p.UpdatedAt)
		return err
	})
	return wrapErr(storage.ResourceProgress, op, id, err)
}
