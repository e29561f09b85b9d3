package guest

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/storage"
	"github.com/google/uuid"
)

func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	ctx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := s.DB.QueryContext(ctx,
		"SELECT doc FROM tasks WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, wrapErr(storage.ResourceTask, "list", "", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, wrapErr(storage.ResourceTask, "list", "", err)
		}
		t, err := decode[models.Task](raw)
		if err != nil {
			return nil, wrapErr(storage.ResourceTask, "decode", "", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(storage.ResourceTask, "list", "", err)
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
	doc, err := encode(task)
	if err != nil {
		return "", wrapErr(storage.ResourceTask, "encode", task.ID, err)
	}
	ctx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO tasks (id, user_id, doc, created_at) VALUES (?, ?, ?, ?)",
		task.ID, userID, doc, task.CreatedAt)
	if err != nil {
		return "", wrapErr(storage.ResourceTask, "create", task.ID, err)
	}
	return task.ID, nil
}

func (s *Store) UpdateTask(ctx context.Context, userID, taskID string, patch models.TaskPatch) error {
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		var raw string
		err := tx.QueryRowContext(ctx,
			"SELECT doc FROM tasks WHERE id = ? AND user_id = ?", taskID, userID).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		task, err := decode[models.Task](raw)
		if err != nil {
			return err
		}
		patch.Apply(&task, s.now())
		doc, err := encode(task)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "UPDATE tasks SET doc = ? WHERE id = ?", doc, taskID)
		return err
	})
	return wrapErr(storage.ResourceTask, "update", taskID, err)
}
