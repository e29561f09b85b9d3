package guest

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/storage"
	"github.com/google/uuid"
)

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) ListSprints(ctx context.Context, userID string) ([]models.Sprint, error) {
	ctx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := s.DB.QueryContext(ctx,
		"SELECT doc FROM sprints WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, wrapErr(storage.ResourceSprint, "list", "", err)
	}
	defer rows.Close()

	sprints := []models.Sprint{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, wrapErr(storage.ResourceSprint, "list", "", err)
		}
		sp, err := decode[models.Sprint](raw)
		if err != nil {
			return nil, wrapErr(storage.ResourceSprint, "decode", "", err)
		}
		sprints = append(sprints, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(storage.ResourceSprint, "list", "", err)
	}
	return sprints, nil
}

func (s *Store) GetActiveSprint(ctx context.Context, userID string) (*models.Sprint, error) {
	ctx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var raw string
	err := s.DB.QueryRowContext(ctx,
		"SELECT doc FROM sprints WHERE user_id = ? AND status = ? ORDER BY created_at DESC LIMIT 1",
		userID, string(models.StatusActive)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(storage.ResourceSprint, "get active", "", err)
	}
	sp, err := decode[models.Sprint](raw)
	if err != nil {
		return nil, wrapErr(storage.ResourceSprint, "decode", "", err)
	}
	return &sp, nil
}

func (s *Store) GetSprint(ctx context.Context, userID, sprintID string) (*models.Sprint, error) {
	ctx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	sp, err := getSprint(ctx, s.DB, userID, sprintID)
	if err != nil {
		return nil, wrapErr(storage.ResourceSprint, "get", sprintID, err)
	}
	return sp, nil
}

func getSprint(ctx context.Context, q rowQueryer, userID, sprintID string) (*models.Sprint, error) {
	var raw string
	err := q.QueryRowContext(ctx,
		"SELECT doc FROM sprints WHERE id = ? AND user_id = ?", sprintID, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sp, err := decode[models.Sprint](raw)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// CreateSprint stores sprint, assigning an id when it has none.
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
	doc, err := encode(sprint)
	if err != nil {
		return "", wrapErr(storage.ResourceSprint, "encode", sprint.ID, err)
	}
	ctx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO sprints (id, user_id, status, doc, created_at) VALUES (?, ?, ?, ?, ?)",
		sprint.ID, userID, string(sprint.Status), doc, sprint.CreatedAt)
	if err != nil {
		return "", wrapErr(storage.ResourceSprint, "create", sprint.ID, err)
	}
	return sprint.ID, nil
}

func (s *Store) UpdateSprint(ctx context.Context, userID, sprintID string, patch models.SprintPatch) error {
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		sp, err := getSprint(ctx, tx, userID, sprintID)
		if err != nil {
			return err
		}
		if sp == nil {
			return storage.ErrNotFound
		}
		patch.Apply(sp, s.now())
		doc, err := encode(sp)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE sprints SET status = ?, doc = ? WHERE id = ? AND user_id = ?",
			string(sp.Status), doc, sprintID, userID)
		return err
	})
	return wrapErr(storage.ResourceSprint, "update", sprintID, err)
}
