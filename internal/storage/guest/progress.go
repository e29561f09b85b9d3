package guest

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/storage"
)

func (s *Store) GetProgress(ctx context.Context, userID, sprintID string) (*models.UserProgress, error) {
	ctx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	p, err := getProgress(ctx, s.DB, userID, sprintID)
	if err != nil {
		return nil, wrapErr(storage.ResourceProgress, "get", models.ProgressID(userID, sprintID), err)
	}
	return p, nil
}

func getProgress(ctx context.Context, q rowQueryer, userID, sprintID string) (*models.UserProgress, error) {
	var raw string
	err := q.QueryRowContext(ctx,
		"SELECT doc FROM user_progress WHERE id = ?", models.ProgressID(userID, sprintID)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p, err := decode[models.UserProgress](raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putProgress(ctx context.Context, ex execer, p models.UserProgress) error {
	doc, err := encode(p)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO user_progress (id, user_id, sprint_id, doc, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		p.ID, p.UserID, p.SprintID, doc, p.UpdatedAt)
	return err
}

// SaveProgress writes the whole record, replacing any stored one.
func (s *Store) SaveProgress(ctx context.Context, progress models.UserProgress) error {
	if progress.ID == "" {
		progress.ID = models.ProgressID(progress.UserID, progress.SprintID)
	}
	ctx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	return wrapErr(storage.ResourceProgress, "save", progress.ID, putProgress(ctx, s.DB, progress))
}

// UpdateTaskStatus upserts one task slot and recomputes the stored stats against
// the stored sprint. A missing progress record is created.
func (s *Store) UpdateTaskStatus(ctx context.Context, userID, sprintID string, status models.TaskStatus) error {
	return s.mutateProgress(ctx, userID, sprintID, "update task status", func(p *models.UserProgress) {
		p.UpsertTaskStatus(status)
	})
}

// UpdateJournalEntry upserts the journal entry of entry.DayID.
func (s *Store) UpdateJournalEntry(ctx context.Context, userID, sprintID string, entry models.JournalEntry) error {
	return s.mutateProgress(ctx, userID, sprintID, "update journal entry", func(p *models.UserProgress) {
		p.MergeJournalEntry(entry)
	})
}

func (s *Store) mutateProgress(ctx context.Context, userID, sprintID, op string, fn func(*models.UserProgress)) error {
	id := models.ProgressID(userID, sprintID)
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		now := s.now()
		p, err := getProgress(ctx, tx, userID, sprintID)
		if err != nil {
			return err
		}
		if p == nil {
			fresh := models.NewEmptyProgress(userID, sprintID, now)
			p = &fresh
		}
		sprint, err := getSprint(ctx, tx, userID, sprintID)
		if err != nil {
			return err
		}
		fn(p)
		p.Recompute(sprint)
		p.UpdatedAt = now
		return putProgress(ctx, tx, *p)
	})
	return wrapErr(storage.ResourceProgress, op, id, err)
}
