// Package guest is the embedded SQLite store backing guest sessions. Each entity
// is kept as a JSON document next to the columns it is queried by.
package guest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/storage"
	_ "github.com/mattn/go-sqlite3"
)

const defaultDBTimeout = 5 * time.Second

// Store is the guest Backend.
type Store struct {
	DB     *sql.DB
	logger *log.Logger
	now    func() time.Time
}

var _ storage.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (creating if needed) the SQLite file at path and migrates its schema.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open guest db: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between the store's concurrent loads.
	db.SetMaxOpenConns(1)

	s := &Store{
		DB:     db,
		logger: log.New(log.Writer(), "guest: ", log.LstdFlags),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	pingCtx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping guest db: %w", err)
	}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sprints (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			status TEXT NOT NULL,
			doc TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sprints_user ON sprints(user_id, status);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			doc TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);`,
		`CREATE TABLE IF NOT EXISTS user_progress (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			sprint_id TEXT NOT NULL,
			doc TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
	}
	ctx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	for _, query := range queries {
		if _, err := s.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("migrate guest db: %q: %w", query, err)
		}
	}
	return nil
}

// Kind implements storage.Backend.
func (s *Store) Kind() identity.Kind { return identity.KindGuest }

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func (s *Store) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// WithTx runs fn in a transaction, rolling back when fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	ctx, cancel := s.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Printf("rollback failed: %v", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func wrapErr(resource, op, id string, err error) error {
	return storage.WrapErr(identity.KindGuest, resource, op, id, err)
}

func decode[T any](raw string) (T, error) {
	var v T
	err := json.Unmarshal([]byte(raw), &v)
	return v, err
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
