// Package cloud is the account-backed store on PostgreSQL. Entities are JSONB
// documents keyed by id and owner.
package cloud

import (
	"context"
	"embed"
	"errors"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is the cloud Backend.
type Store struct {
	Pool   *pgxpool.Pool
	logger *log.Logger
	now    func() time.Time
}

var _ storage.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open connects to dsn and runs pending migrations.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("cloud DSN required")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	s := &Store{
		Pool:   pool,
		logger: log.New(log.Writer(), "cloud: ", log.LstdFlags),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Kind() identity.Kind { return identity.KindCloud }

// Close closes the connection pool.
func (s *Store) Close() error {
	if s == nil || s.Pool == nil {
		return nil
	}
	s.Pool.Close()
	return nil
}

// Migrate applies the embedded migrations not yet recorded in schema_migrations.
func (s *Store) Migrate(ctx context.Context) error {
	applied := make(map[int]bool)
	rows, err := s.Pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err == nil {
		for rows.Next() {
			var v int
			if err := rows.Scan(&v); err != nil {
				break
			}
			applied[v] = true
		}
		rows.Close()
	}

	type migration struct {
		version int
		sql     string
	}
	var pending []migration
	files, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".sql") {
			continue
		}
		v, err := strconv.Atoi(strings.SplitN(strings.TrimSuffix(f.Name(), ".sql"), "_", 2)[0])
		if err != nil || applied[v] {
			continue
		}
		body, err := migrationsFS.ReadFile("migrations/" + f.Name())
		if err != nil {
			return err
		}
		pending = append(pending, migration{v, string(body)})
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].version < pending[j].version })

	for _, m := range pending {
		if _, err := s.Pool.Exec(ctx, m.sql); err != nil {
			return err
		}
		if _, err := s.Pool.Exec(ctx,
			`INSERT INTO schema_migrations(version, applied_at) VALUES($1, $2) ON CONFLICT (version) DO NOTHING`,
			m.version, s.now().Unix()); err != nil {
			return err
		}
		s.logger.Printf("applied migration %d", m.version)
	}
	return nil
}

func wrapErr(resource, op, id string, err error) error {
	return storage.WrapErr(identity.KindCloud, resource, op, id, err)
}
