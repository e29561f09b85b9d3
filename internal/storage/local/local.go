// Package local is the device-only store: every namespaced key is one JSON
// document on an afero filesystem.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/storage"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const keyPrefix = "sprintsync"

// NavigationKey holds the app shell's navigation state.
const NavigationKey = keyPrefix + ":navigation"

func sprintsKey(userID string) string { return keyPrefix + ":" + userID + ":sprints" }

func tasksKey(userID string) string { return keyPrefix + ":" + userID + ":tasks" }

func progressKey(userID, sprintID string) string {
	return keyPrefix + ":" + userID + ":progress:" + sprintID
}

// Store is the local-device Backend. A single mutex serializes the
// read-modify-write cycles on documents.
type Store struct {
	fs     afero.Fs
	root   string
	mu     sync.Mutex
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

// New returns a store rooted at root on fsys. The directory is created lazily.
func New(fsys afero.Fs, root string, opts ...Option) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	s := &Store{
		fs:     fsys,
		root:   root,
		logger: log.New(log.Writer(), "local: ", log.LstdFlags),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Kind() identity.Kind { return identity.KindLocal }

func (s *Store) Close() error { return nil }

// Path maps a key to its file; colons are not portable in file names.
func (s *Store) Path(key string) string {
	return path.Join(s.root, strings.ReplaceAll(key, ":", "_")+".json")
}

// readDoc decodes key into v. It reports false when the key has never been written.
func (s *Store) readDoc(ctx context.Context, key string, v any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	data, err := afero.ReadFile(s.fs, s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// writeDoc replaces key atomically: write a temp file, then rename over.
func (s *Store) writeDoc(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.fs.MkdirAll(s.root, 0o755); err != nil {
		return err
	}
	target := s.Path(key)
	tmp := target + "." + uuid.NewString()[:8] + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return err
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	return nil
}

func wrapErr(resource, op, id string, err error) error {
	return storage.WrapErr(identity.KindLocal, resource, op, id, err)
}
