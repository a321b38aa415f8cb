package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/domain/repository"
)

const snapshotVersion = 1

// snapshot is the single JSON blob persisted on disk.
type snapshot struct {
	Version   int              `json:"version"`
	NextID    int64            `json:"nextId"`
	Users     []model.User     `json:"users"`
	Activity  []model.Activity `json:"activity"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// copy duplicates the slices. Users inside are never mutated in place, so a
// shallow copy is enough to stage a write.
func (s snapshot) copy() snapshot {
	c := s
	c.Users = append([]model.User(nil), s.Users...)
	c.Activity = append([]model.Activity(nil), s.Activity...)
	return c
}

func (s *snapshot) indexOf(id int64) int {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// Store keeps the whole user collection in one JSON file. Writes are
// serialised and only become visible once the file has been synced.
type Store struct {
	mu     sync.RWMutex
	file   *os.File
	snap   snapshot
	logger *slog.Logger
}

type userRepository struct {
	store *Store
}

type activityRepository struct {
	store *Store
}

// Open opens or creates the store file at path. A missing or empty file is an empty collection.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, domainErrors.NewIOError("create store dir", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, domainErrors.NewIOError("open store", err)
	}
	s := &Store{file: f, logger: logger}
	if err := s.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.file.Close()
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

func (s *Store) Activity() repository.ActivityRepository {
	return &activityRepository{store: s}
}

// Snapshot copies users and the activity log under one read lock.
func (s *Store) Snapshot(ctx context.Context) ([]model.User, []model.Activity, error) {
	var (
		users  []model.User
		events []model.Activity
	)
	err := s.withRead(ctx, func(snap *snapshot) error {
		users = make([]model.User, len(snap.Users))
		for i := range snap.Users {
			users[i] = snap.Users[i].Clone()
		}
		events = append([]model.Activity(nil), snap.Activity...)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return users, events, nil
}

// HealthCheck reports whether the store file is still reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.withRead(ctx, func(*snapshot) error {
		if _, err := s.file.Stat(); err != nil {
			return domainErrors.NewIOError("stat store", err)
		}
		return nil
	})
}

func (s *Store) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return domainErrors.NewIOError("stat store", err)
	}
	if info.Size() == 0 {
		s.snap = snapshot{Version: snapshotVersion, UpdatedAt: time.Now()}
		return nil
	}
	var snap snapshot
	if err := json.NewDecoder(s.file).Decode(&snap); err != nil {
		return domainErrors.NewIOError("decode store", err)
	}
	s.snap = snap
	return nil
}

func (s *Store) flush(snap snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := s.file.Write(data); err != nil {
		return err
	}
	if err := s.file.Truncate(int64(len(data))); err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *Store) withWrite(ctx context.Context, fn func(*snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	next := s.snap.copy()
	if err := fn(&next); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	if err := s.flush(next); err != nil {
		s.logger.Error("store flush failed", slog.String("error", err.Error()))
		return domainErrors.NewIOError("flush store", err)
	}
	s.snap = next
	return nil
}

func (s *Store) withRead(ctx context.Context, fn func(*snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&s.snap)
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	var created model.User
	err := r.store.withWrite(ctx, func(s *snapshot) error {
		for i := range s.Users {
			if strings.EqualFold(s.Users[i].Email, user.Email) {
				return domainErrors.ErrAlreadyExists
			}
		}
		s.NextID++
		created = user.Clone()
		created.ID = s.NextID
		created.Version = 1
		if created.CreatedAt.IsZero() {
			created.CreatedAt = time.Now()
		}
		s.Users = append(s.Users, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := created.Clone()
	return &out, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var found model.User
	err := r.store.withRead(ctx, func(s *snapshot) error {
		idx := s.indexOf(id)
		if idx < 0 {
			return domainErrors.ErrNotFound
		}
		found = s.Users[idx].Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var found model.User
	err := r.store.withRead(ctx, func(s *snapshot) error {
		for i := range s.Users {
			if strings.EqualFold(s.Users[i].Email, email) {
				found = s.Users[i].Clone()
				return nil
			}
		}
		return domainErrors.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *userRepository) FindOrderOwner(ctx context.Context, orderID string) (int64, error) {
	var owner int64
	err := r.store.withRead(ctx, func(s *snapshot) error {
		for i := range s.Users {
			if s.Users[i].FindOrder(orderID) >= 0 {
				owner = s.Users[i].ID
				return nil
			}
		}
		return domainErrors.ErrNotFound
	})
	return owner, err
}

func (r *userRepository) Update(ctx context.Context, id int64, fn repository.UpdateFunc) (*model.User, error) {
	var updated model.User
	err := r.store.withWrite(ctx, func(s *snapshot) error {
		idx := s.indexOf(id)
		if idx < 0 {
			return domainErrors.ErrNotFound
		}
		u := s.Users[idx].Clone()
		if err := fn(&u); err != nil {
			return err
		}
		u.ID = id
		u.Version++
		s.Users[idx] = u
		updated = u.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *userRepository) LoadAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.store.withRead(ctx, func(s *snapshot) error {
		users = make([]model.User, len(s.Users))
		for i := range s.Users {
			users[i] = s.Users[i].Clone()
		}
		return nil
	})
	return users, err
}

// SaveAll replaces the whole collection. Versions are stored as given so that
// saving what LoadAll returned leaves the content unchanged.
func (r *userRepository) SaveAll(ctx context.Context, users []model.User) error {
	return r.store.withWrite(ctx, func(s *snapshot) error {
		replaced := make([]model.User, 0, len(users))
		for _, u := range users {
			c := u.Clone()
			if c.ID == 0 {
				s.NextID++
				c.ID = s.NextID
			}
			if c.ID > s.NextID {
				s.NextID = c.ID
			}
			replaced = append(replaced, c)
		}
		s.Users = replaced
		return nil
	})
}

// --- ActivityRepository implementation ---

func (r *activityRepository) Append(ctx context.Context, event model.Activity) error {
	if event.Kind == "" {
		return fmt.Errorf("activity kind must be set")
	}
	return r.store.withWrite(ctx, func(s *snapshot) error {
		s.Activity = append(s.Activity, event)
		return nil
	})
}

func (r *activityRepository) List(ctx context.Context) ([]model.Activity, error) {
	var events []model.Activity
	err := r.store.withRead(ctx, func(s *snapshot) error {
		events = append([]model.Activity(nil), s.Activity...)
		return nil
	})
	return events, err
}
