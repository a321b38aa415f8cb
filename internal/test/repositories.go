package test

import (
	"context"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/domain/repository"
)

// UserRepositoryStub keeps users in memory and honours the repository
// contract: callers only ever see copies and failed updates change nothing.
type UserRepositoryStub struct {
	mu    sync.Mutex
	users map[int64]model.User
	next  int64

	// Err fails every call when set.
	Err error
	// UpdateErr fails Update after the callback ran, like a failed write.
	UpdateErr error
	// Updates counts successful Update calls.
	Updates int
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{users: make(map[int64]model.User), next: 1}
}

// Seed stores users as-is, assigning ids to those without one.
func (s *UserRepositoryStub) Seed(users ...model.User) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		if u.ID == 0 {
			u.ID = s.next
		}
		if u.ID >= s.next {
			s.next = u.ID + 1
		}
		s.users[u.ID] = u.Clone()
		ids = append(ids, u.ID)
	}
	return ids
}

func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	user.ID = s.next
	user.Version = 1
	s.next++
	s.users[user.ID] = user.Clone()
	out := user.Clone()
	return &out, nil
}

func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := u.Clone()
	return &out, nil
}

func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out := u.Clone()
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) FindOrderOwner(ctx context.Context, orderID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	for id, u := range s.users {
		if u.FindOrder(orderID) >= 0 {
			return id, nil
		}
	}
	return 0, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) Update(ctx context.Context, id int64, fn repository.UpdateFunc) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	current, ok := s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	working := current.Clone()
	if err := fn(&working); err != nil {
		return nil, err
	}
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	working.ID = id
	working.Version = current.Version + 1
	s.users[id] = working.Clone()
	s.Updates++
	return &working, nil
}

func (s *UserRepositoryStub) LoadAll(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.User, 0, len(s.users))
	for id := int64(1); id < s.next; id++ {
		if u, ok := s.users[id]; ok {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

func (s *UserRepositoryStub) SaveAll(ctx context.Context, users []model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range users {
		if u.ID == 0 {
			u.ID = s.next
		}
		if u.ID >= s.next {
			s.next = u.ID + 1
		}
		s.users[u.ID] = u.Clone()
	}
	return nil
}

// ActivityRepositoryStub records appended events.
type ActivityRepositoryStub struct {
	mu     sync.Mutex
	Events []model.Activity
	Err    error
}

func (s *ActivityRepositoryStub) Append(ctx context.Context, event model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, event)
	return nil
}

func (s *ActivityRepositoryStub) List(ctx context.Context) ([]model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Activity, len(s.Events))
	copy(out, s.Events)
	return out, nil
}

// SnapshotStub serves snapshots from the in-memory user and activity stubs.
type SnapshotStub struct {
	Users    *UserRepositoryStub
	Activity *ActivityRepositoryStub
}

func (s SnapshotStub) Snapshot(ctx context.Context) ([]model.User, []model.Activity, error) {
	users, err := s.Users.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	events, err := s.Activity.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return users, events, nil
}

// HealthCheckerStub returns Err from every check.
type HealthCheckerStub struct {
	Err error
}

func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

// TransitionRecorderStub remembers recorded transitions and awards.
type TransitionRecorderStub struct {
	mu          sync.Mutex
	Transitions []string
	Points      int
	StoreErrors []string
}

func (s *TransitionRecorderStub) Transition(typ model.OrderType, from, to model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transitions = append(s.Transitions, string(typ)+":"+string(from)+"->"+string(to))
}

func (s *TransitionRecorderStub) PointsAwarded(typ model.OrderType, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Points += points
}

func (s *TransitionRecorderStub) StoreError(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StoreErrors = append(s.StoreErrors, op)
}

var (
	_ repository.UserRepository     = (*UserRepositoryStub)(nil)
	_ repository.ActivityRepository = (*ActivityRepositoryStub)(nil)
	_ repository.SnapshotReader     = SnapshotStub{}
	_ repository.HealthChecker      = HealthCheckerStub{}
)
