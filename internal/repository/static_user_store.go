package repository

import (
	"context"
	"errors"
	"sort"

	"task-manager/internal/model"
)

// ErrReadOnly is returned when writing to a fixed user set.
var ErrReadOnly = errors.New("user store is read-only")

// StaticUserStore serves a fixed set of users from memory. The set does not
// change after construction.
type StaticUserStore struct {
	users map[string]model.User
}

// NewStaticUserStore copies users into the store, assigning ids to those
// without one in input order.
func NewStaticUserStore(users []model.User) *StaticUserStore {
	s := &StaticUserStore{users: make(map[string]model.User, len(users))}
	var next uint
	for _, u := range users {
		if u.ID > next {
			next = u.ID
		}
	}
	for _, u := range users {
		if u.ID == 0 {
			next++
			u.ID = next
		}
		s.users[u.Username] = u
	}
	return s
}

func (s *StaticUserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *StaticUserStore) Create(context.Context, *model.User) error {
	return ErrReadOnly
}

func (s *StaticUserStore) ListAll(context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *StaticUserStore) Count(context.Context) (int64, error) {
	return int64(len(s.users)), nil
}
