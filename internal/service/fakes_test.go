package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

var errStorage = errors.New("storage unavailable")

type fakeUsers struct {
	byName    map[string]*model.User
	nextID    uint
	createErr error
	findErr   error
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byName: map[string]*model.User{}}
	for _, u := range users {
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
		f.byName[u.Username] = u
	}
	return f
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byName[user.Username]; ok {
		return repository.ErrDuplicate
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.byName[user.Username] = &cp
	return nil
}

func (f *fakeUsers) ListAll(context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(f.byName))
	for _, u := range f.byName {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUsers) Count(context.Context) (int64, error) {
	return int64(len(f.byName)), nil
}

type fakeTasks struct {
	rows      map[uint]model.Task
	nextID    uint
	saveErr   error
	deleteErr error
	listErr   error
	lastReq   model.PageRequest
}

func newFakeTasks(tasks ...model.Task) *fakeTasks {
	f := &fakeTasks{rows: map[uint]model.Task{}, nextID: 100}
	for _, t := range tasks {
		f.rows[t.ID] = t
		if t.ID > f.nextID {
			f.nextID = t.ID
		}
	}
	return f
}

func (f *fakeTasks) FindByIDAndUser(_ context.Context, taskID, userID uint) (*model.Task, error) {
	t, ok := f.rows[taskID]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTasks) ListByUser(_ context.Context, userID uint, req model.PageRequest) (model.Page[model.Task], error) {
	f.lastReq = req
	page := model.Page[model.Task]{Number: req.Number, Size: req.Size}
	if f.listErr != nil {
		return page, f.listErr
	}
	var all []model.Task
	for _, t := range f.rows {
		if t.UserID == userID {
			all = append(all, t)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if len(req.Sort) > 0 && req.Sort[0].Property == "dueDate" && all[i].DueDate != nil && all[j].DueDate != nil {
			if req.Sort[0].Direction == model.Desc {
				return all[i].DueDate.After(*all[j].DueDate)
			}
			return all[i].DueDate.Before(*all[j].DueDate)
		}
		return all[i].ID < all[j].ID
	})
	page.TotalElements = int64(len(all))
	start := req.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}
	page.Items = all[start:end]
	return page, nil
}

func (f *fakeTasks) ListOpen(_ context.Context, userID uint) ([]model.Task, error) {
	var open []model.Task
	for _, t := range f.rows {
		if t.UserID == userID && !t.Completed && t.DueDate != nil {
			open = append(open, t)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].DueDate.Before(*open[j].DueDate) })
	return open, nil
}

func (f *fakeTasks) Save(_ context.Context, task *model.Task) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if task.ID == 0 {
		f.nextID++
		task.ID = f.nextID
	}
	f.rows[task.ID] = *task
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, task *model.Task) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rows, task.ID)
	return nil
}

// plainHasher stands in for bcrypt so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(raw string) (string, error) {
	return "hashed:" + raw, nil
}

func (plainHasher) Compare(hash, raw string) bool {
	return strings.TrimPrefix(hash, "hashed:") == raw && strings.HasPrefix(hash, "hashed:")
}

type fakeTokens struct{}

func (fakeTokens) Issue(subject string, roles []string) (string, error) {
	return "token-for-" + subject + "-" + strings.Join(roles, "+"), nil
}
