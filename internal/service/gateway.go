package service

import (
	"context"

	"task-manager/internal/model"
)

// TaskGateway abstracts task storage. Lookups that match nothing return
// repository.ErrNotFound.
type TaskGateway interface {
	FindByIDAndUser(ctx context.Context, taskID, userID uint) (*model.Task, error)
	ListByUser(ctx context.Context, userID uint, req model.PageRequest) (model.Page[model.Task], error)
	ListOpen(ctx context.Context, userID uint) ([]model.Task, error)
	Save(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, task *model.Task) error
}

// UserGateway abstracts user storage, persisted or fixed.
type UserGateway interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	ListAll(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
}

// PasswordHasher hashes and verifies credentials with a one-way salted algorithm.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Compare(hash, raw string) bool
}

// TokenIssuer issues bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string, roles []string) (string, error)
}
