package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// OwnershipResolver maps a principal to its user row and its tasks.
type OwnershipResolver struct {
	users UserGateway
	tasks TaskGateway
}

func NewOwnershipResolver(users UserGateway, tasks TaskGateway) *OwnershipResolver {
	return &OwnershipResolver{users: users, tasks: tasks}
}

func (r *OwnershipResolver) ResolveUser(ctx context.Context, username string) (*model.User, error) {
	user, err := r.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, repository.ErrNotFound):
		log.Printf("[warn] user %q not found", username)
		return nil, newError(ErrUserNotFound, "username %q", username)
	default:
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
}

// ResolveOwnedTask returns the task only when it belongs to username. A task
// owned by someone else is reported exactly like a missing one.
func (r *OwnershipResolver) ResolveOwnedTask(ctx context.Context, taskID uint, username string) (*model.Task, error) {
	user, err := r.ResolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	task, err := r.tasks.FindByIDAndUser(ctx, taskID, user.ID)
	switch {
	case err == nil:
		return task, nil
	case errors.Is(err, repository.ErrNotFound):
		log.Printf("[warn] task %d not found for user %q", taskID, username)
		return nil, newError(ErrTaskNotFound, "id %d for user %q", taskID, username)
	default:
		return nil, fmt.Errorf("find task %d: %w", taskID, err)
	}
}
