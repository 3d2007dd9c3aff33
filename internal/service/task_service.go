package service

import (
	"context"
	"log"
	"time"

	"task-manager/internal/model"
)

// TaskDraft carries the client-editable fields of a task. Ownership is
// never taken from a draft.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     *time.Time
	Completed   bool
}

// DefaultSort orders task listings when the caller asks for no order.
var DefaultSort = []model.SortOrder{{Property: "dueDate", Direction: model.Asc}}

// TaskService wraps ownership-scoped task operations.
type TaskService struct {
	tasks  TaskGateway
	owners *OwnershipResolver
}

func NewTaskService(tasks TaskGateway, users UserGateway) *TaskService {
	return &TaskService{tasks: tasks, owners: NewOwnershipResolver(users, tasks)}
}

func (s *TaskService) GetTask(ctx context.Context, taskID uint, principal string) (*model.Task, error) {
	return s.owners.ResolveOwnedTask(ctx, taskID, principal)
}

// ListTasks returns one page of the principal's tasks. An empty page is
// reported as ErrNoTasksFound, and so is any storage fault.
func (s *TaskService) ListTasks(ctx context.Context, req model.PageRequest, principal string) (model.Page[model.Task], error) {
	user, err := s.owners.ResolveUser(ctx, principal)
	if err != nil {
		return model.Page[model.Task]{}, err
	}

	if len(req.Sort) == 0 {
		req.Sort = DefaultSort
	}
	req = req.Normalized()

	page, err := s.tasks.ListByUser(ctx, user.ID, req)
	if err != nil {
		log.Printf("[error] list tasks for user %q: %v", principal, err)
		return model.Page[model.Task]{}, wrapError(ErrNoTasksFound, err, "fetching tasks for user %q", principal)
	}
	if page.Empty() {
		log.Printf("[warn] no tasks found for user %q", principal)
		return page, newError(ErrNoTasksFound, "user %q", principal)
	}
	log.Printf("[info] fetched %d of %d tasks for user %q", len(page.Items), page.TotalElements, principal)
	return page, nil
}

func (s *TaskService) CreateTask(ctx context.Context, draft TaskDraft, principal string) (*model.Task, error) {
	user, err := s.owners.ResolveUser(ctx, principal)
	if err != nil {
		return nil, err
	}

	task := model.Task{
		UserID:      user.ID,
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Completed:   draft.Completed,
	}
	if err := s.tasks.Save(ctx, &task); err != nil {
		log.Printf("[error] create task for user %q: %v", principal, err)
		return nil, wrapError(ErrTaskCreation, err, "user %q", principal)
	}

	log.Printf("[info] task %d created for user %q", task.ID, principal)
	return &task, nil
}

// UpdateTask replaces the editable fields of an owned task. The stored
// owner is kept whatever the draft says.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint, draft TaskDraft, principal string) error {
	existing, err := s.owners.ResolveOwnedTask(ctx, taskID, principal)
	if err != nil {
		return err
	}

	updated := model.Task{
		ID:          existing.ID,
		UserID:      existing.UserID,
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Completed:   draft.Completed,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.tasks.Save(ctx, &updated); err != nil {
		log.Printf("[error] update task %d for user %q: %v", taskID, principal, err)
		return wrapError(ErrTaskUpdate, err, "task %d for user %q", taskID, principal)
	}

	log.Printf("[info] task %d updated for user %q", taskID, principal)
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID uint, principal string) error {
	existing, err := s.owners.ResolveOwnedTask(ctx, taskID, principal)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, existing); err != nil {
		log.Printf("[error] delete task %d for user %q: %v", taskID, principal, err)
		return wrapError(ErrTaskDelete, err, "task %d for user %q", taskID, principal)
	}

	log.Printf("[info] task %d deleted for user %q", taskID, principal)
	return nil
}
