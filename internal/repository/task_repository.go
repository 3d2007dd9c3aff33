package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-manager/internal/model"
)

// TaskRepository handles CRUD for tasks. Every read is scoped by owner.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) FindByIDAndUser(ctx context.Context, taskID, userID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

// ListByUser returns one page of the user's tasks. Sort properties must
// already be known task properties; unknown ones are rejected.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uint, req model.PageRequest) (model.Page[model.Task], error) {
	req = req.Normalized()
	page := model.Page[model.Task]{Number: req.Number, Size: req.Size}

	db := r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", userID)
	if err := db.Count(&page.TotalElements).Error; err != nil {
		return page, fmt.Errorf("count tasks: %w", err)
	}

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	for _, order := range req.Sort {
		col, ok := model.TaskSortColumn(order.Property)
		if !ok {
			return page, fmt.Errorf("unknown sort property %q", order.Property)
		}
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: col},
			Desc:   order.Direction == model.Desc,
		})
	}
	query = query.Order("id ASC")

	var tasks []model.Task
	if err := query.Offset(req.Offset()).Limit(req.Size).Find(&tasks).Error; err != nil {
		return page, fmt.Errorf("list tasks: %w", err)
	}
	page.Items = tasks
	return page, nil
}

// ListOpen returns the user's incomplete tasks that carry a due date, earliest first.
func (r *TaskRepository) ListOpen(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed = ? AND due_date IS NOT NULL", userID, false).
		Order("due_date ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list open tasks: %w", err)
	}
	return tasks, nil
}

// Save inserts a task without an id and overwrites the row with the same id otherwise.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	db := r.db.WithContext(ctx)
	if task.ID == 0 {
		if err := db.Create(task).Error; err != nil {
			return fmt.Errorf("create task: %w", translate(err))
		}
		return nil
	}
	if err := db.Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", translate(err))
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
