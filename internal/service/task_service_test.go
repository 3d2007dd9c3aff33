package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"task-manager/internal/model"
)

func due(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

var (
	leonardo     = &model.User{ID: 200, Username: "leonardo", Roles: []model.Role{{Name: model.RoleTaskOwner}}}
	michelangelo = &model.User{ID: 201, Username: "michelangelo", Roles: []model.Role{{Name: model.RoleTaskOwner}}}
)

func newTestTaskService(tasks ...model.Task) (*TaskService, *fakeTasks) {
	store := newFakeTasks(tasks...)
	return NewTaskService(store, newFakeUsers(leonardo, michelangelo)), store
}

func TestGetTask_Success(t *testing.T) {
	svc, _ := newTestTaskService(model.Task{ID: 103, UserID: 200, Title: "Wash the car"})

	task, err := svc.GetTask(context.Background(), 103, "leonardo")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if task.Title != "Wash the car" {
		t.Errorf("expected 'Wash the car', got %q", task.Title)
	}
}

func TestGetTask_UserNotFound(t *testing.T) {
	svc, _ := newTestTaskService(model.Task{ID: 103, UserID: 200})

	_, err := svc.GetTask(context.Background(), 103, "raphael")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetTask_OtherOwnerLooksMissing(t *testing.T) {
	svc, _ := newTestTaskService(model.Task{ID: 100, UserID: 200, Title: "leonardo's"})

	_, err := svc.GetTask(context.Background(), 100, "michelangelo")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	_, missing := svc.GetTask(context.Background(), 999, "michelangelo")
	if !errors.Is(missing, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for missing task, got %v", missing)
	}
}

func TestGetTask_StorageFaultIsNotNotFound(t *testing.T) {
	store := newFakeTasks()
	users := newFakeUsers(leonardo)
	users.findErr = errStorage
	svc := NewTaskService(store, users)

	_, err := svc.GetTask(context.Background(), 1, "leonardo")
	if !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrTaskNotFound) {
		t.Errorf("storage fault must not look like not-found: %v", err)
	}
}

func TestListTasks_DefaultSortByDueDate(t *testing.T) {
	svc, store := newTestTaskService(
		model.Task{ID: 1, UserID: 200, Title: "late", DueDate: due("2024-08-20T00:00:00Z")},
		model.Task{ID: 2, UserID: 200, Title: "early", DueDate: due("2024-08-15T00:00:00Z")},
		model.Task{ID: 3, UserID: 201, Title: "foreign", DueDate: due("2024-08-01T00:00:00Z")},
	)

	page, err := svc.ListTasks(context.Background(), model.PageRequest{}, "leonardo")
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(page.Items))
	}
	if page.Items[0].Title != "early" || page.Items[1].Title != "late" {
		t.Errorf("expected ascending due dates, got %q then %q", page.Items[0].Title, page.Items[1].Title)
	}
	if len(store.lastReq.Sort) != 1 || store.lastReq.Sort[0].Property != "dueDate" || store.lastReq.Sort[0].Direction != model.Asc {
		t.Errorf("expected default dueDate asc sort, got %+v", store.lastReq.Sort)
	}
	if store.lastReq.Size != model.DefaultPageSize {
		t.Errorf("expected default size %d, got %d", model.DefaultPageSize, store.lastReq.Size)
	}
}

func TestListTasks_KeepsCallerSort(t *testing.T) {
	svc, store := newTestTaskService(model.Task{ID: 1, UserID: 200, Title: "a"})

	req := model.PageRequest{Number: 0, Size: 5, Sort: []model.SortOrder{{Property: "title", Direction: model.Desc}}}
	if _, err := svc.ListTasks(context.Background(), req, "leonardo"); err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if store.lastReq.Sort[0].Property != "title" || store.lastReq.Size != 5 {
		t.Errorf("expected caller sort and size, got %+v", store.lastReq)
	}
}

func TestListTasks_EmptyIsNoTasksFound(t *testing.T) {
	svc, _ := newTestTaskService(model.Task{ID: 1, UserID: 201})

	_, err := svc.ListTasks(context.Background(), model.PageRequest{}, "leonardo")
	if !errors.Is(err, ErrNoTasksFound) {
		t.Fatalf("expected ErrNoTasksFound, got %v", err)
	}
}

func TestListTasks_StorageFaultIsNoTasksFound(t *testing.T) {
	svc, store := newTestTaskService()
	store.listErr = errStorage

	_, err := svc.ListTasks(context.Background(), model.PageRequest{}, "leonardo")
	if !errors.Is(err, ErrNoTasksFound) {
		t.Fatalf("expected ErrNoTasksFound, got %v", err)
	}
	if !errors.Is(err, errStorage) {
		t.Errorf("expected cause to be kept, got %v", err)
	}
}

func TestListTasks_UserNotFound(t *testing.T) {
	svc, _ := newTestTaskService()

	_, err := svc.ListTasks(context.Background(), model.PageRequest{}, "raphael")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateTask_StampsOwnerAndRoundTrips(t *testing.T) {
	svc, _ := newTestTaskService()
	ctx := context.Background()

	draft := TaskDraft{
		Title:       "Wash the car",
		Description: "Description to wash the car",
		DueDate:     due("2024-08-16T00:00:00Z"),
		Completed:   false,
	}
	created, err := svc.CreateTask(ctx, draft, "leonardo")
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}
	if created.UserID != leonardo.ID {
		t.Errorf("expected owner %d, got %d", leonardo.ID, created.UserID)
	}

	fetched, err := svc.GetTask(ctx, created.ID, "leonardo")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if fetched.Title != draft.Title || fetched.Description != draft.Description ||
		!fetched.DueDate.Equal(*draft.DueDate) || fetched.Completed != draft.Completed {
		t.Errorf("round trip mismatch: %+v", fetched)
	}
}

func TestCreateTask_Failure(t *testing.T) {
	svc, store := newTestTaskService()
	store.saveErr = errStorage

	_, err := svc.CreateTask(context.Background(), TaskDraft{Title: "x"}, "leonardo")
	if !errors.Is(err, ErrTaskCreation) || !errors.Is(err, errStorage) {
		t.Fatalf("expected ErrTaskCreation wrapping cause, got %v", err)
	}
}

func TestCreateTask_UserNotFound(t *testing.T) {
	svc, store := newTestTaskService()

	_, err := svc.CreateTask(context.Background(), TaskDraft{Title: "x"}, "raphael")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(store.rows) != 0 {
		t.Errorf("expected nothing stored, got %d rows", len(store.rows))
	}
}

func TestUpdateTask_KeepsOwner(t *testing.T) {
	created := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	svc, store := newTestTaskService(model.Task{ID: 103, UserID: 200, Title: "Wash the car", CreatedAt: created})

	draft := TaskDraft{Title: "Wash the dishes", Description: "Description to wash the dishes",
		DueDate: due("2024-08-17T00:00:00Z"), Completed: true}
	if err := svc.UpdateTask(context.Background(), 103, draft, "leonardo"); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	got := store.rows[103]
	if got.UserID != 200 {
		t.Errorf("owner changed to %d", got.UserID)
	}
	if got.Title != "Wash the dishes" || !got.Completed || !got.DueDate.Equal(*draft.DueDate) {
		t.Errorf("fields not replaced: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("expected creation time kept, got %v", got.CreatedAt)
	}
}

func TestUpdateTask_NotOwned(t *testing.T) {
	svc, store := newTestTaskService(model.Task{ID: 103, UserID: 200, Title: "Wash the car"})

	err := svc.UpdateTask(context.Background(), 103, TaskDraft{Title: "hijacked"}, "michelangelo")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if store.rows[103].Title != "Wash the car" {
		t.Errorf("task modified by non-owner: %+v", store.rows[103])
	}
}

func TestUpdateTask_Failure(t *testing.T) {
	svc, store := newTestTaskService(model.Task{ID: 103, UserID: 200})
	store.saveErr = errStorage

	err := svc.UpdateTask(context.Background(), 103, TaskDraft{Title: "x"}, "leonardo")
	if !errors.Is(err, ErrTaskUpdate) || !errors.Is(err, errStorage) {
		t.Fatalf("expected ErrTaskUpdate wrapping cause, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	svc, store := newTestTaskService(model.Task{ID: 100, UserID: 200})
	ctx := context.Background()

	if err := svc.DeleteTask(ctx, 100, "michelangelo"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for non-owner, got %v", err)
	}
	if err := svc.DeleteTask(ctx, 100, "leonardo"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, ok := store.rows[100]; ok {
		t.Fatal("expected task removed")
	}
	if _, err := svc.GetTask(ctx, 100, "leonardo"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}
	if err := svc.DeleteTask(ctx, 100, "leonardo"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound on second delete, got %v", err)
	}
}

func TestDeleteTask_Failure(t *testing.T) {
	svc, store := newTestTaskService(model.Task{ID: 100, UserID: 200})
	store.deleteErr = errStorage

	err := svc.DeleteTask(context.Background(), 100, "leonardo")
	if !errors.Is(err, ErrTaskDelete) || !errors.Is(err, errStorage) {
		t.Fatalf("expected ErrTaskDelete wrapping cause, got %v", err)
	}
}
