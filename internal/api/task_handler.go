package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"task-manager/internal/model"
	"task-manager/internal/service"
)

// TaskHandler serves the ownership-scoped task endpoints.
type TaskHandler struct {
	tasks    *service.TaskService
	basePath string
}

func NewTaskHandler(tasks *service.TaskService, basePath string) *TaskHandler {
	return &TaskHandler{tasks: tasks, basePath: basePath}
}

func (h *TaskHandler) Get(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	task, err := h.tasks.GetTask(c.Request().Context(), id, principal(c))
	if err != nil {
		return respondError(c, fmt.Sprintf("get task %d", id), err)
	}
	return c.JSON(http.StatusOK, newTaskBody(task))
}

func (h *TaskHandler) List(c echo.Context) error {
	req, err := pageRequest(c.QueryParams())
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	page, err := h.tasks.ListTasks(c.Request().Context(), req, principal(c))
	if err != nil {
		return respondError(c, "list tasks", err)
	}

	body := make([]taskBody, 0, len(page.Items))
	for i := range page.Items {
		body = append(body, newTaskBody(&page.Items[i]))
	}
	c.Response().Header().Set("X-Total-Count", strconv.FormatInt(page.TotalElements, 10))
	c.Response().Header().Set("X-Total-Pages", strconv.Itoa(page.TotalPages()))
	return c.JSON(http.StatusOK, body)
}

func (h *TaskHandler) Create(c echo.Context) error {
	var body taskBody
	if err := c.Bind(&body); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	task, err := h.tasks.CreateTask(c.Request().Context(), body.draft(), principal(c))
	if err != nil {
		return respondError(c, "create task", err)
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("%s/tasks/%d", h.basePath, task.ID))
	return c.NoContent(http.StatusCreated)
}

func (h *TaskHandler) Update(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	var body taskBody
	if err := c.Bind(&body); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if err := h.tasks.UpdateTask(c.Request().Context(), id, body.draft(), principal(c)); err != nil {
		return respondError(c, fmt.Sprintf("update task %d", id), err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if err := h.tasks.DeleteTask(c.Request().Context(), id, principal(c)); err != nil {
		return respondError(c, fmt.Sprintf("delete task %d", id), err)
	}
	return c.NoContent(http.StatusNoContent)
}

func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid task id %q", c.Param("id"))
	}
	return uint(id), nil
}

// pageRequest reads page, size and sort query parameters. sort may repeat
// and takes the form "property" or "property,asc|desc".
func pageRequest(q url.Values) (model.PageRequest, error) {
	var req model.PageRequest
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return req, fmt.Errorf("invalid page %q", raw)
		}
		req.Number = n
	}
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return req, fmt.Errorf("invalid size %q", raw)
		}
		req.Size = n
	}
	for _, raw := range q["sort"] {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		property, dir, hasDir := strings.Cut(raw, ",")
		property = strings.TrimSpace(property)
		if _, ok := model.TaskSortColumn(property); !ok {
			return req, fmt.Errorf("invalid sort property %q", property)
		}
		order := model.SortOrder{Property: property, Direction: model.Asc}
		if hasDir {
			d, ok := model.ParseDirection(dir)
			if !ok {
				return req, fmt.Errorf("invalid sort direction %q", dir)
			}
			order.Direction = d
		}
		req.Sort = append(req.Sort, order)
	}
	return req.Normalized(), nil
}
