package api

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"task-manager/internal/model"
	"task-manager/internal/service"
)

const localDateTimeLayout = "2006-01-02T15:04:05"

// Timestamp reads RFC 3339 or zone-less ISO-8601 date-times (taken as UTC)
// and writes RFC 3339.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts.Time = t
		return nil
	}
	t, err := time.ParseInLocation(localDateTimeLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("parse date-time %q: %w", s, err)
	}
	ts.Time = t
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.Time.Format(time.RFC3339) + `"`), nil
}

// taskBody is the JSON form of a task. id and userId are ignored on input.
type taskBody struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *Timestamp `json:"dueDate"`
	Completed   bool       `json:"completed"`
	UserID      uint       `json:"userId"`
}

func (b taskBody) draft() service.TaskDraft {
	d := service.TaskDraft{
		Title:       b.Title,
		Description: b.Description,
		Completed:   b.Completed,
	}
	if b.DueDate != nil && !b.DueDate.IsZero() {
		due := b.DueDate.UTC()
		d.DueDate = &due
	}
	return d
}

func newTaskBody(t *model.Task) taskBody {
	b := taskBody{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		UserID:      t.UserID,
	}
	if t.DueDate != nil {
		b.DueDate = &Timestamp{Time: t.DueDate.UTC()}
	}
	return b
}

type registerBody struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
