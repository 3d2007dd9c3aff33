package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"task-manager/internal/model"
)

// DueSoonWindow is how far ahead a due date counts as upcoming.
const DueSoonWindow = 48 * time.Hour

// OverdueSummary lists a user's open tasks by urgency.
type OverdueSummary struct {
	Username string
	Overdue  []model.Task
	DueSoon  []model.Task
}

func (s OverdueSummary) Empty() bool {
	return len(s.Overdue) == 0 && len(s.DueSoon) == 0
}

func (s OverdueSummary) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("user %q: %d overdue, %d due soon", s.Username, len(s.Overdue), len(s.DueSoon)))
	for _, task := range s.Overdue {
		sb.WriteString(fmt.Sprintf("\n  overdue  #%d %s (due %s)", task.ID, strings.TrimSpace(task.Title), task.DueDate.Format(time.RFC3339)))
	}
	for _, task := range s.DueSoon {
		sb.WriteString(fmt.Sprintf("\n  due soon #%d %s (due %s)", task.ID, strings.TrimSpace(task.Title), task.DueDate.Format(time.RFC3339)))
	}
	return sb.String()
}

// ReportService builds summaries of overdue and upcoming tasks.
type ReportService struct {
	users UserGateway
	tasks TaskGateway
}

func NewReportService(users UserGateway, tasks TaskGateway) *ReportService {
	return &ReportService{users: users, tasks: tasks}
}

func (s *ReportService) Summary(ctx context.Context, user model.User, now time.Time) (OverdueSummary, error) {
	summary := OverdueSummary{Username: user.Username}
	tasks, err := s.tasks.ListOpen(ctx, user.ID)
	if err != nil {
		return summary, err
	}
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		switch {
		case task.DueDate.Before(now):
			summary.Overdue = append(summary.Overdue, task)
		case task.DueDate.Sub(now) <= DueSoonWindow:
			summary.DueSoon = append(summary.DueSoon, task)
		}
	}
	return summary, nil
}

// Run logs the summary of every user with something overdue or upcoming.
func (s *ReportService) Run(ctx context.Context, now time.Time) error {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary, err := s.Summary(ctx, user, now)
		if err != nil {
			log.Printf("[error] report for user %q: %v", user.Username, err)
			continue
		}
		if summary.Empty() {
			continue
		}
		log.Printf("[info] report %s", summary)
	}
	return nil
}
