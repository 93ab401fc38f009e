package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_analytics_repository.go -package mocks github.com/boardstack/boardstack/internal/domain AnalyticsRepository
//go:generate mockgen -destination mocks/mock_analytics_service.go -package mocks github.com/boardstack/boardstack/internal/domain AnalyticsServiceInterface

// MonthWindow is an inclusive [Start, End] slice of a calendar month.
// OverdueAt is the instant "overdue" is evaluated against for that window:
// the request time for the current month, the window's own end for the
// prior month.
type MonthWindow struct {
	Start     time.Time
	End       time.Time
	OverdueAt time.Time
}

// CurrentMonthWindow returns the window for the month containing now.
func CurrentMonthWindow(now time.Time) MonthWindow {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return MonthWindow{
		Start:     start,
		End:       start.AddDate(0, 1, 0).Add(-time.Microsecond),
		OverdueAt: now,
	}
}

// PreviousMonthWindow returns the window for the month before the one
// containing now. Overdue is evaluated as of that month's close.
func PreviousMonthWindow(now time.Time) MonthWindow {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	end := start.AddDate(0, 1, 0).Add(-time.Microsecond)
	return MonthWindow{
		Start:     start,
		End:       end,
		OverdueAt: end,
	}
}

// AnalyticsScope selects the task set: a whole workspace or one project.
// AssigneeID is the caller, used for the assigned-task metric.
type AnalyticsScope struct {
	WorkspaceID string
	ProjectID   string
	AssigneeID  string
}

// TaskCounts are the raw per-window counters.
type TaskCounts struct {
	Total      int
	Assigned   int
	Incomplete int
	Completed  int
	Overdue    int
}

// Analytics pairs each current-month metric with its signed difference
// versus the prior month.
type Analytics struct {
	TaskCount                int `json:"taskCount"`
	TaskDifference           int `json:"taskDifference"`
	AssignedTaskCount        int `json:"assignedTaskCount"`
	AssignedTaskDifference   int `json:"assignedTaskDifference"`
	IncompleteTaskCount      int `json:"incompleteTaskCount"`
	IncompleteTaskDifference int `json:"incompleteTaskDifference"`
	CompletedTaskCount       int `json:"completedTaskCount"`
	CompletedTaskDifference  int `json:"completedTaskDifference"`
	OverdueTaskCount         int `json:"overdueTaskCount"`
	OverdueTaskDifference    int `json:"overdueTaskDifference"`
}

// Diff derives the month-over-month payload from two windows of counts.
func Diff(current, previous TaskCounts) *Analytics {
	return &Analytics{
		TaskCount:                current.Total,
		TaskDifference:           current.Total - previous.Total,
		AssignedTaskCount:        current.Assigned,
		AssignedTaskDifference:   current.Assigned - previous.Assigned,
		IncompleteTaskCount:      current.Incomplete,
		IncompleteTaskDifference: current.Incomplete - previous.Incomplete,
		CompletedTaskCount:       current.Completed,
		CompletedTaskDifference:  current.Completed - previous.Completed,
		OverdueTaskCount:         current.Overdue,
		OverdueTaskDifference:    current.Overdue - previous.Overdue,
	}
}

type AnalyticsRepository interface {
	// CountTasks computes all five counters for tasks created inside the
	// window. Read-only.
	CountTasks(ctx context.Context, scope AnalyticsScope, window MonthWindow) (TaskCounts, error)
}

type AnalyticsServiceInterface interface {
	WorkspaceAnalytics(ctx context.Context, workspaceID string) (*Analytics, error)
	ProjectAnalytics(ctx context.Context, projectID string) (*Analytics, error)
}
