package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentMonthWindow(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	window := CurrentMonthWindow(now)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2025, time.March, 31, 23, 59, 59, 999999000, time.UTC), window.End)
	assert.Equal(t, now, window.OverdueAt, "current month evaluates overdue against the request time")
}

func TestPreviousMonthWindow(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	window := PreviousMonthWindow(now)

	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2025, time.February, 28, 23, 59, 59, 999999000, time.UTC), window.End)
	assert.Equal(t, window.End, window.OverdueAt, "prior month evaluates overdue as of its own close")
}

func TestPreviousMonthWindow_JanuaryRollsBackAYear(t *testing.T) {
	now := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	window := PreviousMonthWindow(now)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, 2024, window.End.Year())
	assert.Equal(t, time.December, window.End.Month())
}

func TestMonthWindows_DoNotOverlap(t *testing.T) {
	now := time.Date(2025, time.August, 31, 23, 0, 0, 0, time.UTC)
	current := CurrentMonthWindow(now)
	previous := PreviousMonthWindow(now)

	assert.True(t, previous.End.Before(current.Start))
}

func TestDiff(t *testing.T) {
	current := TaskCounts{Total: 10, Assigned: 4, Incomplete: 6, Completed: 4, Overdue: 2}
	previous := TaskCounts{Total: 12, Assigned: 1, Incomplete: 9, Completed: 3, Overdue: 5}

	analytics := Diff(current, previous)

	assert.Equal(t, 10, analytics.TaskCount)
	assert.Equal(t, -2, analytics.TaskDifference)
	assert.Equal(t, 4, analytics.AssignedTaskCount)
	assert.Equal(t, 3, analytics.AssignedTaskDifference)
	assert.Equal(t, 6, analytics.IncompleteTaskCount)
	assert.Equal(t, -3, analytics.IncompleteTaskDifference)
	assert.Equal(t, 4, analytics.CompletedTaskCount)
	assert.Equal(t, 1, analytics.CompletedTaskDifference)
	assert.Equal(t, 2, analytics.OverdueTaskCount)
	assert.Equal(t, -3, analytics.OverdueTaskDifference)
}

func TestDiff_EmptyPreviousMonth(t *testing.T) {
	current := TaskCounts{Total: 3, Completed: 1}
	analytics := Diff(current, TaskCounts{})

	assert.Equal(t, 3, analytics.TaskCount)
	assert.Equal(t, 3, analytics.TaskDifference)
	assert.Equal(t, 1, analytics.CompletedTaskDifference)
}
