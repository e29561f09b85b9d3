package models

import (
	"fmt"
	"time"
)

// SprintStatus enumerates the lifecycle states of a sprint.
type SprintStatus string

const (
	StatusPlanning  SprintStatus = "planning"
	StatusActive    SprintStatus = "active"
	StatusCompleted SprintStatus = "completed"
	StatusPaused    SprintStatus = "paused"
)

// SprintDuration is the length of a sprint in days.
type SprintDuration int

const (
	Duration15 SprintDuration = 15
	Duration30 SprintDuration = 30
)

// TaskState enumerates the states of an entry in the secondary task list.
type TaskState string

const (
	TaskActive    TaskState = "active"
	TaskCompleted TaskState = "completed"
	TaskBlocked   TaskState = "blocked"
)

// Priority levels for tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// TaskType distinguishes the two task lists of a sprint day.
type TaskType string

const (
	TaskTypeCore    TaskType = "core"
	TaskTypeSpecial TaskType = "special"
)

// DayTask is one task slot inside a sprint day.
type DayTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Day represents a single day of a sprint.
type Day struct {
	Day          string    `json:"day"` // day number, "1".."30"
	Date         string    `json:"date"`
	CoreTasks    []DayTask `json:"coreTasks"`
	SpecialTasks []DayTask `json:"specialTasks"`
}

// TaskCount returns the number of core and special slots on the day.
func (d Day) TaskCount() int {
	return len(d.CoreTasks) + len(d.SpecialTasks)
}

// Sprint is a 15 or 30 day block of planned work.
type Sprint struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Duration    SprintDuration `json:"duration"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	Status      SprintStatus   `json:"status"`
	Days        []Day          `json:"days"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TotalTasks is the sum of core and special task slots across all days.
func (s *Sprint) TotalTasks() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, d := range s.Days {
		total += d.TaskCount()
	}
	return total
}

// FindDay returns the day with the given day number.
func (s *Sprint) FindDay(dayID string) (Day, bool) {
	if s == nil {
		return Day{}, false
	}
	for _, d := range s.Days {
		if d.Day == dayID {
			return d, true
		}
	}
	return Day{}, false
}

// Clone returns a deep copy of the sprint.
func (s Sprint) Clone() Sprint {
	out := s
	if s.Days != nil {
		out.Days = make([]Day, len(s.Days))
		for i, d := range s.Days {
			out.Days[i] = d
			out.Days[i].CoreTasks = append([]DayTask(nil), d.CoreTasks...)
			out.Days[i].SpecialTasks = append([]DayTask(nil), d.SpecialTasks...)
		}
	}
	return out
}

// Task is an entry of the secondary task list, independent of sprint days.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskState  `json:"status"`
	Priority    Priority   `json:"priority"`
	SprintID    *string    `json:"sprintId,omitempty"`
	DayID       *string    `json:"dayId,omitempty"`
	TaskType    *TaskType  `json:"taskType,omitempty"`
	TaskIndex   *int       `json:"taskIndex,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Clone returns a copy that shares no pointer fields with t.
func (t Task) Clone() Task {
	out := t
	out.SprintID = clonePtr(t.SprintID)
	out.DayID = clonePtr(t.DayID)
	out.TaskType = clonePtr(t.TaskType)
	out.TaskIndex = clonePtr(t.TaskIndex)
	out.CompletedAt = clonePtr(t.CompletedAt)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// TaskStatus records completion of one task slot of a sprint day.
type TaskStatus struct {
	DayID       string     `json:"dayId"`
	TaskType    TaskType   `json:"taskType"`
	TaskIndex   int        `json:"taskIndex"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Key is the composite identity "{dayId}-{taskType}-{taskIndex}".
func (ts TaskStatus) Key() string {
	return StatusKey(ts.DayID, ts.TaskType, ts.TaskIndex)
}

// StatusKey builds the composite key of a task slot.
func StatusKey(dayID string, taskType TaskType, taskIndex int) string {
	return fmt.Sprintf("%s-%s-%d", dayID, taskType, taskIndex)
}

// JournalEntry is the single journal note of a sprint day.
type JournalEntry struct {
	DayID     string    `json:"dayId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
