package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// SprintDraft is the input for creating a sprint.
type SprintDraft struct {
	Title       string         `json:"title" validate:"required,max=200"`
	Description string         `json:"description" validate:"max=2000"`
	Duration    SprintDuration `json:"duration" validate:"oneof=15 30"`
	StartDate   string         `json:"startDate" validate:"required,datetime=2006-01-02"`
	Status      SprintStatus   `json:"status" validate:"oneof=planning active completed paused"`
	Days        []Day          `json:"days"`
}

// TaskDraft is the input for creating a task list entry.
type TaskDraft struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      TaskState `json:"status" validate:"omitempty,oneof=active completed blocked"`
	SprintID    *string   `json:"sprintId,omitempty"`
	DayID       *string   `json:"dayId,omitempty"`
	TaskType    *TaskType `json:"taskType,omitempty" validate:"omitempty,oneof=core special"`
	TaskIndex   *int      `json:"taskIndex,omitempty" validate:"omitempty,min=0"`
}

// ValidateStruct runs the struct's validate tags and flattens the failures
// into one readable error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value: %v)", e.Field(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid %T: %s", s, strings.Join(msgs, "; "))
}

// Validate checks the draft fields.
func (d SprintDraft) Validate() error {
	return ValidateStruct(d)
}

// Validate checks the draft fields.
func (d TaskDraft) Validate() error {
	return ValidateStruct(d)
}

// Build turns the draft into a sprint owned by userID. When the draft carries
// no days, one empty day per duration day is generated from StartDate.
func (d SprintDraft) Build(id, userID string, now time.Time) Sprint {
	start, err := time.Parse(dateLayout, d.StartDate)
	if err != nil {
		start = now
	}
	days := Sprint{Days: d.Days}.Clone().Days
	if len(days) == 0 {
		days = make([]Day, int(d.Duration))
		for i := range days {
			days[i] = Day{
				Day:          strconv.Itoa(i + 1),
				Date:         start.AddDate(0, 0, i).Format(dateLayout),
				CoreTasks:    []DayTask{},
				SpecialTasks: []DayTask{},
			}
		}
	}
	end := start.AddDate(0, 0, int(d.Duration)-1)
	return Sprint{
		ID:          id,
		UserID:      userID,
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Duration:    d.Duration,
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		Status:      d.Status,
		Days:        days,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Build turns the draft into a task owned by userID.
func (d TaskDraft) Build(id, userID string, now time.Time) Task {
	status := d.Status
	if status == "" {
		status = TaskActive
	}
	priority := d.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	t := Task{
		ID:          id,
		UserID:      userID,
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Status:      status,
		Priority:    priority,
		SprintID:    d.SprintID,
		DayID:       d.DayID,
		TaskType:    d.TaskType,
		TaskIndex:   d.TaskIndex,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == TaskCompleted {
		at := now
		t.CompletedAt = &at
	}
	return t
}
