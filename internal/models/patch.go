package models

import "time"

// SprintPatch is a partial sprint update. Nil fields are left unchanged.
type SprintPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *SprintStatus `json:"status,omitempty"`
	StartDate   *string       `json:"startDate,omitempty"`
	EndDate     *string       `json:"endDate,omitempty"`
	Days        *[]Day        `json:"days,omitempty"`
}

// IsEmpty reports whether the patch carries no field.
func (p SprintPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.StartDate == nil && p.EndDate == nil && p.Days == nil
}

// Apply merges the patch into s and stamps UpdatedAt.
func (p SprintPatch) Apply(s *Sprint, now time.Time) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		s.EndDate = *p.EndDate
	}
	if p.Days != nil {
		s.Days = Sprint{Days: *p.Days}.Clone().Days
	}
	s.UpdatedAt = now
}

// TaskPatch is a partial task update. CompletedAt is applied whenever Status is.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *TaskState `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// StatusPatch builds the patch that toggles a task between completed and active.
func StatusPatch(completed bool, now time.Time) TaskPatch {
	status := TaskActive
	var completedAt *time.Time
	if completed {
		status = TaskCompleted
		at := now
		completedAt = &at
	}
	return TaskPatch{Status: &status, CompletedAt: completedAt}
}

// Apply merges the patch into t and stamps UpdatedAt.
func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
		t.CompletedAt = p.CompletedAt
	}
	t.UpdatedAt = now
}
