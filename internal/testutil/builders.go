package testutil

import (
	"strconv"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/util"
	"github.com/google/uuid"
)

// Epoch is the fixed creation time used by builders.
var Epoch = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// SprintBuilder provides fluent API for creating test sprints.
type SprintBuilder struct {
	sprint models.Sprint
}

func NewSprintBuilder() *SprintBuilder {
	return &SprintBuilder{
		sprint: models.Sprint{
			ID:        uuid.NewString(),
			Title:     "Test Sprint",
			Duration:  models.Duration15,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-15",
			Status:    models.StatusPlanning,
			Days:      []models.Day{},
			CreatedAt: Epoch,
			UpdatedAt: Epoch,
		},
	}
}

func (b *SprintBuilder) WithID(id string) *SprintBuilder {
	b.sprint.ID = id
	return b
}

func (b *SprintBuilder) WithUser(userID string) *SprintBuilder {
	b.sprint.UserID = userID
	return b
}

func (b *SprintBuilder) WithTitle(title string) *SprintBuilder {
	b.sprint.Title = title
	return b
}

func (b *SprintBuilder) WithStatus(s models.SprintStatus) *SprintBuilder {
	b.sprint.Status = s
	return b
}

func (b *SprintBuilder) Active() *SprintBuilder {
	return b.WithStatus(models.StatusActive)
}

// WithDays replaces the day list with n days ("1".."n"), each holding core
// core tasks and special special tasks.
func (b *SprintBuilder) WithDays(n, core, special int) *SprintBuilder {
	start, _ := time.Parse("2006-01-02", b.sprint.StartDate)
	days := make([]models.Day, 0, n)
	for i := 1; i <= n; i++ {
		d := models.Day{
			Day:  strconv.Itoa(i),
			Date: start.AddDate(0, 0, i-1).Format("2006-01-02"),
		}
		for c := 0; c < core; c++ {
			d.CoreTasks = append(d.CoreTasks, models.DayTask{Title: "core " + strconv.Itoa(c), Category: "core"})
		}
		for s := 0; s < special; s++ {
			d.SpecialTasks = append(d.SpecialTasks, models.DayTask{Title: "special " + strconv.Itoa(s), Category: "special"})
		}
		days = append(days, d)
	}
	b.sprint.Days = days
	return b
}

func (b *SprintBuilder) Build() models.Sprint {
	return b.sprint.Clone()
}

// TaskBuilder provides fluent API for creating test tasks.
type TaskBuilder struct {
	task models.Task
}

func NewTaskBuilder() *TaskBuilder {
	return &TaskBuilder{
		task: models.Task{
			ID:        uuid.NewString(),
			Title:     "Test Task",
			Status:    models.TaskActive,
			Priority:  models.PriorityMedium,
			CreatedAt: Epoch,
			UpdatedAt: Epoch,
		},
	}
}

func (b *TaskBuilder) WithID(id string) *TaskBuilder {
	b.task.ID = id
	return b
}

func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.task.Title = title
	return b
}

func (b *TaskBuilder) WithStatus(s models.TaskState) *TaskBuilder {
	b.task.Status = s
	if s == models.TaskCompleted {
		b.task.CompletedAt = util.Ptr(Epoch)
	}
	return b
}

// ForSlot links the task to a sprint day slot.
func (b *TaskBuilder) ForSlot(sprintID, dayID string, taskType models.TaskType, idx int) *TaskBuilder {
	b.task.SprintID = util.Ptr(sprintID)
	b.task.DayID = util.Ptr(dayID)
	b.task.TaskType = util.Ptr(taskType)
	b.task.TaskIndex = util.Ptr(idx)
	return b
}

func (b *TaskBuilder) Build() models.Task {
	return b.task
}

// ProgressBuilder provides fluent API for creating progress records.
type ProgressBuilder struct {
	progress models.UserProgress
}

func NewProgressBuilder(userID, sprintID string) *ProgressBuilder {
	return &ProgressBuilder{progress: models.NewEmptyProgress(userID, sprintID, Epoch)}
}

// Completed marks a task slot as completed.
func (b *ProgressBuilder) Completed(dayID string, taskType models.TaskType, idx int) *ProgressBuilder {
	b.progress.UpsertTaskStatus(models.TaskStatus{
		DayID:       dayID,
		TaskType:    taskType,
		TaskIndex:   idx,
		Completed:   true,
		CompletedAt: util.Ptr(Epoch),
	})
	return b
}

func (b *ProgressBuilder) Journal(dayID, content string) *ProgressBuilder {
	b.progress.UpsertJournalEntry(dayID, content, Epoch)
	return b
}

// Build returns the record with stats derived against sprint (may be nil).
func (b *ProgressBuilder) Build(sprint *models.Sprint) models.UserProgress {
	p := b.progress.Clone()
	p.Recompute(sprint)
	return p
}
