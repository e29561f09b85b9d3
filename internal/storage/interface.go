// Package storage defines the adapter contract shared by the cloud, local-device
// and guest backends, and routes each call to the backend owning the user.
package storage

import (
	"context"

	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/models"
)

// SprintAdapter defines sprint persistence. Reads of a missing sprint return (nil, nil).
type SprintAdapter interface {
	ListSprints(ctx context.Context, userID string) ([]models.Sprint, error)
	GetActiveSprint(ctx context.Context, userID string) (*models.Sprint, error)
	GetSprint(ctx context.Context, userID, sprintID string) (*models.Sprint, error)
	CreateSprint(ctx context.Context, userID string, sprint models.Sprint) (string, error)
	UpdateSprint(ctx context.Context, userID, sprintID string, patch models.SprintPatch) error
}

// TaskAdapter defines task list persistence.
type TaskAdapter interface {
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	CreateTask(ctx context.Context, userID string, task models.Task) (string, error)
	UpdateTask(ctx context.Context, userID, taskID string, patch models.TaskPatch) error
}

// ProgressAdapter defines user progress persistence. A missing record reads as (nil, nil).
type ProgressAdapter interface {
	GetProgress(ctx context.Context, userID, sprintID string) (*models.UserProgress, error)
	SaveProgress(ctx context.Context, progress models.UserProgress) error
	UpdateTaskStatus(ctx context.Context, userID, sprintID string, status models.TaskStatus) error
	UpdateJournalEntry(ctx context.Context, userID, sprintID string, entry models.JournalEntry) error
}

// Backend combines all adapters of one storage kind.
//
//go:generate mockgen -destination=../store/mock_backend_test.go -package=store github.com/akyairhashvil/sprintsync/internal/storage Backend
type Backend interface {
	SprintAdapter
	TaskAdapter
	ProgressAdapter
	Kind() identity.Kind
	Close() error
}
