package cloud

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/storage"
	"github.com/akyairhashvil/sprintsync/internal/testutil"
	"github.com/google/uuid"
)

func setupTestStore(t *testing.T, ctx context.Context) *Store {
	t.Helper()
	dsn := os.Getenv("SPRINTSYNC_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SPRINTSYNC_TEST_DATABASE_URL not set")
	}
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresDSN(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t, ctx)
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}

func TestCloudRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t, ctx)
	user := "cloud-" + uuid.NewString()

	sprintID, err := s.CreateSprint(ctx, user, testutil.NewSprintBuilder().WithDays(2, 1, 1).Active().Build())
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}
	active, err := s.GetActiveSprint(ctx, user)
	if err != nil || active == nil || active.ID != sprintID {
		t.Fatalf("GetActiveSprint = %+v, %v", active, err)
	}
	status := models.StatusPaused
	if err := s.UpdateSprint(ctx, user, sprintID, models.SprintPatch{Status: &status}); err != nil {
		t.Fatalf("UpdateSprint failed: %v", err)
	}
	if active, _ := s.GetActiveSprint(ctx, user); active != nil {
		t.Fatalf("paused sprint still active")
	}
	if err := s.UpdateSprint(ctx, user, "missing", models.SprintPatch{Status: &status}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if p, err := s.GetProgress(ctx, user, sprintID); p != nil || err != nil {
		t.Fatalf("GetProgress before write = %v, %v", p, err)
	}
	at := time.Now().UTC()
	if err := s.UpdateTaskStatus(ctx, user, sprintID, models.TaskStatus{
		DayID: "1", TaskType: models.TaskTypeCore, TaskIndex: 0, Completed: true, CompletedAt: &at,
	}); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	p, err := s.GetProgress(ctx, user, sprintID)
	if err != nil || p == nil {
		t.Fatalf("GetProgress = %v, %v", p, err)
	}
	if p.CompletionPercentage != 25 {
		t.Fatalf("percentage = %d", p.CompletionPercentage)
	}

	taskID, err := s.CreateTask(ctx, user, testutil.NewTaskBuilder().WithID("").Build())
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := s.UpdateTask(ctx, user, taskID, models.StatusPatch(true, at)); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	tasks, err := s.ListTasks(ctx, user)
	if err != nil || len(tasks) != 1 || tasks[0].Status != models.TaskCompleted {
		t.Fatalf("ListTasks = %+v, %v", tasks, err)
	}
}
