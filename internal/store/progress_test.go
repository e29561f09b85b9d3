package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/testutil"
	"github.com/golang/mock/gomock"
)

// staticSprints serves one sprint to the progress store.
type staticSprints map[string]models.Sprint

func (s staticSprints) Get(id string) *models.Sprint {
	sp, ok := s[id]
	if !ok {
		return nil
	}
	return &sp
}

func TestGuestLoadSynthesizesOnce(t *testing.T) {
	ctx := context.Background()
	b, r := newMockRouter(t, identity.KindGuest)
	b.EXPECT().GetProgress(gomock.Any(), "guest_1", "s1").Return(nil, nil).Times(1)
	b.EXPECT().SaveProgress(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.UserProgress) error {
			if p.ID != "guest_1_s1" {
				t.Errorf("saved id = %q", p.ID)
			}
			return nil
		}).Times(1)

	s := NewProgressStore(r, nil, testOpts()...)
	p := s.Load(ctx, "guest_1", "s1")
	if p == nil {
		t.Fatalf("expected synthesized record")
	}
	if len(p.TaskStatuses) != 0 || len(p.JournalEntries) != 0 || p.CompletionPercentage != 0 || p.TotalTasksCompleted != 0 {
		t.Fatalf("synthesized record not empty: %+v", p)
	}
	again := s.Load(ctx, "guest_1", "s1")
	if again == nil || again.ID != p.ID || !again.CreatedAt.Equal(p.CreatedAt) {
		t.Fatalf("second load = %+v", again)
	}
}

func TestLocalLoadServesRecordWhenSaveFails(t *testing.T) {
	b, r := newMockRouter(t, identity.KindLocal)
	b.EXPECT().GetProgress(gomock.Any(), "local_1", "s1").Return(nil, nil)
	b.EXPECT().SaveProgress(gomock.Any(), gomock.Any()).Return(errors.New("read-only fs"))

	s := NewProgressStore(r, nil, testOpts()...)
	if p := s.Load(context.Background(), "local_1", "s1"); p == nil {
		t.Fatalf("expected record despite failed save")
	}
	if s.Error() != "" {
		t.Fatalf("Error = %q", s.Error())
	}
}

func TestCloudLoadMissReturnsNil(t *testing.T) {
	b, r := newMockRouter(t, identity.KindCloud)
	b.EXPECT().GetProgress(gomock.Any(), "u1", "s1").Return(nil, nil).Times(2)

	s := NewProgressStore(r, nil, testOpts()...)
	if p := s.Load(context.Background(), "u1", "s1"); p != nil {
		t.Fatalf("expected nil for cloud miss, got %+v", p)
	}
	if s.Progress() != nil {
		t.Fatalf("cloud miss should cache nothing")
	}
	// Nothing cached, so the next load asks again.
	s.Load(context.Background(), "u1", "s1")
}

func TestLoadFailure(t *testing.T) {
	b, r := newMockRouter(t, identity.KindCloud)
	b.EXPECT().GetProgress(gomock.Any(), "u1", "s1").Return(nil, errors.New("503"))
	s := NewProgressStore(r, nil, testOpts()...)
	if p := s.Load(context.Background(), "u1", "s1"); p != nil {
		t.Fatalf("expected nil on failure")
	}
	if s.Error() != MsgLoadProgress {
		t.Fatalf("Error = %q", s.Error())
	}
}

func loadedProgressStore(t *testing.T, sprints SprintSource, p models.UserProgress) (*ProgressStore, *MockBackend) {
	t.Helper()
	b, r := newMockRouter(t, identity.KindCloud)
	b.EXPECT().GetProgress(gomock.Any(), p.UserID, p.SprintID).Return(&p, nil)
	s := NewProgressStore(r, sprints, testOpts()...)
	if s.Load(context.Background(), p.UserID, p.SprintID) == nil {
		t.Fatalf("Load returned nil")
	}
	return s, b
}

func TestUpdateTaskStatusCompositeKey(t *testing.T) {
	ctx := context.Background()
	sp := testutil.NewSprintBuilder().WithID("s1").WithDays(2, 1, 1).Build()
	s, b := loadedProgressStore(t, staticSprints{"s1": sp}, testutil.NewProgressBuilder("u1", "s1").Build(nil))
	b.EXPECT().UpdateTaskStatus(gomock.Any(), "u1", "s1", gomock.Any()).Return(nil).Times(3)

	for _, completed := range []bool{true, false, true} {
		if err := s.UpdateTaskStatus(ctx, "u1", "s1", "1", models.TaskTypeCore, 0, completed); err != nil {
			t.Fatalf("UpdateTaskStatus failed: %v", err)
		}
	}
	p := s.Progress()
	if len(p.TaskStatuses) != 1 {
		t.Fatalf("expected one status per key, got %+v", p.TaskStatuses)
	}
	ts := p.TaskStatuses[0]
	if !ts.Completed || ts.CompletedAt == nil || ts.Key() != "1-core-0" {
		t.Fatalf("status = %+v", ts)
	}
	// One of four real slots.
	if p.CompletionPercentage != 25 || p.TotalTasksCompleted != 1 {
		t.Fatalf("stats = %d%% / %d", p.CompletionPercentage, p.TotalTasksCompleted)
	}
}

func TestUpdateTaskStatusRevertsWholeRecord(t *testing.T) {
	ctx := context.Background()
	start := testutil.NewProgressBuilder("u1", "s1").Journal("1", "kept").Build(nil)
	s, b := loadedProgressStore(t, nil, start)

	b.EXPECT().UpdateTaskStatus(gomock.Any(), "u1", "s1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, ts models.TaskStatus) error {
			if !s.IsUpdating("1-core-0") {
				t.Errorf("slot not marked updating")
			}
			if got := s.Progress(); len(got.TaskStatuses) != 1 || got.CompletionPercentage != 100 {
				t.Errorf("optimistic record = %+v", got)
			}
			if !ts.Completed || ts.CompletedAt == nil || !ts.CompletedAt.Equal(fixedNow) {
				t.Errorf("status sent = %+v", ts)
			}
			return errors.New("rejected")
		})

	err := s.UpdateTaskStatus(ctx, "u1", "s1", "1", models.TaskTypeCore, 0, true)
	var serr *Error
	if !errors.As(err, &serr) || serr.Op != MsgUpdateTaskStatus {
		t.Fatalf("expected task status error, got %v", err)
	}
	p := s.Progress()
	if len(p.TaskStatuses) != 0 || p.CompletionPercentage != 0 || p.TotalTasksCompleted != 0 {
		t.Fatalf("record not reverted: %+v", p)
	}
	if len(p.JournalEntries) != 1 {
		t.Fatalf("journal lost in revert")
	}
	if s.IsUpdating("1-core-0") || len(s.Updating()) != 0 {
		t.Fatalf("updating marker left set")
	}
	if s.Error() != MsgUpdateTaskStatus {
		t.Fatalf("Error = %q", s.Error())
	}
}

func TestJournalUpsertKeepsFirstCreatedAt(t *testing.T) {
	ctx := context.Background()
	s, b := loadedProgressStore(t, nil, testutil.NewProgressBuilder("u1", "s1").Build(nil))

	var sent []models.JournalEntry
	b.EXPECT().UpdateJournalEntry(gomock.Any(), "u1", "s1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, e models.JournalEntry) error {
			sent = append(sent, e)
			return nil
		}).Times(2)

	clock := fixedNow
	s.now = func() time.Time { return clock }
	if err := s.UpdateJournal(ctx, "u1", "s1", "3", "draft"); err != nil {
		t.Fatalf("UpdateJournal failed: %v", err)
	}
	clock = fixedNow.Add(2 * time.Hour)
	if err := s.UpdateJournal(ctx, "u1", "s1", "3", "final"); err != nil {
		t.Fatalf("UpdateJournal failed: %v", err)
	}

	p := s.Progress()
	if len(p.JournalEntries) != 1 {
		t.Fatalf("expected one entry, got %+v", p.JournalEntries)
	}
	e := p.JournalEntries[0]
	if e.Content != "final" || !e.CreatedAt.Equal(fixedNow) || !e.UpdatedAt.Equal(clock) {
		t.Fatalf("entry = %+v", e)
	}
	if p.CurrentJournalStreak != 1 {
		t.Fatalf("journal streak = %d", p.CurrentJournalStreak)
	}
	if len(sent) != 2 || !sent[1].CreatedAt.Equal(fixedNow) {
		t.Fatalf("entries sent = %+v", sent)
	}
}

func TestUpdateWithoutCachedRecordSynthesizes(t *testing.T) {
	ctx := context.Background()
	b, r := newMockRouter(t, identity.KindCloud)
	b.EXPECT().GetProgress(gomock.Any(), "u1", "s1").Return(nil, nil)
	b.EXPECT().UpdateJournalEntry(gomock.Any(), "u1", "s1", gomock.Any()).Return(errors.New("offline"))

	s := NewProgressStore(r, nil, testOpts()...)
	if err := s.UpdateJournal(ctx, "u1", "s1", "1", "hello"); err == nil {
		t.Fatalf("expected error")
	}
	if s.Progress() != nil {
		t.Fatalf("synthesized record should be reverted away")
	}
	if s.Error() != MsgSaveJournalEntry {
		t.Fatalf("Error = %q", s.Error())
	}
}

// storedProgress has three completed slots of day 1.
func storedProgress() models.UserProgress {
	return testutil.NewProgressBuilder("u1", "s1").
		Completed("1", models.TaskTypeCore, 0).
		Completed("1", models.TaskTypeCore, 1).
		Completed("1", models.TaskTypeSpecial, 0).
		Build(nil)
}

func TestWriteWithoutCacheBuildsOnStoredRecord(t *testing.T) {
	ctx := context.Background()
	b, r := newMockRouter(t, identity.KindCloud)
	stored := storedProgress()
	b.EXPECT().GetProgress(gomock.Any(), "u1", "s1").Return(&stored, nil).Times(1)
	b.EXPECT().UpdateTaskStatus(gomock.Any(), "u1", "s1", gomock.Any()).Return(nil)

	s := NewProgressStore(r, nil, testOpts()...)
	if err := s.UpdateTaskStatus(ctx, "u1", "s1", "3", models.TaskTypeCore, 0, true); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	if p := s.Progress(); p == nil || len(p.TaskStatuses) != 4 {
		t.Fatalf("write did not build on the stored record: %+v", p)
	}
	// The record came from the backend, so Load serves it from the cache.
	if p := s.Load(ctx, "u1", "s1"); p == nil || len(p.TaskStatuses) != 4 {
		t.Fatalf("Load = %+v", p)
	}
}

func TestWriteAfterFailedReadIsRefetched(t *testing.T) {
	ctx := context.Background()
	b, r := newMockRouter(t, identity.KindCloud)
	stored := storedProgress()
	stored.UpsertTaskStatus(models.TaskStatus{DayID: "3", TaskType: models.TaskTypeCore, Completed: true})
	gomock.InOrder(
		b.EXPECT().GetProgress(gomock.Any(), "u1", "s1").Return(nil, errors.New("503")),
		b.EXPECT().GetProgress(gomock.Any(), "u1", "s1").Return(nil, errors.New("503")),
		b.EXPECT().UpdateTaskStatus(gomock.Any(), "u1", "s1", gomock.Any()).Return(nil),
		b.EXPECT().GetProgress(gomock.Any(), "u1", "s1").Return(&stored, nil),
	)

	s := NewProgressStore(r, nil, testOpts()...)
	if p := s.Load(ctx, "u1", "s1"); p != nil {
		t.Fatalf("expected failed load")
	}
	if err := s.UpdateTaskStatus(ctx, "u1", "s1", "3", models.TaskTypeCore, 0, true); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	if p := s.Progress(); p == nil || len(p.TaskStatuses) != 1 {
		t.Fatalf("optimistic record = %+v", p)
	}
	p := s.Load(ctx, "u1", "s1")
	if p == nil || len(p.TaskStatuses) != 4 {
		t.Fatalf("Load kept the partial record: %+v", p)
	}
	if cached := s.Progress(); len(cached.TaskStatuses) != 4 {
		t.Fatalf("cache = %+v", cached)
	}
}
