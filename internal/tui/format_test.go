package tui

import (
	"testing"

	"github.com/akyairhashvil/sprintsync/internal/models"
)

func TestFormatHelpers(t *testing.T) {
	if got := FormatCompletion(0, 0); got != "No tasks" {
		t.Fatalf("FormatCompletion(0,0) = %q", got)
	}
	if got := FormatCompletion(3, 9); got != "3/9 tasks" {
		t.Fatalf("FormatCompletion = %q", got)
	}
	if got := FormatStreak("tasks", 2, 5); got != "tasks 2 (best 5)" {
		t.Fatalf("FormatStreak = %q", got)
	}
	if got := FormatStreak("journal", 3, 3); got != "journal 3" {
		t.Fatalf("FormatStreak = %q", got)
	}
	if FormatSprintStatus(models.StatusActive) != "Active" || FormatSprintStatus("") != "Planning" {
		t.Fatalf("unexpected sprint status labels")
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := truncateLabel("short", 10); got != "short" {
		t.Fatalf("truncateLabel = %q", got)
	}
	if got := truncateLabel("a much longer title", 6); got != "a muc…" {
		t.Fatalf("truncateLabel = %q", got)
	}
	if truncateLabel("x", 0) != "" {
		t.Fatalf("expected empty for zero width")
	}
}
