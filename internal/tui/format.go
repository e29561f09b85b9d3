package tui

import (
	"fmt"

	"github.com/akyairhashvil/sprintsync/internal/config"
	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/charmbracelet/x/ansi"
)

// FormatSprintStatus returns a human-readable sprint status.
func FormatSprintStatus(status models.SprintStatus) string {
	switch status {
	case models.StatusActive:
		return "Active"
	case models.StatusPaused:
		return "Paused"
	case models.StatusCompleted:
		return "Completed"
	default:
		return "Planning"
	}
}

// FormatCompletion formats slot counts for display.
func FormatCompletion(completed, total int) string {
	if total == 0 {
		return "No tasks"
	}
	return fmt.Sprintf("%d/%d tasks", completed, total)
}

// FormatStreak renders a current/longest streak pair.
func FormatStreak(label string, current, longest int) string {
	if longest <= current {
		return fmt.Sprintf("%s %d", label, current)
	}
	return fmt.Sprintf("%s %d (best %d)", label, current, longest)
}

func truncateLabel(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, config.TruncationSuffix)
}
