package report

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/sprintsync/internal/models"
)

// Summary is a short plain-text status of the active sprint, used when no
// terminal UI is attached.
func Summary(active *models.Sprint, sprints []models.Sprint, tasks []models.Task, progress *models.UserProgress) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sprints: %d\n", len(sprints))
	if active == nil {
		b.WriteString("Active sprint: none\n")
	} else {
		fmt.Fprintf(&b, "Active sprint: %s (%s to %s)\n", active.Title, active.StartDate, active.EndDate)
		if progress != nil {
			fmt.Fprintf(&b, "Progress: %d%% (%d of %d tasks), task streak %d, journal streak %d\n",
				progress.CompletionPercentage, progress.TotalTasksCompleted, active.TotalTasks(),
				progress.CurrentTaskStreak, progress.CurrentJournalStreak)
		}
	}
	open := 0
	for _, t := range tasks {
		if t.Status != models.TaskCompleted {
			open++
		}
	}
	fmt.Fprintf(&b, "Tasks: %d open of %d\n", open, len(tasks))
	return b.String()
}
