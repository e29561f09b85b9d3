// Package report renders sprint progress as PDF and plain text.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/go-pdf/fpdf"
)

// Render writes a PDF progress report of sprint to w. progress may be nil
// when the user has not recorded anything yet.
func Render(w io.Writer, sprint models.Sprint, progress *models.UserProgress, now time.Time) error {
	pdf := build(sprint, progress, now)
	return pdf.Output(w)
}

// WritePDF renders the report into dir and returns the absolute file path.
func WritePDF(dir string, sprint models.Sprint, progress *models.UserProgress, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("sprint_%s_%s.pdf", shortID(sprint.ID), now.Format("20060102_150405")))
	pdf := build(sprint, progress, now)
	if err := pdf.OutputFileAndClose(filename); err != nil {
		return "", err
	}
	return filepath.Abs(filename)
}

func build(sprint models.Sprint, progress *models.UserProgress, now time.Time) *fpdf.Fpdf {
	p := progress
	if p == nil {
		empty := models.NewEmptyProgress(sprint.UserID, sprint.ID, now)
		p = &empty
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetTitle("Sprint Report: "+sprint.Title, false)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Sprint Report: %s", sprint.Title))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("%s to %s (%d days, %s)", sprint.StartDate, sprint.EndDate, sprint.Duration, sprint.Status))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Completion: %d%% (%d of %d tasks, %d days complete)",
		p.CompletionPercentage, p.TotalTasksCompleted, sprint.TotalTasks(), p.TotalDaysCompleted))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Task streak: %d (best %d)   Journal streak: %d (best %d)",
		p.CurrentTaskStreak, p.LongestTaskStreak, p.CurrentJournalStreak, p.LongestJournalStreak))
	pdf.Ln(10)

	for _, day := range sprint.Days {
		entry, hasEntry := p.FindJournalEntry(day.Day)
		if day.TaskCount() == 0 && !hasEntry {
			continue
		}
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, fmt.Sprintf("Day %s  %s", day.Day, day.Date))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 11)
		writeTasks(pdf, p, day.Day, models.TaskTypeCore, day.CoreTasks)
		writeTasks(pdf, p, day.Day, models.TaskTypeSpecial, day.SpecialTasks)

		if hasEntry && entry.Content != "" {
			pdf.SetFont("Arial", "I", 10)
			pdf.MultiCell(0, 6, fmt.Sprintf("[%s] %s", entry.UpdatedAt.Format("15:04"), entry.Content), "", "", false)
		}
		pdf.Ln(4)
	}
	return pdf
}

func writeTasks(pdf *fpdf.Fpdf, p *models.UserProgress, dayID string, taskType models.TaskType, tasks []models.DayTask) {
	for i, t := range tasks {
		mark := "[ ]"
		if ts, ok := p.FindTaskStatus(dayID, taskType, i); ok && ts.Completed {
			mark = "[x]"
		}
		pdf.Cell(0, 6, fmt.Sprintf("  %s %s (%s)", mark, t.Title, taskType))
		pdf.Ln(6)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "draft"
	}
	return id
}
