package models

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// UserProgress holds one user's task completion and journal state for one sprint.
type UserProgress struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	SprintID       string         `json:"sprintId"`
	TaskStatuses   []TaskStatus   `json:"taskStatuses"`
	JournalEntries []JournalEntry `json:"journalEntries"`

	CurrentTaskStreak    int `json:"currentTaskStreak"`
	LongestTaskStreak    int `json:"longestTaskStreak"`
	CurrentJournalStreak int `json:"currentJournalStreak"`
	LongestJournalStreak int `json:"longestJournalStreak"`

	TotalTasksCompleted  int `json:"totalTasksCompleted"`
	TotalDaysCompleted   int `json:"totalDaysCompleted"`
	CompletionPercentage int `json:"completionPercentage"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProgressID is the document id of a (user, sprint) progress record.
func ProgressID(userID, sprintID string) string {
	return userID + "_" + sprintID
}

// NewEmptyProgress synthesizes a zeroed record for a user that has none yet.
func NewEmptyProgress(userID, sprintID string, now time.Time) UserProgress {
	return UserProgress{
		ID:             ProgressID(userID, sprintID),
		UserID:         userID,
		SprintID:       sprintID,
		TaskStatuses:   []TaskStatus{},
		JournalEntries: []JournalEntry{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Clone returns a deep copy, used for snapshots before optimistic writes.
func (p UserProgress) Clone() UserProgress {
	out := p
	out.TaskStatuses = make([]TaskStatus, len(p.TaskStatuses))
	for i, ts := range p.TaskStatuses {
		out.TaskStatuses[i] = ts
		if ts.CompletedAt != nil {
			at := *ts.CompletedAt
			out.TaskStatuses[i].CompletedAt = &at
		}
	}
	out.JournalEntries = append(make([]JournalEntry, 0, len(p.JournalEntries)), p.JournalEntries...)
	return out
}

// UpsertTaskStatus replaces the status with the same composite key or appends it.
func (p *UserProgress) UpsertTaskStatus(ts TaskStatus) {
	key := ts.Key()
	for i := range p.TaskStatuses {
		if p.TaskStatuses[i].Key() == key {
			p.TaskStatuses[i] = ts
			return
		}
	}
	p.TaskStatuses = append(p.TaskStatuses, ts)
}

// FindTaskStatus looks up a status by composite key.
func (p *UserProgress) FindTaskStatus(dayID string, taskType TaskType, taskIndex int) (TaskStatus, bool) {
	key := StatusKey(dayID, taskType, taskIndex)
	for _, ts := range p.TaskStatuses {
		if ts.Key() == key {
			return ts, true
		}
	}
	return TaskStatus{}, false
}

// UpsertJournalEntry writes content for dayID. An existing entry for the day
// keeps its CreatedAt; UpdatedAt is always now.
func (p *UserProgress) UpsertJournalEntry(dayID, content string, now time.Time) JournalEntry {
	for i := range p.JournalEntries {
		if p.JournalEntries[i].DayID == dayID {
			p.JournalEntries[i].Content = content
			p.JournalEntries[i].UpdatedAt = now
			return p.JournalEntries[i]
		}
	}
	entry := JournalEntry{DayID: dayID, Content: content, CreatedAt: now, UpdatedAt: now}
	p.JournalEntries = append(p.JournalEntries, entry)
	return entry
}

// MergeJournalEntry stores an entry received from elsewhere, keeping the
// earliest CreatedAt seen for the day.
func (p *UserProgress) MergeJournalEntry(entry JournalEntry) {
	for i := range p.JournalEntries {
		if p.JournalEntries[i].DayID == entry.DayID {
			created := p.JournalEntries[i].CreatedAt
			if !entry.CreatedAt.IsZero() && (created.IsZero() || entry.CreatedAt.Before(created)) {
				created = entry.CreatedAt
			}
			p.JournalEntries[i] = entry
			p.JournalEntries[i].CreatedAt = created
			return
		}
	}
	p.JournalEntries = append(p.JournalEntries, entry)
}

// FindJournalEntry returns the entry for dayID.
func (p *UserProgress) FindJournalEntry(dayID string) (JournalEntry, bool) {
	for _, e := range p.JournalEntries {
		if e.DayID == dayID {
			return e, true
		}
	}
	return JournalEntry{}, false
}

// CompletedCount counts completed task statuses.
func (p *UserProgress) CompletedCount() int {
	n := 0
	for _, ts := range p.TaskStatuses {
		if ts.Completed {
			n++
		}
	}
	return n
}

// Recompute derives the stats and streak counters. The completion percentage
// denominator is the sprint's real slot count; without a sprint it falls back
// to the number of recorded slots and TotalDaysCompleted is left untouched.
func (p *UserProgress) Recompute(sprint *Sprint) {
	completed := p.CompletedCount()
	p.TotalTasksCompleted = completed

	total := sprint.TotalTasks()
	if sprint == nil {
		total = len(p.TaskStatuses)
	}
	p.CompletionPercentage = percentage(completed, total)

	if sprint != nil {
		p.TotalDaysCompleted = p.completedDays(sprint)
	}

	taskDays := make(map[int]bool)
	for _, ts := range p.TaskStatuses {
		if !ts.Completed {
			continue
		}
		if n, ok := dayNumber(ts.DayID); ok {
			taskDays[n] = true
		}
	}
	p.CurrentTaskStreak, p.LongestTaskStreak = streaks(taskDays)

	journalDays := make(map[int]bool)
	for _, e := range p.JournalEntries {
		if strings.TrimSpace(e.Content) == "" {
			continue
		}
		if n, ok := dayNumber(e.DayID); ok {
			journalDays[n] = true
		}
	}
	p.CurrentJournalStreak, p.LongestJournalStreak = streaks(journalDays)
}

func (p *UserProgress) completedDays(sprint *Sprint) int {
	done := make(map[string]bool, len(p.TaskStatuses))
	for _, ts := range p.TaskStatuses {
		if ts.Completed {
			done[ts.Key()] = true
		}
	}
	count := 0
	for _, d := range sprint.Days {
		if d.TaskCount() == 0 {
			continue
		}
		all := true
		for i := range d.CoreTasks {
			if !done[StatusKey(d.Day, TaskTypeCore, i)] {
				all = false
				break
			}
		}
		for i := 0; all && i < len(d.SpecialTasks); i++ {
			if !done[StatusKey(d.Day, TaskTypeSpecial, i)] {
				all = false
			}
		}
		if all {
			count++
		}
	}
	return count
}

func percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) * 100 / float64(total)))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

func dayNumber(dayID string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(dayID))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// streaks returns the run of consecutive days ending at the latest day, and
// the longest run overall.
func streaks(days map[int]bool) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}
	ordered := make([]int, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Ints(ordered)

	run := 0
	prev := 0
	for i, d := range ordered {
		if i > 0 && d == prev+1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}
	return run, longest
}
