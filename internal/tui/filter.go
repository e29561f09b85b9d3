package tui

import (
	"strings"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/util"
)

// matchTask reports whether t satisfies every part of q. Tags are the
// #hashtags in the title and description.
func matchTask(t models.Task, q util.SearchQuery) bool {
	if len(q.Status) > 0 && !contains(q.Status, string(t.Status)) {
		return false
	}
	if len(q.Priority) > 0 && !contains(q.Priority, string(t.Priority)) {
		return false
	}
	if len(q.Tags) > 0 {
		tags := util.ExtractTags(t.Title + " " + t.Description)
		for _, want := range q.Tags {
			if !contains(tags, want) {
				return false
			}
		}
	}
	haystack := strings.ToLower(t.Title + " " + t.Description)
	for _, word := range q.Text {
		if !strings.Contains(haystack, word) {
			return false
		}
	}
	return true
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// visibleTasks is the task list after the active filter.
func (m MainModel) visibleTasks() []models.Task {
	tasks := m.deps.Tasks.Tasks()
	if m.filter.Empty() {
		return tasks
	}
	out := tasks[:0:0]
	for _, t := range tasks {
		if matchTask(t, m.filter) {
			out = append(out, t)
		}
	}
	return out
}
