package tui

import (
	"errors"

	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/report"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	errSprintUnavailable = errors.New("sprint not available")
	errNoActiveSprint    = errors.New("no active sprint")
)

func defaultBindings() *HandlerRegistry {
	r := NewHandlerRegistry()
	r.Register(KeyBinding{Key: "q", Handler: handleQuit, Description: "quit"})
	r.Register(KeyBinding{Key: "j", Handler: handleDown})
	r.Register(KeyBinding{Key: "down", Handler: handleDown})
	r.Register(KeyBinding{Key: "k", Handler: handleUp})
	r.Register(KeyBinding{Key: "up", Handler: handleUp})
	r.Register(KeyBinding{Key: "esc", Handler: handleBack, Description: "back"})
	r.Register(KeyBinding{Key: "d", Handler: goTo(RouteDashboard), Description: "dashboard"})
	r.Register(KeyBinding{Key: "s", Handler: goTo(RouteSprints), Description: "sprints"})
	r.Register(KeyBinding{Key: "t", Handler: goTo(RouteTasks), Description: "tasks"})
	r.Register(KeyBinding{Key: "r", Handler: handleRefresh, Description: "refresh"})
	r.Register(KeyBinding{Key: "x", Handler: handleClearErrors})

	r.Register(KeyBinding{Key: " ", Handler: handleToggleSlot, Description: "toggle", Routes: []string{RouteDashboard}, Priority: 10})
	r.Register(KeyBinding{Key: "e", Handler: handleJournal, Description: "journal", Routes: []string{RouteDashboard}, Priority: 10})
	r.Register(KeyBinding{Key: "p", Handler: handleReport, Description: "pdf", Routes: []string{RouteDashboard}, Priority: 10})
	r.Register(KeyBinding{Key: "n", Handler: handleNewSprint, Description: "new sprint", Routes: []string{RouteDashboard, RouteSprints}, Priority: 10})
	r.Register(KeyBinding{Key: "enter", Handler: handleOpenSprint, Description: "open", Routes: []string{RouteSprints}, Priority: 10})
	r.Register(KeyBinding{Key: " ", Handler: handleToggleTask, Description: "toggle", Routes: []string{RouteTasks}, Priority: 10})
	r.Register(KeyBinding{Key: "a", Handler: handleNewTask, Description: "add task", Routes: []string{RouteTasks}, Priority: 10})
	r.Register(KeyBinding{Key: "/", Handler: handleFilter, Description: "filter", Routes: []string{RouteTasks}, Priority: 10})
	return r
}

func handleQuit(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	return m, tea.Quit, true
}

func handleDown(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if m.cursor < m.rowCount()-1 {
		m.cursor++
	}
	return m, nil, true
}

func handleUp(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if m.cursor > 0 {
		m.cursor--
	}
	return m, nil, true
}

func handleBack(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	if _, ok := m.deps.App.Back(); ok {
		m.cursor = 0
	}
	return m, nil, true
}

func goTo(route string) KeyHandler {
	return func(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
		return m.navigate(route), nil, true
	}
}

func handleRefresh(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	deps := m.deps
	deps.App.ClearRouteCache()
	return m, func() tea.Msg {
		deps.App.SetLoading(true)
		defer deps.App.SetLoading(false)
		return opDoneMsg{note: "Refreshed", err: deps.Sync.Refresh(deps.Ctx)}
	}, true
}

func handleClearErrors(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	m.deps.Sprints.ClearError()
	m.deps.Tasks.ClearError()
	m.deps.Progress.ClearError()
	m.err = nil
	return m, nil, true
}

func handleToggleSlot(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	slots := m.slots()
	active := m.deps.Sprints.Active()
	if active == nil || m.cursor >= len(slots) {
		return m, nil, true
	}
	s := slots[m.cursor]
	completed := true
	if p := m.deps.Progress.Progress(); p != nil && p.SprintID == active.ID {
		if ts, ok := p.FindTaskStatus(s.dayID, s.taskType, s.index); ok {
			completed = !ts.Completed
		}
	}
	deps := m.deps
	userID := m.userID()
	return m, func() tea.Msg {
		err := deps.Progress.UpdateTaskStatus(deps.Ctx, userID, active.ID, s.dayID, s.taskType, s.index, completed)
		return opDoneMsg{err: err}
	}, true
}

func handleToggleTask(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	tasks := m.visibleTasks()
	if m.cursor >= len(tasks) {
		return m, nil, true
	}
	task := tasks[m.cursor]
	deps := m.deps
	userID := m.userID()
	return m, func() tea.Msg {
		err := deps.Tasks.ToggleStatus(deps.Ctx, userID, task.ID, task.Status != models.TaskCompleted)
		return opDoneMsg{err: err}
	}, true
}

func handleJournal(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	active := m.deps.Sprints.Active()
	if active == nil {
		m.err = errNoActiveSprint
		return m, nil, true
	}
	day := m.currentDay()
	existing := ""
	if p := m.deps.Progress.Progress(); p != nil && p.SprintID == active.ID {
		if e, ok := p.FindJournalEntry(day); ok {
			existing = e.Content
		}
	}
	m.journalDay = day
	next, cmd := m.startInput(inputJournal, "How did day "+day+" go?", existing)
	return next, cmd, true
}

func handleNewSprint(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	next, cmd := m.startInput(inputSprintTitle, "Sprint title", "")
	return next, cmd, true
}

func handleNewTask(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	next, cmd := m.startInput(inputTaskTitle, "Task title", "")
	return next, cmd, true
}

func handleOpenSprint(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	sprints := m.deps.Sprints.Sprints()
	if m.cursor >= len(sprints) {
		return m, nil, true
	}
	next, cmd := m.openSprint(sprints[m.cursor].ID)
	return next, cmd, true
}

func handleReport(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	active := m.deps.Sprints.Active()
	if active == nil {
		m.err = errNoActiveSprint
		return m, nil, true
	}
	deps := m.deps
	sprint := *active
	p := deps.Progress.Progress()
	if p != nil && p.SprintID != sprint.ID {
		p = nil
	}
	return m, func() tea.Msg {
		path, err := report.WritePDF(deps.ReportsDir, sprint, p, deps.Now())
		return opDoneMsg{note: "PDF report generated: " + path, err: err}
	}, true
}

func handleFilter(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	next, cmd := m.startInput(inputFilter, "tag:x status:active priority:high words", m.filterRaw)
	return next, cmd, true
}
