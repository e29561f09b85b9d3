package tui

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/sprintsync/internal/config"
	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/util"
)

func (m MainModel) View() string {
	var b strings.Builder
	theme := CurrentTheme

	header := fmt.Sprintf("SprintSync v%s", versionLabel())
	if m.deps.User != nil {
		header += fmt.Sprintf("  |  %s (%s)", m.deps.User.ID, m.deps.User.Kind)
	}
	b.WriteString(theme.Header.Render(header))
	b.WriteString("\n\n")

	if m.deps.App.Loading() || m.deps.Sprints.Loading() || m.deps.Tasks.Loading() {
		b.WriteString(theme.Dim.Render("Loading..."))
		b.WriteString("\n")
	}

	switch m.route() {
	case RouteSprints:
		m.renderSprints(&b)
	case RouteTasks:
		m.renderTasks(&b)
	case RouteSprintDetail:
		m.renderSprintDetail(&b)
	default:
		m.renderDashboard(&b)
	}

	if m.inputKind != inputNone {
		b.WriteString("\n")
		b.WriteString(theme.Input.Render(m.input.View()))
		b.WriteString("\n")
		b.WriteString(theme.Dim.Render("[enter]save|[esc]cancel"))
		b.WriteString("\n")
	}

	for _, msg := range m.errorLines() {
		b.WriteString(theme.Error.Render(msg))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(theme.Highlight.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(m.keys.HelpForRoute(m.route())))
	return theme.Base.Render(b.String())
}

func (m MainModel) errorLines() []string {
	var out []string
	for _, e := range []string{m.deps.Sprints.Error(), m.deps.Tasks.Error(), m.deps.Progress.Error()} {
		if e != "" {
			out = append(out, e)
		}
	}
	if m.err != nil {
		out = append(out, m.err.Error())
	}
	return out
}

func (m MainModel) titleWidth() int {
	if m.width == 0 {
		return config.TargetTitleWidth
	}
	return util.Clamp(m.width-20, config.MinTitleWidth, config.TargetTitleWidth)
}

// window returns the visible [start, end) row range around the cursor.
func (m MainModel) window(n int) (int, int) {
	if n <= config.MaxVisibleRows {
		return 0, n
	}
	start := util.Clamp(m.cursor-config.MaxVisibleRows/2, 0, n-config.MaxVisibleRows)
	return start, start + config.MaxVisibleRows
}

func (m MainModel) cursorMark(i int) string {
	if i == m.cursor {
		return CurrentTheme.Focused.Render(">")
	}
	return " "
}

func (m MainModel) renderDashboard(b *strings.Builder) {
	theme := CurrentTheme
	active := m.deps.Sprints.Active()
	if active == nil {
		b.WriteString("No active sprint. Press n to start one.\n")
		return
	}
	p := m.deps.Progress.Progress()
	if p != nil && p.SprintID != active.ID {
		p = nil
	}
	if p == nil {
		empty := models.NewEmptyProgress(m.userID(), active.ID, m.deps.Now())
		p = &empty
	}

	fmt.Fprintf(b, "%s  %s  %s to %s\n", theme.Day.Render(truncateLabel(active.Title, m.titleWidth())),
		FormatSprintStatus(active.Status), active.StartDate, active.EndDate)
	fmt.Fprintf(b, "%s %d%%  %s  |  %s  |  %s\n\n",
		m.bar.ViewAs(float64(p.CompletionPercentage)/100), p.CompletionPercentage,
		FormatCompletion(p.TotalTasksCompleted, active.TotalTasks()),
		FormatStreak("tasks", p.CurrentTaskStreak, p.LongestTaskStreak),
		FormatStreak("journal", p.CurrentJournalStreak, p.LongestJournalStreak))

	slots := m.slots()
	if len(slots) == 0 {
		b.WriteString(theme.Dim.Render("This sprint has no tasks planned."))
		b.WriteString("\n")
		return
	}
	start, end := m.window(len(slots))
	lastDay := ""
	for i := start; i < end; i++ {
		s := slots[i]
		if s.dayID != lastDay {
			lastDay = s.dayID
			fmt.Fprintf(b, "%s\n", theme.Day.Render(fmt.Sprintf("Day %s  %s", s.dayID, s.date)))
			if e, ok := p.FindJournalEntry(s.dayID); ok && e.Content != "" {
				fmt.Fprintf(b, "   %s\n", theme.Journal.Render(truncateLabel(e.Content, m.titleWidth())))
			}
		}
		mark, style := "[ ]", theme.Task
		if s.taskType == models.TaskTypeSpecial {
			style = theme.Special
		}
		if ts, ok := p.FindTaskStatus(s.dayID, s.taskType, s.index); ok && ts.Completed {
			mark, style = "[x]", theme.CompletedTask
		}
		pending := ""
		if m.deps.Progress.IsUpdating(s.key()) {
			pending = theme.Dim.Render(" ...")
		}
		fmt.Fprintf(b, "%s %s %s%s\n", m.cursorMark(i), mark, style.Render(truncateLabel(s.title, m.titleWidth())), pending)
	}
}

func (m MainModel) renderSprints(b *strings.Builder) {
	theme := CurrentTheme
	sprints := m.deps.Sprints.Sprints()
	b.WriteString(theme.Day.Render("Sprints"))
	b.WriteString("\n")
	if len(sprints) == 0 {
		b.WriteString(theme.Dim.Render("No sprints yet."))
		b.WriteString("\n")
		return
	}
	start, end := m.window(len(sprints))
	for i := start; i < end; i++ {
		sp := sprints[i]
		fmt.Fprintf(b, "%s %s  %s  %s\n", m.cursorMark(i), truncateLabel(sp.Title, m.titleWidth()),
			theme.Dim.Render(FormatSprintStatus(sp.Status)), theme.Dim.Render(sp.StartDate))
	}
}

func (m MainModel) renderSprintDetail(b *strings.Builder) {
	theme := CurrentTheme
	current := m.deps.App.Current()
	id := strings.TrimPrefix(current, sprintRoutePrefix)

	var sp *models.Sprint
	if payload, ok := m.deps.App.CachedRoute(current, 0); ok {
		if cached, ok := payload.(models.Sprint); ok {
			sp = &cached
		}
	}
	if sp == nil {
		sp = m.deps.Sprints.Get(id)
	}
	if sp == nil {
		b.WriteString(theme.Dim.Render("Loading sprint..."))
		b.WriteString("\n")
		return
	}
	fmt.Fprintf(b, "%s  %s\n", theme.Day.Render(sp.Title), FormatSprintStatus(sp.Status))
	if sp.Description != "" {
		fmt.Fprintf(b, "%s\n", sp.Description)
	}
	fmt.Fprintf(b, "%s to %s, %d days, %d task slots\n", sp.StartDate, sp.EndDate, sp.Duration, sp.TotalTasks())
}

func (m MainModel) renderTasks(b *strings.Builder) {
	theme := CurrentTheme
	tasks := m.visibleTasks()
	b.WriteString(theme.Day.Render("Tasks"))
	if m.filterRaw != "" {
		b.WriteString(theme.Dim.Render("  filter: " + m.filterRaw))
	}
	b.WriteString("\n")
	if len(tasks) == 0 && m.filterRaw != "" {
		b.WriteString(theme.Dim.Render("No tasks match the filter."))
		b.WriteString("\n")
		return
	}
	if len(tasks) == 0 {
		b.WriteString(theme.Dim.Render("No tasks yet. Press a to add one."))
		b.WriteString("\n")
		return
	}
	updating := m.deps.Tasks.Updating()
	start, end := m.window(len(tasks))
	for i := start; i < end; i++ {
		t := tasks[i]
		mark, style := "[ ]", theme.Task
		if t.Status == models.TaskCompleted {
			mark, style = "[x]", theme.CompletedTask
		}
		pending := ""
		if t.ID == updating {
			pending = theme.Dim.Render(" ...")
		}
		fmt.Fprintf(b, "%s %s %s  %s%s\n", m.cursorMark(i), mark, style.Render(truncateLabel(t.Title, m.titleWidth())),
			theme.Dim.Render(string(t.Priority)), pending)
	}
}
