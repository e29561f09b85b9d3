package tui

import (
	"context"
	"strings"
	"time"

	"github.com/akyairhashvil/sprintsync/internal/config"
	"github.com/akyairhashvil/sprintsync/internal/identity"
	"github.com/akyairhashvil/sprintsync/internal/models"
	"github.com/akyairhashvil/sprintsync/internal/store"
	syncer "github.com/akyairhashvil/sprintsync/internal/sync"
	"github.com/akyairhashvil/sprintsync/internal/util"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Routes recorded in the navigation history.
const (
	RouteDashboard    = "/dashboard"
	RouteSprints      = "/sprints"
	RouteTasks        = "/tasks"
	RouteSprintDetail = "/sprints/:id"
)

const sprintRoutePrefix = "/sprints/"

type inputKind int

const (
	inputNone inputKind = iota
	inputSprintTitle
	inputTaskTitle
	inputJournal
	inputFilter
)

// Deps are the stores the shell drives.
type Deps struct {
	Ctx        context.Context
	User       *identity.User
	Sprints    *store.SprintStore
	Tasks      *store.TaskStore
	Progress   *store.ProgressStore
	App        *store.AppStore
	Sync       *syncer.Orchestrator
	ReportsDir string
	Now        func() time.Time
}

type loadedMsg struct{ err error }

type opDoneMsg struct {
	note string
	err  error
}

// MainModel is the root bubbletea model.
type MainModel struct {
	deps       Deps
	keys       *HandlerRegistry
	input      textinput.Model
	inputKind  inputKind
	journalDay string
	filter     util.SearchQuery
	filterRaw  string
	cursor     int
	bar        progress.Model
	status     string
	err        error
	width      int
	height     int
}

func NewMainModel(deps Deps) MainModel {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	ti := textinput.New()
	ti.CharLimit = config.MaxTitleLength
	ti.Width = 50

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = config.ProgressBarWidth

	if deps.App.Current() == "" {
		deps.App.Visit(RouteDashboard)
	}
	return MainModel{
		deps:  deps,
		keys:  defaultBindings(),
		input: ti,
		bar:   bar,
	}
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.signIn())
}

func (m MainModel) signIn() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		deps.App.SetLoading(true)
		defer deps.App.SetLoading(false)
		return loadedMsg{err: deps.Sync.HandleAuthChange(deps.Ctx, deps.User)}
	}
}

func (m MainModel) userID() string {
	if m.deps.User == nil {
		return ""
	}
	return m.deps.User.ID
}

// route maps the current history entry to its route pattern.
func (m MainModel) route() string {
	current := m.deps.App.Current()
	if strings.HasPrefix(current, sprintRoutePrefix) {
		return RouteSprintDetail
	}
	return current
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = util.Clamp(msg.Width-30, config.ProgressBarWidth/2, config.MaxProgressBarWidth)
		return m, nil
	case loadedMsg:
		m.err = msg.err
		return m, nil
	case opDoneMsg:
		m.err = msg.err
		m.status = ""
		if msg.err == nil {
			m.status = msg.note
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.bar.Update(msg)
		m.bar = next.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.inputKind != inputNone {
			return m.updateInput(msg)
		}
		if next, cmd, handled := m.keys.Handle(m, msg.String()); handled {
			return next, cmd
		}
	}
	return m, nil
}

func (m MainModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputKind = inputNone
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		kind := m.inputKind
		m.inputKind = inputNone
		m.input.Blur()
		m.input.SetValue("")
		if kind == inputFilter {
			m.filterRaw = value
			m.filter = util.ParseSearchQuery(value)
			m.cursor = 0
			return m, nil
		}
		if value == "" && kind != inputJournal {
			return m, nil
		}
		return m, m.submit(kind, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m MainModel) startInput(kind inputKind, placeholder, value string) (MainModel, tea.Cmd) {
	m.inputKind = kind
	m.input.Placeholder = placeholder
	m.input.CharLimit = config.MaxTitleLength
	if kind == inputJournal {
		m.input.CharLimit = config.MaxJournalLength
	}
	m.input.SetValue(value)
	return m, m.input.Focus()
}

func (m MainModel) submit(kind inputKind, value string) tea.Cmd {
	deps := m.deps
	userID := m.userID()
	switch kind {
	case inputSprintTitle:
		draft := models.SprintDraft{
			Title:     value,
			Duration:  models.Duration15,
			StartDate: deps.Now().Format("2006-01-02"),
			Status:    models.StatusActive,
		}
		return func() tea.Msg {
			_, err := deps.Sprints.Create(deps.Ctx, userID, draft)
			deps.App.InvalidateRoute(RouteSprints)
			return opDoneMsg{note: "Sprint created", err: err}
		}
	case inputTaskTitle:
		return func() tea.Msg {
			_, err := deps.Tasks.Create(deps.Ctx, userID, models.TaskDraft{Title: value})
			return opDoneMsg{note: "Task added", err: err}
		}
	case inputJournal:
		active := deps.Sprints.Active()
		if active == nil {
			return nil
		}
		day := m.journalDay
		return func() tea.Msg {
			err := deps.Progress.UpdateJournal(deps.Ctx, userID, active.ID, day, value)
			return opDoneMsg{note: "Journal saved for day " + day, err: err}
		}
	}
	return nil
}

// navigate records a route change in the navigation store. Re-selecting the
// route already shown is not a navigation.
func (m MainModel) navigate(route string) MainModel {
	if route != m.deps.App.Current() {
		m.deps.App.BeginNavigation(route)
		m.deps.App.CompleteNavigation(route)
	}
	m.cursor = 0
	m.status = ""
	return m
}

// openSprint shows one sprint, served from the route cache when fresh.
func (m MainModel) openSprint(id string) (MainModel, tea.Cmd) {
	route := sprintRoutePrefix + id
	m = m.navigate(route)
	if _, ok := m.deps.App.CachedRoute(route, 0); ok {
		return m, nil
	}
	deps := m.deps
	userID := m.userID()
	return m, func() tea.Msg {
		sp := deps.Sprints.LoadOne(deps.Ctx, userID, id)
		if sp == nil {
			return opDoneMsg{err: errSprintUnavailable}
		}
		deps.App.CacheRoute(route, *sp)
		return opDoneMsg{}
	}
}

func (m MainModel) rowCount() int {
	switch m.route() {
	case RouteDashboard:
		return len(m.slots())
	case RouteSprints:
		return len(m.deps.Sprints.Sprints())
	case RouteTasks:
		return len(m.visibleTasks())
	}
	return 0
}

// slot is one task position of the active sprint.
type slot struct {
	dayID    string
	date     string
	taskType models.TaskType
	index    int
	title    string
}

func (s slot) key() string {
	return models.StatusKey(s.dayID, s.taskType, s.index)
}

func (m MainModel) slots() []slot {
	active := m.deps.Sprints.Active()
	if active == nil {
		return nil
	}
	var out []slot
	for _, d := range active.Days {
		for i, t := range d.CoreTasks {
			out = append(out, slot{dayID: d.Day, date: d.Date, taskType: models.TaskTypeCore, index: i, title: t.Title})
		}
		for i, t := range d.SpecialTasks {
			out = append(out, slot{dayID: d.Day, date: d.Date, taskType: models.TaskTypeSpecial, index: i, title: t.Title})
		}
	}
	return out
}

// currentDay is the day under the cursor, or the first day of the sprint.
func (m MainModel) currentDay() string {
	slots := m.slots()
	if m.cursor >= 0 && m.cursor < len(slots) {
		return slots[m.cursor].dayID
	}
	if active := m.deps.Sprints.Active(); active != nil && len(active.Days) > 0 {
		return active.Days[0].Day
	}
	return ""
}
