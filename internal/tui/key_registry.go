package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyHandler reacts to a key press. handled=false lets lower-priority
// bindings for the same key run.
type KeyHandler func(m MainModel, key string) (next MainModel, cmd tea.Cmd, handled bool)

type KeyBinding struct {
	Key         string
	Handler     KeyHandler
	Description string
	Routes      []string
	Priority    int
}

func (b KeyBinding) AppliesToRoute(route string) bool {
	if len(b.Routes) == 0 {
		return true
	}
	for _, r := range b.Routes {
		if r == route {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m MainModel, key string) (MainModel, tea.Cmd, bool) {
	route := m.route()
	for _, b := range r.bindings {
		if b.Key == key && b.AppliesToRoute(route) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) BindingsForRoute(route string) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.AppliesToRoute(route) {
			out = append(out, b)
		}
	}
	return out
}

func (r *HandlerRegistry) HelpForRoute(route string) string {
	seen := make(map[string]bool)
	var parts []string
	for _, b := range r.BindingsForRoute(route) {
		if b.Description == "" || seen[b.Key] {
			continue
		}
		seen[b.Key] = true
		parts = append(parts, "["+b.Key+"]"+b.Description)
	}
	return strings.Join(parts, "|")
}
