package store

import "fmt"

// Messages stored in a store's error field.
const (
	MsgLoadSprints      = "Failed to load sprints"
	MsgLoadActiveSprint = "Failed to load active sprint"
	MsgLoadSprint       = "Failed to load sprint"
	MsgCreateSprint     = "Failed to create sprint"
	MsgUpdateSprint     = "Failed to update sprint"
	MsgLoadTasks        = "Failed to load tasks"
	MsgCreateTask       = "Failed to create task"
	MsgUpdateTask       = "Failed to update task"
	MsgLoadProgress     = "Failed to load progress"
	MsgUpdateTaskStatus = "Failed to update task status"
	MsgSaveJournalEntry = "Failed to save journal entry"
)

// Error is returned by store writes. Op is the message also stored in the
// store's error field; Err is the backend failure.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
