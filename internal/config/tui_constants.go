package config

// Layout constants.
const (
	// ProgressBarWidth is the initial width of the completion bar.
	ProgressBarWidth = 30

	// MaxProgressBarWidth caps the bar on wide terminals.
	MaxProgressBarWidth = 60

	// MinTitleWidth is the minimum width for task titles.
	MinTitleWidth = 10

	// TargetTitleWidth is the preferred width for task titles.
	TargetTitleWidth = 48
)

// Display limits.
const (
	// MaxVisibleRows limits list rows shown before scrolling.
	MaxVisibleRows = 18

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)

// Input constraints.
const (
	// MaxTitleLength is the maximum sprint or task title length.
	MaxTitleLength = 200

	// MaxJournalLength is the maximum journal entry length typed in the shell.
	MaxJournalLength = 2000
)
