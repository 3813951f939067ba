package models

// AppState holds the application state
type AppState struct {
	Width    int
	Height   int
	ViewMode ViewMode

	// Source of the document on screen
	SourceName string
	SourcePath string // empty for stdin

	// Last formatting outcome
	Formatted bool
	Note      string
}

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
	RawMode
	SearchMode
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:    80,
		Height:   24,
		ViewMode: NormalMode,
	}
}
