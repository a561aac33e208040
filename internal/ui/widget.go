package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Action ends the interactive loop.
type Action int

const (
	ActionNone Action = iota
	ActionSend
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionSend:
		return "send"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Focus names the widget that receives unmodified keys.
type Focus int

const (
	FocusFileBrowser Focus = iota
	FocusPromptEditor
	FocusOptions
)

func (f Focus) String() string {
	switch f {
	case FocusFileBrowser:
		return "file browser"
	case FocusPromptEditor:
		return "prompt editor"
	default:
		return "options"
	}
}

// Widget is implemented by the three panes.
type Widget interface {
	HandleKey(msg tea.KeyMsg) Action
	HandleTick(now time.Time)
}
