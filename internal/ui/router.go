package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// App owns the three widgets and routes input between them. Control and
// alt combinations are consumed here; everything else reaches the focused
// widget unchanged.
type App struct {
	focus   Focus
	browser *FileBrowser
	editor  *PromptEditor
	options *OptionsBar
}

// NewApp starts with the prompt editor focused.
func NewApp(browser *FileBrowser, editor *PromptEditor, options *OptionsBar) *App {
	return &App{
		focus:   FocusPromptEditor,
		browser: browser,
		editor:  editor,
		options: options,
	}
}

func (a *App) Focus() Focus                { return a.focus }
func (a *App) FileBrowser() *FileBrowser   { return a.browser }
func (a *App) PromptEditor() *PromptEditor { return a.editor }
func (a *App) Options() *OptionsBar        { return a.options }

// Focused returns the widget that receives unmodified input.
func (a *App) Focused() Widget {
	switch a.focus {
	case FocusFileBrowser:
		return a.browser
	case FocusPromptEditor:
		return a.editor
	default:
		return a.options
	}
}

// HandleKey applies focus transitions for modified keys and forwards the
// rest.
func (a *App) HandleKey(msg tea.KeyMsg) Action {
	if isModified(msg) {
		return a.handleFocusKey(msg)
	}
	return a.Focused().HandleKey(msg)
}

func (a *App) handleFocusKey(msg tea.KeyMsg) Action {
	before := a.focus
	defer func() {
		if before == FocusFileBrowser && a.focus != before {
			a.browser.Blur()
		}
	}()

	switch {
	case key.Matches(msg, focusKeys.Quit):
		return ActionQuit
	case key.Matches(msg, focusKeys.Left):
		if a.focus == FocusPromptEditor {
			a.focus = FocusFileBrowser
		}
	case key.Matches(msg, focusKeys.Right):
		if a.focus == FocusFileBrowser {
			a.focus = FocusPromptEditor
		}
	case key.Matches(msg, focusKeys.Up):
		if a.focus == FocusOptions {
			a.focus = FocusPromptEditor
		}
	case key.Matches(msg, focusKeys.Down):
		if a.focus == FocusFileBrowser || a.focus == FocusPromptEditor {
			a.focus = FocusOptions
		}
	}
	return ActionNone
}

// HandleTick forwards a scheduler tick to the focused widget.
func (a *App) HandleTick(now time.Time) {
	a.Focused().HandleTick(now)
}

// isModified decides by key type; typed or pasted text that merely spells
// "ctrl+x" is plain input.
func isModified(msg tea.KeyMsg) bool {
	if msg.Alt {
		return true
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		return false
	}
	return strings.HasPrefix(msg.String(), "ctrl+")
}
