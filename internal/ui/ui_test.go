package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/lope/internal/tree"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func scenarioStore() *tree.Store {
	return tree.NewStore([]tree.Entry{
		{Path: "a.txt", Depth: 0, Kind: tree.File},
		{Path: "dir", Depth: 0, Kind: tree.Directory, Expanded: false},
		{Path: "dir/b.txt", Depth: 1, Kind: tree.File},
	})
}

func newTestApp(store *tree.Store) *App {
	return NewApp(NewFileBrowser(store), NewPromptEditor(""), NewOptionsBar())
}

func feed(t *testing.T, a *App, msgs ...tea.KeyMsg) Action {
	t.Helper()
	action := ActionNone
	for _, msg := range msgs {
		action = a.HandleKey(msg)
		if action != ActionNone {
			return action
		}
	}
	return action
}
