package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/lope/internal/tree"
)

func TestFileBrowserStartsOnFirstEntry(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	idx, entry, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "a.txt", entry.Path)
}

func TestFileBrowserEmptyStore(t *testing.T) {
	b := NewFileBrowser(tree.NewStore(nil))
	assert.Equal(t, -1, b.Cursor())
	b.MoveSelection(1)
	assert.Equal(t, -1, b.Cursor())
	assert.False(t, b.ToggleIncluded())
	assert.False(t, b.SetExpanded(true))
	assert.Empty(t, b.RenderedTree())
}

func TestMoveSelectionClamps(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	b.MoveSelection(-1)
	assert.Equal(t, 0, b.Cursor())
	b.MoveSelection(5)
	assert.Equal(t, 1, b.Cursor())
	b.MoveSelection(1)
	assert.Equal(t, 1, b.Cursor())
}

func TestMoveSelectionFromUnset(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	b.cursor = -1
	b.MoveSelection(-1)
	assert.Equal(t, 1, b.Cursor())

	b.cursor = -1
	b.MoveSelection(1)
	assert.Equal(t, 0, b.Cursor())
}

func TestExpandCollapseOnFileIsNoop(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	assert.False(t, b.SetExpanded(true))
	assert.False(t, b.SetExpanded(false))
	assert.Equal(t, []int{0, 1}, b.Visible())
}

func TestCollapseKeepsSelectionOnDirectory(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	b.MoveSelection(1)
	require.True(t, b.SetExpanded(true))
	b.MoveSelection(1)
	_, entry, _ := b.Selected()
	require.Equal(t, "dir/b.txt", entry.Path)

	b.cursor = 1
	require.True(t, b.SetExpanded(false))
	_, entry, _ = b.Selected()
	assert.Equal(t, "dir", entry.Path)
	assert.Equal(t, []int{0, 1}, b.Visible())
}

func TestSelectionClampedAfterShrink(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	b.MoveSelection(1)
	b.SetExpanded(true)
	b.MoveSelection(1)
	require.Equal(t, 2, b.Cursor())

	b.Store().SetExpanded(1, false)
	_, entry, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "dir", entry.Path)
}

func TestToggleIncludedTwiceRestores(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	require.True(t, b.ToggleIncluded())
	assert.Equal(t, []string{"a.txt"}, b.IncludedPaths())
	require.True(t, b.ToggleIncluded())
	assert.Empty(t, b.IncludedPaths())
}

func TestToggleIncludedOnDirectoryIsNoop(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	b.MoveSelection(1)
	assert.False(t, b.ToggleIncluded())
	assert.Empty(t, b.IncludedPaths())
}

func TestBrowserKeys(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	b.HandleKey(runes("G"))
	assert.Equal(t, 1, b.Cursor())
	b.HandleKey(keyOf(tea.KeyRight))
	assert.Equal(t, []int{0, 1, 2}, b.Visible())
	b.HandleKey(keyOf(tea.KeyDown))
	b.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []string{"dir/b.txt"}, b.IncludedPaths())
	b.HandleKey(runes("g"))
	assert.Equal(t, 0, b.Cursor())
}

func TestJumpToFuzzyMatch(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	b.Store().SetExpanded(1, true)

	assert.True(t, b.JumpTo("dbt"))
	_, entry, _ := b.Selected()
	assert.Equal(t, "dir/b.txt", entry.Path)

	assert.False(t, b.JumpTo("zzz"))
	assert.False(t, b.JumpTo(""))
}

func TestSearchModeConsumesKeys(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	b.HandleKey(runes("/"))
	require.True(t, b.Searching())

	b.HandleKey(runes("d"))
	b.HandleKey(runes("i"))
	assert.Equal(t, 0, b.Cursor())

	b.HandleKey(keyOf(tea.KeyEnter))
	assert.False(t, b.Searching())
	assert.Equal(t, 1, b.Cursor())
	assert.Empty(t, b.IncludedPaths())
}

func TestSearchMissIsReported(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	b.HandleKey(runes("/"))
	b.HandleKey(runes("q"))
	b.HandleKey(keyOf(tea.KeyEnter))
	assert.Equal(t, "no match for q", b.SearchView())

	b.HandleKey(runes("j"))
	assert.Empty(t, b.SearchView())

	b.HandleKey(runes("/"))
	b.HandleKey(keyOf(tea.KeyEsc))
	assert.False(t, b.Searching())
	assert.Empty(t, b.SearchView())
}

func TestMarkChangedIgnoresUnknownPaths(t *testing.T) {
	b := NewFileBrowser(scenarioStore())
	assert.True(t, b.MarkChanged("dir/b.txt"))
	assert.True(t, b.Changed("dir/b.txt"))
	assert.False(t, b.MarkChanged("nope.txt"))
	assert.False(t, b.Changed("nope.txt"))
}

func TestPromptEditorEditing(t *testing.T) {
	p := NewPromptEditor("hi")
	p.HandleKey(runes("!"))
	p.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	p.HandleKey(keyOf(tea.KeyEnter))
	p.HandleKey(runes("ok"))
	assert.Equal(t, "hi! \nok", p.Text())

	p.HandleKey(keyOf(tea.KeyBackspace))
	assert.Equal(t, "hi! \no", p.Text())
}

func TestPromptEditorBackspaceOnEmpty(t *testing.T) {
	p := NewPromptEditor("")
	p.Backspace()
	assert.Equal(t, "", p.Text())
}

func TestPromptEditorHandlesUnicode(t *testing.T) {
	p := NewPromptEditor("")
	p.InsertChar('é')
	p.InsertChar('世')
	p.Backspace()
	assert.Equal(t, "é", p.Text())
}

func TestPromptEditorIgnoresOtherKeys(t *testing.T) {
	p := NewPromptEditor("x")
	p.HandleKey(keyOf(tea.KeyLeft))
	p.HandleKey(keyOf(tea.KeyTab))
	assert.Equal(t, "x", p.Text())
}

func TestOptionsBar(t *testing.T) {
	o := NewOptionsBar()
	assert.Equal(t, OptionSend, o.Selected())
	assert.Equal(t, ActionNone, o.HandleKey(runes("l")))
	assert.Equal(t, OptionQuit, o.Selected())
	assert.Equal(t, ActionNone, o.HandleKey(keyOf(tea.KeyLeft)))
	assert.Equal(t, OptionSend, o.Selected())
	assert.Equal(t, ActionSend, o.HandleKey(keyOf(tea.KeyEnter)))

	o.Select(OptionQuit)
	assert.Equal(t, ActionQuit, o.Commit())
	assert.Equal(t, ActionNone, o.HandleKey(runes("x")))
}
