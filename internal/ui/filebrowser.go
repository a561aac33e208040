package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/kyaoi/lope/internal/tree"
)

// FileBrowser owns the entry store and a cursor into its visible entries.
type FileBrowser struct {
	store   *tree.Store
	cursor  int
	changed map[string]bool

	searchInput  textinput.Model
	searchActive bool
	searchMiss   string
}

// NewFileBrowser selects the first visible entry, if any.
func NewFileBrowser(store *tree.Store) *FileBrowser {
	if store == nil {
		store = tree.NewStore(nil)
	}
	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.CharLimit = 256
	searchInput.Placeholder = "jump to path"
	searchInput.Blur()

	b := &FileBrowser{
		store:       store,
		cursor:      -1,
		changed:     make(map[string]bool),
		searchInput: searchInput,
	}
	if len(store.Visible()) > 0 {
		b.cursor = 0
	}
	return b
}

// Store exposes the underlying entries.
func (b *FileBrowser) Store() *tree.Store {
	return b.store
}

// Visible returns store indexes currently shown.
func (b *FileBrowser) Visible() []int {
	return b.store.Visible()
}

// Cursor is the selected position within Visible, or -1.
func (b *FileBrowser) Cursor() int {
	return b.cursor
}

// Selected resolves the cursor to a store index.
func (b *FileBrowser) Selected() (int, tree.Entry, bool) {
	visible := b.store.Visible()
	b.normalizeCursor(len(visible))
	if b.cursor < 0 {
		return -1, tree.Entry{}, false
	}
	idx := visible[b.cursor]
	entry, _ := b.store.At(idx)
	return idx, entry, true
}

func (b *FileBrowser) normalizeCursor(n int) {
	switch {
	case n == 0:
		b.cursor = -1
	case b.cursor < 0:
		b.cursor = 0
	case b.cursor >= n:
		b.cursor = n - 1
	}
}

// MoveSelection moves the cursor by delta, clamping at both ends. An unset
// cursor lands on the first entry when moving down and the last when moving
// up.
func (b *FileBrowser) MoveSelection(delta int) {
	n := len(b.store.Visible())
	if n == 0 {
		b.cursor = -1
		return
	}
	if b.cursor < 0 {
		if delta < 0 {
			b.cursor = n - 1
		} else {
			b.cursor = 0
		}
		return
	}
	b.cursor = clamp(b.cursor+delta, 0, n-1)
}

// SetExpanded expands or collapses the selected directory.
func (b *FileBrowser) SetExpanded(expanded bool) bool {
	idx, entry, ok := b.Selected()
	if !ok || !entry.IsDir() {
		return false
	}
	b.store.SetExpanded(idx, expanded)
	b.anchor(idx)
	return true
}

// ToggleIncluded flips the selected file in or out of the request.
func (b *FileBrowser) ToggleIncluded() bool {
	idx, entry, ok := b.Selected()
	if !ok || entry.IsDir() {
		return false
	}
	return b.store.ToggleIncluded(idx)
}

// RenderedTree is the whole tree as sent with the request.
func (b *FileBrowser) RenderedTree() string {
	return b.store.Rendered()
}

// IncludedPaths lists included files in store order.
func (b *FileBrowser) IncludedPaths() []string {
	return b.store.IncludedPaths()
}

// MarkChanged flags path as modified on disk. Unknown paths are ignored.
func (b *FileBrowser) MarkChanged(path string) bool {
	if b.store.IndexOf(path) < 0 {
		return false
	}
	b.changed[path] = true
	return true
}

// Changed reports whether path was modified since startup.
func (b *FileBrowser) Changed(path string) bool {
	return b.changed[path]
}

// Searching reports whether the jump prompt is open.
func (b *FileBrowser) Searching() bool {
	return b.searchActive
}

// anchor moves the cursor onto store index idx if it is visible.
func (b *FileBrowser) anchor(idx int) {
	for pos, v := range b.store.Visible() {
		if v == idx {
			b.cursor = pos
			return
		}
	}
	b.normalizeCursor(len(b.store.Visible()))
}

// JumpTo moves the cursor to the best fuzzy match among visible paths.
func (b *FileBrowser) JumpTo(pattern string) bool {
	if pattern == "" {
		return false
	}
	visible := b.store.Visible()
	paths := make([]string, len(visible))
	for i, idx := range visible {
		entry, _ := b.store.At(idx)
		paths[i] = entry.Path
	}
	matches := fuzzy.Find(pattern, paths)
	if len(matches) == 0 {
		return false
	}
	b.cursor = matches[0].Index
	return true
}

// HandleKey implements Widget.
func (b *FileBrowser) HandleKey(msg tea.KeyMsg) Action {
	if b.searchActive {
		b.handleSearchKey(msg)
		return ActionNone
	}

	b.searchMiss = ""
	switch {
	case key.Matches(msg, browserKeys.Up):
		b.MoveSelection(-1)
	case key.Matches(msg, browserKeys.Down):
		b.MoveSelection(1)
	case key.Matches(msg, browserKeys.Top):
		if n := len(b.store.Visible()); n > 0 {
			b.cursor = 0
		}
	case key.Matches(msg, browserKeys.Bottom):
		if n := len(b.store.Visible()); n > 0 {
			b.cursor = n - 1
		}
	case key.Matches(msg, browserKeys.Expand):
		b.SetExpanded(true)
	case key.Matches(msg, browserKeys.Collapse):
		b.SetExpanded(false)
	case key.Matches(msg, browserKeys.Include):
		b.ToggleIncluded()
	case key.Matches(msg, browserKeys.Search):
		b.searchActive = true
		b.searchMiss = ""
		b.searchInput.SetValue("")
		b.searchInput.Focus()
	}
	return ActionNone
}

func (b *FileBrowser) handleSearchKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		query := b.searchInput.Value()
		b.exitSearch()
		if !b.JumpTo(query) && query != "" {
			b.searchMiss = query
		}
		return
	case tea.KeyEsc:
		b.exitSearch()
		return
	}
	b.searchInput, _ = b.searchInput.Update(msg)
}

// Blur closes the jump prompt and drops a stale miss message.
func (b *FileBrowser) Blur() {
	b.exitSearch()
	b.searchMiss = ""
}

func (b *FileBrowser) exitSearch() {
	b.searchActive = false
	b.searchInput.Blur()
}

// HandleTick implements Widget.
func (b *FileBrowser) HandleTick(time.Time) {}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// SearchView renders the jump prompt, or the last failed query.
func (b *FileBrowser) SearchView() string {
	if b.searchActive {
		return b.searchInput.View()
	}
	if b.searchMiss != "" {
		return "no match for " + b.searchMiss
	}
	return ""
}
