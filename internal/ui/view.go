package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/lope/internal/tree"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading…"
	}
	topHeight := m.height - optionsHeight - statusHeight
	treeWidth, promptWidth := m.paneWidths(m.width)

	treePane := paneStyle(m.app.Focus() == FocusFileBrowser).
		Width(max(treeWidth-2, 0)).
		Height(max(topHeight-2, 0)).
		Render(m.treeVP.View())
	promptPane := paneStyle(m.app.Focus() == FocusPromptEditor).
		Width(max(promptWidth-2, 0)).
		Height(max(topHeight-2, 0)).
		Render(m.promptVP.View())
	optionsPane := paneStyle(m.app.Focus() == FocusOptions).
		Width(max(m.width-2, 0)).
		Render(m.renderOptions(max(m.width-2, 0)))

	body := lipgloss.JoinHorizontal(lipgloss.Top, treePane, promptPane)
	return lipgloss.JoinVertical(lipgloss.Left, body, optionsPane, m.renderStatus())
}

func paneStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(focusBorderColor)
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(blurBorderColor)
}

func (m *Model) renderTree(width int) string {
	browser := m.app.FileBrowser()
	store := browser.Store()
	visible := store.Visible()
	if len(visible) == 0 {
		return treeLineStyle.Render(fmt.Sprintf("%s is empty", m.displayRoot))
	}

	focused := m.app.Focus() == FocusFileBrowser
	var b strings.Builder
	for pos, idx := range visible {
		entry, _ := store.At(idx)
		label := formatTreeLabel(entry, browser.Changed(entry.Path))
		if width > 0 {
			label = ansi.Truncate(label, width, "…")
		}
		switch {
		case pos == browser.Cursor() && focused:
			b.WriteString(treeSelected.Render(label))
		case pos == browser.Cursor():
			b.WriteString(treeSelectedInactive.Render(label))
		case entry.Included:
			b.WriteString(treeIncluded.Render(label))
		case browser.Changed(entry.Path):
			b.WriteString(treeChanged.Render(label))
		default:
			b.WriteString(treeLineStyle.Render(label))
		}
		if pos < len(visible)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func formatTreeLabel(entry tree.Entry, changed bool) string {
	indent := strings.Repeat("  ", entry.Depth)
	indicator := "  "
	switch {
	case entry.IsDir() && entry.Expanded:
		indicator = "- "
	case entry.IsDir():
		indicator = "+ "
	case entry.Included:
		indicator = "* "
	}
	label := indent + indicator + entry.Name()
	if entry.IsDir() {
		label += "/"
	}
	if changed {
		label += " ~"
	}
	return label
}

func (m *Model) renderPrompt(width int) string {
	editor := m.app.PromptEditor()
	text := editor.Text()
	focused := m.app.Focus() == FocusPromptEditor
	if text == "" && !focused {
		return statusStyle.Render("Describe the problem, then ctrl+j to send.")
	}
	if focused && editor.CursorVisible() {
		text += "█"
	}
	style := promptStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(text)
}

func (m *Model) renderOptions(width int) string {
	send := optionIdleStyle.Render("[Send]")
	quit := optionIdleStyle.Render("[Quit]")
	if m.app.Options().Selected() == OptionSend {
		send = sendStyle.Render("[Send]")
	} else {
		quit = quitStyle.Render("[Quit]")
	}
	line := send + "  " + quit
	if width <= 0 {
		return line
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func (m *Model) renderStatus() string {
	if m.err != nil {
		return statusErrorStyle.Render(ansi.Truncate(m.err.Error(), m.width, "…"))
	}
	browser := m.app.FileBrowser()
	if search := browser.SearchView(); search != "" {
		return search
	}

	var help string
	switch m.app.Focus() {
	case FocusFileBrowser:
		help = helpLine(browserKeys.Down, browserKeys.Up, browserKeys.Expand, browserKeys.Collapse, browserKeys.Include, browserKeys.Search, focusKeys.Right, focusKeys.Down)
	case FocusPromptEditor:
		help = helpLine(focusKeys.Left, focusKeys.Down, focusKeys.Quit)
	default:
		help = helpLine(optionsKeys.Send, optionsKeys.Quit, optionsKeys.Commit, focusKeys.Up)
	}
	info := fmt.Sprintf("%s • %d included", m.displayRoot, len(browser.IncludedPaths()))
	if m.modelName != "" {
		info += " • " + m.modelName
	}
	line := info + " │ " + help
	return statusStyle.Render(ansi.Truncate(line, m.width, "…"))
}
