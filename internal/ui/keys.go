package ui

import "github.com/charmbracelet/bubbles/key"

type focusKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Quit  key.Binding
}

var focusKeys = focusKeyMap{
	Left:  key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "files")),
	Right: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "prompt")),
	Up:    key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "prompt")),
	Down:  key.NewBinding(key.WithKeys("ctrl+j"), key.WithHelp("ctrl+j", "options")),
	Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

type browserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Include  key.Binding
	Search   key.Binding
}

var browserKeys = browserKeyMap{
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Expand:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "expand")),
	Collapse: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "collapse")),
	Include:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "include")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump")),
}

type optionsKeyMap struct {
	Send   key.Binding
	Quit   key.Binding
	Commit key.Binding
}

var optionsKeys = optionsKeyMap{
	Send:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "send")),
	Quit:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "quit")),
	Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
