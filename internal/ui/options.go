package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Option is the choice shown in the options bar.
type Option int

const (
	OptionSend Option = iota
	OptionQuit
)

// OptionsBar picks between sending and quitting.
type OptionsBar struct {
	selected Option
}

// NewOptionsBar starts on Send.
func NewOptionsBar() *OptionsBar {
	return &OptionsBar{selected: OptionSend}
}

// Selected returns the highlighted option.
func (o *OptionsBar) Selected() Option {
	return o.selected
}

// Select highlights opt.
func (o *OptionsBar) Select(opt Option) {
	o.selected = opt
}

// Commit turns the highlighted option into an action.
func (o *OptionsBar) Commit() Action {
	if o.selected == OptionQuit {
		return ActionQuit
	}
	return ActionSend
}

// HandleKey implements Widget.
func (o *OptionsBar) HandleKey(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, optionsKeys.Send):
		o.Select(OptionSend)
	case key.Matches(msg, optionsKeys.Quit):
		o.Select(OptionQuit)
	case key.Matches(msg, optionsKeys.Commit):
		return o.Commit()
	}
	return ActionNone
}

// HandleTick implements Widget.
func (o *OptionsBar) HandleTick(time.Time) {}
