package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PromptEditor is an append-only text buffer.
type PromptEditor struct {
	text     []rune
	cursorOn bool
}

// NewPromptEditor seeds the buffer with initial.
func NewPromptEditor(initial string) *PromptEditor {
	return &PromptEditor{text: []rune(initial), cursorOn: true}
}

// InsertChar appends r.
func (p *PromptEditor) InsertChar(r rune) {
	p.text = append(p.text, r)
}

// InsertNewline appends a line break.
func (p *PromptEditor) InsertNewline() {
	p.text = append(p.text, '\n')
}

// Backspace removes the last character; an empty buffer is left alone.
func (p *PromptEditor) Backspace() {
	if len(p.text) == 0 {
		return
	}
	p.text = p.text[:len(p.text)-1]
}

// Text returns the buffer.
func (p *PromptEditor) Text() string {
	return string(p.text)
}

// CursorVisible is the blink phase used when drawing.
func (p *PromptEditor) CursorVisible() bool {
	return p.cursorOn
}

// HandleKey implements Widget.
func (p *PromptEditor) HandleKey(msg tea.KeyMsg) Action {
	switch msg.Type {
	case tea.KeyRunes:
		p.text = append(p.text, msg.Runes...)
	case tea.KeySpace:
		p.InsertChar(' ')
	case tea.KeyBackspace:
		p.Backspace()
	case tea.KeyEnter:
		p.InsertNewline()
	}
	p.cursorOn = true
	return ActionNone
}

// HandleTick blinks the cursor.
func (p *PromptEditor) HandleTick(time.Time) {
	p.cursorOn = !p.cursorOn
}
