// Package debugger wraps a program with a time-travelling debugger.
//
// Every application message is recorded together with the model it
// produced. Selecting an older entry pauses the application: its view shows
// the selected model while the input gate blocks interaction. The popout
// lists the history and shows the selected model as an expandable tree.
package debugger

import (
	"github.com/thruflo/overlook/internal/expando"
	"github.com/thruflo/overlook/internal/gate"
	"github.com/thruflo/overlook/internal/overlay"
)

// Element ids of the debugger views. Options.Gate overrides the overlay and
// details ids.
const (
	OverlayID = gate.DefaultOverlayID
	DetailsID = gate.DefaultDetailsID
	SidebarID = "debugger-sidebar"
	PopoutID  = "debugger-popout"
)

// Entry is one step of the history. The first entry holds the initial model
// and no message.
type Entry struct {
	Msg   any
	Model any
	Label string
}

// Blocking is a message that blocks the application until dismissed.
type Blocking struct {
	Title  string
	Detail string
}

// Model is the debugger state. It is a value; updates return new models.
type Model struct {
	entries  []Entry
	selected int
	details  expando.Expando
	blocking *Blocking
	popout   *overlay.Popout
}

// Entries returns the recorded history, oldest first.
func (m Model) Entries() []Entry {
	return m.entries
}

// Messages returns the number of application messages recorded.
func (m Model) Messages() int {
	return len(m.entries) - 1
}

// Selected returns the index of the selected entry.
func (m Model) Selected() int {
	return m.selected
}

// Latest returns the index of the newest entry.
func (m Model) Latest() int {
	return len(m.entries) - 1
}

// Paused reports whether an entry other than the latest is selected.
func (m Model) Paused() bool {
	return m.selected != m.Latest()
}

// Current returns the application model the view shows.
func (m Model) Current() any {
	return m.entries[m.selected].Model
}

// Details returns the tree of the selected model.
func (m Model) Details() expando.Expando {
	return m.details
}

// Blocking returns the blocking message, if any.
func (m Model) Blocking() *Blocking {
	return m.blocking
}

// Blocker returns the input gate level for m.
func (m Model) Blocker() gate.Level {
	switch {
	case m.blocking != nil:
		return gate.Message
	case m.Paused():
		return gate.Pause
	default:
		return gate.None
	}
}

// Popout returns the handle of the popout surface.
func (m Model) Popout() *overlay.Popout {
	return m.popout
}
