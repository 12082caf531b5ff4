package dom

import "sort"

// Key codes used by the overlay runtime. They follow the browser keyCode
// numbering so saved key bindings stay meaningful across hosts.
const (
	KeyTab   = 9
	KeyEnter = 13
	KeyEsc   = 27
	KeyUp    = 38
	KeyDown  = 40
	KeyR     = 82
)

// Event is a host input event.
type Event struct {
	Type   string
	Target *Element
	// Key is the key code for keyboard events.
	Key int
	// Rune is the printable character for keyboard events, if any.
	Rune rune
	// Meta is set when the platform "command" modifier is held.
	Meta bool

	stopped   bool
	prevented bool
}

// StopPropagation prevents the event from reaching further listeners.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PreventDefault suppresses the host's default action for the event.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// IsReload reports whether the event is the reserved reload combination
// (meta+R on keydown). Hosts must always let it through.
func (e *Event) IsReload() bool {
	return e.Type == "keydown" && e.Meta && e.Key == KeyR
}

// Listener wraps an event handler. Listeners are compared by identity, so the
// same *Listener must be passed to add and remove calls.
type Listener struct {
	fn func(*Event)
}

// NewListener returns a listener calling fn.
func NewListener(fn func(*Event)) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the wrapped handler.
func (l *Listener) Handle(ev *Event) {
	l.fn(ev)
}

type listenerSet map[string][]*Listener

func (s *listenerSet) add(typ string, l *Listener) {
	if *s == nil {
		*s = make(listenerSet)
	}
	for _, existing := range (*s)[typ] {
		if existing == l {
			return
		}
	}
	(*s)[typ] = append((*s)[typ], l)
}

func (s listenerSet) remove(typ string, l *Listener) {
	ls := s[typ]
	for i, existing := range ls {
		if existing == l {
			ls = append(ls[:i:i], ls[i+1:]...)
			if len(ls) == 0 {
				delete(s, typ)
			} else {
				s[typ] = ls
			}
			return
		}
	}
}

// fire runs the listeners for ev.Type. The slice is copied so listeners may
// unregister themselves while running.
func (s listenerSet) fire(ev *Event) {
	ls := append([]*Listener(nil), s[ev.Type]...)
	for _, l := range ls {
		if ev.stopped {
			return
		}
		l.Handle(ev)
	}
}

func (s listenerSet) types() []string {
	types := make([]string, 0, len(s))
	for t := range s {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
