// Package gate blocks user input to the application while the debugger
// holds it paused or shows a blocking message.
//
// A Gate owns one capture Subscription on the primary document. Its level
// decides which event types the subscription covers; events that reach the
// gate are swallowed unless they are the reload shortcut or land inside the
// debugger's own overlay.
package gate

// Level is the intensity of input blocking.
type Level int

const (
	// None blocks nothing.
	None Level = iota
	// Pause blocks pointer, keyboard, form and focus events.
	Pause
	// Message additionally blocks scrolling.
	Message
)

func (l Level) String() string {
	switch l {
	case None:
		return "none"
	case Pause:
		return "pause"
	case Message:
		return "message"
	default:
		return "unknown"
	}
}

var pauseEvents = []string{
	"click", "dblclick", "mousemove",
	"mouseup", "mousedown", "mouseenter", "mouseleave",
	"touchstart", "touchend", "touchcancel", "touchmove",
	"pointerdown", "pointerup", "pointerover", "pointerout",
	"pointerenter", "pointerleave", "pointermove", "pointercancel",
	"dragstart", "drag", "dragend", "dragenter", "dragover", "dragleave", "drop",
	"keyup", "keydown", "keypress",
	"input", "change",
	"focus", "blur",
}

var messageEvents = append(append([]string(nil), pauseEvents...), "wheel", "scroll")

// Events returns the event types blocked at l. The result must not be
// modified.
func (l Level) Events() []string {
	switch l {
	case Pause:
		return pauseEvents
	case Message:
		return messageEvents
	default:
		return nil
	}
}

// Transition returns the event types to stop and start listening to when
// moving from one level to another. Types blocked at both levels appear in
// neither list.
func Transition(from, to Level) (remove, add []string) {
	if from == to {
		return nil, nil
	}
	old := set(from.Events())
	next := set(to.Events())
	for _, typ := range from.Events() {
		if !next[typ] {
			remove = append(remove, typ)
		}
	}
	for _, typ := range to.Events() {
		if !old[typ] {
			add = append(add, typ)
		}
	}
	return remove, add
}

func set(types []string) map[string]bool {
	m := make(map[string]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	return m
}
