package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/overlook/internal/dom"
)

type fixture struct {
	doc     *dom.Document
	app     *dom.Element
	overlay *dom.Element
	details *dom.Element
	button  *dom.Element
	gate    *Gate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc := dom.NewDocument()
	f := &fixture{
		doc:     doc,
		app:     doc.CreateElement("div"),
		overlay: doc.CreateElement("div"),
		details: doc.CreateElement("div"),
		button:  doc.CreateElement("button"),
	}
	f.overlay.ID = DefaultOverlayID
	f.details.ID = DefaultDetailsID
	doc.Body.AppendChild(f.app)
	doc.Body.AppendChild(f.overlay)
	f.overlay.AppendChild(f.button)
	f.overlay.AppendChild(f.details)
	f.gate = New(doc, Options{})
	return f
}

// dispatch sends an event of typ to target and reports whether the
// application's own listener saw it.
func (f *fixture) dispatch(target *dom.Element, ev *dom.Event) bool {
	seen := false
	l := dom.NewListener(func(*dom.Event) { seen = true })
	target.AddEventListener(ev.Type, l)
	defer target.RemoveEventListener(ev.Type, l)
	ev.Target = target
	f.doc.Dispatch(ev)
	return seen
}

func TestGate_NoneInterceptsNothing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.gate.SetLevel(None)
	for _, typ := range Message.Events() {
		ev := &dom.Event{Type: typ}
		assert.True(t, f.dispatch(f.app, ev), typ)
		assert.False(t, ev.PropagationStopped(), typ)
		assert.False(t, ev.DefaultPrevented(), typ)
	}
	assert.Empty(t, f.doc.CaptureTypes())
}

func TestGate_PauseBlocksClickOutsideOverlay(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.gate.SetLevel(Pause)

	ev := &dom.Event{Type: "click"}
	assert.False(t, f.dispatch(f.app, ev))
	assert.True(t, ev.PropagationStopped())
	assert.True(t, ev.DefaultPrevented())

	ev = &dom.Event{Type: "click"}
	assert.True(t, f.dispatch(f.button, ev))
	assert.False(t, ev.PropagationStopped())
	assert.False(t, ev.DefaultPrevented())
}

func TestGate_PauseLetsScrollThrough(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.gate.SetLevel(Pause)

	ev := &dom.Event{Type: "wheel"}
	assert.True(t, f.dispatch(f.app, ev))
	assert.False(t, ev.DefaultPrevented())
}

func TestGate_MessageScrollExemptions(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.gate.SetLevel(Message)

	tests := []struct {
		name    string
		target  *dom.Element
		typ     string
		allowed bool
	}{
		{"scroll in details", f.details, "scroll", true},
		{"wheel in details", f.details, "wheel", true},
		{"scroll in overlay", f.button, "scroll", false},
		{"scroll in app", f.app, "wheel", false},
		{"click in details", f.details, "click", true},
		{"keydown in app", f.app, "keydown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &dom.Event{Type: tt.typ}
			assert.Equal(t, tt.allowed, f.dispatch(tt.target, ev))
			assert.Equal(t, !tt.allowed, ev.DefaultPrevented())
		})
	}
}

func TestGate_ReloadNeverIntercepted(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for _, level := range []Level{None, Pause, Message} {
		f.gate.SetLevel(level)
		ev := &dom.Event{Type: "keydown", Key: dom.KeyR, Meta: true}
		assert.True(t, f.dispatch(f.app, ev), level.String())
		assert.False(t, ev.DefaultPrevented(), level.String())
	}
}

func TestGate_ListenersMatchLevel(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	steps := []Level{Pause, Pause, Message, Pause, None, Message, None}
	for _, level := range steps {
		f.gate.SetLevel(level)
		assert.ElementsMatch(t, level.Events(), f.doc.CaptureTypes(), level.String())
		for _, typ := range level.Events() {
			require.Equal(t, 1, f.doc.ListenerCount(typ, true), typ)
		}
	}
}

func TestGate_OverflowSavedAndRestored(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.doc.Body.SetStyle("overflow", "auto")

	f.gate.SetLevel(Pause)
	assert.Equal(t, "hidden", f.doc.Body.Style["overflow"])
	f.gate.SetLevel(Message)
	assert.Equal(t, "hidden", f.doc.Body.Style["overflow"])
	f.gate.SetLevel(None)
	assert.Equal(t, "auto", f.doc.Body.Style["overflow"])
}

func TestGate_OverflowUnsetRestoredToUnset(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.gate.SetLevel(Message)
	f.gate.SetLevel(None)
	_, ok := f.doc.Body.Style["overflow"]
	assert.False(t, ok)
}

func TestGate_Close(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.gate.SetLevel(Message)
	f.gate.Close()
	assert.Equal(t, None, f.gate.Level())
	assert.Empty(t, f.gate.Listening())
	assert.Empty(t, f.doc.CaptureTypes())
}

func TestTransition(t *testing.T) {
	t.Parallel()

	remove, add := Transition(Pause, Message)
	assert.Empty(t, remove)
	assert.Equal(t, []string{"wheel", "scroll"}, add)

	remove, add = Transition(Message, Pause)
	assert.Equal(t, []string{"wheel", "scroll"}, remove)
	assert.Empty(t, add)

	remove, add = Transition(None, Pause)
	assert.Empty(t, remove)
	assert.Equal(t, Pause.Events(), add)

	remove, add = Transition(Message, Message)
	assert.Nil(t, remove)
	assert.Nil(t, add)
}

func TestSubscription_Idempotent(t *testing.T) {
	t.Parallel()

	doc := dom.NewDocument()
	s := NewSubscription(doc, dom.NewListener(func(*dom.Event) {}))
	s.Activate("click", "click")
	s.Activate("click")
	assert.Equal(t, 1, doc.ListenerCount("click", true))
	s.Deactivate("click")
	s.Deactivate("click")
	assert.Equal(t, 0, doc.ListenerCount("click", true))
}
