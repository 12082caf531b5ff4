package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type immediateFrames struct{ calls int }

func (f *immediateFrames) RequestFrame(fn func()) {
	f.calls++
	fn()
}

func TestDocument_DispatchOrder(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	outer := NewElement("div")
	inner := NewElement("span")
	outer.AppendChild(inner)
	doc.Body.AppendChild(outer)

	var order []string
	record := func(name string) *Listener {
		return NewListener(func(*Event) { order = append(order, name) })
	}
	doc.AddEventListener("click", record("capture"), true)
	doc.AddEventListener("click", record("bubble"), false)
	outer.AddEventListener("click", record("outer"))
	inner.AddEventListener("click", record("inner"))

	ok := doc.Dispatch(&Event{Type: "click", Target: inner})
	assert.True(t, ok)
	assert.Equal(t, []string{"capture", "inner", "outer", "bubble"}, order)
}

func TestDocument_StopPropagationInCapture(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	el := NewElement("button")
	doc.Body.AppendChild(el)

	reached := false
	el.AddEventListener("click", NewListener(func(*Event) { reached = true }))
	doc.AddEventListener("click", NewListener(func(ev *Event) {
		ev.StopPropagation()
		ev.PreventDefault()
	}), true)

	ev := &Event{Type: "click", Target: el}
	assert.False(t, doc.Dispatch(ev))
	assert.False(t, reached)
	assert.True(t, ev.PropagationStopped())
	assert.True(t, ev.DefaultPrevented())
}

func TestDocument_AddListenerIdempotent(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	l := NewListener(func(*Event) {})
	doc.AddEventListener("scroll", l, true)
	doc.AddEventListener("scroll", l, true)
	assert.Equal(t, 1, doc.ListenerCount("scroll", true))
	assert.Equal(t, 0, doc.ListenerCount("scroll", false))

	doc.RemoveEventListener("scroll", l, true)
	assert.Equal(t, 0, doc.ListenerCount("scroll", true))
	assert.Empty(t, doc.CaptureTypes())
}

func TestElement_TreeOps(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	a := NewElement("a")
	b := NewElement("b")
	c := NewText("c")
	doc.Body.AppendChild(a)
	doc.Body.AppendChild(b)
	v := doc.Version()

	require.True(t, doc.Body.ReplaceChild(c, a))
	assert.Equal(t, []*Element{c, b}, doc.Body.Children)
	assert.Nil(t, a.Parent)
	assert.Nil(t, a.Document())
	assert.Equal(t, doc, c.Document())
	assert.Greater(t, doc.Version(), v)

	b.Remove()
	assert.Equal(t, []*Element{c}, doc.Body.Children)
	assert.False(t, doc.Body.RemoveChild(b))

	assert.True(t, doc.Body.Contains(c))
	assert.False(t, c.Contains(doc.Body))
	assert.Equal(t, "c", doc.Body.TextContent())
}

func TestDocument_ActiveElementFallsBackToBody(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	el := NewElement("input")
	doc.Body.AppendChild(el)
	doc.Focus(el)
	assert.Equal(t, el, doc.ActiveElement())

	el.Remove()
	assert.Equal(t, doc.Body, doc.ActiveElement())
}

func TestDocument_ReplaceBody(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	old := doc.Body
	v := doc.Version()

	body := doc.CreateElement("body")
	body.AppendChild(NewText("new"))
	doc.ReplaceBody(body)

	assert.Equal(t, body, doc.Body)
	assert.Equal(t, doc, body.Children[0].Document())
	assert.Nil(t, old.Document())
	assert.Greater(t, doc.Version(), v)
	assert.Equal(t, body, doc.ActiveElement())
}

func TestWindow_CloseOnce(t *testing.T) {
	t.Parallel()

	w := NewWindow("popout")
	fired := 0
	hook := 0
	l := NewListener(func(*Event) { fired++ })
	w.AddUnloadListener(l)
	w.AddUnloadListener(l)
	w.OnClose(func() { hook++ })

	w.Close()
	w.Close()
	assert.True(t, w.Closed())
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, hook)
}

func TestNoSurfaces(t *testing.T) {
	t.Parallel()

	w, err := NoSurfaces{}.Open(SurfaceOptions{Title: "x"})
	assert.Nil(t, w)
	assert.ErrorIs(t, err, ErrSurfacesUnavailable)
}

func TestWithNode(t *testing.T) {
	t.Parallel()

	doc := NewDocument()
	el := NewElement("div")
	el.ID = "sidebar"
	el.ScrollHeight = 40
	doc.Body.AppendChild(el)
	frames := &immediateFrames{}

	var gotErr error
	SetScroll(frames, doc, "sidebar", -10, func(_ struct{}, err error) { gotErr = err })
	require.NoError(t, gotErr)
	assert.Equal(t, 30, el.ScrollTop)

	var vp Viewport
	GetScroll(frames, doc, "sidebar", func(v Viewport, err error) { vp, gotErr = v, err })
	require.NoError(t, gotErr)
	assert.Equal(t, Viewport{Y: 30}, vp)

	GetScroll(frames, doc, "missing", func(_ Viewport, err error) { gotErr = err })
	assert.True(t, IsNotFound(gotErr))
	assert.EqualError(t, gotErr, "node not found: missing")
	assert.Equal(t, 3, frames.calls)
}
