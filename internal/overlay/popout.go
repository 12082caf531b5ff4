package overlay

import (
	"sync"

	"github.com/thruflo/overlook/internal/dom"
)

// Popout is the handle to the secondary surface that shows the full
// debugger. It is shared between the debugger model, which requests the
// surface, and the Controller, which realizes and tears it down.
type Popout struct {
	requested bool
	win       *dom.Window
}

// NewPopout returns a closed handle.
func NewPopout() *Popout {
	return &Popout{}
}

// Request asks for the surface to be opened on the next draw.
func (p *Popout) Request() {
	p.requested = true
}

// IsOpen reports whether the surface is requested or realized.
func (p *Popout) IsOpen() bool {
	return p != nil && p.requested
}

// Window returns the realized surface, or nil.
func (p *Popout) Window() *dom.Window {
	if p == nil {
		return nil
	}
	return p.win
}

// Document returns the document of the realized surface, or nil.
func (p *Popout) Document() *dom.Document {
	if w := p.Window(); w != nil {
		return w.Document
	}
	return nil
}

func (p *Popout) realize(w *dom.Window) {
	p.requested = true
	p.win = w
}

func (p *Popout) clear() {
	p.requested = false
	p.win = nil
}

// teardown runs its cleanup at most once, whichever side of the popout
// triggers it first.
type teardown struct {
	once sync.Once
	fn   func(fromPrimary bool)
}

func (t *teardown) fire(fromPrimary bool) {
	t.once.Do(func() { t.fn(fromPrimary) })
}
