package gate

import (
	"github.com/thruflo/overlook/internal/dom"
	"github.com/thruflo/overlook/internal/logging"
)

// Default ids of the exempt subtrees.
const (
	DefaultDetailsID = "debugger-details"
	DefaultOverlayID = "debugger-overlay"
)

// Options configures a Gate.
type Options struct {
	// DetailsID names the subtree in which scroll and wheel events pass.
	DetailsID string
	// OverlayID names the subtree in which every other event passes.
	OverlayID string
	Logger    *logging.Logger
}

// Gate enforces a blocking Level on a document. It is used from the UI
// thread only.
type Gate struct {
	doc       *dom.Document
	level     Level
	sub       *Subscription
	overflow  string
	detailsID string
	overlayID string
	log       *logging.Logger
}

// New returns a gate on doc at level None.
func New(doc *dom.Document, opts Options) *Gate {
	if opts.DetailsID == "" {
		opts.DetailsID = DefaultDetailsID
	}
	if opts.OverlayID == "" {
		opts.OverlayID = DefaultOverlayID
	}
	if opts.Logger == nil {
		opts.Logger = logging.Named("gate")
	}
	g := &Gate{
		doc:       doc,
		detailsID: opts.DetailsID,
		overlayID: opts.OverlayID,
		log:       opts.Logger,
	}
	g.sub = NewSubscription(doc, dom.NewListener(g.handle))
	return g
}

// Level returns the current level.
func (g *Gate) Level() Level {
	return g.level
}

// Listening returns the event types currently intercepted.
func (g *Gate) Listening() []string {
	return g.sub.Types()
}

// SetLevel moves the gate to level. Leaving None hides the body overflow,
// returning to None restores the value it had before.
func (g *Gate) SetLevel(level Level) {
	if level == g.level {
		return
	}
	old := g.level
	remove, add := Transition(old, level)
	g.sub.Deactivate(remove...)
	g.sub.Activate(add...)
	g.level = level

	body := g.doc.Body
	switch {
	case old == None:
		g.overflow = body.Style["overflow"]
		body.SetStyle("overflow", "hidden")
	case level == None:
		body.SetStyle("overflow", g.overflow)
	}
	g.log.Debug("blocking level changed", "from", old, "to", level)
}

// Close returns the gate to None and removes its listeners.
func (g *Gate) Close() {
	g.SetLevel(None)
	g.sub.Close()
}

// Allow reports whether ev may reach the application while the gate is
// blocking.
func (g *Gate) Allow(ev *dom.Event) bool {
	if ev.IsReload() {
		return true
	}
	exempt := g.overlayID
	if ev.Type == "scroll" || ev.Type == "wheel" {
		exempt = g.detailsID
	}
	for n := ev.Target; n != nil; n = n.Parent {
		if n.ID == exempt {
			return true
		}
	}
	return false
}

func (g *Gate) handle(ev *dom.Event) {
	if g.Allow(ev) {
		return
	}
	ev.StopPropagation()
	ev.PreventDefault()
}
