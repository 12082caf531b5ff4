// Package overlay drives the debugger overlay. A Controller owns the
// Animator of the primary surface; every draw renders the application,
// updates the input gate and then either the corner indicator or the popout
// surface.
package overlay

import (
	"github.com/thruflo/overlook/internal/animator"
	"github.com/thruflo/overlook/internal/dom"
	"github.com/thruflo/overlook/internal/gate"
	"github.com/thruflo/overlook/internal/logging"
	"github.com/thruflo/overlook/internal/vdom"
)

// Model is the debugger state a draw needs.
type Model interface {
	Blocker() gate.Level
	Popout() *Popout
}

// Views renders the three trees the controller maintains.
type Views interface {
	App(m Model) *vdom.Node
	Corner(m Model) *vdom.Node
	Popout(m Model) *vdom.Node
}

// Messages are the debugger messages the controller sends on its own.
type Messages struct {
	NoOp any
	Up   any
	Down any
}

// DefaultSurface is the popout geometry used when Config leaves it empty.
var DefaultSurface = dom.SurfaceOptions{
	Title:  "Overlook Debugger",
	Width:  900,
	Height: 360,
	Left:   -1,
	Top:    -1,
}

// Config wires a Controller to its host.
type Config struct {
	Frames   animator.FrameRequester
	Window   *dom.Window
	Surfaces dom.Surfaces
	Dispatch vdom.Dispatch
	Views    Views
	Messages Messages
	Surface  dom.SurfaceOptions
	Gate     gate.Options
	Logger   *logging.Logger
}

// Controller is the draw callback of the debugger. All methods run on the
// UI thread.
type Controller struct {
	cfg  Config
	log  *logging.Logger
	anim *animator.Animator
	gate *gate.Gate

	doc     *dom.Document
	appNode *dom.Element
	app     *vdom.Node

	cornerNode *dom.Element
	corner     *vdom.Node

	popoutNode *dom.Element
	popout     *vdom.Node
	closer     *teardown
	closed     bool
}

// New attaches a controller to the primary window's body and draws the
// initial model.
func New(cfg Config, initial Model) *Controller {
	if cfg.Surfaces == nil {
		cfg.Surfaces = dom.NoSurfaces{}
	}
	if cfg.Surface == (dom.SurfaceOptions{}) {
		cfg.Surface = DefaultSurface
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Named("overlay")
	}
	doc := cfg.Window.Document
	c := &Controller{
		cfg:     cfg,
		log:     cfg.Logger,
		gate:    gate.New(doc, cfg.Gate),
		doc:     doc,
		appNode: doc.Body,
		app:     vdom.Virtualize(doc.Body),
	}
	c.corner = cfg.Views.Corner(initial)
	c.cornerNode = vdom.Render(doc, c.corner, cfg.Dispatch)
	c.anim = animator.Initialize(cfg.Frames, initial, c.draw)
	cfg.Window.AddUnloadListener(dom.NewListener(func(*dom.Event) { c.Close() }))
	return c
}

// Update schedules a draw of m. With isSync it is drawn before Update
// returns.
func (c *Controller) Update(m Model, isSync bool) {
	c.anim.Update(m, isSync)
}

// Animator returns the scheduler driving the controller.
func (c *Controller) Animator() *animator.Animator {
	return c.anim
}

// Gate returns the input gate of the primary document.
func (c *Controller) Gate() *gate.Gate {
	return c.gate
}

// Corner returns the live corner indicator element.
func (c *Controller) Corner() *dom.Element {
	return c.cornerNode
}

func (c *Controller) draw(v any) {
	if c.closed {
		return
	}
	m := v.(Model)

	next := c.cfg.Views.App(m)
	node, err := vdom.ApplyPatches(c.doc, c.appNode, c.app, vdom.Diff(c.app, next), c.cfg.Dispatch)
	if err != nil {
		c.log.Error("patching application failed", "error", err)
	}
	c.appNode = node
	c.app = next

	c.gate.SetLevel(m.Blocker())

	p := m.Popout()
	if p.IsOpen() && p.Window() == nil && !c.open(p) {
		p.clear()
	}
	if !p.IsOpen() {
		c.drawCorner(m)
		return
	}
	if c.cornerNode.Parent != nil {
		c.cornerNode.Remove()
	}
	c.drawPopout(m)
}

func (c *Controller) drawCorner(m Model) {
	next := c.cfg.Views.Corner(m)
	node, err := vdom.ApplyPatches(c.doc, c.cornerNode, c.corner, vdom.Diff(c.corner, next), c.cfg.Dispatch)
	if err != nil {
		c.log.Error("patching corner failed", "error", err)
	}
	c.cornerNode = node
	c.corner = next
	if c.cornerNode.Parent != c.appNode {
		c.appNode.AppendChild(c.cornerNode)
	}
}

func (c *Controller) drawPopout(m Model) {
	doc := m.Popout().Document()
	next := c.cfg.Views.Popout(m)
	if c.popoutNode == nil {
		c.popoutNode = vdom.Render(doc, next, c.cfg.Dispatch)
		doc.Body.AppendChild(c.popoutNode)
		c.popout = next
		return
	}
	node, err := vdom.ApplyPatches(doc, c.popoutNode, c.popout, vdom.Diff(c.popout, next), c.cfg.Dispatch)
	if err != nil {
		c.log.Error("patching popout failed", "error", err)
	}
	c.popoutNode = node
	c.popout = next
}

// open realizes the popout surface. It reports false if the host could not
// provide one.
func (c *Controller) open(p *Popout) bool {
	win, err := c.cfg.Surfaces.Open(c.cfg.Surface)
	if err != nil {
		c.log.Warn("cannot open popout", "error", err)
		return false
	}
	win.Document.Title = c.cfg.Surface.Title
	p.realize(win)
	c.popoutNode = nil

	keys := dom.NewListener(c.shortcut)
	win.Document.AddEventListener("keydown", keys, false)

	var onPrimaryUnload, onPopoutUnload *dom.Listener
	closer := &teardown{}
	closer.fn = func(fromPrimary bool) {
		c.cfg.Window.RemoveUnloadListener(onPrimaryUnload)
		win.RemoveUnloadListener(onPopoutUnload)
		win.Document.RemoveEventListener("keydown", keys, false)
		p.clear()
		c.popoutNode = nil
		c.popout = nil
		c.closer = nil
		c.cfg.Dispatch(c.cfg.Messages.NoOp)
		if fromPrimary {
			win.Close()
		}
		c.log.Debug("popout closed", "window", win.ID, "from_primary", fromPrimary)
	}
	onPrimaryUnload = dom.NewListener(func(*dom.Event) { closer.fire(true) })
	onPopoutUnload = dom.NewListener(func(*dom.Event) { closer.fire(false) })
	c.cfg.Window.AddUnloadListener(onPrimaryUnload)
	win.AddUnloadListener(onPopoutUnload)
	c.closer = closer

	c.log.Debug("popout opened", "window", win.ID)
	return true
}

func (c *Controller) shortcut(ev *dom.Event) {
	switch {
	case ev.IsReload():
		c.cfg.Window.Reload(false)
	case ev.Key == dom.KeyUp:
		c.cfg.Dispatch(c.cfg.Messages.Up)
		ev.PreventDefault()
	case ev.Key == dom.KeyDown:
		c.cfg.Dispatch(c.cfg.Messages.Down)
		ev.PreventDefault()
	}
}

// ClosePopout closes a realized popout from the primary side.
func (c *Controller) ClosePopout() {
	if c.closer != nil {
		c.closer.fire(true)
	}
}

// Close releases everything the controller registered on the primary
// document and stops drawing. It runs when the primary window unloads.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.ClosePopout()
	c.gate.Close()
}
