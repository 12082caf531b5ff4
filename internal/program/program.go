// Package program runs an application's update loop on the UI thread.
//
// A Program is pure: Init and Update return a new model and an optional Cmd,
// View renders a model. The Runtime feeds messages through Update one at a
// time and hands every new model to a Stepper, normally the overlay
// controller, which decides when to draw it.
package program

import (
	"github.com/thruflo/overlook/internal/logging"
	"github.com/thruflo/overlook/internal/vdom"
)

// Cmd is an effect run on the UI thread after the update that returned it.
// It must not block. Blocking work runs in its own goroutine and reports
// back through send, which may be called from any goroutine.
type Cmd func(send func(msg any))

// Batch combines cmds into one. Nil entries are skipped.
func Batch(cmds ...Cmd) Cmd {
	var live []Cmd
	for _, c := range cmds {
		if c != nil {
			live = append(live, c)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(send func(any)) {
		for _, c := range live {
			c(send)
		}
	}
}

// Map returns a Cmd whose messages are wrapped by fn.
func Map(cmd Cmd, fn func(any) any) Cmd {
	if cmd == nil {
		return nil
	}
	return func(send func(any)) {
		cmd(func(msg any) { send(fn(msg)) })
	}
}

// Program is an application.
type Program struct {
	// Name identifies the program in saved histories.
	Name   string
	Init   func() (any, Cmd)
	Update func(msg, model any) (any, Cmd)
	View   func(model any) *vdom.Node
	// DecodeMsg restores a message from its JSON encoding. Programs without
	// it cannot import saved histories.
	DecodeMsg func(data []byte) (any, error)
}

// Poster runs functions on the UI thread.
type Poster interface {
	Post(fn func())
}

// Stepper receives every new model. isSync is set for models produced by
// input events, which should be drawn without waiting for a frame.
type Stepper func(model any, isSync bool)

// StepperBuilder creates the Stepper once the initial model is known. The
// dispatch function it receives delivers messages to the runtime.
type StepperBuilder func(initial any, dispatch func(msg any)) Stepper

// Runtime is a running Program.
type Runtime struct {
	post     Poster
	prog     Program
	model    any
	step     Stepper
	log      *logging.Logger
	updating bool
	input    bool
	count    int
}

// Start initializes prog and builds its stepper. It must be called on the UI
// thread.
func Start(post Poster, prog Program, build StepperBuilder) *Runtime {
	r := &Runtime{post: post, prog: prog, log: logging.Named("program").With("program", prog.Name)}
	model, cmd := prog.Init()
	r.model = model
	r.step = build(model, r.Dispatch)
	r.run(cmd)
	return r
}

// Model returns the current model.
func (r *Runtime) Model() any {
	return r.model
}

// Updates returns how many messages have been processed.
func (r *Runtime) Updates() int {
	return r.count
}

// Dispatch delivers msg. It must be called on the UI thread; a message sent
// while an update is running is queued behind it and keeps its input flag.
func (r *Runtime) Dispatch(msg any) {
	if r.updating {
		input := r.input
		r.post.Post(func() {
			if input {
				r.Input(func() { r.Dispatch(msg) })
				return
			}
			r.Dispatch(msg)
		})
		return
	}
	r.updating = true
	model, cmd := r.prog.Update(msg, r.model)
	r.updating = false
	r.count++
	r.model = model
	r.step(model, r.input)
	r.run(cmd)
}

// Input runs fn, typically the dispatch of a host input event, so that the
// messages it produces are drawn synchronously.
func (r *Runtime) Input(fn func()) {
	prev := r.input
	r.input = true
	defer func() { r.input = prev }()
	fn()
}

// Send delivers msg from any goroutine.
func (r *Runtime) Send(msg any) {
	r.post.Post(func() { r.Dispatch(msg) })
}

func (r *Runtime) run(cmd Cmd) {
	if cmd == nil {
		return
	}
	prev := r.input
	r.input = false
	defer func() { r.input = prev }()
	cmd(r.Send)
}
