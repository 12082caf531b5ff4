package debugger

import (
	"github.com/thruflo/overlook/internal/dom"
	"github.com/thruflo/overlook/internal/overlay"
	"github.com/thruflo/overlook/internal/program"
)

// Loop is the UI thread a session runs on.
type Loop interface {
	Post(fn func())
	RequestFrame(fn func())
}

// Host is where a session renders.
type Host struct {
	Loop     Loop
	Window   *dom.Window
	Surfaces dom.Surfaces
}

// Session is a program running under the debugger.
type Session struct {
	Debugger   *Debugger
	Runtime    *program.Runtime
	Controller *overlay.Controller
}

// Start runs prog under the debugger on host. It must be called on the UI
// thread.
func Start(host Host, prog program.Program, opts Options) *Session {
	if opts.Frames == nil {
		opts.Frames = host.Loop
	}
	s := &Session{Debugger: New(prog, opts)}
	s.Runtime = program.Start(host.Loop, s.Debugger.Program(), func(initial any, dispatch func(any)) program.Stepper {
		s.Controller = overlay.New(overlay.Config{
			Frames:   host.Loop,
			Window:   host.Window,
			Surfaces: host.Surfaces,
			Dispatch: dispatch,
			Views:    s.Debugger,
			Messages: overlay.Messages{NoOp: NoOp{}, Up: Up{}, Down: Down{}},
			Surface:  s.Debugger.opts.Surface,
			Gate:     s.Debugger.opts.Gate,
			Logger:   s.Debugger.log.Named("overlay"),
		}, initial.(Model))
		return func(model any, isSync bool) {
			s.Controller.Update(model.(Model), isSync)
		}
	})
	return s
}

// Model returns the current debugger model.
func (s *Session) Model() Model {
	return s.Runtime.Model().(Model)
}

// Close tears down the popout and the input gate.
func (s *Session) Close() {
	s.Controller.Close()
}
