package debugger

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/thruflo/overlook/internal/dom"
	"github.com/thruflo/overlook/internal/expando"
	"github.com/thruflo/overlook/internal/gate"
	"github.com/thruflo/overlook/internal/history"
	"github.com/thruflo/overlook/internal/inspect"
	"github.com/thruflo/overlook/internal/logging"
	"github.com/thruflo/overlook/internal/overlay"
	"github.com/thruflo/overlook/internal/program"
	"github.com/thruflo/overlook/internal/vdom"
)

const initLabel = "Init"

// Options configures a Debugger.
type Options struct {
	// Frames schedules next-frame node lookups such as sidebar scrolling.
	Frames    dom.FrameRequester
	Inspector inspect.Inspector
	// Store receives exported histories.
	Store *history.Store
	// ImportPath is the file the import shortcut loads. Empty means the
	// shortcut does nothing.
	ImportPath string
	// Session tags exported histories. A random id is used when empty.
	Session string
	Surface dom.SurfaceOptions
	Gate    gate.Options
	Logger  *logging.Logger
}

// Debugger wraps a program. It implements overlay.Views for the models it
// produces.
type Debugger struct {
	prog program.Program
	opts Options
	log  *logging.Logger
}

// New returns a debugger for prog.
func New(prog program.Program, opts Options) *Debugger {
	if opts.Store == nil {
		opts.Store = history.NewStore("")
	}
	if opts.Session == "" {
		opts.Session = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Named("debugger")
	}
	if opts.Gate.OverlayID == "" {
		opts.Gate.OverlayID = OverlayID
	}
	if opts.Gate.DetailsID == "" {
		opts.Gate.DetailsID = DetailsID
	}
	return &Debugger{prog: prog, opts: opts, log: opts.Logger.With("session", opts.Session)}
}

// Program returns the wrapped program. Its models are Model values.
func (d *Debugger) Program() program.Program {
	return program.Program{
		Name:   d.prog.Name,
		Init:   d.init,
		Update: d.update,
		View:   func(m any) *vdom.Node { return d.App(m.(Model)) },
	}
}

func wrapUser(msg any) any { return UserMsg{Msg: msg} }

func (d *Debugger) init() (any, program.Cmd) {
	model, cmd := d.prog.Init()
	m := Model{
		entries: []Entry{{Model: model, Label: initLabel}},
		details: d.inspectModel(nil, model),
		popout:  overlay.NewPopout(),
	}
	return m, program.Map(cmd, wrapUser)
}

func (d *Debugger) update(msg, model any) (any, program.Cmd) {
	m := model.(Model)
	switch msg := msg.(type) {
	case NoOp:
		return m, nil
	case UserMsg:
		return d.record(m, msg.Msg)
	case Up:
		return d.selectEntry(m, m.selected-1), nil
	case Down:
		return d.selectEntry(m, m.selected+1), nil
	case Jump:
		return d.selectEntry(m, msg.Index), nil
	case Resume:
		return d.selectEntry(m, m.Latest()), nil
	case Open:
		m.popout.Request()
		return m, nil
	case Toggle:
		m.details = expando.Toggle(m.details, msg.Path)
		return m, nil
	case Dismiss:
		m.blocking = nil
		return m, nil
	case Export:
		return d.export(m)
	case Import:
		return m, d.upload(msg.Path)
	case exported:
		if msg.err != nil {
			d.log.Warn("history export failed", "error", msg.err)
			m.blocking = &Blocking{Title: "Cannot export history", Detail: msg.err.Error()}
			return m, nil
		}
		d.log.Info("history exported", "path", msg.path)
		return m, nil
	case uploaded:
		return d.imported(m, msg), nil
	}
	// Views of the application dispatch its messages unwrapped.
	return d.record(m, msg)
}

// record runs an application message against the latest model.
func (d *Debugger) record(m Model, msg any) (Model, program.Cmd) {
	wasPaused := m.Paused()
	next, cmd := d.prog.Update(msg, m.entries[m.Latest()].Model)

	entries := make([]Entry, len(m.entries), len(m.entries)+1)
	copy(entries, m.entries)
	m.entries = append(entries, Entry{Msg: msg, Model: next, Label: d.label(msg)})

	cmd = program.Map(cmd, wrapUser)
	if wasPaused {
		return m, cmd
	}
	m.selected = m.Latest()
	m.details = d.inspectModel(m.details, next)
	if m.popout.Window() != nil {
		cmd = program.Batch(cmd, d.scrollSidebar(m.popout))
	}
	return m, cmd
}

func (d *Debugger) selectEntry(m Model, i int) Model {
	if i < 0 {
		i = 0
	}
	if i > m.Latest() {
		i = m.Latest()
	}
	if i == m.selected {
		return m
	}
	m.selected = i
	m.details = d.inspectModel(m.details, m.Current())
	return m
}

func (d *Debugger) label(msg any) string {
	in := d.opts.Inspector
	return in.Stringify(in.FromGo(msg))
}

func (d *Debugger) inspectModel(old expando.Expando, model any) expando.Expando {
	in := d.opts.Inspector
	e := expando.Init(in.Classify(in.FromGo(model)))
	if old == nil {
		return e
	}
	return expando.Merge(old, e)
}

func (d *Debugger) scrollSidebar(p *overlay.Popout) program.Cmd {
	return func(func(any)) {
		doc := p.Document()
		if doc == nil || d.opts.Frames == nil {
			return
		}
		dom.ScrollToBottom(d.opts.Frames, doc, SidebarID, func(_ struct{}, err error) {
			if err != nil {
				d.log.Debug("sidebar scroll skipped", "error", err)
			}
		})
	}
}

func (d *Debugger) export(m Model) (Model, program.Cmd) {
	f := &history.File{Metadata: history.Metadata{Program: d.prog.Name, Session: d.opts.Session}}
	for i, e := range m.entries[1:] {
		data, err := json.Marshal(e.Msg)
		if err != nil {
			m.blocking = &Blocking{
				Title:  "Cannot export history",
				Detail: fmt.Sprintf("message %d (%s) cannot be encoded: %v", i+1, e.Label, err),
			}
			return m, nil
		}
		f.Messages = append(f.Messages, data)
		f.Labels = append(f.Labels, e.Label)
	}
	store := d.opts.Store
	return m, func(send func(any)) {
		go func() {
			path, err := store.Download(f.Len(), f)
			send(exported{path: path, err: err})
		}()
	}
}

func (d *Debugger) upload(path string) program.Cmd {
	if path == "" {
		return nil
	}
	store := d.opts.Store
	return func(send func(any)) {
		store.Upload(path, func(data []byte, err error) {
			send(uploaded{data: data, err: err})
		})
	}
}

func (d *Debugger) imported(m Model, up uploaded) Model {
	fail := func(err error) Model {
		d.log.Warn("history import failed", "error", err)
		m.blocking = &Blocking{Title: "Cannot import history", Detail: err.Error()}
		return m
	}
	if up.err != nil {
		return fail(up.err)
	}
	f, err := history.Decode(up.data, d.prog.Name)
	if err != nil {
		return fail(err)
	}
	next, err := d.replay(m, f)
	if err != nil {
		return fail(err)
	}
	d.log.Info("history imported", "messages", f.Len())
	return next
}

// replay rebuilds the history by running the saved messages from the
// initial model. Commands are not run.
func (d *Debugger) replay(m Model, f *history.File) (Model, error) {
	if d.prog.DecodeMsg == nil {
		return m, &history.ImportError{Reason: "program cannot decode messages"}
	}
	model, _ := d.prog.Init()
	entries := []Entry{{Model: model, Label: initLabel}}
	for i, raw := range f.Messages {
		msg, err := d.prog.DecodeMsg(raw)
		if err != nil {
			return m, &history.ImportError{Reason: fmt.Sprintf("message %d", i+1), Err: err}
		}
		model, _ = d.prog.Update(msg, model)
		entries = append(entries, Entry{Msg: msg, Model: model, Label: d.label(msg)})
	}
	m.entries = entries
	m.selected = len(entries) - 1
	m.blocking = nil
	m.details = d.inspectModel(m.details, model)
	return m, nil
}
