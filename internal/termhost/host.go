// Package termhost renders overlook documents in a terminal.
//
// The primary window is painted on the controlling terminal. Secondary
// surfaces (the debugger popout) are other terminal devices, each with its
// own document, painter and key reader. Key presses become keydown events
// dispatched at the focused element on the UI thread; Tab and Shift+Tab move
// focus between elements with key or click handlers.
package termhost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/thruflo/overlook/internal/dom"
	"github.com/thruflo/overlook/internal/logging"
	"github.com/thruflo/overlook/internal/uiloop"
)

// PrimaryWindowID is the id of the window painted on the controlling
// terminal.
const PrimaryWindowID = "primary"

// Options configures a Host.
type Options struct {
	// In and Out are the controlling terminal. They default to stdin and
	// stdout.
	In  *os.File
	Out *os.File
	// PopoutTTY is a terminal device path opened for secondary surfaces.
	// Empty means the host has none.
	PopoutTTY string
	Logger    *logging.Logger
}

// Host owns the terminal screens and feeds their input to the UI loop.
type Host struct {
	loop    *uiloop.Loop
	log     *logging.Logger
	primary *screen
	popouts map[string]*screen
	tty     string
	input   func(fn func())
}

type screen struct {
	win     *dom.Window
	term    *Terminal
	painter *Painter
	file    *os.File
	popout  bool
}

// New creates a host driven by loop. It registers the host's repaint with
// loop.AfterTurn, so it must be called before the loop runs.
func New(loop *uiloop.Loop, opts Options) *Host {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.Named("termhost")
	}

	win := dom.NewWindow(PrimaryWindowID)
	h := &Host{
		loop:    loop,
		log:     opts.Logger,
		popouts: make(map[string]*screen),
		tty:     opts.PopoutTTY,
		input:   func(fn func()) { fn() },
		primary: &screen{
			win:     win,
			term:    NewTerminal(opts.In, opts.Out),
			painter: NewPainter(opts.Out),
		},
	}
	win.OnReload(func(bool) { h.primary.painter.Invalidate() })
	loop.AfterTurn(h.paint)
	return h
}

// Window returns the primary window.
func (h *Host) Window() *dom.Window {
	return h.primary.win
}

// Surfaces returns the host's secondary surface capability.
func (h *Host) Surfaces() dom.Surfaces {
	return TTYSurfaces{host: h}
}

// SetInput sets the wrapper key events are dispatched through. The program
// runtime uses it to mark updates caused by input as synchronous.
func (h *Host) SetInput(fn func(fn func())) {
	if fn == nil {
		fn = func(fn func()) { fn() }
	}
	h.input = fn
}

// Run takes over the controlling terminal and runs the loop until ctx is
// done, Ctrl+C is pressed or the input closes. The terminal is restored
// before Run returns.
func (h *Host) Run(ctx context.Context) error {
	if err := h.primary.term.EnterRaw(); err != nil {
		return err
	}
	_ = h.primary.term.Write(AltScreenOn + CursorHide + ClearScreen)
	defer func() {
		_ = h.primary.term.Write(CursorShow + AltScreenOff)
		_ = h.primary.term.ExitRaw()
	}()

	go h.readKeys(h.primary, h.primary.term)

	err := h.loop.Run(ctx)
	h.shutdown()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (h *Host) shutdown() {
	// Unloading the primary window releases the debugger and closes any popout
	// from the primary side.
	h.primary.win.Close()
	for _, s := range h.popouts {
		s.win.Close()
	}
}

func (h *Host) readKeys(s *screen, r io.Reader) {
	keys := NewKeyReader(r)
	for {
		k, err := keys.ReadKey()
		if err != nil {
			if s.popout {
				h.loop.Post(func() { s.win.Close() })
				return
			}
			if errors.Is(err, io.EOF) {
				h.loop.Quit(nil)
			} else {
				h.loop.Quit(fmt.Errorf("read input: %w", err))
			}
			return
		}
		h.loop.Post(func() { h.handleKey(s, k) })
	}
}

func (h *Host) handleKey(s *screen, k KeyEvent) {
	if s.win.Closed() {
		return
	}
	doc := s.win.Document

	switch {
	case k.Key == KeyTab:
		CycleFocus(doc, false)
		return
	case k.Key == KeyBackTab:
		CycleFocus(doc, true)
		return
	case k.Key == KeyCtrlC && s.popout:
		h.input(s.win.Close)
		return
	case k.Key == KeyCtrlC:
		h.loop.Quit(nil)
		return
	case s.popout && k.Key == KeyRune && k.Rune == 'q':
		h.input(s.win.Close)
		return
	}

	ev, ok := ToEvent(k)
	if !ok {
		return
	}
	EnsureFocus(doc)
	h.input(func() { doc.Dispatch(ev) })
}

func (h *Host) paint() {
	h.paintScreen(h.primary)
	for _, s := range h.popouts {
		h.paintScreen(s)
	}
}

func (h *Host) paintScreen(s *screen) {
	if w, ht, err := s.term.Size(); err == nil {
		s.painter.Resize(w, ht)
	}
	if _, err := s.painter.Paint(s.win.Document); err != nil {
		h.log.Warn("paint failed", "window", s.win.ID, "error", err)
	}
}

// TTYSurfaces opens the host's popout terminal device as a secondary
// surface.
type TTYSurfaces struct {
	host *Host
}

// Open opens the popout device. It fails with dom.ErrSurfacesUnavailable
// when the host has no device configured. It must be called on the UI
// thread.
func (t TTYSurfaces) Open(opts dom.SurfaceOptions) (*dom.Window, error) {
	h := t.host
	if h == nil || h.tty == "" {
		return nil, dom.ErrSurfacesUnavailable
	}

	f, err := os.OpenFile(h.tty, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open popout terminal %s: %w", h.tty, err)
	}
	term := NewTerminal(f, f)
	if err := term.EnterRaw(); err != nil {
		f.Close()
		return nil, err
	}

	win := dom.NewWindow(uuid.NewString())
	win.Document.Title = opts.Title
	s := &screen{
		win:     win,
		term:    term,
		painter: NewPainter(f),
		file:    f,
		popout:  true,
	}
	_ = term.Write(CursorHide + ClearScreen)
	win.OnClose(func() {
		delete(h.popouts, win.ID)
		_ = term.Write(CursorShow + Reset + ClearScreen + CursorHome)
		_ = term.ExitRaw()
		_ = f.Close()
		h.log.Debug("popout terminal released", "window", win.ID, "tty", h.tty)
	})
	h.popouts[win.ID] = s

	go h.readKeys(s, f)
	return win, nil
}
