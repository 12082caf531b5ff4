package dom

import (
	"errors"
	"fmt"
	"sync"
)

// ErrSurfacesUnavailable is returned by Surfaces that cannot open a secondary
// rendering surface, for example on a headless host.
var ErrSurfacesUnavailable = errors.New("secondary surfaces unavailable")

// Window owns a document and its lifecycle. Closing a window fires its unload
// listeners exactly once.
type Window struct {
	ID       string
	Document *Document

	mu       sync.Mutex
	unload   []*Listener
	closed   bool
	onClose  func()
	onReload func(skipCache bool)
}

// NewWindow creates a window around a fresh document.
func NewWindow(id string) *Window {
	return &Window{ID: id, Document: NewDocument()}
}

// OnClose sets a hook run by Close after unload listeners, used by hosts to
// release the underlying surface.
func (w *Window) OnClose(fn func()) {
	w.onClose = fn
}

// OnReload sets the host's reload behaviour.
func (w *Window) OnReload(fn func(skipCache bool)) {
	w.onReload = fn
}

// AddUnloadListener registers l to run when the window closes. Registering
// the same listener twice is a no-op.
func (w *Window) AddUnloadListener(l *Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.unload {
		if existing == l {
			return
		}
	}
	w.unload = append(w.unload, l)
}

// RemoveUnloadListener unregisters an unload listener.
func (w *Window) RemoveUnloadListener(l *Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.unload {
		if existing == l {
			w.unload = append(w.unload[:i:i], w.unload[i+1:]...)
			return
		}
	}
}

// UnloadListenerCount returns the number of registered unload listeners.
func (w *Window) UnloadListenerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.unload)
}

// Closed reports whether Close has run.
func (w *Window) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Close fires the unload listeners and the close hook. Calls after the first
// are no-ops.
func (w *Window) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	ls := append([]*Listener(nil), w.unload...)
	onClose := w.onClose
	w.mu.Unlock()

	ev := &Event{Type: "unload", Target: w.Document.Body}
	for _, l := range ls {
		l.Handle(ev)
	}
	if onClose != nil {
		onClose()
	}
}

// Reload asks the host to reload the window's content.
func (w *Window) Reload(skipCache bool) {
	if w.onReload != nil {
		w.onReload(skipCache)
	}
}

// SurfaceOptions describes a secondary surface to open.
type SurfaceOptions struct {
	Title  string
	Width  int
	Height int
	// Left and Top position the surface; hosts anchor it to the bottom right
	// of the screen when both are negative.
	Left int
	Top  int
}

// Surfaces opens independently addressable rendering surfaces.
type Surfaces interface {
	Open(opts SurfaceOptions) (*Window, error)
}

// NoSurfaces is the Surfaces of a host without secondary surfaces.
type NoSurfaces struct{}

// Open always fails with ErrSurfacesUnavailable.
func (NoSurfaces) Open(SurfaceOptions) (*Window, error) {
	return nil, ErrSurfacesUnavailable
}

// NotFoundError reports that no element with the given id exists.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("node not found: %s", e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
