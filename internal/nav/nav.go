// Package nav tracks the location of the primary window and implements the
// navigation commands programs may issue.
package nav

import (
	"fmt"
	"net/url"

	"github.com/thruflo/overlook/internal/dom"
	"github.com/thruflo/overlook/internal/logging"
)

// InvalidURLError is the panic value of InvalidURL.
type InvalidURLError struct {
	URL string
}

func (e InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url: %q", e.URL)
}

// InvalidURL reports a URL a program should never have produced. It is a
// programming error and does not return.
func InvalidURL(raw string) {
	panic(InvalidURLError{URL: raw})
}

// Navigator is the session history of one window.
type Navigator struct {
	win      *dom.Window
	entries  []*url.URL
	index    int
	onChange func(string)
	log      *logging.Logger
}

// New starts a history at initial, which must be an absolute URL.
func New(win *dom.Window, initial string) (*Navigator, error) {
	u, err := url.Parse(initial)
	if err != nil {
		return nil, fmt.Errorf("failed to parse initial url: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("initial url %q is not absolute", initial)
	}
	return &Navigator{win: win, entries: []*url.URL{u}, log: logging.Named("nav")}, nil
}

// OnChange sets the callback run when Go moves to another entry.
func (n *Navigator) OnChange(fn func(url string)) {
	n.onChange = fn
}

// URL returns the current location.
func (n *Navigator) URL() string {
	return n.entries[n.index].String()
}

// Len returns the number of history entries.
func (n *Navigator) Len() int {
	return len(n.entries)
}

// Go moves delta entries through the history, clamped to its ends. Zero does
// nothing.
func (n *Navigator) Go(delta int) {
	if delta == 0 {
		return
	}
	next := n.index + delta
	if next < 0 {
		next = 0
	}
	if next >= len(n.entries) {
		next = len(n.entries) - 1
	}
	if next == n.index {
		return
	}
	n.index = next
	if n.onChange != nil {
		n.onChange(n.URL())
	}
}

// PushState adds an entry for raw, resolved against the current location,
// dropping any entries ahead of the current one. It returns the new URL.
func (n *Navigator) PushState(raw string) (string, error) {
	u, err := n.resolve(raw)
	if err != nil {
		return "", err
	}
	n.entries = append(n.entries[:n.index+1], u)
	n.index++
	return n.URL(), nil
}

// ReplaceState replaces the current entry with raw. It returns the new URL.
func (n *Navigator) ReplaceState(raw string) (string, error) {
	u, err := n.resolve(raw)
	if err != nil {
		return "", err
	}
	n.entries[n.index] = u
	return n.URL(), nil
}

// Load navigates the window to raw. A malformed URL reloads the current page
// instead.
func (n *Navigator) Load(raw string) {
	if _, err := n.PushState(raw); err != nil {
		n.log.Warn("malformed url, reloading", "url", raw, "error", err)
	}
	n.win.Reload(false)
}

// Reload reloads the current page.
func (n *Navigator) Reload(skipCache bool) {
	n.win.Reload(skipCache)
}

func (n *Navigator) resolve(raw string) (*url.URL, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}
	return n.entries[n.index].ResolveReference(ref), nil
}
