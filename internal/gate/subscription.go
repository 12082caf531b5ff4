package gate

import (
	"sort"

	"github.com/thruflo/overlook/internal/dom"
)

// Subscription is one listener registered in the capture phase of a
// document for a changing set of event types. Activate and Deactivate are
// idempotent per type.
type Subscription struct {
	doc      *dom.Document
	listener *dom.Listener
	active   map[string]bool
}

// NewSubscription returns an inactive subscription of l on doc.
func NewSubscription(doc *dom.Document, l *dom.Listener) *Subscription {
	return &Subscription{doc: doc, listener: l, active: make(map[string]bool)}
}

// Activate starts listening to the given types.
func (s *Subscription) Activate(types ...string) {
	for _, typ := range types {
		if s.active[typ] {
			continue
		}
		s.doc.AddEventListener(typ, s.listener, true)
		s.active[typ] = true
	}
}

// Deactivate stops listening to the given types.
func (s *Subscription) Deactivate(types ...string) {
	for _, typ := range types {
		if !s.active[typ] {
			continue
		}
		s.doc.RemoveEventListener(typ, s.listener, true)
		delete(s.active, typ)
	}
}

// Close stops listening to every active type.
func (s *Subscription) Close() {
	s.Deactivate(s.Types()...)
}

// Types returns the active types in sorted order.
func (s *Subscription) Types() []string {
	types := make([]string, 0, len(s.active))
	for typ := range s.active {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}
