// Package dom is the host document model the overlay runtime renders into.
//
// It is a small retained element tree with DOM-style event dispatch: listeners
// registered on the document in the capture phase run first, then the event
// bubbles from its target up to the root. Hosts (the terminal host, tests)
// own a Document per rendering surface; nothing in this package is global, so
// two surfaces can be driven side by side without a shared "current document".
//
// All methods are expected to be called from the UI thread.
package dom

import "strings"

// Element is a node in a document tree.
type Element struct {
	Tag      string
	ID       string
	Text     string
	Style    map[string]string
	Attrs    map[string]string
	Children []*Element
	Parent   *Element

	ScrollTop    int
	ScrollHeight int

	// Bindings holds listeners installed by a renderer, keyed by event type.
	Bindings map[string]*Listener

	doc       *Document
	owner     *Document
	listeners listenerSet
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// NewText creates a detached text element.
func NewText(text string) *Element {
	return &Element{Tag: TextTag, Text: text}
}

// TextTag is the tag used for text nodes.
const TextTag = "#text"

// CreateElement creates a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{Tag: tag, owner: d}
}

// CreateText creates a detached text node owned by d.
func (d *Document) CreateText(text string) *Element {
	return &Element{Tag: TextTag, Text: text, owner: d}
}

// OwnerDocument returns the document that created the element, or nil for
// elements made with NewElement.
func (e *Element) OwnerDocument() *Document {
	return e.owner
}

// IsText reports whether the element is a text node.
func (e *Element) IsText() bool {
	return e.Tag == TextTag
}

// Document returns the document this element is attached to, or nil.
func (e *Element) Document() *Document {
	return e.doc
}

// AppendChild attaches child as the last child of e, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = e
	e.Children = append(e.Children, child)
	child.adopt(e.doc)
	e.touch()
}

// InsertChild attaches child at index i, shifting later children right. An
// index past the end appends.
func (e *Element) InsertChild(i int, child *Element) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	if i < 0 {
		i = 0
	}
	if i >= len(e.Children) {
		e.AppendChild(child)
		return
	}
	e.Children = append(e.Children, nil)
	copy(e.Children[i+1:], e.Children[i:])
	e.Children[i] = child
	child.Parent = e
	child.adopt(e.doc)
	e.touch()
}

// ReplaceChild swaps old for replacement in place. It reports false if old is
// not a child of e.
func (e *Element) ReplaceChild(replacement, old *Element) bool {
	if old.Parent != e || replacement == old {
		return replacement == old && old.Parent == e
	}
	if replacement.Parent != nil {
		replacement.Parent.RemoveChild(replacement)
	}
	for i, c := range e.Children {
		if c == old {
			e.Children[i] = replacement
			break
		}
	}
	replacement.Parent = e
	replacement.adopt(e.doc)
	old.Parent = nil
	old.adopt(nil)
	e.touch()
	return true
}

// RemoveChild detaches child from e. It reports false if child is not a
// child of e.
func (e *Element) RemoveChild(child *Element) bool {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i:i], e.Children[i+1:]...)
			child.Parent = nil
			child.adopt(nil)
			e.touch()
			return true
		}
	}
	return false
}

// Remove detaches e from its parent, if any.
func (e *Element) Remove() {
	if e.Parent != nil {
		e.Parent.RemoveChild(e)
	}
}

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.Parent {
		if n == e {
			return true
		}
	}
	return false
}

// SetText replaces the text of a text node.
func (e *Element) SetText(text string) {
	if e.Text == text {
		return
	}
	e.Text = text
	e.touch()
}

// SetStyle sets a style property. An empty value deletes the property.
func (e *Element) SetStyle(key, value string) {
	if value == "" {
		if _, ok := e.Style[key]; ok {
			delete(e.Style, key)
			e.touch()
		}
		return
	}
	if e.Style == nil {
		e.Style = make(map[string]string)
	}
	if e.Style[key] == value {
		return
	}
	e.Style[key] = value
	e.touch()
}

// TextContent returns the concatenated text of e and its descendants.
func (e *Element) TextContent() string {
	var sb strings.Builder
	e.walk(func(n *Element) {
		if n.IsText() {
			sb.WriteString(n.Text)
		}
	})
	return sb.String()
}

// AddEventListener registers l for events of type typ that reach e during
// the bubble phase. Registering the same listener twice is a no-op.
func (e *Element) AddEventListener(typ string, l *Listener) {
	e.listeners.add(typ, l)
}

// RemoveEventListener removes a listener registered with AddEventListener.
func (e *Element) RemoveEventListener(typ string, l *Listener) {
	e.listeners.remove(typ, l)
}

// HasListeners reports whether any listener is registered on e for typ.
func (e *Element) HasListeners(typ string) bool {
	return len(e.listeners[typ]) > 0
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.walk(fn)
	}
}

func (e *Element) adopt(doc *Document) {
	e.walk(func(n *Element) { n.doc = doc })
}

func (e *Element) touch() {
	if e.doc != nil {
		e.doc.version++
	}
}

// Document is the root of one rendering surface.
type Document struct {
	Title string
	Body  *Element

	active  *Element
	capture listenerSet
	bubble  listenerSet
	version uint64
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	d := &Document{}
	d.Body = d.CreateElement("body")
	d.Body.doc = d
	return d
}

// ReplaceBody makes el the document's body. The previous body is detached.
func (d *Document) ReplaceBody(el *Element) {
	if el == d.Body {
		return
	}
	if el.Parent != nil {
		el.Parent.RemoveChild(el)
	}
	if d.Body != nil {
		d.Body.adopt(nil)
	}
	d.Body = el
	el.adopt(d)
	d.version++
}

// Version increases every time the tree under Body is mutated. Hosts use it
// to decide whether a repaint is needed.
func (d *Document) Version() uint64 {
	return d.version
}

// AddEventListener registers a document-level listener. Capture listeners
// run before any element listener; bubble listeners run last. Registering
// the same listener for the same type and phase twice is a no-op.
func (d *Document) AddEventListener(typ string, l *Listener, capture bool) {
	if capture {
		d.capture.add(typ, l)
	} else {
		d.bubble.add(typ, l)
	}
}

// RemoveEventListener removes a document-level listener.
func (d *Document) RemoveEventListener(typ string, l *Listener, capture bool) {
	if capture {
		d.capture.remove(typ, l)
	} else {
		d.bubble.remove(typ, l)
	}
}

// ListenerCount returns how many document-level listeners are registered for
// typ in the given phase.
func (d *Document) ListenerCount(typ string, capture bool) int {
	if capture {
		return len(d.capture[typ])
	}
	return len(d.bubble[typ])
}

// CaptureTypes returns the event types that currently have at least one
// capture listener.
func (d *Document) CaptureTypes() []string {
	return d.capture.types()
}

// GetElementByID returns the first element under Body with the given id.
func (d *Document) GetElementByID(id string) *Element {
	var found *Element
	d.Body.walk(func(n *Element) {
		if found == nil && n.ID == id {
			found = n
		}
	})
	return found
}

// Focus makes el the target of keyboard events. A nil element focuses the
// body.
func (d *Document) Focus(el *Element) {
	d.active = el
}

// ActiveElement returns the element keyboard events are targeted at.
func (d *Document) ActiveElement() *Element {
	if d.active == nil || d.active.doc != d {
		return d.Body
	}
	return d.active
}

// Dispatch delivers ev. Document capture listeners run first, then element
// listeners from the target up to the body, then document bubble listeners.
// Dispatch stops as soon as a listener stops propagation. It returns false
// if the default action was prevented.
func (d *Document) Dispatch(ev *Event) bool {
	if ev.Target == nil {
		ev.Target = d.ActiveElement()
	}

	d.capture.fire(ev)
	for n := ev.Target; n != nil && !ev.stopped; n = n.Parent {
		n.listeners.fire(ev)
	}
	if !ev.stopped {
		d.bubble.fire(ev)
	}
	return !ev.prevented
}
