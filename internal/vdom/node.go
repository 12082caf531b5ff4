// Package vdom is the virtual tree capability the overlay runtime renders
// through. Views produce immutable Node trees; Diff compares two trees and
// ApplyPatches commits the difference to a live dom element.
//
// Every call that touches the host takes the target *dom.Document as an
// explicit argument. The same capability can therefore serve the primary
// surface and the popout surface in one draw without switching any shared
// state in between.
package vdom

import (
	"github.com/thruflo/overlook/internal/dom"
)

// Handler maps a host event to an application message. It returns false when
// the event should not produce a message.
type Handler func(ev *dom.Event) (msg any, ok bool)

// Dispatch delivers a message to the update loop.
type Dispatch func(msg any)

// Node is an immutable virtual element or text node.
type Node struct {
	Tag      string
	ID       string
	Text     string
	Style    map[string]string
	Children []*Node
	On       map[string]Handler
}

// Text creates a text node.
func Text(s string) *Node {
	return &Node{Tag: dom.TextTag, Text: s}
}

// El creates an element node with the given children.
func El(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == dom.TextTag
}

// WithID returns n with its id set. The node is modified in place; it is
// meant for use while a view is being built.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithStyle sets a style property on n.
func (n *Node) WithStyle(key, value string) *Node {
	if n.Style == nil {
		n.Style = make(map[string]string)
	}
	n.Style[key] = value
	return n
}

// OnEvent attaches a handler for events of type typ.
func (n *Node) OnEvent(typ string, h Handler) *Node {
	if n.On == nil {
		n.On = make(map[string]Handler)
	}
	n.On[typ] = h
	return n
}

// OnKey attaches a keydown handler that produces msg for the given key code.
func (n *Node) OnKey(key int, msg any) *Node {
	prev := n.On["keydown"]
	return n.OnEvent("keydown", func(ev *dom.Event) (any, bool) {
		if ev.Key == key {
			return msg, true
		}
		if prev != nil {
			return prev(ev)
		}
		return nil, false
	})
}

// OnRune attaches a keydown handler that produces msg for the given
// printable character.
func (n *Node) OnRune(r rune, msg any) *Node {
	prev := n.On["keydown"]
	return n.OnEvent("keydown", func(ev *dom.Event) (any, bool) {
		if ev.Rune == r {
			return msg, true
		}
		if prev != nil {
			return prev(ev)
		}
		return nil, false
	})
}

func stylesEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
