package termhost

import "github.com/thruflo/overlook/internal/dom"

// Focusable returns the elements of doc that react to keys or clicks, in
// document order.
func Focusable(doc *dom.Document) []*dom.Element {
	var out []*dom.Element
	var walk func(el *dom.Element)
	walk = func(el *dom.Element) {
		if el != doc.Body && (el.HasListeners("keydown") || el.HasListeners("click")) {
			out = append(out, el)
		}
		for _, c := range el.Children {
			walk(c)
		}
	}
	walk(doc.Body)
	return out
}

// CycleFocus moves focus to the next focusable element, or the previous one
// when backward is set, wrapping at either end. It returns the newly focused
// element, or nil if doc has nothing to focus.
func CycleFocus(doc *dom.Document, backward bool) *dom.Element {
	els := Focusable(doc)
	if len(els) == 0 {
		doc.Focus(nil)
		return nil
	}

	cur := -1
	active := doc.ActiveElement()
	for i, el := range els {
		if el == active {
			cur = i
			break
		}
	}

	next := 0
	switch {
	case cur < 0 && backward:
		next = len(els) - 1
	case cur < 0:
		next = 0
	case backward:
		next = (cur - 1 + len(els)) % len(els)
	default:
		next = (cur + 1) % len(els)
	}
	doc.Focus(els[next])
	return els[next]
}

// EnsureFocus focuses the first focusable element when keyboard events would
// otherwise go to the body.
func EnsureFocus(doc *dom.Document) {
	if doc.ActiveElement() != doc.Body {
		return
	}
	if els := Focusable(doc); len(els) > 0 {
		doc.Focus(els[0])
	}
}
