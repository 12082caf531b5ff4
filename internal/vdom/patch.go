package vdom

import (
	"fmt"

	"github.com/thruflo/overlook/internal/dom"
)

// PatchKind identifies the operation a Patch performs.
type PatchKind int

const (
	// PatchRedraw replaces the element at Path with a fresh render of Node.
	PatchRedraw PatchKind = iota
	// PatchText sets the text of the text node at Path.
	PatchText
	// PatchStyle replaces the style of the element at Path.
	PatchStyle
	// PatchHandlers rebinds the event handlers of the element at Path.
	PatchHandlers
	// PatchInsert renders Node and inserts it as child Index of Path.
	PatchInsert
	// PatchRemove removes Count children of Path starting at Index.
	PatchRemove
)

func (k PatchKind) String() string {
	switch k {
	case PatchRedraw:
		return "redraw"
	case PatchText:
		return "text"
	case PatchStyle:
		return "style"
	case PatchHandlers:
		return "handlers"
	case PatchInsert:
		return "insert"
	case PatchRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Patch is a single change to commit to a live tree.
type Patch struct {
	Kind  PatchKind
	Path  []int
	Node  *Node
	Index int
	Count int
}

// Virtualize builds a Node tree describing an existing element. Handlers are
// not recovered; the first diff against a view rebinds them.
func Virtualize(el *dom.Element) *Node {
	if el.IsText() {
		return Text(el.Text)
	}
	n := &Node{Tag: el.Tag, ID: el.ID}
	if len(el.Style) > 0 {
		n.Style = make(map[string]string, len(el.Style))
		for k, v := range el.Style {
			n.Style[k] = v
		}
	}
	for _, c := range el.Children {
		n.Children = append(n.Children, Virtualize(c))
	}
	return n
}

// Render creates a detached element tree for n owned by doc.
func Render(doc *dom.Document, n *Node, dispatch Dispatch) *dom.Element {
	if n.IsText() {
		return doc.CreateText(n.Text)
	}
	el := doc.CreateElement(n.Tag)
	el.ID = n.ID
	for k, v := range n.Style {
		el.SetStyle(k, v)
	}
	bind(el, n.On, dispatch)
	for _, c := range n.Children {
		el.AppendChild(Render(doc, c, dispatch))
	}
	return el
}

// Diff returns the patches that turn old into next.
func Diff(old, next *Node) []Patch {
	var patches []Patch
	diffHelp(old, next, nil, &patches)
	return patches
}

func diffHelp(old, next *Node, path []int, patches *[]Patch) {
	if old == next {
		return
	}
	if old.Tag != next.Tag || old.ID != next.ID {
		*patches = append(*patches, Patch{Kind: PatchRedraw, Path: path, Node: next})
		return
	}
	if next.IsText() {
		if old.Text != next.Text {
			*patches = append(*patches, Patch{Kind: PatchText, Path: path, Node: next})
		}
		return
	}
	if !stylesEqual(old.Style, next.Style) {
		*patches = append(*patches, Patch{Kind: PatchStyle, Path: path, Node: next})
	}
	// Handlers are closures and cannot be compared; rebind whenever either
	// side has any.
	if len(old.On) > 0 || len(next.On) > 0 {
		*patches = append(*patches, Patch{Kind: PatchHandlers, Path: path, Node: next})
	}

	common := len(old.Children)
	if len(next.Children) < common {
		common = len(next.Children)
	}
	for i := 0; i < common; i++ {
		diffHelp(old.Children[i], next.Children[i], append(path[:len(path):len(path)], i), patches)
	}
	for i := common; i < len(next.Children); i++ {
		*patches = append(*patches, Patch{Kind: PatchInsert, Path: path, Node: next.Children[i], Index: i})
	}
	if len(old.Children) > common {
		*patches = append(*patches, Patch{Kind: PatchRemove, Path: path, Index: common, Count: len(old.Children) - common})
	}
}

// ApplyPatches commits patches to root, which must currently display old.
// New elements are created in doc. It returns the root element, which differs
// from the argument when the root itself was redrawn; a redrawn document body
// is replaced in doc, any other detached root is left for the caller to
// attach.
func ApplyPatches(doc *dom.Document, root *dom.Element, old *Node, patches []Patch, dispatch Dispatch) (*dom.Element, error) {
	for _, p := range patches {
		target, err := resolve(root, p.Path)
		if err != nil {
			return root, err
		}
		switch p.Kind {
		case PatchRedraw:
			fresh := Render(doc, p.Node, dispatch)
			switch {
			case target.Parent != nil:
				target.Parent.ReplaceChild(fresh, target)
			case target == doc.Body:
				doc.ReplaceBody(fresh)
			}
			if target == root {
				root = fresh
			}
		case PatchText:
			target.SetText(p.Node.Text)
		case PatchStyle:
			for k := range target.Style {
				if _, ok := p.Node.Style[k]; !ok {
					target.SetStyle(k, "")
				}
			}
			for k, v := range p.Node.Style {
				target.SetStyle(k, v)
			}
		case PatchHandlers:
			bind(target, p.Node.On, dispatch)
		case PatchInsert:
			target.InsertChild(p.Index, Render(doc, p.Node, dispatch))
		case PatchRemove:
			for i := 0; i < p.Count && p.Index < len(target.Children); i++ {
				target.RemoveChild(target.Children[p.Index])
			}
		}
	}
	return root, nil
}

func resolve(root *dom.Element, path []int) (*dom.Element, error) {
	el := root
	for depth, i := range path {
		if i >= len(el.Children) {
			return nil, fmt.Errorf("patch path %v: no child %d at depth %d", path, i, depth)
		}
		el = el.Children[i]
	}
	return el, nil
}

func bind(el *dom.Element, handlers map[string]Handler, dispatch Dispatch) {
	for typ, l := range el.Bindings {
		if _, ok := handlers[typ]; !ok {
			el.RemoveEventListener(typ, l)
			delete(el.Bindings, typ)
		}
	}
	for typ, h := range handlers {
		if l, ok := el.Bindings[typ]; ok {
			el.RemoveEventListener(typ, l)
		}
		h := h
		l := dom.NewListener(func(ev *dom.Event) {
			if msg, ok := h(ev); ok {
				ev.StopPropagation()
				dispatch(msg)
			}
		})
		if el.Bindings == nil {
			el.Bindings = make(map[string]*dom.Listener)
		}
		el.Bindings[typ] = l
		el.AddEventListener(typ, l)
	}
}
