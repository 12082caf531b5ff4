package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/overlook/internal/dom"
)

func view(count int, items ...string) *Node {
	list := El("ul")
	for _, it := range items {
		list.Children = append(list.Children, El("li", Text(it)))
	}
	return El("body",
		El("h1", Text("count")).WithStyle("bold", "true"),
		El("p", Text(itoa(count))).WithID("count"),
		list,
	)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func commit(t *testing.T, doc *dom.Document, root *dom.Element, old, next *Node) *dom.Element {
	t.Helper()
	root, err := ApplyPatches(doc, root, old, Diff(old, next), func(any) {})
	require.NoError(t, err)
	return root
}

func TestDiff_Identical(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Diff(view(1, "a"), view(1, "a")))
}

func TestDiff_TextChange(t *testing.T) {
	t.Parallel()

	patches := Diff(view(1), view(2))
	require.Len(t, patches, 1)
	assert.Equal(t, PatchText, patches[0].Kind)
	assert.Equal(t, []int{1, 0}, patches[0].Path)
}

func TestApplyPatches_MatchesFreshRender(t *testing.T) {
	t.Parallel()

	steps := []*Node{
		view(0),
		view(1, "a", "b"),
		view(2, "a"),
		view(3, "x", "y", "z"),
		El("body", Text("replaced")),
		view(4, "q"),
	}

	doc := dom.NewDocument()
	root := doc.Body
	curr := Virtualize(root)
	for _, next := range steps {
		root = commit(t, doc, root, curr, next)
		curr = next

		want := Virtualize(Render(dom.NewDocument(), next, func(any) {}))
		if diff := cmp.Diff(want, Virtualize(root)); diff != "" {
			t.Fatalf("tree mismatch (-want +got):\n%s", diff)
		}
	}
	assert.Equal(t, doc.Body, root)
}

func TestApplyPatches_UsesTargetDocument(t *testing.T) {
	t.Parallel()

	primary := dom.NewDocument()
	popout := dom.NewDocument()

	curr := Virtualize(popout.Body)
	next := El("body", El("div", Text("details")))
	_ = commit(t, popout, popout.Body, curr, next)

	require.Len(t, popout.Body.Children, 1)
	assert.Equal(t, popout, popout.Body.Children[0].OwnerDocument())
	assert.Empty(t, primary.Body.Children)
}

func TestApplyPatches_KeepsForeignTrailingChild(t *testing.T) {
	t.Parallel()

	doc := dom.NewDocument()
	root := doc.Body
	curr := Virtualize(root)
	root = commit(t, doc, root, curr, view(1, "a", "b"))
	curr = view(1, "a", "b")

	corner := doc.CreateElement("aside")
	root.AppendChild(corner)

	next := El("body", El("h1", Text("count")).WithStyle("bold", "true"))
	root = commit(t, doc, root, curr, next)
	require.Len(t, root.Children, 2)
	assert.Equal(t, corner, root.Children[1])

	root = commit(t, doc, root, next, view(5))
	require.Len(t, root.Children, 4)
	assert.Equal(t, corner, root.Children[3])
}

func TestApplyPatches_RedrawnBodyIsAttached(t *testing.T) {
	t.Parallel()

	doc := dom.NewDocument()
	old := doc.Body
	curr := Virtualize(old)
	next := El("main", El("p", Text("fresh"))).WithID("app")

	root := commit(t, doc, old, curr, next)
	assert.NotEqual(t, old, root)
	assert.Equal(t, root, doc.Body)
	assert.Equal(t, doc, root.Document())
	assert.Nil(t, old.Document())
	assert.Equal(t, "fresh", doc.Body.TextContent())
	assert.Equal(t, root.Children[0], doc.GetElementByID("app").Children[0])
}

func TestApplyPatches_RedrawnDetachedRoot(t *testing.T) {
	t.Parallel()

	doc := dom.NewDocument()
	curr := El("div", Text("a"))
	detached := Render(doc, curr, func(any) {})

	root := commit(t, doc, detached, curr, El("span", Text("b")))
	assert.Equal(t, "span", root.Tag)
	assert.Nil(t, root.Parent)
	assert.Empty(t, doc.Body.Children)
}

func TestHandlers_DispatchMessages(t *testing.T) {
	t.Parallel()

	doc := dom.NewDocument()
	var got []any
	dispatch := func(msg any) { got = append(got, msg) }

	mk := func(msg string) *Node {
		return El("body", El("button", Text("go")).OnKey(dom.KeyEnter, msg).OnRune('x', "rune"))
	}
	curr := Virtualize(doc.Body)
	root, err := ApplyPatches(doc, doc.Body, curr, Diff(curr, mk("first")), dispatch)
	require.NoError(t, err)

	button := root.Children[0]
	doc.Dispatch(&dom.Event{Type: "keydown", Key: dom.KeyEnter, Target: button})

	_, err = ApplyPatches(doc, root, mk("first"), Diff(mk("first"), mk("second")), dispatch)
	require.NoError(t, err)
	doc.Dispatch(&dom.Event{Type: "keydown", Key: dom.KeyEnter, Target: button})
	doc.Dispatch(&dom.Event{Type: "keydown", Rune: 'x', Target: button})
	doc.Dispatch(&dom.Event{Type: "keydown", Rune: 'y', Target: button})

	assert.Equal(t, []any{"first", "second", "rune"}, got)
	assert.Len(t, button.Bindings, 1)
}

func TestApplyPatches_BadPath(t *testing.T) {
	t.Parallel()

	doc := dom.NewDocument()
	_, err := ApplyPatches(doc, doc.Body, El("body"), []Patch{{Kind: PatchText, Path: []int{3}, Node: Text("x")}}, nil)
	assert.Error(t, err)
}
