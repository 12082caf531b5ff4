package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thruflo/overlook/internal/dom"
	"github.com/thruflo/overlook/internal/expando"
	"github.com/thruflo/overlook/internal/overlay"
	"github.com/thruflo/overlook/internal/vdom"
)

// SidebarHeight is the number of history rows the popout shows at once.
const SidebarHeight = 8

// App renders the application's view of the selected model into the body.
func (d *Debugger) App(om overlay.Model) *vdom.Node {
	m := om.(Model)
	return vdom.El("body", d.prog.View(m.Current()))
}

// Corner renders the indicator shown in the primary surface while the
// popout is closed.
func (d *Debugger) Corner(om overlay.Model) *vdom.Node {
	m := om.(Model)
	root := vdom.El("div").WithID(d.opts.Gate.OverlayID)
	if b := m.blocking; b != nil {
		root.Children = append(root.Children, vdom.El("div",
			vdom.El("div", vdom.Text(b.Title)).WithStyle("bold", "true"),
			vdom.El("div", vdom.Text(b.Detail)),
			button("Dismiss", Dismiss{}),
		).WithStyle("border", "rounded"))
	}

	status := plural(m.Messages(), "message")
	if m.Paused() {
		status += fmt.Sprintf(" · paused at %d", m.selected)
	}
	row := vdom.El("div", vdom.El("span", vdom.Text(status)).WithStyle("faint", "true"), button("Explore History", Open{}))
	if m.Paused() {
		row.Children = append(row.Children, button("Resume", Resume{}))
	}
	root.Children = append(root.Children, row)
	return root
}

// Popout renders the full debugger: the history sidebar and the details
// panel of the selected model.
func (d *Debugger) Popout(om overlay.Model) *vdom.Node {
	m := om.(Model)

	sidebar := vdom.El("div").WithID(SidebarID).WithStyle("height", strconv.Itoa(SidebarHeight))
	for i, e := range m.entries {
		row := vdom.El("div", vdom.Text(fmt.Sprintf("%3d  %s", i, e.Label))).OnKey(dom.KeyEnter, Jump{Index: i})
		if i == m.selected {
			row.WithStyle("reverse", "true")
		}
		sidebar.Children = append(sidebar.Children, row)
	}

	help := "↑/↓ select  e export"
	if d.opts.ImportPath != "" {
		help += "  i import"
	}
	if m.Paused() {
		help += "  r resume"
	}
	footer := vdom.El("div", vdom.Text(help)).WithStyle("faint", "true")

	details := vdom.El("div", vdom.El("div", vdom.Text(m.entries[m.selected].Label)).WithStyle("bold", "true")).WithID(d.opts.Gate.DetailsID)
	for _, line := range expando.Lines(m.details) {
		row := vdom.El("div", vdom.Text(strings.Repeat("  ", line.Depth)+line.Text))
		if line.Toggleable {
			row.OnKey(dom.KeyEnter, Toggle{Path: line.Path})
		}
		details.Children = append(details.Children, row)
	}

	root := vdom.El("div", sidebar, footer, details).WithID(PopoutID).
		OnRune('e', Export{}).
		OnRune('r', Resume{})
	if d.opts.ImportPath != "" {
		root.OnRune('i', Import{Path: d.opts.ImportPath})
	}
	if m.blocking != nil {
		root.Children = append(root.Children, vdom.El("div",
			vdom.El("div", vdom.Text(m.blocking.Title)).WithStyle("bold", "true"),
			vdom.El("div", vdom.Text(m.blocking.Detail)),
			button("Dismiss", Dismiss{}),
		).WithStyle("border", "rounded"))
	}
	return root
}

func button(label string, msg any) *vdom.Node {
	return vdom.El("button", vdom.Text("["+label+"]")).
		WithStyle("bold", "true").
		OnKey(dom.KeyEnter, msg).
		OnEvent("click", func(*dom.Event) (any, bool) { return msg, true })
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
