package termhost

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thruflo/overlook/internal/dom"
)

// inline tags flow into the current line; every other element starts its own.
var inlineTags = map[string]bool{
	"span":   true,
	"button": true,
	"a":      true,
	"b":      true,
	"code":   true,
}

// Painter draws a document onto a terminal screen. It repaints only when the
// document changed since the previous paint.
type Painter struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	width    int
	height   int

	painted bool
	version uint64
	focus   *dom.Element
	title   string
}

// NewPainter creates a painter writing to out.
func NewPainter(out io.Writer) *Painter {
	return &Painter{
		out:      out,
		renderer: lipgloss.NewRenderer(out),
		width:    80,
		height:   24,
	}
}

// Resize sets the screen size. A change forces the next Paint to redraw.
func (p *Painter) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == p.width && height == p.height) {
		return
	}
	p.width, p.height = width, height
	p.painted = false
}

// Invalidate forces the next Paint to redraw.
func (p *Painter) Invalidate() {
	p.painted = false
}

// Paint redraws doc if its version, focus or title changed. It reports
// whether anything was written.
func (p *Painter) Paint(doc *dom.Document) (bool, error) {
	active := doc.ActiveElement()
	if p.painted && doc.Version() == p.version && active == p.focus && doc.Title == p.title {
		return false, nil
	}

	var sb strings.Builder
	if doc.Title != p.title {
		sb.WriteString(SetTitle(doc.Title))
	}
	sb.WriteString(CursorHome)
	lines := p.Lines(doc)
	if len(lines) > p.height {
		lines = lines[:p.height]
	}
	clip := p.renderer.NewStyle().MaxWidth(p.width)
	for i, line := range lines {
		sb.WriteString(clip.Render(line))
		sb.WriteString(ClearLine)
		if i < len(lines)-1 {
			sb.WriteString("\r\n")
		}
	}
	sb.WriteString(ClearToEnd)

	if _, err := io.WriteString(p.out, sb.String()); err != nil {
		return false, err
	}
	p.painted = true
	p.version = doc.Version()
	p.focus = active
	p.title = doc.Title
	return true, nil
}

// Lines flattens doc into styled screen lines. Elements with a "height"
// style are windowed at their ScrollTop; their ScrollHeight is updated to
// the number of lines they hold.
func (p *Painter) Lines(doc *dom.Document) []string {
	return p.block(doc.Body, doc.ActiveElement())
}

func (p *Painter) block(el *dom.Element, focus *dom.Element) []string {
	if el.Style["display"] == "none" {
		return nil
	}

	var lines []string
	var cur strings.Builder
	open := false
	flush := func() {
		if open {
			lines = append(lines, cur.String())
			cur.Reset()
			open = false
		}
	}

	for _, c := range el.Children {
		switch {
		case c.IsText():
			cur.WriteString(c.Text)
			open = true
		case inlineTags[c.Tag]:
			text := strings.Join(p.block(c, focus), " ")
			if open && cur.Len() > 0 && text != "" {
				cur.WriteString(" ")
			}
			cur.WriteString(text)
			open = true
		default:
			flush()
			lines = append(lines, p.block(c, focus)...)
		}
	}
	flush()

	lines = window(el, lines)
	return p.decorate(el, lines, el == focus)
}

func window(el *dom.Element, lines []string) []string {
	h, err := strconv.Atoi(el.Style["height"])
	if err != nil || h <= 0 {
		return lines
	}
	el.ScrollHeight = len(lines)
	maxTop := len(lines) - h
	if maxTop < 0 {
		maxTop = 0
	}
	if el.ScrollTop > maxTop {
		el.ScrollTop = maxTop
	}
	if el.ScrollTop < 0 {
		el.ScrollTop = 0
	}
	end := el.ScrollTop + h
	if end > len(lines) {
		end = len(lines)
	}
	return lines[el.ScrollTop:end]
}

func (p *Painter) decorate(el *dom.Element, lines []string, focused bool) []string {
	style := p.renderer.NewStyle()
	styled := false
	if el.Style["bold"] == "true" {
		style = style.Bold(true)
		styled = true
	}
	if el.Style["faint"] == "true" {
		style = style.Faint(true)
		styled = true
	}
	if el.Style["reverse"] == "true" {
		style = style.Reverse(true)
		styled = true
	}
	if focused {
		style = style.Underline(true)
		styled = true
	}
	if styled {
		for i, line := range lines {
			lines[i] = style.Render(line)
		}
	}

	switch el.Style["border"] {
	case "rounded":
		return boxed(p.renderer.NewStyle().Border(lipgloss.RoundedBorder()), lines)
	case "normal":
		return boxed(p.renderer.NewStyle().Border(lipgloss.NormalBorder()), lines)
	}
	return lines
}

func boxed(style lipgloss.Style, lines []string) []string {
	return strings.Split(style.Render(strings.Join(lines, "\n")), "\n")
}
