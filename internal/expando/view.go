package expando

import (
	"strconv"
	"strings"
)

// Line is one row of an inspector view.
type Line struct {
	Depth int
	Text  string
	// Path addresses the node of this row for Toggle.
	Path []int
	// Toggleable is set on rows of containers.
	Toggleable bool
}

const (
	arrowOpen   = "▾ "
	arrowClosed = "▸ "
	noArrow     = "  "
)

// Lines flattens e into display rows. Collapsed containers take one row
// showing a preview; expanded containers list their children one level
// deeper.
func Lines(e Expando) []Line {
	var lines []Line
	linesHelp(&lines, "", e, 0, nil)
	return lines
}

func linesHelp(out *[]Line, label string, e Expando, depth int, path []int) {
	children := Children(e)
	if !isContainer(e) {
		*out = append(*out, Line{Depth: depth, Text: noArrow + label + Preview(e)})
		return
	}
	if !IsExpanded(e) {
		*out = append(*out, Line{Depth: depth, Text: arrowClosed + label + Preview(e), Path: path, Toggleable: true})
		return
	}
	*out = append(*out, Line{Depth: depth, Text: arrowOpen + label + header(e), Path: path, Toggleable: true})
	labels := childLabels(e)
	for i, c := range children {
		linesHelp(out, labels[i], c, depth+1, append(path[:len(path):len(path)], i))
	}
}

func isContainer(e Expando) bool {
	switch e := e.(type) {
	case Sequence, Dictionary, Record:
		return true
	case Constructor:
		return len(e.Args) > 0
	}
	return false
}

func header(e Expando) string {
	switch e := e.(type) {
	case Sequence:
		return e.Kind.String() + "(" + strconv.Itoa(len(e.Items)) + ")"
	case Dictionary:
		return "Dict(" + strconv.Itoa(len(e.Entries)) + ")"
	case Record:
		return "{ }"
	case Constructor:
		if e.Name == "" {
			return "( )"
		}
		return e.Name
	}
	return Preview(e)
}

func childLabels(e Expando) []string {
	switch e := e.(type) {
	case Sequence:
		labels := make([]string, len(e.Items))
		for i := range e.Items {
			labels[i] = strconv.Itoa(i) + ": "
		}
		return labels
	case Dictionary:
		labels := make([]string, len(e.Entries))
		for i, kv := range e.Entries {
			labels[i] = Preview(kv.Key) + ": "
		}
		return labels
	case Record:
		names := e.FieldNames()
		labels := make([]string, len(names))
		for i, name := range names {
			labels[i] = name + " = "
		}
		return labels
	case Constructor:
		return make([]string, len(e.Args))
	}
	return nil
}

// Preview renders e on a single line.
func Preview(e Expando) string {
	var sb strings.Builder
	preview(&sb, e, false)
	return sb.String()
}

func preview(sb *strings.Builder, e Expando, nested bool) {
	switch e := e.(type) {
	case Primitive:
		sb.WriteString(e.Text)
	case StringLiteral:
		sb.WriteString(e.Text)
	case Sequence:
		sb.WriteString(header(e))
	case Dictionary:
		sb.WriteString(header(e))
	case Record:
		if nested {
			sb.WriteString("{…}")
			return
		}
		names := e.FieldNames()
		if len(names) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{ ")
		for i, name := range names {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(name)
			sb.WriteString(" = ")
			preview(sb, e.Fields[name], true)
		}
		sb.WriteString(" }")
	case Constructor:
		if e.Name == "" {
			sb.WriteString("( ")
			for i, a := range e.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				preview(sb, a, true)
			}
			if len(e.Args) == 0 {
				sb.WriteString(")")
				return
			}
			sb.WriteString(" )")
			return
		}
		if nested && len(e.Args) > 0 {
			sb.WriteString(e.Name + " …")
			return
		}
		sb.WriteString(e.Name)
		for _, a := range e.Args {
			sb.WriteString(" ")
			preview(sb, a, true)
		}
	}
}
