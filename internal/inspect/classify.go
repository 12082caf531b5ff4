package inspect

import (
	"unicode"
	"unicode/utf8"

	"github.com/thruflo/overlook/internal/expando"
)

// DefaultMaxDepth bounds recursion when no limit is configured.
const DefaultMaxDepth = 64

// Markers produced for values the inspector will not expand.
const (
	InternalsText  = "<internals>"
	TaskText       = "<task>"
	ProcessText    = "<process>"
	CycleText      = "<cycle>"
	DepthLimitText = "<depth limit>"
)

// Inspector classifies values with a recursion bound. The zero value uses
// DefaultMaxDepth.
type Inspector struct {
	MaxDepth int
}

// Classify converts v with the default inspector.
func Classify(v Value) expando.Expando {
	return Inspector{}.Classify(v)
}

// ClassifyAny converts an arbitrary Go value with the default inspector.
func ClassifyAny(v any) expando.Expando {
	in := Inspector{}
	return in.Classify(in.FromGo(v))
}

func (in Inspector) maxDepth() int {
	if in.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return in.MaxDepth
}

// Classify converts v into its display structure. It is total and
// deterministic. A container that contains itself is shown as CycleText at
// the point it recurs; nesting deeper than MaxDepth is cut off with
// DepthLimitText.
func (in Inspector) Classify(v Value) expando.Expando {
	w := walker{max: in.maxDepth(), active: make(map[sliceKey]bool)}
	return w.classify(v, 0)
}

// sliceKey identifies a container by its backing array and length, which is
// enough to notice a slice that contains itself.
type sliceKey struct {
	first any
	n     int
}

type walker struct {
	max    int
	active map[sliceKey]bool
}

func (w *walker) enter(key sliceKey) bool {
	if key.first == nil {
		return true
	}
	if w.active[key] {
		return false
	}
	w.active[key] = true
	return true
}

func (w *walker) leave(key sliceKey) {
	if key.first != nil {
		delete(w.active, key)
	}
}

func keyOf(v Value) sliceKey {
	switch v := v.(type) {
	case List:
		if len(v) > 0 {
			return sliceKey{&v[0], len(v)}
		}
	case Set:
		if len(v) > 0 {
			return sliceKey{&v[0], len(v)}
		}
	case Array:
		if len(v) > 0 {
			return sliceKey{&v[0], len(v)}
		}
	case Dict:
		if len(v) > 0 {
			return sliceKey{&v[0], len(v)}
		}
	case Record:
		if len(v) > 0 {
			return sliceKey{&v[0], len(v)}
		}
	case Tagged:
		if len(v.Args) > 0 {
			return sliceKey{&v.Args[0], len(v.Args)}
		}
	}
	return sliceKey{}
}

func (w *walker) classify(v Value, depth int) expando.Expando {
	if depth > w.max {
		return expando.Primitive{Text: DepthLimitText}
	}
	key := keyOf(v)
	if !w.enter(key) {
		return expando.Primitive{Text: CycleText}
	}
	defer w.leave(key)

	switch v := v.(type) {
	case Bool:
		if v {
			return expando.Constructor{Name: "True", Expanded: true}
		}
		return expando.Constructor{Name: "False", Expanded: true}
	case Int:
		return expando.Primitive{Text: v.text()}
	case Float:
		return expando.Primitive{Text: v.text()}
	case String:
		return expando.StringLiteral{Text: Quote(string(v))}
	case Char:
		return expando.StringLiteral{Text: QuoteChar(rune(v))}
	case List:
		return expando.Sequence{Kind: expando.ListSeq, Expanded: true, Items: w.all(v, depth)}
	case Set:
		return expando.Sequence{Kind: expando.SetSeq, Expanded: true, Items: w.all(v, depth)}
	case Array:
		return expando.Sequence{Kind: expando.ArraySeq, Expanded: true, Items: w.all(v, depth)}
	case Dict:
		var entries []expando.KeyValue
		for _, e := range v {
			entries = append(entries, expando.KeyValue{
				Key:   w.classify(e.Key, depth+1),
				Value: w.classify(e.Value, depth+1),
			})
		}
		return expando.Dictionary{Expanded: true, Entries: entries}
	case Record:
		fields := make(map[string]expando.Expando, len(v))
		for _, f := range v {
			fields[f.Name] = w.classify(f.Value, depth+1)
		}
		return expando.Record{Expanded: true, Fields: fields}
	case Tagged:
		switch tagClass(v.Tag) {
		case tagTuple:
			return expando.Constructor{Expanded: true, Args: w.all(v.Args, depth)}
		case tagUser:
			return expando.Constructor{Name: v.Tag, Expanded: true, Args: w.all(v.Args, depth)}
		}
		return expando.Primitive{Text: InternalsText}
	case Internal:
		return expando.Primitive{Text: InternalsText}
	case Opaque:
		return expando.Primitive{Text: opaqueText(v.Kind)}
	}
	return expando.Primitive{Text: InternalsText}
}

func (w *walker) all(vs []Value, depth int) []expando.Expando {
	var out []expando.Expando
	for _, v := range vs {
		out = append(out, w.classify(v, depth+1))
	}
	return out
}

func opaqueText(k OpaqueKind) string {
	switch k {
	case OpaqueTask:
		return TaskText
	case OpaqueProcess:
		return ProcessText
	case OpaqueCycle:
		return CycleText
	case OpaqueDepthLimit:
		return DepthLimitText
	default:
		return InternalsText
	}
}

type tagKind int

const (
	tagInternal tagKind = iota
	tagTuple
	tagUser
)

func tagClass(tag string) tagKind {
	r, _ := utf8.DecodeRuneInString(tag)
	switch {
	case r == '#':
		return tagTuple
	case r != utf8.RuneError && unicode.IsUpper(r):
		return tagUser
	}
	return tagInternal
}
