// Package expando defines the finite display structure runtime values are
// classified into, together with the expand/collapse operations the
// inspector view performs on it.
//
// Expando is a closed set of variants: Primitive, StringLiteral, Sequence,
// Dictionary, Record and Constructor. Code switching over an Expando should
// handle all six.
package expando

import "sort"

// Expando is one node of a classified value.
type Expando interface {
	isExpando()
}

// Primitive is a number or an opaque marker such as "<internals>".
type Primitive struct {
	Text string
}

// StringLiteral is a quoted, escaped string or character literal.
type StringLiteral struct {
	Text string
}

// SeqKind distinguishes the ordered containers.
type SeqKind int

const (
	ListSeq SeqKind = iota
	SetSeq
	ArraySeq
)

func (k SeqKind) String() string {
	switch k {
	case ListSeq:
		return "List"
	case SetSeq:
		return "Set"
	case ArraySeq:
		return "Array"
	default:
		return "Seq"
	}
}

// Sequence is a list, set or array in enumeration order.
type Sequence struct {
	Kind     SeqKind
	Expanded bool
	Items    []Expando
}

// KeyValue is one dictionary entry.
type KeyValue struct {
	Key   Expando
	Value Expando
}

// Dictionary is a key/value container in key order.
type Dictionary struct {
	Expanded bool
	Entries  []KeyValue
}

// Record is a plain mapping of field names to values.
type Record struct {
	Expanded bool
	Fields   map[string]Expando
}

// Constructor is a tagged value. An empty Name marks a tuple-like value.
type Constructor struct {
	Name     string
	Expanded bool
	Args     []Expando
}

func (Primitive) isExpando()     {}
func (StringLiteral) isExpando() {}
func (Sequence) isExpando()      {}
func (Dictionary) isExpando()    {}
func (Record) isExpando()        {}
func (Constructor) isExpando()   {}

// FieldNames returns the record's field names in sorted order.
func (r Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Children returns the nested values of e in display order. Dictionary
// children are the entry values; Record children follow FieldNames.
func Children(e Expando) []Expando {
	switch e := e.(type) {
	case Sequence:
		return e.Items
	case Dictionary:
		out := make([]Expando, len(e.Entries))
		for i, kv := range e.Entries {
			out[i] = kv.Value
		}
		return out
	case Record:
		names := e.FieldNames()
		out := make([]Expando, len(names))
		for i, name := range names {
			out[i] = e.Fields[name]
		}
		return out
	case Constructor:
		return e.Args
	}
	return nil
}

// IsExpanded reports whether e is a container currently shown expanded.
// Leaves report false.
func IsExpanded(e Expando) bool {
	switch e := e.(type) {
	case Sequence:
		return e.Expanded
	case Dictionary:
		return e.Expanded
	case Record:
		return e.Expanded
	case Constructor:
		return e.Expanded
	}
	return false
}
