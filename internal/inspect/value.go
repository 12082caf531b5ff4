// Package inspect converts runtime values into Expando display trees and
// one-line summaries.
//
// Values reach the inspector as a closed set of shapes (the Value variants in
// this file). FromGo builds that shape from an arbitrary Go value with
// reflection; types that know better can implement Inspectable.
package inspect

import "strconv"

// Value is a runtime value in one of the shapes the inspector recognizes.
type Value interface {
	isValue()
}

// Bool is a boolean.
type Bool bool

// Int is an integral number.
type Int int64

// Float is a floating point number.
type Float float64

// String is a text string, shown double-quoted.
type String string

// Char is a single character, shown single-quoted.
type Char rune

// List is a linked-list style sequence in enumeration order.
type List []Value

// Set is an ordered set. Items are kept in ascending order by whoever builds
// the value; the inspector preserves the order it is given.
type Set []Value

// Array is a contiguous array.
type Array []Value

// Entry is one key/value pair of a Dict.
type Entry struct {
	Key   Value
	Value Value
}

// Dict is an ordered map with entries in ascending key order.
type Dict []Entry

// Field is one named field of a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is a plain key/value mapping.
type Record []Field

// Tagged is a union value discriminated by a text tag. Tags beginning with an
// upper-case letter are user constructors; tags beginning with '#' are
// tuple-like ("#2" for a pair); any other tag is runtime-internal.
type Tagged struct {
	Tag  string
	Args []Value
}

// Internal is a union value discriminated by a private numeric tag. It is
// never expanded.
type Internal struct {
	Code   int
	Fields []Value
}

// OpaqueKind names a runtime value the inspector must not look into.
type OpaqueKind int

const (
	OpaqueUnknown OpaqueKind = iota
	OpaqueFunction
	OpaqueDecoder
	OpaqueTask
	OpaqueProcess
	// OpaqueCycle and OpaqueDepthLimit are produced by FromGo when it stops
	// walking a value.
	OpaqueCycle
	OpaqueDepthLimit
)

// Opaque is a closure, decoder, in-flight task, process handle or any other
// value without a displayable structure.
type Opaque struct {
	Kind OpaqueKind
}

func (Bool) isValue()     {}
func (Int) isValue()      {}
func (Float) isValue()    {}
func (String) isValue()   {}
func (Char) isValue()     {}
func (List) isValue()     {}
func (Set) isValue()      {}
func (Array) isValue()    {}
func (Dict) isValue()     {}
func (Record) isValue()   {}
func (Tagged) isValue()   {}
func (Internal) isValue() {}
func (Opaque) isValue()   {}

// Tuple builds a tuple-like tagged value.
func Tuple(items ...Value) Tagged {
	return Tagged{Tag: "#" + strconv.Itoa(len(items)), Args: items}
}

// Unit is the empty tuple.
var Unit = Tagged{Tag: "#0"}

// Ctor builds a tagged value with a constructor name.
func Ctor(name string, args ...Value) Tagged {
	return Tagged{Tag: name, Args: args}
}
