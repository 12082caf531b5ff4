package inspect

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Inspectable is implemented by types that describe their own shape.
type Inspectable interface {
	Inspect() Value
}

// Nothing is the value FromGo produces for nil.
var Nothing = Ctor("Nothing")

var (
	valueType       = reflect.TypeOf((*Value)(nil)).Elem()
	inspectableType = reflect.TypeOf((*Inspectable)(nil)).Elem()
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
)

// FromGo converts a Go value into a Value:
//
//   - bool, integers, floats and strings map to the scalar variants
//   - slices and arrays map to Array
//   - maps with string keys and structs map to Record; other maps map to
//     Dict with entries in key order
//   - pointers and interfaces are followed; nil becomes Nothing
//   - funcs become an opaque function, channels an opaque process
//   - errors become Error "<message>"
//
// Values that already are a Value or implement Inspectable are used as they
// describe themselves. A pointer, map or slice reached again while it is
// being converted becomes an opaque cycle marker.
func (in Inspector) FromGo(v any) Value {
	c := converter{max: in.maxDepth(), active: make(map[refKey]bool)}
	return c.convert(reflect.ValueOf(v), 0)
}

// FromGo converts v with the default inspector.
func FromGo(v any) Value {
	return Inspector{}.FromGo(v)
}

type refKey struct {
	kind reflect.Kind
	ptr  uintptr
	n    int
}

type converter struct {
	max    int
	active map[refKey]bool
}

func (c *converter) convert(rv reflect.Value, depth int) Value {
	if !rv.IsValid() {
		return Nothing
	}
	if depth > c.max {
		return Opaque{Kind: OpaqueDepthLimit}
	}

	if rv.Kind() != reflect.Interface && rv.CanInterface() {
		if rv.Type().Implements(valueType) {
			if rv.Kind() == reflect.Ptr && rv.IsNil() {
				return Nothing
			}
			return rv.Interface().(Value)
		}
		if rv.Type().Implements(inspectableType) {
			if rv.Kind() == reflect.Ptr && rv.IsNil() {
				return Nothing
			}
			return rv.Interface().(Inspectable).Inspect()
		}
		if rv.Type().Implements(errorType) {
			if rv.Kind() == reflect.Ptr && rv.IsNil() {
				return Nothing
			}
			return Ctor("Error", String(rv.Interface().(error).Error()))
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Float(float64(u))
		}
		return Int(int64(u))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Interface:
		if rv.IsNil() {
			return Nothing
		}
		return c.convert(rv.Elem(), depth)
	case reflect.Ptr:
		if rv.IsNil() {
			return Nothing
		}
		return c.guard(refKey{reflect.Ptr, rv.Pointer(), 0}, func() Value {
			return c.convert(rv.Elem(), depth)
		})
	case reflect.Slice:
		if rv.IsNil() {
			return Array(nil)
		}
		return c.guard(refKey{reflect.Slice, rv.Pointer(), rv.Len()}, func() Value {
			return c.array(rv, depth)
		})
	case reflect.Array:
		return c.array(rv, depth)
	case reflect.Map:
		if rv.IsNil() {
			return c.emptyMap(rv.Type())
		}
		return c.guard(refKey{reflect.Map, rv.Pointer(), 0}, func() Value {
			return c.mapping(rv, depth)
		})
	case reflect.Struct:
		return c.record(rv, depth)
	case reflect.Func:
		return Opaque{Kind: OpaqueFunction}
	case reflect.Chan:
		return Opaque{Kind: OpaqueProcess}
	}
	return Opaque{Kind: OpaqueUnknown}
}

func (c *converter) guard(key refKey, fn func() Value) Value {
	if key.ptr != 0 {
		if c.active[key] {
			return Opaque{Kind: OpaqueCycle}
		}
		c.active[key] = true
		defer delete(c.active, key)
	}
	return fn()
}

func (c *converter) array(rv reflect.Value, depth int) Value {
	out := make(Array, rv.Len())
	for i := range out {
		out[i] = c.convert(rv.Index(i), depth+1)
	}
	return out
}

func (c *converter) emptyMap(t reflect.Type) Value {
	if t.Key().Kind() == reflect.String {
		return Record(nil)
	}
	return Dict(nil)
}

func (c *converter) mapping(rv reflect.Value, depth int) Value {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })

	if rv.Type().Key().Kind() == reflect.String {
		out := make(Record, len(keys))
		for i, k := range keys {
			out[i] = Field{Name: k.String(), Value: c.convert(rv.MapIndex(k), depth+1)}
		}
		return out
	}

	out := make(Dict, len(keys))
	for i, k := range keys {
		out[i] = Entry{
			Key:   c.convert(k, depth+1),
			Value: c.convert(rv.MapIndex(k), depth+1),
		}
	}
	return out
}

func (c *converter) record(rv reflect.Value, depth int) Value {
	t := rv.Type()
	var out Record
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("inspect"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		out = append(out, Field{Name: name, Value: c.convert(rv.Field(i), depth+1)})
	}
	return out
}

func lessKey(a, b reflect.Value) bool {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.String:
			return a.String() < b.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return a.Int() < b.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return a.Uint() < b.Uint()
		case reflect.Float32, reflect.Float64:
			return a.Float() < b.Float()
		case reflect.Bool:
			return !a.Bool() && b.Bool()
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b)) < 0
}
