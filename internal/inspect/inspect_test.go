package inspect

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/thruflo/overlook/internal/expando"
)

func TestClassify_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value Value
		want  expando.Expando
	}{
		{"true", Bool(true), expando.Constructor{Name: "True", Expanded: true}},
		{"false", Bool(false), expando.Constructor{Name: "False", Expanded: true}},
		{"float", Float(3.14), expando.Primitive{Text: "3.14"}},
		{"int", Int(-42), expando.Primitive{Text: "-42"}},
		{"string", String("a\nb"), expando.StringLiteral{Text: `"a\nb"`}},
		{"char", Char('\''), expando.StringLiteral{Text: `'\''`}},
		{"function", Opaque{Kind: OpaqueFunction}, expando.Primitive{Text: "<internals>"}},
		{"decoder", Opaque{Kind: OpaqueDecoder}, expando.Primitive{Text: "<internals>"}},
		{"task", Opaque{Kind: OpaqueTask}, expando.Primitive{Text: "<task>"}},
		{"process", Opaque{Kind: OpaqueProcess}, expando.Primitive{Text: "<process>"}},
		{"internal union", Internal{Code: 3, Fields: []Value{Int(1)}}, expando.Primitive{Text: "<internals>"}},
		{"lower-case tag", Ctor("node", Int(1)), expando.Primitive{Text: "<internals>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, Classify(tt.value)); diff != "" {
				t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassify_Record(t *testing.T) {
	t.Parallel()

	got := Classify(Record{{Name: "a", Value: Int(1)}, {Name: "b", Value: String("x")}})
	want := expando.Record{Expanded: true, Fields: map[string]expando.Expando{
		"a": expando.Primitive{Text: "1"},
		"b": expando.StringLiteral{Text: `"x"`},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_Containers(t *testing.T) {
	t.Parallel()

	got := Classify(Ctor("Model",
		List{Int(1), Int(2)},
		Set{Char('a')},
		Dict{{Key: String("k"), Value: Bool(false)}},
		Tuple(Int(1), String("y")),
	))
	want := expando.Constructor{Name: "Model", Expanded: true, Args: []expando.Expando{
		expando.Sequence{Kind: expando.ListSeq, Expanded: true, Items: []expando.Expando{
			expando.Primitive{Text: "1"}, expando.Primitive{Text: "2"},
		}},
		expando.Sequence{Kind: expando.SetSeq, Expanded: true, Items: []expando.Expando{
			expando.StringLiteral{Text: "'a'"},
		}},
		expando.Dictionary{Expanded: true, Entries: []expando.KeyValue{
			{Key: expando.StringLiteral{Text: `"k"`}, Value: expando.Constructor{Name: "False", Expanded: true}},
		}},
		expando.Constructor{Expanded: true, Args: []expando.Expando{
			expando.Primitive{Text: "1"}, expando.StringLiteral{Text: `"y"`},
		}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	v := Ctor("Just", Record{{Name: "xs", Value: Array{Float(0.5), Float(1e21)}}})
	assert.Equal(t, Classify(v), Classify(v))
}

func TestClassify_Cycle(t *testing.T) {
	t.Parallel()

	l := make(List, 1)
	l[0] = l
	want := expando.Sequence{Kind: expando.ListSeq, Expanded: true, Items: []expando.Expando{
		expando.Primitive{Text: CycleText},
	}}
	if diff := cmp.Diff(want, Classify(l)); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_SharedIsNotCycle(t *testing.T) {
	t.Parallel()

	shared := List{Int(1)}
	got := Classify(Tuple(shared, shared))
	want := expando.Constructor{Expanded: true, Args: []expando.Expando{
		expando.Sequence{Kind: expando.ListSeq, Expanded: true, Items: []expando.Expando{expando.Primitive{Text: "1"}}},
		expando.Sequence{Kind: expando.ListSeq, Expanded: true, Items: []expando.Expando{expando.Primitive{Text: "1"}}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_DepthLimit(t *testing.T) {
	t.Parallel()

	in := Inspector{MaxDepth: 2}
	got := in.Classify(List{List{List{Int(1)}}})
	want := expando.Sequence{Kind: expando.ListSeq, Expanded: true, Items: []expando.Expando{
		expando.Sequence{Kind: expando.ListSeq, Expanded: true, Items: []expando.Expando{
			expando.Sequence{Kind: expando.ListSeq, Expanded: true, Items: []expando.Expando{
				expando.Primitive{Text: DepthLimitText},
			}},
		}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

func TestStringify(t *testing.T) {
	t.Parallel()

	z := String("z")
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"bool", Bool(true), "True"},
		{"number", Float(2.5), "2.5"},
		{"string", String(`say "hi"`), `"say \"hi\""`},
		{"tag alone", Ctor("Increment"), "Increment"},
		{"tag and one arg", Ctor("SetName", String("ann")), `SetName "ann"`},
		{"three args", Ctor("Tag", Int(1), Int(2), z), "Tag … " + Stringify(z)},
		{"nested last arg", Ctor("Wrap", Int(1), Ctor("Inner", Int(2))), "Wrap … Inner 2"},
		{"list", List{Int(1)}, "…"},
		{"record", Record{{Name: "a", Value: Int(1)}}, "…"},
		{"tuple", Tuple(Int(1), Int(2)), "…"},
		{"opaque", Opaque{Kind: OpaqueTask}, "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Stringify(tt.value))
		})
	}
}

func TestStringify_DepthLimit(t *testing.T) {
	t.Parallel()

	in := Inspector{MaxDepth: 1}
	v := Ctor("A", Ctor("B", Ctor("C", Int(1))))
	assert.Equal(t, "A B …", in.Stringify(v))
}

func TestEscape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `a\\b\n\t\r\v\0`, Escape("a\\b\n\t\r\v\x00", false))
	assert.Equal(t, `it's \"x\"`, Escape(`it's "x"`, false))
	assert.Equal(t, `it\'s "x"`, Escape(`it's "x"`, true))
	assert.Equal(t, `"\\\""`, Quote(`\"`))
	assert.Equal(t, `'\n'`, QuoteChar('\n'))
}

func TestEscape_InvalidUTF8(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"\xff"`, Quote("\xff"))
	assert.Equal(t, `"a\xc3b\n"`, Quote("a\xc3b\n"))
	assert.Equal(t, `"é\xff"`, Quote("é\xff"))
	assert.Equal(t, "\"\uFFFD\"", Quote("\uFFFD"), "a valid replacement character is kept")
}

func TestFloatText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-0.25, "-0.25"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Float(tt.in).text(), "input %v", tt.in)
	}
}

type point struct {
	X, Y   int
	Label  string `inspect:"label"`
	hidden int
	Skip   bool `inspect:"-"`
}

type status int

func (s status) Inspect() Value {
	if s == 0 {
		return Ctor("Off")
	}
	return Ctor("On", Int(s))
}

func TestFromGo(t *testing.T) {
	t.Parallel()

	var nilPtr *point
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Nothing},
		{"nil pointer", nilPtr, Nothing},
		{"bool", true, Bool(true)},
		{"uint8", uint8(7), Int(7)},
		{"float32", float32(0.5), Float(0.5)},
		{"string", "hi", String("hi")},
		{"slice", []int{1, 2}, Array{Int(1), Int(2)}},
		{"array", [2]string{"a", "b"}, Array{String("a"), String("b")}},
		{"string map", map[string]int{"b": 2, "a": 1}, Record{{Name: "a", Value: Int(1)}, {Name: "b", Value: Int(2)}}},
		{"int map", map[int]bool{3: true, 1: false}, Dict{
			{Key: Int(1), Value: Bool(false)},
			{Key: Int(3), Value: Bool(true)},
		}},
		{"struct", point{X: 1, Y: 2, Label: "p", hidden: 9}, Record{
			{Name: "X", Value: Int(1)},
			{Name: "Y", Value: Int(2)},
			{Name: "label", Value: String("p")},
		}},
		{"pointer", &point{Label: "q"}, Record{
			{Name: "X", Value: Int(0)},
			{Name: "Y", Value: Int(0)},
			{Name: "label", Value: String("q")},
		}},
		{"inspectable", status(2), Ctor("On", Int(2))},
		{"value", Ctor("Done"), Ctor("Done")},
		{"error", errors.New("boom"), Ctor("Error", String("boom"))},
		{"func", func() {}, Opaque{Kind: OpaqueFunction}},
		{"chan", make(chan int), Opaque{Kind: OpaqueProcess}},
		{"complex", complex(1, 2), Opaque{Kind: OpaqueUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FromGo(tt.in))
		})
	}
}

type node struct {
	Name string
	Next *node
}

func TestFromGo_Cycle(t *testing.T) {
	t.Parallel()

	n := &node{Name: "a"}
	n.Next = n
	want := Record{
		{Name: "Name", Value: String("a")},
		{Name: "Next", Value: Opaque{Kind: OpaqueCycle}},
	}
	assert.Equal(t, want, FromGo(n))
	assert.Equal(t, expando.Primitive{Text: CycleText}, Classify(FromGo(n)).(expando.Record).Fields["Next"])
}

func TestFromGo_DepthLimit(t *testing.T) {
	t.Parallel()

	in := Inspector{MaxDepth: 1}
	got := in.FromGo([][]int{{1}})
	assert.Equal(t, Array{Array{Opaque{Kind: OpaqueDepthLimit}}}, got)
}

func TestClassifyAny_JSONShape(t *testing.T) {
	t.Parallel()

	got := ClassifyAny(map[string]any{"a": float64(1), "b": "x"})
	want := expando.Record{Expanded: true, Fields: map[string]expando.Expando{
		"a": expando.Primitive{Text: "1"},
		"b": expando.StringLiteral{Text: `"x"`},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ClassifyAny() mismatch (-want +got):\n%s", diff)
	}
}
