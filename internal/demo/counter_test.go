package demo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/overlook/internal/dom"
	"github.com/thruflo/overlook/internal/inspect"
	"github.com/thruflo/overlook/internal/nav"
	"github.com/thruflo/overlook/internal/vdom"
)

func run(t *testing.T, msgs ...any) Model {
	t.Helper()
	prog := Program(Options{})
	model, cmd := prog.Init()
	assert.Nil(t, cmd)
	for _, msg := range msgs {
		model, cmd = prog.Update(msg, model)
		assert.Nil(t, cmd)
	}
	return model.(Model)
}

func TestCounterUpdate(t *testing.T) {
	t.Parallel()

	m := run(t, Increment{By: 1}, Increment{By: 1}, Decrement{By: 3}, SetStep{Step: 5}, SetStep{Step: 0})
	assert.Equal(t, -1, m.Count)
	assert.Equal(t, 5, m.Step, "non-positive steps are ignored")
	assert.Equal(t, []int{0, 1, 2}, m.Recent)

	m = run(t, Increment{By: 4}, Reset{})
	assert.Equal(t, 0, m.Count)
	assert.Equal(t, []int{0, 4}, m.Recent)
}

func TestCounterRecordsLocation(t *testing.T) {
	t.Parallel()

	loc, err := nav.New(dom.NewWindow("main"), Location)
	require.NoError(t, err)
	prog := Program(Options{Nav: loc})
	model, _ := prog.Init()

	model, cmd := prog.Update(Increment{By: 2}, model)
	require.NotNil(t, cmd)
	cmd(func(any) { t.Fatal("location cmd sends nothing") })
	assert.Equal(t, "overlook://counter/?count=2", loc.URL())

	_, cmd = prog.Update(Reset{}, model)
	require.NotNil(t, cmd)
	cmd(func(any) {})
	assert.Equal(t, "overlook://counter/?count=0", loc.URL())
	assert.Equal(t, 1, loc.Len(), "count changes replace the current entry")

	_, cmd = prog.Update(SetStep{Step: 3}, model)
	assert.Nil(t, cmd)
}

func TestCounterRecentIsBounded(t *testing.T) {
	t.Parallel()

	var msgs []any
	for i := 0; i < 10; i++ {
		msgs = append(msgs, Increment{By: 1})
	}
	m := run(t, msgs...)
	assert.Equal(t, 10, m.Count)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, m.Recent)
}

func TestCounterUpdateDoesNotShareRecent(t *testing.T) {
	t.Parallel()

	prog := Program(Options{})
	first, _ := prog.Update(Increment{By: 1}, Model{Step: 1, Recent: make([]int, 0, 8)})
	a, _ := prog.Update(Increment{By: 1}, first)
	b, _ := prog.Update(Decrement{By: 1}, first)
	assert.Equal(t, []int{0, 1}, a.(Model).Recent)
	assert.Equal(t, []int{0, 1}, b.(Model).Recent)
	assert.Equal(t, []int{0}, first.(Model).Recent)
}

func TestTicker(t *testing.T) {
	t.Parallel()

	prog := Program(Options{TickInterval: time.Millisecond})
	model, cmd := prog.Init()
	require.NotNil(t, cmd)

	got := make(chan any, 1)
	cmd(func(msg any) { got <- msg })
	select {
	case msg := <-got:
		assert.Equal(t, Tick{}, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("no tick")
	}

	model, cmd = prog.Update(Tick{}, model)
	assert.Equal(t, 1, model.(Model).Ticks)
	assert.NotNil(t, cmd, "every tick schedules the next")
}

func TestMessageRoundTrip(t *testing.T) {
	t.Parallel()

	for _, msg := range []any{Increment{By: 2}, Decrement{By: 3}, Reset{}, SetStep{Step: 4}, Tick{}} {
		data, err := json.Marshal(msg)
		require.NoError(t, err)
		back, err := DecodeMsg(data)
		require.NoError(t, err)
		assert.Equal(t, msg, back)
	}
}

func TestDecodeMsgErrors(t *testing.T) {
	t.Parallel()

	_, err := DecodeMsg([]byte(`{"type":"explode"}`))
	assert.ErrorContains(t, err, "unknown type")

	_, err = DecodeMsg([]byte(`not json`))
	assert.Error(t, err)
}

func TestMessageLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  any
		want string
	}{
		{Increment{By: 1}, "Increment 1"},
		{Decrement{By: 2}, "Decrement 2"},
		{Reset{}, "Reset"},
		{SetStep{Step: 3}, "SetStep 3"},
		{Tick{}, "Tick"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inspect.Stringify(inspect.FromGo(tt.msg)))
	}
}

func TestViewKeys(t *testing.T) {
	t.Parallel()

	doc := dom.NewDocument()
	var got []any
	el := vdom.Render(doc, View(Model{Count: 3, Step: 2}), func(msg any) { got = append(got, msg) })
	doc.Body.AppendChild(el)
	assert.Contains(t, el.TextContent(), "Count: 3")

	for _, r := range []rune{'+', '-', '0', ']', '[', 'x'} {
		doc.Dispatch(&dom.Event{Type: "keydown", Target: el, Rune: r})
	}
	assert.Equal(t, []any{
		Increment{By: 2},
		Decrement{By: 2},
		Reset{},
		SetStep{Step: 3},
		SetStep{Step: 1},
	}, got)
}
