// Package demo is the counter application `overlook run` debugs.
package demo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/thruflo/overlook/internal/nav"
	"github.com/thruflo/overlook/internal/program"
	"github.com/thruflo/overlook/internal/vdom"
)

// Name identifies the counter in saved histories.
const Name = "counter"

// RecentSize is how many past counts the model keeps.
const RecentSize = 5

// Location is the URL the counter's window starts at.
const Location = "overlook://counter/"

// Model is the counter state.
type Model struct {
	Count  int
	Step   int
	Recent []int
	Ticks  int
}

// Options configures the counter.
type Options struct {
	// TickInterval, when positive, makes the counter send itself a Tick at
	// that interval.
	TickInterval time.Duration

	// Nav, if set, has its current entry replaced with ?count=N whenever
	// the count changes.
	Nav *nav.Navigator
}

// Program returns the counter program.
func Program(opts Options) program.Program {
	c := counter{tick: opts.TickInterval, nav: opts.Nav}
	return program.Program{
		Name:      Name,
		Init:      c.init,
		Update:    c.update,
		View:      View,
		DecodeMsg: DecodeMsg,
	}
}

type counter struct {
	tick time.Duration
	nav  *nav.Navigator
}

func (c counter) init() (any, program.Cmd) {
	return Model{Step: 1}, c.next()
}

func (c counter) next() program.Cmd {
	if c.tick <= 0 {
		return nil
	}
	d := c.tick
	return func(send func(any)) {
		go func() {
			time.Sleep(d)
			send(Tick{})
		}()
	}
}

func (c counter) update(msg, model any) (any, program.Cmd) {
	m := model.(Model)
	switch msg := msg.(type) {
	case Increment:
		return c.count(m, m.Count+msg.By)
	case Decrement:
		return c.count(m, m.Count-msg.By)
	case Reset:
		return c.count(m, 0)
	case SetStep:
		if msg.Step > 0 {
			m.Step = msg.Step
		}
		return m, nil
	case Tick:
		m.Ticks++
		return m, c.next()
	}
	return m, nil
}

func (c counter) count(m Model, n int) (any, program.Cmd) {
	m = m.set(n)
	if c.nav == nil {
		return m, nil
	}
	loc := c.nav
	return m, func(func(any)) {
		if _, err := loc.ReplaceState("?count=" + strconv.Itoa(n)); err != nil {
			nav.InvalidURL(err.Error())
		}
	}
}

func (m Model) set(count int) Model {
	recent := append([]int(nil), m.Recent...)
	recent = append(recent, m.Count)
	if len(recent) > RecentSize {
		recent = recent[len(recent)-RecentSize:]
	}
	m.Recent = recent
	m.Count = count
	return m
}

// View renders the counter. Keys: + and - change the count by the step,
// 0 resets, [ and ] change the step.
func View(model any) *vdom.Node {
	m := model.(Model)

	recent := make([]string, len(m.Recent))
	for i, n := range m.Recent {
		recent[i] = strconv.Itoa(n)
	}

	step := m.Step
	if step <= 0 {
		step = 1
	}
	lower := step - 1
	if lower < 1 {
		lower = 1
	}

	return vdom.El("div",
		vdom.El("div", vdom.Text(fmt.Sprintf("Count: %d", m.Count))).WithStyle("bold", "true"),
		vdom.El("div", vdom.Text(fmt.Sprintf("Step: %d", step))),
		vdom.El("div", vdom.Text("Recent: "+strings.Join(recent, " "))).WithStyle("faint", "true"),
		vdom.El("div", vdom.Text(fmt.Sprintf("Ticks: %d", m.Ticks))).WithStyle("faint", "true"),
		vdom.El("div", vdom.Text("+/- count  0 reset  [/] step  tab focus  ctrl+c quit")).WithStyle("faint", "true"),
	).WithID("counter").
		OnRune('+', Increment{By: step}).
		OnRune('-', Decrement{By: step}).
		OnRune('0', Reset{}).
		OnRune(']', SetStep{Step: step + 1}).
		OnRune('[', SetStep{Step: lower})
}
