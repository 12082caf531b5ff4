package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrames_NestedRequestsWait(t *testing.T) {
	t.Parallel()

	f := NewFrames()
	ran := 0
	f.RequestFrame(func() {
		ran++
		f.RequestFrame(func() { ran++ })
	})

	assert.Equal(t, 1, f.Fire())
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, f.Pending())
	assert.Equal(t, 1, f.Settle(10))
	assert.Equal(t, 2, ran)
	assert.Equal(t, 2, f.Requests())
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	r.Dispatch("a")
	r.Dispatch("b")
	r.Dispatch("a")
	assert.Equal(t, []any{"a", "b", "a"}, r.Messages())
	assert.Equal(t, 2, r.Count("a"))
	r.Reset()
	assert.Empty(t, r.Messages())
}

func TestContextWithTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := ContextWithTimeout(t, time.Minute)
	defer cancel()
	_, ok := ctx.Deadline()
	assert.True(t, ok)
}
