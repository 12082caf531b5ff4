package animator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/overlook/internal/testutil"
)

type drawLog struct{ models []any }

func (d *drawLog) draw(model any) { d.models = append(d.models, model) }

func TestInitialize_DrawsOnce(t *testing.T) {
	t.Parallel()

	frames := testutil.NewFrames()
	var log drawLog
	a := Initialize(frames, "init", log.draw)

	assert.Equal(t, []any{"init"}, log.models)
	assert.Equal(t, Idle, a.Status())
	assert.Equal(t, 0, frames.Pending())
}

func TestUpdate_AsyncBurstDrawsOnceWithLatest(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 10, 100} {
		frames := testutil.NewFrames()
		var log drawLog
		a := Initialize(frames, 0, log.draw)

		for i := 1; i <= n; i++ {
			a.Update(i, false)
		}
		assert.Equal(t, FramePending, a.Status())
		assert.Equal(t, 1, frames.Requests(), "n=%d", n)

		frames.Settle(10)
		assert.Equal(t, []any{0, n}, log.models, "n=%d", n)
		assert.Equal(t, Idle, a.Status())
	}
}

func TestUpdate_SyncDrawsImmediately(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		before func(a *Animator, f *testutil.Frames)
		want   Status
	}{
		{"from idle", func(*Animator, *testutil.Frames) {}, Idle},
		{"from pending", func(a *Animator, _ *testutil.Frames) { a.Update("async", false) }, FrameExtra},
		{"from extra", func(a *Animator, f *testutil.Frames) {
			a.Update("async", false)
			f.Fire()
		}, FrameExtra},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			frames := testutil.NewFrames()
			var log drawLog
			a := Initialize(frames, "init", log.draw)
			tt.before(a, frames)

			before := len(log.models)
			a.Update("sync", true)
			require.Len(t, log.models, before+1)
			assert.Equal(t, "sync", log.models[before])
			assert.Equal(t, tt.want, a.Status())
		})
	}
}

func TestFrame_ExtraRetiresWithoutDrawing(t *testing.T) {
	t.Parallel()

	frames := testutil.NewFrames()
	var log drawLog
	a := Initialize(frames, 0, log.draw)

	a.Update(1, false)
	a.Update(2, true)
	assert.Equal(t, FrameExtra, a.Status())

	frames.Fire()
	assert.Equal(t, Idle, a.Status())
	assert.Equal(t, []any{0, 2}, log.models)
	assert.Equal(t, 0, frames.Pending())
}

func TestFrame_PendingDrawsAndRearms(t *testing.T) {
	t.Parallel()

	frames := testutil.NewFrames()
	var log drawLog
	a := Initialize(frames, 0, log.draw)

	a.Update(1, false)
	frames.Fire()
	assert.Equal(t, FrameExtra, a.Status())
	assert.Equal(t, 1, frames.Pending())

	frames.Fire()
	assert.Equal(t, Idle, a.Status())
	assert.Equal(t, []any{0, 1}, log.models)
}

func TestUpdate_AsyncDuringExtraIsNotDropped(t *testing.T) {
	t.Parallel()

	frames := testutil.NewFrames()
	var log drawLog
	a := Initialize(frames, 0, log.draw)

	a.Update(1, false)
	frames.Fire()
	a.Update(2, false)
	assert.Equal(t, FramePending, a.Status())
	assert.Equal(t, 2, frames.Requests())

	frames.Settle(10)
	assert.Equal(t, []any{0, 1, 2}, log.models)
	assert.Equal(t, 2, a.Model())
}

func TestUpdate_AsyncFromInsideDraw(t *testing.T) {
	t.Parallel()

	frames := testutil.NewFrames()
	var a *Animator
	var models []any
	a = Initialize(frames, 0, func(model any) {
		models = append(models, model)
		if model == 1 {
			a.Update(2, false)
		}
	})

	a.Update(1, false)
	frames.Settle(10)
	assert.Equal(t, []any{0, 1, 2}, models)
	assert.Equal(t, Idle, a.Status())
	assert.Equal(t, 3, a.Draws())
}

func TestStatus_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", FramePending.String())
	assert.Equal(t, "extra", FrameExtra.String())
	assert.Equal(t, "unknown", Status(9).String())
}
