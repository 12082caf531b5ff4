// Package animator coalesces model updates into at most one draw per display
// refresh.
//
// An Animator is owned by the UI thread. Asynchronous updates only record the
// latest model and make sure a frame callback is outstanding; the callback
// draws whatever model is current when it fires. Synchronous updates draw
// immediately, and if a frame callback was already outstanding the animator
// keeps one extra frame armed so the final paint before going idle always
// shows the latest model.
package animator

// Status is the scheduling state of an Animator.
type Status int

const (
	// Idle means no frame callback is outstanding.
	Idle Status = iota
	// FramePending means a frame callback is outstanding and the model has
	// changed since the last draw.
	FramePending
	// FrameExtra means a frame callback is outstanding but the latest model
	// has already been drawn.
	FrameExtra
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case FramePending:
		return "pending"
	case FrameExtra:
		return "extra"
	default:
		return "unknown"
	}
}

// FrameRequester schedules a callback for the next display refresh.
type FrameRequester interface {
	RequestFrame(fn func())
}

// DrawFunc renders a model.
type DrawFunc func(model any)

// Animator is the per-surface draw scheduler.
type Animator struct {
	frames FrameRequester
	draw   DrawFunc
	model  any
	status Status
	draws  int
}

// Initialize draws model once, synchronously, and returns the animator that
// schedules subsequent draws.
func Initialize(frames FrameRequester, model any, draw DrawFunc) *Animator {
	a := &Animator{frames: frames, draw: draw, model: model}
	a.paint()
	return a
}

// Update records nextModel. With isSync the model is drawn before Update
// returns; otherwise the draw happens on the next frame.
func (a *Animator) Update(nextModel any, isSync bool) {
	a.model = nextModel

	if isSync {
		a.paint()
		if a.status == FramePending {
			a.status = FrameExtra
		}
		return
	}

	if a.status == Idle {
		a.frames.RequestFrame(a.onFrame)
	}
	// An outstanding callback in the extra state would otherwise retire
	// without drawing this model.
	a.status = FramePending
}

func (a *Animator) onFrame() {
	if a.status == FrameExtra {
		a.status = Idle
		return
	}
	// Any async update made while drawing moves the state back to pending,
	// so the re-armed callback will draw it.
	a.status = FrameExtra
	a.frames.RequestFrame(a.onFrame)
	a.paint()
}

func (a *Animator) paint() {
	a.draws++
	a.draw(a.model)
}

// Status returns the current scheduling state.
func (a *Animator) Status() Status {
	return a.status
}

// Model returns the latest model passed to Initialize or Update.
func (a *Animator) Model() any {
	return a.model
}

// Draws returns how many times the draw callback has run.
func (a *Animator) Draws() int {
	return a.draws
}
