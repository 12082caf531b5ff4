package testutil

// Frames is a manually driven frame scheduler.
type Frames struct {
	pending  []func()
	requests int
}

// NewFrames returns an empty frame scheduler.
func NewFrames() *Frames {
	return &Frames{}
}

// RequestFrame queues fn for the next Fire.
func (f *Frames) RequestFrame(fn func()) {
	f.requests++
	f.pending = append(f.pending, fn)
}

// Pending returns the number of queued callbacks.
func (f *Frames) Pending() int {
	return len(f.pending)
}

// Requests returns the total number of RequestFrame calls.
func (f *Frames) Requests() int {
	return f.requests
}

// Fire runs the callbacks queued before the call and returns how many ran.
// Callbacks requested while firing wait for the next Fire.
func (f *Frames) Fire() int {
	batch := f.pending
	f.pending = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Settle fires frames until none are pending or limit refreshes have run. It
// returns the number of refreshes.
func (f *Frames) Settle(limit int) int {
	n := 0
	for n < limit && f.Fire() > 0 {
		n++
	}
	return n
}
