package testutil

import "sync"

// Recorder records dispatched messages.
type Recorder struct {
	mu   sync.Mutex
	msgs []any
}

// Dispatch appends msg. It has the signature of a dispatch function.
func (r *Recorder) Dispatch(msg any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.msgs...)
}

// Count returns how many recorded messages equal msg.
func (r *Recorder) Count(msg any) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m == msg {
			n++
		}
	}
	return n
}

// Reset forgets all recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}
