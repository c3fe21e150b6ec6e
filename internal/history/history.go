// Package history provides the bounded rolling series backing every
// indicator in the engine.
package history

// Ring is a fixed-capacity, insertion-ordered buffer of float64 samples.
// Pushing at capacity evicts the oldest sample. The zero value is not usable;
// construct with New.
type Ring struct {
	buf  []float64
	head int // index of the oldest sample
	n    int
}

// New returns an empty ring holding at most capacity samples.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]float64, capacity)}
}

// Push appends v, evicting the oldest sample when full. Always succeeds.
func (r *Ring) Push(v float64) {
	if r.n < len(r.buf) {
		r.buf[(r.head+r.n)%len(r.buf)] = v
		r.n++
		return
	}
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

// Len returns the number of stored samples.
func (r *Ring) Len() int { return r.n }

// Cap returns the configured capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Values returns a copy of all samples, oldest first.
func (r *Ring) Values() []float64 { return r.Last(r.n) }

// Last returns the most recent n samples in insertion order, or every sample
// when n exceeds the current length.
func (r *Ring) Last(n int) []float64 {
	if n > r.n {
		n = r.n
	}
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	start := r.head + r.n - n
	for i := 0; i < n; i++ {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out
}

// Latest returns the newest sample.
func (r *Ring) Latest() (float64, bool) {
	if r.n == 0 {
		return 0, false
	}
	return r.buf[(r.head+r.n-1)%len(r.buf)], true
}

// Prev returns the sample immediately before the newest one.
func (r *Ring) Prev() (float64, bool) {
	if r.n < 2 {
		return 0, false
	}
	return r.buf[(r.head+r.n-2)%len(r.buf)], true
}
