// Package risk bounds how much inventory the engine may build and latches
// the kill-switch once the profit target is reached.
package risk

const defaultProfitTarget = 50000

// Limits caps per-instrument inventory. The checks are pre-fill: they bound
// the position that would result if every resting order filled.
type Limits struct {
	MaxPosition int
}

// AllowBid reports whether qty more resting buys keep the worst-case fill at
// or below the long cap.
func (l Limits) AllowBid(position, qty int) bool {
	return position+qty <= l.MaxPosition
}

// AllowAsk reports whether qty more resting sells keep the worst-case fill
// at or above the short cap.
func (l Limits) AllowAsk(position, qty int) bool {
	return position-qty >= -l.MaxPosition
}

// Tracker accumulates mark-to-market PnL across ticks and halts the engine
// once the running total reaches the profit target. The halt is a one-way
// latch: it never resets for the lifetime of the tracker.
type Tracker struct {
	target float64
	total  float64
	halted bool
}

// NewTracker builds a tracker that latches at profitTarget. Non-positive
// targets fall back to the default.
func NewTracker(profitTarget float64) *Tracker {
	if profitTarget <= 0 {
		profitTarget = defaultProfitTarget
	}
	return &Tracker{target: profitTarget}
}

// Accrue adds one tick's mark-to-market delta and latches the halt when the
// cumulative total crosses the target.
func (t *Tracker) Accrue(delta float64) {
	t.total += delta
	if t.total >= t.target {
		t.halted = true
	}
}

// Total returns the cumulative PnL accrued so far.
func (t *Tracker) Total() float64 { return t.total }

// Halted reports whether the kill-switch has latched.
func (t *Tracker) Halted() bool { return t.halted }
