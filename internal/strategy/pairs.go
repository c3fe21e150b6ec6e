package strategy

import (
	"math"

	"basketbot-go/internal/history"
	"basketbot-go/internal/market"
	"basketbot-go/internal/stats"
)

// Pair trading states.
const (
	// StateWarming: fewer than minObservations spreads recorded, no action.
	StateWarming = "WARMING"
	// StateMonitoring: enough history, |z| below the entry gate. No new
	// legs, eligible for the joint flatten.
	StateMonitoring = "MONITORING"
	// StateEngaged: |z| at or past the entry gate, offsetting legs open.
	StateEngaged = "ENGAGED"
)

const (
	spreadCapacity  = 300
	minObservations = 50
)

// pair tracks the spread between two instruments and trades its reversion
// to the historical mean.
type pair struct {
	x, y    string
	spreads *history.Ring
	state   string
	z       float64
}

func newPair(x, y string) *pair {
	return &pair{x: x, y: y, spreads: history.New(spreadCapacity), state: StateWarming}
}

// observe records the current spread and advances the state machine. The
// z-score uses all available history once past warm-up, not a fixed window.
func (p *pair) observe(spread, entryZ float64) {
	p.spreads.Push(spread)
	if p.spreads.Len() < minObservations {
		p.state = StateWarming
		p.z = 0
		return
	}
	p.z = stats.ZScore(spread, p.spreads.Values())
	if math.Abs(p.z) >= entryZ {
		p.state = StateEngaged
	} else {
		p.state = StateMonitoring
	}
}

// legs returns the fixed-size offsetting entry orders while engaged: the
// rich side is sold and the cheap side bought at mid, betting the spread
// narrows. Entry is antisymmetric in the sign of z.
func (p *pair) legs(mids map[string]float64, size int) []market.Order {
	if p.state != StateEngaged {
		return nil
	}
	px := int(math.Floor(mids[p.x]))
	py := int(math.Floor(mids[p.y]))
	if p.z > 0 {
		return []market.Order{
			{Symbol: p.x, Price: px, Qty: -size},
			{Symbol: p.y, Price: py, Qty: size},
		}
	}
	return []market.Order{
		{Symbol: p.x, Price: px, Qty: size},
		{Symbol: p.y, Price: py, Qty: -size},
	}
}

// flattenEligible reports whether this pair's spread has normalized below
// the exit gate. The actual flatten fires only when every pair agrees.
func (p *pair) flattenEligible(exitZ float64) bool {
	return p.state != StateWarming && math.Abs(p.z) < exitZ
}
