package strategy

import (
	"math"

	"github.com/rs/zerolog"

	"basketbot-go/internal/history"
	"basketbot-go/internal/market"
	"basketbot-go/internal/risk"
	"basketbot-go/internal/stats"
)

const (
	midCapacity  = 500
	flowCapacity = 30
)

var defaultSymbols = []string{"ABRA", "DROWZEE", "SUDOWOODO"}

// BasketMaker runs ladder market making across a fixed three-instrument
// basket with a statistical pairs overlay on the two inter-instrument
// spreads (first-second and second-third of the configured symbols).
//
// All rolling state lives on the struct and is mutated only inside OnTick;
// the caller must deliver ticks serially. Every configured symbol is
// expected to carry a book entry in each tick. A missing symbol is a feed
// contract violation; the engine does not recover it, it only stands the
// pairs overlay down for that tick.
type BasketMaker struct {
	symbols []string
	params  Params
	limits  risk.Limits
	tracker *risk.Tracker

	mids  map[string]*history.Ring
	flows map[string]*history.Ring
	pairs [2]*pair

	log zerolog.Logger
}

// NewBasketMaker builds the engine, applying defaults for zero-valued
// params.
func NewBasketMaker(params Params, log zerolog.Logger) *BasketMaker {
	if len(params.Symbols) != 3 {
		params.Symbols = defaultSymbols
	}
	if params.MaxPosition <= 0 {
		params.MaxPosition = 60
	}
	if params.LadderLevels <= 0 {
		params.LadderLevels = 3
	}
	if params.BaseSize <= 0 {
		params.BaseSize = 4
	}
	if params.ArbSize <= 0 {
		params.ArbSize = 5
	}
	if params.EntryZ == 0 {
		params.EntryZ = 1.2
	}
	if params.ExitZ == 0 {
		params.ExitZ = 0.5
	}

	m := &BasketMaker{
		symbols: params.Symbols,
		params:  params,
		limits:  risk.Limits{MaxPosition: params.MaxPosition},
		tracker: risk.NewTracker(params.ProfitTarget),
		mids:    make(map[string]*history.Ring, len(params.Symbols)),
		flows:   make(map[string]*history.Ring, len(params.Symbols)),
		log:     log,
	}
	for _, sym := range m.symbols {
		m.mids[sym] = history.New(midCapacity)
		m.flows[sym] = history.New(flowCapacity)
	}
	m.pairs[0] = newPair(m.symbols[0], m.symbols[1])
	m.pairs[1] = newPair(m.symbols[1], m.symbols[2])
	return m
}

// Name returns the identifier for logging.
func (m *BasketMaker) Name() string { return "BasketMaker" }

// PnL returns the cumulative mark-to-market PnL accrued so far.
func (m *BasketMaker) PnL() float64 { return m.tracker.Total() }

// Halted reports whether the profit-target kill-switch has latched.
func (m *BasketMaker) Halted() bool { return m.tracker.Halted() }

// OnTick ingests one market update and returns every order for this tick.
// Instruments with a one-sided or absent book get an empty, present entry.
func (m *BasketMaker) OnTick(t market.Tick) map[string][]market.Order {
	mids := make(map[string]float64, len(m.symbols))
	var pnlDelta float64

	for _, sym := range m.symbols {
		book, ok := t.Books[sym]
		if !ok || !book.TwoSided() {
			continue
		}
		mid, _ := book.Mid()
		mids[sym] = mid

		// Mark existing inventory against the previous mid before the new
		// one is recorded. Fills from this tick are invisible until the
		// matcher reports the updated position next tick.
		if prev, ok := m.mids[sym].Latest(); ok {
			pnlDelta += (mid - prev) * float64(t.Positions[sym])
		}
		m.mids[sym].Push(mid)
		m.flows[sym].Push(netFlow(t.Trades[sym], mid))
	}

	m.tracker.Accrue(pnlDelta)
	if m.tracker.Halted() {
		m.log.Debug().Float64("pnl", m.tracker.Total()).Msg("kill-switch latched, flatten only")
	}

	arb := m.pairsOrders(mids, t.Positions)

	result := make(map[string][]market.Order, len(m.symbols))
	for _, sym := range m.symbols {
		orders := []market.Order{}
		if _, ok := mids[sym]; !ok {
			result[sym] = orders
			continue
		}
		orders = append(orders, m.ladderOrders(sym, mids[sym], t.Positions[sym])...)
		orders = append(orders, arb[sym]...)
		result[sym] = orders
	}
	return result
}

// pairsOrders runs both pair state machines and returns the arbitrage legs
// keyed by instrument, including the joint flatten: when both spreads have
// normalized below the exit gate at once, every instrument with inventory
// gets a single order closing it at mid.
func (m *BasketMaker) pairsOrders(mids map[string]float64, positions map[string]int) map[string][]market.Order {
	for _, sym := range m.symbols {
		if _, ok := mids[sym]; !ok {
			return nil
		}
	}

	for _, p := range m.pairs {
		p.observe(mids[p.x]-mids[p.y], m.params.EntryZ)
	}

	out := make(map[string][]market.Order)
	for _, p := range m.pairs {
		for _, o := range p.legs(mids, m.params.ArbSize) {
			out[o.Symbol] = append(out[o.Symbol], o)
		}
	}

	if m.pairs[0].flattenEligible(m.params.ExitZ) && m.pairs[1].flattenEligible(m.params.ExitZ) {
		for _, sym := range m.symbols {
			if pos := positions[sym]; pos != 0 {
				out[sym] = append(out[sym], market.Order{
					Symbol: sym,
					Price:  int(math.Floor(mids[sym])),
					Qty:    -pos,
				})
			}
		}
	}
	return out
}

// ladderOrders quotes the multi-level ladder for one instrument, or a single
// flattening order once the kill-switch has latched.
func (m *BasketMaker) ladderOrders(sym string, mid float64, position int) []market.Order {
	if m.tracker.Halted() {
		if position == 0 {
			return nil
		}
		return []market.Order{{Symbol: sym, Price: int(math.Floor(mid)), Qty: -position}}
	}

	window := m.mids[sym].Last(ladderWindow)
	if len(window) < ladderWindow {
		return nil
	}

	vol := stats.StdDev(window)
	if vol == 0 {
		vol = stats.Epsilon
	}
	z := (mid - stats.Mean(window)) / vol
	skew := quoteSkew(z, flowRatio(m.flows[sym].Values()), trendStrength(window, vol))

	levels := ladderLevels(m.params.LadderLevels, vol)
	size := ladderSize(m.params.BaseSize, vol)
	return buildLadder(sym, mid, position, vol, skew, levels, size, m.limits)
}
