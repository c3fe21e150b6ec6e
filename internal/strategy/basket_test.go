package strategy

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basketbot-go/internal/market"
)

var testSymbols = []string{"ABRA", "DROWZEE", "SUDOWOODO"}

// makeTick builds a two-sided book one tick wide around each integer mid.
func makeTick(ts int64, mids map[string]int, positions map[string]int) market.Tick {
	books := make(map[string]market.Book, len(mids))
	for sym, mid := range mids {
		books[sym] = market.Book{
			Bids: map[int]int{mid - 1: 10},
			Asks: map[int]int{mid + 1: 10},
		}
	}
	return market.Tick{Timestamp: ts, Books: books, Positions: positions, Trades: nil}
}

func flatMids(a, d, s int) map[string]int {
	return map[string]int{"ABRA": a, "DROWZEE": d, "SUDOWOODO": s}
}

func newTestMaker(params Params) *BasketMaker {
	return NewBasketMaker(params, zerolog.Nop())
}

// warm feeds n constant ticks so every mid and spread history fills evenly.
func warm(m *BasketMaker, n int) {
	for i := 0; i < n; i++ {
		m.OnTick(makeTick(int64(i), flatMids(100, 90, 80), nil))
	}
}

func TestWarmupEmitsNothingUntilFiftiethTick(t *testing.T) {
	m := newTestMaker(Params{})

	for i := 0; i < 49; i++ {
		out := m.OnTick(makeTick(int64(i), flatMids(100, 90, 80), nil))
		require.Len(t, out, 3)
		for sym, orders := range out {
			require.Emptyf(t, orders, "tick %d: no orders expected for %s during warm-up", i, sym)
		}
	}

	out := m.OnTick(makeTick(49, flatMids(100, 90, 80), nil))
	for _, sym := range testSymbols {
		require.NotEmptyf(t, out[sym], "ladder must quote %s on the 50th observation", sym)
	}

	// Flat history: vol floored, 3+1 levels, size 8, zero skew.
	require.Len(t, out["ABRA"], 8)
	assert.Contains(t, out["ABRA"], market.Order{Symbol: "ABRA", Price: 99, Qty: 8})
	assert.Contains(t, out["ABRA"], market.Order{Symbol: "ABRA", Price: 100, Qty: -8})
}

func TestLadderRespectsPreFillPositionBound(t *testing.T) {
	// ExitZ below zero disables the pairs flatten so only ladder orders appear.
	m := newTestMaker(Params{ExitZ: -1})
	warm(m, 50)

	out := m.OnTick(makeTick(50, flatMids(100, 90, 80), map[string]int{"ABRA": 50}))

	var buys, sells int
	for _, o := range out["ABRA"] {
		if o.Qty > 0 {
			buys += o.Qty
		} else {
			sells += -o.Qty
		}
	}
	assert.LessOrEqual(t, 50+buys, 60, "worst-case long fill must stay inside the cap")
	assert.GreaterOrEqual(t, 50-sells, -60, "worst-case short fill must stay inside the cap")
	// Size 8 with 10 slots of headroom: exactly one bid fits, all four asks do.
	assert.Equal(t, 8, buys)
	assert.Equal(t, 32, sells)
}

func TestLadderStopsBiddingAtCap(t *testing.T) {
	m := newTestMaker(Params{ExitZ: -1})
	warm(m, 50)

	out := m.OnTick(makeTick(50, flatMids(100, 90, 80), map[string]int{"ABRA": 60}))
	for _, o := range out["ABRA"] {
		assert.Negative(t, o.Qty, "no buys at the long cap")
	}
}

func TestKillSwitchFlattensAndLatches(t *testing.T) {
	m := newTestMaker(Params{ProfitTarget: 50, EntryZ: 100, ExitZ: -1})
	warm(m, 50)

	// All mids gap up together (spreads unchanged); the ABRA long marks
	// +100, crossing the 50 target.
	out := m.OnTick(makeTick(50, flatMids(110, 100, 90), map[string]int{"ABRA": 10}))
	require.True(t, m.Halted())
	assert.InDelta(t, 100, m.PnL(), 1e-9)

	require.Len(t, out["ABRA"], 1, "ladder must be replaced by a single flatten")
	assert.Equal(t, market.Order{Symbol: "ABRA", Price: 110, Qty: -10}, out["ABRA"][0])
	assert.Empty(t, out["DROWZEE"], "no inventory, nothing to flatten while halted")
	assert.Empty(t, out["SUDOWOODO"])

	// Latch survives flat PnL and a now-flat position.
	out = m.OnTick(makeTick(51, flatMids(110, 100, 90), nil))
	assert.True(t, m.Halted())
	for sym, orders := range out {
		assert.Emptyf(t, orders, "%s: no inventory-building orders after the halt", sym)
	}
}

func TestJointFlattenClosesEveryLeg(t *testing.T) {
	m := newTestMaker(Params{})
	warm(m, 50)

	positions := map[string]int{"ABRA": 5, "DROWZEE": -3, "SUDOWOODO": 7}
	out := m.OnTick(makeTick(50, flatMids(100, 90, 80), positions))

	midFor := map[string]int{"ABRA": 100, "DROWZEE": 90, "SUDOWOODO": 80}
	for _, sym := range testSymbols {
		var flattens []market.Order
		for _, o := range out[sym] {
			if o.Qty == -positions[sym] && o.Price == midFor[sym] {
				flattens = append(flattens, o)
			}
		}
		require.Lenf(t, flattens, 1, "%s: expected exactly one flatten of -position", sym)
	}
}

func TestPairsEntryFlowsIntoOrderMap(t *testing.T) {
	m := newTestMaker(Params{})
	warm(m, 50)

	// ABRA gaps away from DROWZEE: the first spread blows out while the
	// second stays at its mean, so legs open but no joint flatten fires.
	out := m.OnTick(makeTick(50, flatMids(130, 90, 80), map[string]int{"ABRA": 5}))

	assert.Contains(t, out["ABRA"], market.Order{Symbol: "ABRA", Price: 130, Qty: -5})
	assert.Contains(t, out["DROWZEE"], market.Order{Symbol: "DROWZEE", Price: 90, Qty: 5})
	for _, o := range out["SUDOWOODO"] {
		assert.NotEqual(t, 5, o.Qty, "third instrument carries no arb leg")
	}
}

func TestOneSidedBookSkipsInstrumentButKeepsKey(t *testing.T) {
	m := newTestMaker(Params{})
	warm(m, 50)

	tick := makeTick(50, flatMids(100, 90, 80), nil)
	book := tick.Books["ABRA"]
	book.Asks = nil
	tick.Books["ABRA"] = book

	out := m.OnTick(tick)
	orders, present := out["ABRA"]
	require.True(t, present, "skipped instruments still get an entry")
	assert.Empty(t, orders)
	assert.NotEmpty(t, out["DROWZEE"], "healthy instruments keep quoting")
}

func TestOnTickIsDeterministic(t *testing.T) {
	a := newTestMaker(Params{})
	b := newTestMaker(Params{})

	for i := 0; i < 80; i++ {
		mids := flatMids(100+i%7, 90+(i*3)%5, 80+i%3)
		positions := map[string]int{"ABRA": i % 11, "DROWZEE": -(i % 4)}
		tick := makeTick(int64(i), mids, positions)
		tick.Trades = map[string][]market.Trade{
			"ABRA": {{Price: float64(100 + i%7 + 1), Qty: 2}},
		}
		require.Equalf(t, a.OnTick(tick), b.OnTick(tick), "tick %d diverged", i)
	}
	assert.Equal(t, a.PnL(), b.PnL())
}
