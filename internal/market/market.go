// Package market standardizes the payloads shared between the tick source,
// strategy, and execution layers.
package market

// Trade is a single public trade print observed during a tick.
type Trade struct {
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Book holds the outstanding limit order levels for one instrument,
// price level -> resting size.
type Book struct {
	Bids map[int]int `json:"bids"`
	Asks map[int]int `json:"asks"`
}

// BestBid returns the highest resting buy level.
func (b Book) BestBid() (int, bool) {
	if len(b.Bids) == 0 {
		return 0, false
	}
	best := 0
	found := false
	for px := range b.Bids {
		if !found || px > best {
			best = px
			found = true
		}
	}
	return best, true
}

// BestAsk returns the lowest resting sell level.
func (b Book) BestAsk() (int, bool) {
	if len(b.Asks) == 0 {
		return 0, false
	}
	best := 0
	found := false
	for px := range b.Asks {
		if !found || px < best {
			best = px
			found = true
		}
	}
	return best, true
}

// TwoSided reports whether the book has at least one level on each side.
func (b Book) TwoSided() bool {
	return len(b.Bids) > 0 && len(b.Asks) > 0
}

// Mid returns the midpoint between best bid and best ask. The second return
// is false when either side is empty.
func (b Book) Mid() (float64, bool) {
	bid, ok := b.BestBid()
	if !ok {
		return 0, false
	}
	ask, ok := b.BestAsk()
	if !ok {
		return 0, false
	}
	return (float64(bid) + float64(ask)) / 2, true
}

// Order is a placement request emitted by a strategy. Positive Qty buys,
// negative Qty sells.
type Order struct {
	Symbol string `json:"symbol"`
	Price  int    `json:"price"`
	Qty    int    `json:"qty"`
}

// Side renders the order direction for logs and metric labels.
func (o Order) Side() string {
	if o.Qty < 0 {
		return "SELL"
	}
	return "BUY"
}

// Tick is one market update delivered by the external matcher: per-instrument
// books, authoritative positions, and the trades printed since the last tick.
// Timestamps increase monotonically and ticks arrive serially.
type Tick struct {
	Timestamp int64              `json:"ts"`
	Books     map[string]Book    `json:"books"`
	Positions map[string]int     `json:"positions"`
	Trades    map[string][]Trade `json:"trades"`
}
